/*
 * Ferra
 *
 * Copyright 2026 The Ferra Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

/*
Equals reports whether n and other are structurally identical ASTs. When
ignoreSpans is true, every Span field (on nodes and on any embedded Token)
is excluded from the comparison - the shape round-trip checks need, where
two parses of equivalent source must match modulo positions. Uses
google/go-cmp rather than a hand-rolled recursive comparator so the diff
output on mismatch is immediately readable in test failures.
*/
func Equals(n, other *Node, ignoreSpans bool) (bool, string) {
	opts := []cmp.Option{
		cmp.AllowUnexported(Node{}),
		cmpopts.EquateEmpty(),
		// gen is arena bookkeeping, not AST structure: two structurally
		// identical trees allocated under different arena generations (e.g.
		// the same source re-parsed into a reset arena) must still compare
		// equal, so it is always excluded regardless of ignoreSpans.
		cmp.FilterPath(func(p cmp.Path) bool {
			sf, ok := p.Last().(cmp.StructField)
			if !ok {
				return false
			}
			if sf.Name() == "gen" {
				return true
			}
			return ignoreSpans && sf.Name() == "Span"
		}, cmp.Ignore()),
	}

	diff := cmp.Diff(n, other, opts...)
	return diff == "", diff
}
