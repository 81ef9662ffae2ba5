/*
 * Ferra
 *
 * Copyright 2026 The Ferra Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package diag

import (
	"github.com/hashicorp/go-multierror"
)

/*
Collector accumulates Diagnostics for a single parsing session. It enforces
a configurable maximum error count: once exceeded, further non-fatal
diagnostics are silently suppressed but parsing continues to EOF. A Fatal
diagnostic stops collection immediately - Report returns true to tell the
caller to unwind.
*/
type Collector struct {
	max       int
	diags     []*Diagnostic
	fatal     bool
	suppressed int
}

/*
NewCollector creates a Collector with the given maximum error count. A
non-positive max means unlimited.
*/
func NewCollector(max int) *Collector {
	return &Collector{max: max}
}

/*
Report records d. It returns true if the session must stop immediately
(d is Fatal), false otherwise - including when d was suppressed because the
error-count ceiling was already reached.
*/
func (c *Collector) Report(d *Diagnostic) bool {
	if c.fatal {
		return true
	}

	if d.Severity == Fatal {
		c.diags = append(c.diags, d)
		c.fatal = true
		return true
	}

	if c.max > 0 && c.countReportable() >= c.max {
		c.suppressed++
		return false
	}

	c.diags = append(c.diags, d)
	return false
}

func (c *Collector) countReportable() int {
	n := 0
	for _, d := range c.diags {
		if d.Severity != Warning {
			n++
		}
	}
	return n
}

/*
HasFatal reports whether a Fatal diagnostic has been recorded.
*/
func (c *Collector) HasFatal() bool {
	return c.fatal
}

/*
Diagnostics returns every recorded diagnostic in the order it occurred,
which equals source order modulo recovery.
*/
func (c *Collector) Diagnostics() []*Diagnostic {
	return c.diags
}

/*
Suppressed returns the number of non-fatal diagnostics dropped after the
error-count ceiling was reached.
*/
func (c *Collector) Suppressed() int {
	return c.suppressed
}

/*
Err returns nil if no diagnostic at SevError or Fatal severity was recorded,
otherwise a *multierror.Error aggregating them - callers that only want a
plain error can use it as-is; callers that want the structured list should
call Diagnostics instead.
*/
func (c *Collector) Err() error {
	var merr *multierror.Error
	for _, d := range c.diags {
		if d.Severity == Warning {
			continue
		}
		merr = multierror.Append(merr, d)
	}
	return merr.ErrorOrNil()
}
