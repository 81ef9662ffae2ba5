/*
 * Ferra
 *
 * Copyright 2026 The Ferra Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

/*
RecoveryMode selects how aggressively a sub-parser continues after an
error: conservative stops a sub-parser on its first error, aggressive
continues within the same sub-parser when possible.
*/
type RecoveryMode int

const (
	// RecoveryAggressive continues parsing past most errors within the
	// same sub-parser by synchronizing and resuming. This is the default:
	// multi-error collection is on unless a caller opts out.
	RecoveryAggressive RecoveryMode = iota
	// RecoveryConservative stops the current sub-parser at its first
	// error and returns a placeholder node immediately, letting the
	// caller's own synchronization point decide what happens next.
	RecoveryConservative
)

/*
Config carries the session-level knobs: maximum error count, recovery
aggressiveness, and the recursion-depth ceiling. A small struct of named
options built with functional options - a session is created fresh per
parse, so there is no process-wide singleton to mutate.
*/
type Config struct {
	MaxErrors    int
	RecoveryMode RecoveryMode
	MaxDepth     int
}

/*
DefaultMaxErrors is the default ceiling on reportable diagnostics before a
Collector starts suppressing further ones.
*/
const DefaultMaxErrors = 200

/*
DefaultMaxDepth bounds recursive-descent nesting (expressions, blocks,
patterns, types). Inputs nested beyond the ceiling get a diagnostic rather
than a crashed session; 1200 comfortably admits thousand-deep nesting.
*/
const DefaultMaxDepth = 1200

/*
Option configures a Config.
*/
type Option func(*Config)

/*
WithMaxErrors overrides the maximum reportable-diagnostic count. A
non-positive value means unlimited.
*/
func WithMaxErrors(n int) Option {
	return func(c *Config) { c.MaxErrors = n }
}

/*
WithRecoveryMode overrides the recovery aggressiveness.
*/
func WithRecoveryMode(m RecoveryMode) Option {
	return func(c *Config) { c.RecoveryMode = m }
}

/*
WithMaxDepth overrides the recursion depth ceiling.
*/
func WithMaxDepth(n int) Option {
	return func(c *Config) { c.MaxDepth = n }
}

/*
NewConfig builds a Config from defaults plus the given Options.
*/
func NewConfig(opts ...Option) *Config {
	c := &Config{
		MaxErrors:    DefaultMaxErrors,
		RecoveryMode: RecoveryAggressive,
		MaxDepth:     DefaultMaxDepth,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}
