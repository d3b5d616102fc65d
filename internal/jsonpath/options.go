package jsonpath

import "log/slog"

// Options bounds evaluation. Zero integer caps mean unlimited.
type Options struct {
	// ThrowOnError makes Evaluate return a *LimitError when a cap trips
	// instead of a truncated Result.
	ThrowOnError bool

	// MaxNodesVisited caps the nodes touched by child and descendant expansion,
	// filter sub-queries included. A descendant segment touches each node once
	// to expand it and again for every selector that selects from its parent,
	// so $..* over n nodes counts 2n.
	MaxNodesVisited int

	// MaxDepth caps a node's distance from its query root plus filter nesting.
	MaxDepth int

	// MaxRegexPatternLength and MaxRegexInputLength are enforced, in bytes,
	// only when RejectUnsafeRegex is set.
	MaxRegexPatternLength int
	MaxRegexInputLength   int

	// RejectUnsafeRegex refuses patterns over the length cap or with nested
	// unbounded repetition, and inputs over the input cap. A refusal makes
	// match and search return false.
	RejectUnsafeRegex bool

	// Regex compiles match and search patterns. Nil selects the RE2 engine
	// with I-Regexp translation.
	Regex RegexEngine

	// Logger receives a debug record when a cap trips. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns bounded limits suitable for untrusted queries.
func DefaultOptions() Options {
	return Options{
		MaxNodesVisited:       1_000_000,
		MaxDepth:              1000,
		MaxRegexPatternLength: 1000,
		MaxRegexInputLength:   100_000,
		RejectUnsafeRegex:     true,
	}
}
