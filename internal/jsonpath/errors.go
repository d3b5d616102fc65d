package jsonpath

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax indicates a malformed query. Every parse failure matches it.
	ErrSyntax = errors.New("jsonpath: syntax error")

	// ErrNodeLimit indicates evaluation touched more nodes than Options.MaxNodesVisited.
	ErrNodeLimit = errors.New("jsonpath: visited node limit exceeded")

	// ErrDepthLimit indicates evaluation descended deeper than Options.MaxDepth.
	ErrDepthLimit = errors.New("jsonpath: depth limit exceeded")

	// ErrUnsafeRegex indicates match or search refused a pattern or input under Options.RejectUnsafeRegex.
	ErrUnsafeRegex = errors.New("jsonpath: unsafe regular expression refused")
)

// SyntaxError reports where parsing failed.
type SyntaxError struct {
	Offset int // byte offset into the query text
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", ErrSyntax, e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxError(offset int, format string, args ...any) error {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// LimitError reports a safety limit that cut evaluation short.
// It matches ErrNodeLimit, ErrDepthLimit or ErrUnsafeRegex via errors.Is.
type LimitError struct {
	Limit error  // one of the limit sentinels
	Max   int    // configured cap
	Path  string // normalized path of the node being processed
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%v (max %d) at %s", e.Limit, e.Max, e.Path)
}

func (e *LimitError) Unwrap() error {
	return e.Limit
}
