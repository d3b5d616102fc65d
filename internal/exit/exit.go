package exit

import (
	"fmt"
	"io"
	"os"
)

// Process exit codes.
const (
	CodeMatch     = 0
	CodeNoMatch   = 1
	CodeError     = 2
	CodeTruncated = 3
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

func (r *Result) Print() {
	if r.Message == "" {
		return
	}
	fmt.Fprint(r.Output, r.Message)
}

func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeMatch,
		Message:  message,
	}
}

// NoMatch reports a query that selected nothing in any document.
func NoMatch() *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeNoMatch,
	}
}

// Truncated reports evaluation stopped by a resource limit.
func Truncated(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeTruncated,
		Message:  message,
	}
}

func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeError,
		Message:  message,
	}
}

func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}
