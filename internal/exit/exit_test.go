package exit

import (
	"bytes"
	"os"
	"testing"
)

func TestResults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   *Result
		wantCode int
		wantMsg  string
		stdout   bool
	}{
		{name: "success", result: Success("done"), wantCode: CodeMatch, wantMsg: "done", stdout: true},
		{name: "no_match", result: NoMatch(), wantCode: CodeNoMatch},
		{name: "truncated", result: Truncated("limit"), wantCode: CodeTruncated, wantMsg: "limit"},
		{name: "error", result: Error("failed"), wantCode: CodeError, wantMsg: "failed"},
		{name: "errorf", result: Errorf("failed: %s (%d)", "timeout", 3), wantCode: CodeError, wantMsg: "failed: timeout (3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.result.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", tt.result.ExitCode, tt.wantCode)
			}
			if tt.result.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", tt.result.Message, tt.wantMsg)
			}
			wantOutput := os.Stderr
			if tt.stdout {
				wantOutput = os.Stdout
			}
			if tt.result.Output != wantOutput {
				t.Errorf("Output = %v, want %v", tt.result.Output, wantOutput)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	result := &Result{Output: &buf, Message: "test output"}
	result.Print()

	if buf.String() != "test output" {
		t.Errorf("Print() output = %q, want %q", buf.String(), "test output")
	}

	buf.Reset()
	(&Result{Output: &buf}).Print()
	if buf.Len() != 0 {
		t.Errorf("Print() of empty message wrote %q", buf.String())
	}
}
