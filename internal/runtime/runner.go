// Package runtime abstracts the external process runtime (the docker CLI)
// so that orchestration logic can be exercised against a recorded fake.
package runtime

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Result is the captured outcome of one finished process.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited with status zero.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// StdoutText returns stdout decoded as text.
func (r *Result) StdoutText() string {
	if r == nil {
		return ""
	}
	return string(r.Stdout)
}

// StderrText returns stderr decoded as text.
func (r *Result) StderrText() string {
	if r == nil {
		return ""
	}
	return string(r.Stderr)
}

// Runner executes one external command to completion.
// A non-zero exit is reported through Result.ExitCode with a nil error;
// the error is reserved for processes that could not be started at all.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct {
	// WorkDir is applied to every command when non-empty.
	WorkDir string
}

// NewRunner creates a new ExecRunner.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args and captures stdout and stderr separately.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.WorkDir != "" {
		cmd.Dir = r.WorkDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return result, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return nil, err
}

// CommandLine renders a command for logs.
func CommandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// Verify ExecRunner implements Runner at compile time.
var _ Runner = (*ExecRunner)(nil)
