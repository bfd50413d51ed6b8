// Package runtimetest provides a fake process runtime that records every
// invocation and answers with canned results.
package runtimetest

import (
	"context"
	"strings"
	"sync"

	"simpleclaw-keeper/internal/runtime"
)

// Invocation is one recorded call.
type Invocation struct {
	Name string
	Args []string
}

// Line joins the arguments with single spaces.
func (i Invocation) Line() string {
	return strings.Join(i.Args, " ")
}

type response struct {
	match  []string
	result *runtime.Result
	err    error
}

// Recorder is a runtime.Runner that never starts a process.
// Calls without a matching response succeed with empty output.
type Recorder struct {
	mu          sync.Mutex
	calls       []Invocation
	responses   []response
	StartFailed error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// On registers a result for every call whose arguments contain the
// contiguous sequence match.
// Later registrations take precedence over earlier ones.
func (r *Recorder) On(result *runtime.Result, match ...string) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, response{match: match, result: result})
	return r
}

// Fail registers a non-zero exit with the given stderr for calls matching match.
func (r *Recorder) Fail(stderr string, match ...string) *Recorder {
	return r.On(&runtime.Result{Stderr: []byte(stderr), ExitCode: 1}, match...)
}

// Unstartable makes calls matching match return err as if the binary were missing.
func (r *Recorder) Unstartable(err error, match ...string) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, response{match: match, err: err})
	return r
}

func (r *Recorder) Run(ctx context.Context, name string, args ...string) (*runtime.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Invocation{Name: name, Args: append([]string(nil), args...)})
	if r.StartFailed != nil {
		return nil, r.StartFailed
	}
	for i := len(r.responses) - 1; i >= 0; i-- {
		resp := r.responses[i]
		if !containsSeq(args, resp.match) {
			continue
		}
		if resp.err != nil {
			return nil, resp.err
		}
		copied := *resp.result
		return &copied, nil
	}
	return &runtime.Result{}, nil
}

// Calls returns a snapshot of recorded invocations in order.
func (r *Recorder) Calls() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Invocation(nil), r.calls...)
}

// Lines returns the argument line of every recorded invocation.
func (r *Recorder) Lines() []string {
	var lines []string
	for _, c := range r.Calls() {
		lines = append(lines, c.Line())
	}
	return lines
}

func containsSeq(args, seq []string) bool {
	if len(seq) == 0 {
		return true
	}
	for start := 0; start+len(seq) <= len(args); start++ {
		matched := true
		for i, s := range seq {
			if args[start+i] != s {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

var _ runtime.Runner = (*Recorder)(nil)
