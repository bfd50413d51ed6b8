// Package batch runs a list of independent best-effort steps.
//
// Every step is attempted in order regardless of earlier failures and the
// batch itself never fails; per-step outcomes are returned for inspection.
package batch

import (
	"context"
)

// Step is one independent unit of work.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Outcome records what happened to one step.
type Outcome struct {
	Name string
	Err  error
}

// OK reports whether the step succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Report is the ordered list of outcomes of one batch.
type Report struct {
	Outcomes []Outcome
}

// Failed returns the outcomes whose step returned an error.
func (r Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Merge appends the outcomes of other to r.
func (r Report) Merge(other Report) Report {
	r.Outcomes = append(r.Outcomes, other.Outcomes...)
	return r
}

/**
 * Run every step once, in order
 * @param {context.Context} ctx - Passed to each step unchanged
 * @param {[]Step} steps - Steps to attempt
 * @param {func(Outcome)} observe - Optional callback after each step, may be nil
 * @returns {Report} Outcome of every step, in the order given
 * @description
 * - A failing step never stops later steps
 * - A panicking step is recorded as failed
 */
func Run(ctx context.Context, steps []Step, observe func(Outcome)) Report {
	report := Report{Outcomes: make([]Outcome, 0, len(steps))}
	for _, step := range steps {
		outcome := Outcome{Name: step.Name, Err: runStep(ctx, step)}
		report.Outcomes = append(report.Outcomes, outcome)
		if observe != nil {
			observe(outcome)
		}
	}
	return report
}

func runStep(ctx context.Context, step Step) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Step: step.Name, Value: r}
		}
	}()
	return step.Run(ctx)
}
