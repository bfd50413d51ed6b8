package batch

import "fmt"

// PanicError wraps a panic raised inside a step.
type PanicError struct {
	Step  string
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("step %s panicked: %v", e.Step, e.Value)
}
