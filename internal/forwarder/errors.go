package forwarder

import "fmt"

// ForwardError is the terminal failure of a forward: either the retry budget
// was exhausted on transient failures, or the agent answered with a permanent
// client error. It carries the last observed status for diagnostics.
type ForwardError struct {
	StatusCode int
	Attempts   int
	Permanent  bool
	Err        error
}

func (e *ForwardError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("agent forward failed after %d attempt(s) with status %d: %v", e.Attempts, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("agent forward failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ForwardError) Unwrap() error {
	return e.Err
}
