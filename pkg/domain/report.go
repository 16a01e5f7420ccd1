package domain

import (
	"fmt"
	"strings"
)

// ActionFailure captures the first action that failed during execution.
type ActionFailure struct {
	Action Action `json:"action"`
	Reason string `json:"reason"`
}

// ExecutionReport records the outcome of replaying one approved plan.
// Completed is exactly the successful prefix in dispatch order; Skipped is
// everything after the failing action. Others were never dispatched at all.
type ExecutionReport struct {
	Completed []Action       `json:"completed"`
	Failed    *ActionFailure `json:"failed,omitempty"`
	Skipped   []Action       `json:"skipped,omitempty"`
	Others    []Action       `json:"others,omitempty"`
}

// Succeeded reports whether every dispatched action completed.
func (r ExecutionReport) Succeeded() bool {
	return r.Failed == nil
}

// Summary renders the report for operator display.
func (r ExecutionReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Execution finished: %d completed", len(r.Completed))
	if r.Failed != nil {
		fmt.Fprintf(&b, ", 1 failed, %d not attempted", len(r.Skipped))
	}
	b.WriteString(".\n")

	for _, a := range r.Completed {
		b.WriteString("  ok      " + a.String() + "\n")
	}
	if r.Failed != nil {
		b.WriteString("  FAILED  " + r.Failed.Action.String() + ": " + r.Failed.Reason + "\n")
		for _, a := range r.Skipped {
			b.WriteString("  skipped " + a.String() + "\n")
		}
	}
	for _, a := range r.Others {
		b.WriteString("  ignored " + a.String() + "\n")
	}
	return b.String()
}
