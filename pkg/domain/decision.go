package domain

import "time"

// DecisionKind labels an entry in the session audit journal.
type DecisionKind string

const (
	DecisionProposal  DecisionKind = "proposal"
	DecisionApprove   DecisionKind = "approve"
	DecisionReject    DecisionKind = "reject"
	DecisionFeedback  DecisionKind = "feedback"
	DecisionRateLimit DecisionKind = "ratelimit"
	DecisionExecution DecisionKind = "execution"
)

// Decision is one journaled event of the review loop: a proposal arriving,
// an operator verdict, a rate-limit pause, or an execution outcome.
type Decision struct {
	At     time.Time    `json:"at"`
	Kind   DecisionKind `json:"kind"`
	Detail string       `json:"detail,omitempty"`
}
