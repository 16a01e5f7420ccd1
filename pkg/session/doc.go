/*
Package session implements the interactive propose/review/revise/approve
loop that gates every filesystem change behind an explicit operator
decision.

The loop is a small state machine:

	AwaitingProposal -> AwaitingApproval -> {Executing | Rejected}
	AwaitingApproval -> AwaitingProposal   (operator feedback, plan discarded)

Operator input that is neither the approval token ("yes") nor the rejection
token ("no") is treated as revision feedback. A rate-limited proposer pauses
for a fixed cooldown and then hands control back to the operator; the call
is never retried silently.
*/
package session
