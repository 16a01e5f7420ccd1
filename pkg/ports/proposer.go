package ports

import "context"

// Proposer produces natural-language proposal text for a prompt.
//
// There is no format contract on the returned text beyond it possibly
// embedding a plan marker and tool-invocation lines; the plan package is
// responsible for tolerant extraction. A transient backpressure failure is
// signalled by an error wrapping domain.ErrRateLimited; any other error is a
// non-transient provider failure.
type Proposer interface {
	Propose(ctx context.Context, prompt string) (string, error)
}
