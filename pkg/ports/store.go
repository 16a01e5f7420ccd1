package ports

import (
	"context"

	"github.com/caddan/ordna/pkg/domain"
)

// HistoryStore persists the decision journal of a session: proposals,
// operator verdicts, rate-limit pauses, and execution outcomes.
//
// Implementations must be safe for concurrent use; the observability sidecar
// reads the journal while the review loop appends to it.
type HistoryStore interface {
	// Append adds a decision to the session's journal.
	Append(ctx context.Context, sessionID string, d domain.Decision) error

	// List returns the journal in append order. An unknown session yields an
	// empty journal, not an error.
	List(ctx context.Context, sessionID string) ([]domain.Decision, error)

	// Delete removes the journal for a session.
	Delete(ctx context.Context, sessionID string) error
}
