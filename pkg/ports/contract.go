package ports

import (
	"context"
	"testing"
	"time"

	"github.com/caddan/ordna/pkg/domain"
)

// RunHistoryStoreContract verifies that a HistoryStore implementation
// satisfies the port's semantics. Adapter test suites call this so every
// backend is held to the same behavior.
func RunHistoryStoreContract(t *testing.T, store HistoryStore) {
	t.Helper()
	ctx := context.Background()
	sessionID := "contract-session"

	// 1. Unknown session lists empty, no error.
	got, err := store.List(ctx, sessionID)
	if err != nil {
		t.Fatalf("List on unknown session returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("List on unknown session returned %d entries, want 0", len(got))
	}

	// 2. Append preserves order.
	decisions := []domain.Decision{
		{At: time.Now().UTC().Truncate(time.Second), Kind: domain.DecisionProposal, Detail: "plan v1"},
		{At: time.Now().UTC().Truncate(time.Second), Kind: domain.DecisionFeedback, Detail: "group by year"},
		{At: time.Now().UTC().Truncate(time.Second), Kind: domain.DecisionApprove},
	}
	for _, d := range decisions {
		if err := store.Append(ctx, sessionID, d); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err = store.List(ctx, sessionID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != len(decisions) {
		t.Fatalf("List returned %d entries, want %d", len(got), len(decisions))
	}
	for i := range decisions {
		if got[i].Kind != decisions[i].Kind || got[i].Detail != decisions[i].Detail {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], decisions[i])
		}
	}

	// 3. Journals are isolated per session.
	other, err := store.List(ctx, "another-session")
	if err != nil {
		t.Fatalf("List on other session failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("other session journal leaked %d entries", len(other))
	}

	// 4. Delete clears the journal.
	if err := store.Delete(ctx, sessionID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err = store.List(ctx, sessionID)
	if err != nil {
		t.Fatalf("List after delete failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("journal not empty after delete: %d entries", len(got))
	}
}
