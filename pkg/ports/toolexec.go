package ports

import "context"

// ToolExecutor performs one concrete filesystem action against the working
// directory. All paths are relative to the working root; the controller
// validates containment before every call, and implementations are expected
// to enforce their own sandbox as well.
//
// Errors are opaque reason strings: the controller does not interpret them
// beyond "succeeded" vs "failed".
type ToolExecutor interface {
	// ListDirectory returns a textual listing of the given relative path.
	// Used once per session for the initial snapshot.
	ListDirectory(ctx context.Context, path string) (string, error)

	// CreateDirectory creates a directory at a relative path.
	CreateDirectory(ctx context.Context, path string) error

	// MoveEntry moves a file or folder from source to destination.
	MoveEntry(ctx context.Context, source, destination string) error

	// Close releases the backend (e.g. terminates a spawned server process).
	Close() error
}
