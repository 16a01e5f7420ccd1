package domain

import "errors"

// ErrRateLimited is returned by a Proposer when the provider signals
// transient backpressure. The session pauses and returns control to the
// operator instead of retrying.
var ErrRateLimited = errors.New("proposer rate limited")

// ErrOutsideBoundary is returned when a path argument resolves outside the
// session's allowed root.
var ErrOutsideBoundary = errors.New("path outside allowed boundary")

// ErrCancelled is returned when the operator rejects the plan. No
// filesystem changes were made.
var ErrCancelled = errors.New("cancelled by operator")

// ErrNoBackend is returned when the filesystem tool backend cannot be
// started (for example, the launcher binary is missing from PATH).
var ErrNoBackend = errors.New("filesystem tool backend unavailable")
