package ordna

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caddan/ordna/internal/logging"
	"github.com/caddan/ordna/pkg/boundary"
	"github.com/caddan/ordna/pkg/domain"
	"github.com/caddan/ordna/pkg/observability"
	"github.com/caddan/ordna/pkg/ports"
	"github.com/caddan/ordna/pkg/session"
)

// Version of the library and CLI.
const Version = "0.1.0"

// Organizer is the high-level entry point. It resolves the boundary once,
// wires the session, and drives it to a terminal state.
type Organizer struct {
	root string
	sess *session.Session
}

// Option defines a functional option for configuring the Organizer.
type Option func(*session.Config)

// WithProposer injects the proposal provider. Required.
func WithProposer(p ports.Proposer) Option {
	return func(c *session.Config) {
		c.Proposer = p
	}
}

// WithToolExecutor injects the filesystem backend. Required.
func WithToolExecutor(t ports.ToolExecutor) Option {
	return func(c *session.Config) {
		c.Tools = t
	}
}

// WithHistory enables the decision journal.
func WithHistory(h ports.HistoryStore) Option {
	return func(c *session.Config) {
		c.History = h
	}
}

// WithIOHandler sets the operator interface (default: stdin/stdout text).
func WithIOHandler(h session.IOHandler) Option {
	return func(c *session.Config) {
		c.IO = h
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *session.Config) {
		c.Logger = logger
	}
}

// WithMetrics wires Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *session.Config) {
		c.Metrics = m
	}
}

// WithCooldown overrides the rate-limit pause duration.
func WithCooldown(d time.Duration) Option {
	return func(c *session.Config) {
		c.Cooldown = d
	}
}

// WithOperatorContext records the free-text organization context, read once
// at session start.
func WithOperatorContext(text string) Option {
	return func(c *session.Config) {
		c.OperatorContext = text
	}
}

// WithSessionID fixes the journal session id (default: time-derived).
func WithSessionID(id string) Option {
	return func(c *session.Config) {
		c.ID = id
	}
}

// New resolves and validates the working root, then builds the session.
// The root must exist and be a directory; it becomes the boundary no action
// may escape.
func New(root string, opts ...Option) (*Organizer, error) {
	resolved, err := boundary.Resolve(root)
	if err != nil {
		return nil, fmt.Errorf("invalid root: %w", err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("root %q: %w", resolved, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", resolved)
	}

	cfg := session.Config{Root: resolved}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.IO == nil {
		cfg.IO = session.NewTextHandler(nil, nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	cfg.Logger = cfg.Logger.With("root", resolved)

	sess, err := session.New(cfg)
	if err != nil {
		return nil, err
	}

	return &Organizer{root: resolved, sess: sess}, nil
}

// Root returns the resolved boundary path.
func (o *Organizer) Root() string {
	return o.root
}

// Session exposes the underlying session for introspection surfaces.
func (o *Organizer) Session() *session.Session {
	return o.sess
}

// Run drives the review loop to completion. See session.Session.Run for the
// return contract.
func (o *Organizer) Run(ctx context.Context) (*domain.ExecutionReport, error) {
	return o.sess.Run(ctx)
}
