// Package executor replays an approved plan against the filesystem backend.
//
// Ordering is mandatory: every CreateDirectory runs before any MoveEntry,
// preserving the plan's relative order within each kind. Execution is
// strictly sequential and fail-fast; already-completed actions are never
// rolled back — partial completion is a visible outcome, not a defect to
// mask.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/caddan/ordna/internal/logging"
	"github.com/caddan/ordna/pkg/boundary"
	"github.com/caddan/ordna/pkg/domain"
	"github.com/caddan/ordna/pkg/observability"
	"github.com/caddan/ordna/pkg/ports"
)

// Executor dispatches plan actions one at a time through a ToolExecutor.
type Executor struct {
	root    string
	tools   ports.ToolExecutor
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures the Executor.
type Option func(*Executor)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics wires Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

// New creates an Executor bound to the session's resolved root.
func New(root string, tools ports.ToolExecutor, opts ...Option) *Executor {
	e := &Executor{
		root:   root,
		tools:  tools,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute replays the plan. The returned report enumerates the completed
// prefix, the first failure (if any), and the not-attempted suffix. Other
// actions are reported but never dispatched.
func (e *Executor) Execute(ctx context.Context, p domain.Plan) domain.ExecutionReport {
	// Creates first, then moves; original relative order within each kind.
	ordered := append(p.Creates(), p.Moves()...)

	report := domain.ExecutionReport{Others: p.Others()}

	for i, act := range ordered {
		if err := e.dispatch(ctx, act); err != nil {
			e.logger.Error("action failed", "action", act.String(), "err", err)
			e.metrics.ObserveAction(string(act.Kind), observability.StatusFailed)
			report.Failed = &domain.ActionFailure{Action: act, Reason: err.Error()}
			report.Skipped = ordered[i+1:]
			return report
		}
		e.logger.Info("action completed", "action", act.String())
		e.metrics.ObserveAction(string(act.Kind), observability.StatusOK)
		report.Completed = append(report.Completed, act)
	}
	return report
}

// dispatch validates the action's paths against the boundary and performs it.
// A containment violation aborts exactly like a tool failure.
func (e *Executor) dispatch(ctx context.Context, act domain.Action) error {
	switch act.Kind {
	case domain.KindCreateDirectory:
		if err := e.contain(act.Path); err != nil {
			return err
		}
		return e.tools.CreateDirectory(ctx, act.Path)

	case domain.KindMoveEntry:
		if err := e.contain(act.Source); err != nil {
			return err
		}
		if err := e.contain(act.Destination); err != nil {
			return err
		}
		return e.tools.MoveEntry(ctx, act.Source, act.Destination)

	default:
		return fmt.Errorf("action kind %q is not executable", act.Kind)
	}
}

// contain re-checks at execution time that the relative argument stays
// inside the session root, independent of any proposal-time validation.
func (e *Executor) contain(rel string) error {
	if rel == "" || filepath.IsAbs(rel) {
		return fmt.Errorf("%w: %q", domain.ErrOutsideBoundary, rel)
	}
	if !boundary.IsWithin(filepath.Join(e.root, rel), e.root) {
		return fmt.Errorf("%w: %q", domain.ErrOutsideBoundary, rel)
	}
	return nil
}
