package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/caddan/ordna/internal/logging"
	"github.com/caddan/ordna/pkg/domain"
	"github.com/caddan/ordna/pkg/executor"
	"github.com/caddan/ordna/pkg/observability"
	"github.com/caddan/ordna/pkg/plan"
	"github.com/caddan/ordna/pkg/ports"
)

// Phase is the review loop's state.
type Phase string

const (
	PhaseAwaitingProposal Phase = "awaiting_proposal"
	PhaseAwaitingApproval Phase = "awaiting_approval"
	PhaseExecuting        Phase = "executing"
	PhaseRejected         Phase = "rejected"
	PhaseDone             Phase = "done"
)

// Operator tokens. Anything else entered at the review prompt is feedback.
const (
	approveToken = "yes"
	rejectToken  = "no"
)

// DefaultCooldown is the pause taken after a rate-limited proposal before
// control returns to the operator.
const DefaultCooldown = 65 * time.Second

// Config wires the session's collaborators. Proposer, Tools, and IO are
// required; History and Metrics are optional.
type Config struct {
	ID              string
	Root            string
	OperatorContext string
	Proposer        ports.Proposer
	Tools           ports.ToolExecutor
	History         ports.HistoryStore
	IO              IOHandler
	Logger          *slog.Logger
	Metrics         *observability.Metrics
	Cooldown        time.Duration
}

// Session owns the state of one interactive run: the boundary root, the
// directory snapshot, the current plan, the last raw proposal, and the
// decision journal. It is discarded when the loop exits.
type Session struct {
	cfg  Config
	exec *executor.Executor

	mu           sync.RWMutex
	phase        Phase
	plan         domain.Plan
	lastProposal string
	snapshotText string
	feedback     string
}

// New validates the configuration and creates a Session.
func New(cfg Config) (*Session, error) {
	if cfg.Root == "" {
		return nil, errors.New("session: root is required")
	}
	if cfg.Proposer == nil || cfg.Tools == nil || cfg.IO == nil {
		return nil, errors.New("session: proposer, tools, and io are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	if cfg.ID == "" {
		cfg.ID = fmt.Sprintf("session-%d", time.Now().UnixNano())
	}

	return &Session{
		cfg: cfg,
		exec: executor.New(cfg.Root, cfg.Tools,
			executor.WithLogger(cfg.Logger),
			executor.WithMetrics(cfg.Metrics),
		),
		phase: PhaseAwaitingProposal,
	}, nil
}

// ID returns the session identifier used for journaling.
func (s *Session) ID() string { return s.cfg.ID }

// Phase returns the loop's current state.
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Plan returns the current plan by value.
func (s *Session) Plan() domain.Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan
}

// Snapshot is a read-only view of the session for introspection surfaces.
type Snapshot struct {
	ID      string `json:"id"`
	Root    string `json:"root"`
	Phase   Phase  `json:"phase"`
	Creates int    `json:"creates"`
	Moves   int    `json:"moves"`
	Others  int    `json:"others"`
}

// Snapshot captures the session state. Safe to call concurrently with Run.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		ID:      s.cfg.ID,
		Root:    s.cfg.Root,
		Phase:   s.phase,
		Creates: len(s.plan.Creates()),
		Moves:   len(s.plan.Moves()),
		Others:  len(s.plan.Others()),
	}
}

// Run drives the loop to a terminal state. It returns the execution report
// after an approved plan ran (fully or partially), domain.ErrCancelled when
// the operator rejected, or the underlying error on an unrecoverable
// failure. A nil report with a nil error means there was nothing to
// organize.
func (s *Session) Run(ctx context.Context) (*domain.ExecutionReport, error) {
	snapshot, err := s.cfg.Tools.ListDirectory(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("initial listing: %w", err)
	}
	s.mu.Lock()
	s.snapshotText = snapshot
	s.mu.Unlock()

	if strings.TrimSpace(snapshot) == "" {
		s.output("The directory appears empty. Nothing to organize.")
		s.setPhase(PhaseDone)
		return nil, nil
	}
	s.output("## Initial structure of `" + s.cfg.Root + "`\n\n" + snapshot)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch s.Phase() {
		case PhaseAwaitingProposal:
			if err := s.propose(ctx); err != nil {
				if errors.Is(err, domain.ErrRateLimited) {
					if perr := s.pause(ctx); perr != nil {
						return nil, perr
					}
					continue
				}
				return nil, fmt.Errorf("proposer: %w", err)
			}

		case PhaseAwaitingApproval:
			if err := s.review(ctx); err != nil {
				return nil, err
			}

		case PhaseExecuting:
			s.output("Executing the plan...")
			report := s.exec.Execute(ctx, s.Plan())
			s.journal(ctx, domain.DecisionExecution, executionDetail(report))
			s.output(report.Summary())
			s.setPhase(PhaseDone)
			return &report, nil

		case PhaseRejected:
			return nil, domain.ErrCancelled

		case PhaseDone:
			return nil, nil
		}
	}
}

// propose requests a proposal, extracts a plan from it, and moves to review.
// An empty extraction still reaches review so the operator can steer with
// feedback.
func (s *Session) propose(ctx context.Context) error {
	s.mu.RLock()
	feedback := s.feedback
	snapshot := s.snapshotText
	s.mu.RUnlock()

	var prompt string
	if feedback != "" {
		prompt = revisionPrompt(feedback, snapshot)
		s.output("Asking for a revised organization plan...")
	} else {
		prompt = initialPrompt(s.cfg.Root, snapshot, s.cfg.OperatorContext)
		s.output("Asking for an organization plan (this may take a while for large directories)...")
	}

	text, err := s.cfg.Proposer.Propose(ctx, prompt)
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			s.cfg.Metrics.ObserveProposal(observability.OutcomeRateLimited)
		} else {
			s.cfg.Metrics.ObserveProposal(observability.OutcomeError)
		}
		return err
	}

	extracted := plan.Extract(text)

	s.mu.Lock()
	s.lastProposal = text
	s.plan = extracted
	s.feedback = ""
	s.mu.Unlock()

	if extracted.Empty() {
		s.cfg.Metrics.ObserveProposal(observability.OutcomeEmpty)
	} else {
		s.cfg.Metrics.ObserveProposal(observability.OutcomeOK)
	}
	s.cfg.Metrics.ObservePlanSize(len(extracted.Actions))
	s.cfg.Logger.Info("proposal extracted",
		"actions", len(extracted.Actions),
		"creates", len(extracted.Creates()),
		"moves", len(extracted.Moves()),
	)
	s.journal(ctx, domain.DecisionProposal,
		fmt.Sprintf("%d actions extracted", len(extracted.Actions)))

	s.setPhase(PhaseAwaitingApproval)
	return nil
}

// review renders the grouped plan and classifies one line of operator input
// as approve, reject, or revision feedback.
func (s *Session) review(ctx context.Context) error {
	current := s.Plan()
	s.output(current.Summary())
	s.output("Review the plan. Type 'yes' to execute, 'no' to exit, or provide feedback to revise the plan.")

	input, err := s.cfg.IO.Input(ctx)
	if err != nil {
		return fmt.Errorf("operator input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case approveToken:
		if !current.Actionable() {
			s.output("No valid plan to execute. Provide feedback or type 'no'.")
			return nil
		}
		s.journal(ctx, domain.DecisionApprove, "")
		s.setPhase(PhaseExecuting)

	case rejectToken:
		s.journal(ctx, domain.DecisionReject, "")
		s.setPhase(PhaseRejected)

	case "":
		// A bare newline is neither a verdict nor feedback; re-prompt.

	default:
		s.journal(ctx, domain.DecisionFeedback, input)
		s.mu.Lock()
		s.feedback = input
		s.plan = domain.Plan{}
		s.mu.Unlock()
		s.setPhase(PhaseAwaitingProposal)
	}
	return nil
}

// pause handles a rate-limited proposal: one cooldown sleep, then control
// returns to the operator. The failed call is never retried automatically.
func (s *Session) pause(ctx context.Context) error {
	s.cfg.Metrics.ObservePause()
	s.journal(ctx, domain.DecisionRateLimit, s.cfg.Cooldown.String())
	s.output(fmt.Sprintf("Rate limit hit. Pausing for %s...", s.cfg.Cooldown))

	timer := time.NewTimer(s.cfg.Cooldown)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	s.output("Pause complete. Press Enter to request the plan again, or type 'no' to exit.")
	input, err := s.cfg.IO.Input(ctx)
	if err != nil {
		return fmt.Errorf("operator input: %w", err)
	}
	if strings.ToLower(strings.TrimSpace(input)) == rejectToken {
		s.setPhase(PhaseRejected)
	}
	return nil
}

func (s *Session) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

func (s *Session) output(content string) {
	if err := s.cfg.IO.Output(content); err != nil {
		s.cfg.Logger.Warn("output failed", "err", err)
	}
}

func (s *Session) journal(ctx context.Context, kind domain.DecisionKind, detail string) {
	if s.cfg.History == nil {
		return
	}
	d := domain.Decision{At: time.Now().UTC(), Kind: kind, Detail: detail}
	if err := s.cfg.History.Append(ctx, s.cfg.ID, d); err != nil {
		s.cfg.Logger.Warn("journal append failed", "err", err)
	}
}

func executionDetail(r domain.ExecutionReport) string {
	if r.Succeeded() {
		return fmt.Sprintf("%d actions completed", len(r.Completed))
	}
	return fmt.Sprintf("%d completed, failed at %q, %d not attempted",
		len(r.Completed), r.Failed.Action.String(), len(r.Skipped))
}
