// Package cli wires the configuration, adapters, and session into the
// interactive command.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/caddan/ordna"
	"github.com/caddan/ordna/internal/config"
	"github.com/caddan/ordna/internal/presentation/tui"
	ordnahttp "github.com/caddan/ordna/pkg/adapters/http"
	"github.com/caddan/ordna/pkg/adapters/mcp"
	"github.com/caddan/ordna/pkg/adapters/memory"
	"github.com/caddan/ordna/pkg/adapters/ollama"
	"github.com/caddan/ordna/pkg/adapters/redis"
	"github.com/caddan/ordna/pkg/boundary"
	"github.com/caddan/ordna/pkg/domain"
	"github.com/caddan/ordna/pkg/observability"
	"github.com/caddan/ordna/pkg/ports"
	"github.com/caddan/ordna/pkg/session"
)

// RunOptions carries the command-line overrides for one session.
type RunOptions struct {
	ConfigPath string
	Target     string
	Context    string
	Listen     string
	Debug      bool
}

// RunSession executes one interactive organization session end to end:
// configuration, backends, the review loop, and the completion message.
func RunSession(opts RunOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Target != "" {
		cfg.Target = opts.Target
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}
	if opts.Debug {
		cfg.Debug = true
	}

	logger := createLogger(cfg.Debug)
	interactive := tui.IsTerminal()
	if interactive {
		tui.PrintBanner(ordna.Version)
	}

	root, err := boundary.Resolve(cfg.Root)
	if err != nil {
		return fmt.Errorf("invalid root: %w", err)
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	// Fail fast when the model server is down; nothing else is worth
	// setting up without it.
	if err := ollama.New(cfg.BaseURL).CheckRunning(sigCtx); err != nil {
		return fmt.Errorf("ollama: %w (is `ollama serve` running?)", err)
	}

	reader := bufio.NewReader(os.Stdin)
	target, err := selectTarget(sigCtx, reader, os.Stdout, root, cfg.Target, interactive)
	if err != nil {
		return err
	}

	operatorContext := opts.Context
	if operatorContext == "" && interactive {
		operatorContext, err = askContext(sigCtx, reader, os.Stdout)
		if err != nil {
			return err
		}
	}

	tools, err := mcp.New(sigCtx, target,
		mcp.WithCommand(cfg.Backend.Command, cfg.Backend.Args...),
		mcp.WithLogger(logger),
	)
	if err != nil {
		if errors.Is(err, domain.ErrNoBackend) {
			return fmt.Errorf("filesystem backend unavailable: %w (Node.js with npx is required)", err)
		}
		return err
	}
	defer tools.Close()

	history := newHistoryStore(cfg)
	metrics := observability.New()

	proposer := ollama.New(cfg.BaseURL,
		ollama.WithModel(cfg.Model),
		ollama.WithSystem(session.Instructions(target)),
		ollama.WithLogger(logger),
	)

	handler := session.NewTextHandler(reader, os.Stdout)
	if interactive {
		handler.Renderer = tui.NewRenderer()
	}

	org, err := ordna.New(target,
		ordna.WithProposer(proposer),
		ordna.WithToolExecutor(tools),
		ordna.WithHistory(history),
		ordna.WithIOHandler(handler),
		ordna.WithLogger(logger),
		ordna.WithMetrics(metrics),
		ordna.WithCooldown(cfg.Cooldown),
		ordna.WithOperatorContext(operatorContext),
	)
	if err != nil {
		return err
	}

	if cfg.Listen != "" {
		stop := serveSidecar(cfg.Listen, org, history, metrics, logger)
		defer stop()
	}

	logger.Info("session starting", "session_id", org.Session().ID(), "target", target, "model", cfg.Model)

	report, runErr := org.Run(sigCtx)
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}

	switch {
	case errors.Is(runErr, domain.ErrCancelled):
		printSystemMessage("Plan rejected. No changes were made.")
		return nil

	case isInterrupted(runErr):
		if sigCtx.Signal() == os.Interrupt {
			fmt.Println("[CTRL+C]")
		}
		printSystemMessage("Interrupted. No further changes were made.")
		return nil

	case runErr != nil:
		return runErr
	}

	if report != nil && !report.Succeeded() {
		return fmt.Errorf("execution stopped after a failed action: %s", report.Failed.Reason)
	}
	return nil
}

// askContext reads the optional free-text organization context.
func askContext(ctx context.Context, in *bufio.Reader, out io.Writer) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(out, "Any context for how things should be organized? (Enter to skip)\n> ")
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// newHistoryStore selects the journal backend: Redis when configured, the
// in-process store otherwise.
func newHistoryStore(cfg config.Config) ports.HistoryStore {
	if cfg.Redis.Addr == "" {
		return memory.NewStore()
	}

	opts := []redis.Option{}
	if cfg.Redis.Prefix != "" {
		opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
	}
	if cfg.Redis.TTL > 0 {
		opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
	}
	return redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
}

// serveSidecar starts the observability HTTP server and returns its shutdown
// function. Sidecar failures are logged, never fatal to the session.
func serveSidecar(listen string, org *ordna.Organizer, history ports.HistoryStore, metrics *observability.Metrics, logger *slog.Logger) func() {
	srv := &http.Server{
		Addr:              listen,
		Handler:           ordnahttp.NewHandler(org.Session().Snapshot, history, metrics.Registry(), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("sidecar listening", "addr", listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("sidecar stopped", "err", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
