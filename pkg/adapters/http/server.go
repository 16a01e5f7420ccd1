// Package http exposes a small observability sidecar for a running
// session: health, Prometheus metrics, and a JSON snapshot of the review
// loop with its decision journal. It never mutates session state.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/caddan/ordna/internal/logging"
	"github.com/caddan/ordna/pkg/domain"
	"github.com/caddan/ordna/pkg/ports"
	"github.com/caddan/ordna/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves read-only introspection for one session.
type Server struct {
	snapshot func() session.Snapshot
	history  ports.HistoryStore
	registry *prometheus.Registry
	logger   *slog.Logger
}

// sessionView is the JSON shape of GET /session.
type sessionView struct {
	session.Snapshot
	Journal []domain.Decision `json:"journal,omitempty"`
}

// NewHandler builds the sidecar routes. history and registry may be nil;
// the corresponding data is simply omitted.
func NewHandler(snapshot func() session.Snapshot, history ports.HistoryStore, registry *prometheus.Registry, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		snapshot: snapshot,
		history:  history,
		registry: registry,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/session", s.handleSession)
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	view := sessionView{Snapshot: s.snapshot()}

	if s.history != nil {
		journal, err := s.history.List(r.Context(), view.ID)
		if err != nil {
			s.logger.Warn("journal read failed", "err", err)
		} else {
			view.Journal = journal
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		s.logger.Warn("snapshot encode failed", "err", err)
	}
}
