package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Proposal outcome labels.
const (
	OutcomeOK          = "ok"
	OutcomeEmpty       = "empty"
	OutcomeRateLimited = "rate_limited"
	OutcomeError       = "error"
)

// Action status labels.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Metrics holds the lifecycle collectors. A nil *Metrics is valid and all
// observe methods become no-ops, so components never need to branch on
// whether instrumentation is wired.
type Metrics struct {
	registry *prometheus.Registry

	proposals *prometheus.CounterVec
	actions   *prometheus.CounterVec
	pauses    prometheus.Counter
	planSize  prometheus.Histogram
}

// New creates the collectors on a fresh private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		proposals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ordna",
			Name:      "proposals_total",
			Help:      "Proposal attempts by outcome.",
		}, []string{"outcome"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ordna",
			Name:      "actions_total",
			Help:      "Dispatched plan actions by kind and status.",
		}, []string{"kind", "status"}),
		pauses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ordna",
			Name:      "rate_limit_pauses_total",
			Help:      "Cooldown pauses taken after a rate-limited proposal.",
		}),
		planSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ordna",
			Name:      "plan_actions",
			Help:      "Number of actions per extracted plan.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
	m.registry.MustRegister(m.proposals, m.actions, m.pauses, m.planSize)
	return m
}

// Registry exposes the private registry for scraping.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveProposal records one proposal attempt.
func (m *Metrics) ObserveProposal(outcome string) {
	if m == nil {
		return
	}
	m.proposals.WithLabelValues(outcome).Inc()
}

// ObserveAction records one dispatched action.
func (m *Metrics) ObserveAction(kind, status string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(kind, status).Inc()
}

// ObservePause records one rate-limit cooldown.
func (m *Metrics) ObservePause() {
	if m == nil {
		return
	}
	m.pauses.Inc()
}

// ObservePlanSize records the size of an extracted plan.
func (m *Metrics) ObservePlanSize(n int) {
	if m == nil {
		return
	}
	m.planSize.Observe(float64(n))
}
