/*
Package observability provides Prometheus instrumentation for the plan
lifecycle: proposal outcomes, executed actions, rate-limit pauses, and plan
sizes.

Metrics use a private registry so embedding applications can expose them on
their own terms (the http adapter serves them on /metrics).
*/
package observability
