package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Match generation outcomes
const (
	OutcomeCreated        = "created"
	OutcomeNotEnough      = "not_enough_profiles"
	OutcomeNoPair         = "no_pair"
	OutcomeConflict       = "conflict"
	OutcomeError          = "error"
	EmailResultSent       = "sent"
	EmailResultFailed     = "failed"
	EmailKindTest         = "test"
	EmailKindMatchCreated = "match_created"
)

// Metrics owns the collectors of one process. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	matchGeneration *prometheus.CounterVec
	matchesExpired  prometheus.Counter
	optInAnswers    *prometheus.CounterVec
	emails          *prometheus.CounterVec
}

// New registers every collector on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "motes",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "motes",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		matchGeneration: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "motes",
			Name:      "match_generation_total",
			Help:      "Match generation runs by outcome.",
		}, []string{"outcome"}),
		matchesExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "motes",
			Name:      "matches_expired_total",
			Help:      "Pending matches moved to Expired.",
		}),
		optInAnswers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "motes",
			Name:      "opt_in_answers_total",
			Help:      "Recorded opt-in answers by answer and resulting match status.",
		}, []string{"answer", "status"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "motes",
			Name:      "emails_total",
			Help:      "Outbound emails by kind and result.",
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.matchGeneration,
		m.matchesExpired,
		m.optInAnswers,
		m.emails,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) MatchGeneration(outcome string) {
	if m == nil {
		return
	}
	m.matchGeneration.WithLabelValues(outcome).Inc()
}

func (m *Metrics) MatchesExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.matchesExpired.Add(float64(n))
}

func (m *Metrics) OptInAnswer(answer, status string) {
	if m == nil {
		return
	}
	m.optInAnswers.WithLabelValues(answer, status).Inc()
}

func (m *Metrics) Email(kind string, err error) {
	if m == nil {
		return
	}
	result := EmailResultSent
	if err != nil {
		result = EmailResultFailed
	}
	m.emails.WithLabelValues(kind, result).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
