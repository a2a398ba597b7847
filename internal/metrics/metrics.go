// Package metrics holds the Prometheus collectors exported by the service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "route", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route", "status"},
	)

	// Estimates counts estimator runs by origin (wizard or direct) and category.
	Estimates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "estimator_runs_total", Help: "Savings estimates computed."},
		[]string{"origin", "category"},
	)
	// WizardTransitions counts applied wizard transitions.
	WizardTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "wizard_transitions_total", Help: "Applied wizard transitions by event and target step."},
		[]string{"event", "to"},
	)
	// Submissions counts estimates handed off for a quote request.
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "wizard_submissions_total", Help: "Estimates handed off for a quote request."},
		[]string{"category"},
	)
	// ActiveSessions tracks wizard sessions held in memory.
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "wizard_active_sessions", Help: "Wizard sessions currently held in memory."},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry. Safe to call more
// than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Estimates)
		Registry.MustRegister(WizardTransitions)
		Registry.MustRegister(Submissions)
		Registry.MustRegister(ActiveSessions)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequests.WithLabelValues(method, route, code).Inc()
	HTTPDuration.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
}
