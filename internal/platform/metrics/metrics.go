package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "zimmr",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zimmr",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "zimmr",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	emailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zimmr",
			Subsystem: "notifications",
			Name:      "emails_total",
			Help:      "Outgoing e-mails by kind and result.",
		},
		[]string{"kind", "result"},
	)

	appointmentDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zimmr",
			Subsystem: "appointments",
			Name:      "decisions_total",
			Help:      "Appointment approvals and rejections.",
		},
		[]string{"decision"},
	)

	invoicesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zimmr",
			Subsystem: "invoices",
			Name:      "created_total",
			Help:      "Invoices and quotes created, by type and origin.",
		},
		[]string{"type", "origin"},
	)

	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zimmr",
			Subsystem: "scheduler",
			Name:      "job_runs_total",
			Help:      "Scheduled job runs by job and success.",
		},
		[]string{"job", "success"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		emailsSent,
		appointmentDecisions,
		invoicesCreated,
		jobRuns,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted increments the in-flight gauge and returns the matching decrement.
func RequestStarted() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordEmail counts an e-mail delivery attempt.
func RecordEmail(kind string, err error) {
	result := "sent"
	if err != nil {
		result = "failed"
	}
	emailsSent.WithLabelValues(kind, result).Inc()
}

// RecordAppointmentDecision counts an approval or rejection.
func RecordAppointmentDecision(decision string) {
	appointmentDecisions.WithLabelValues(decision).Inc()
}

// RecordInvoiceCreated counts a new invoice or quote. origin is "manual", "appointment" or "conversion".
func RecordInvoiceCreated(invoiceType, origin string) {
	invoicesCreated.WithLabelValues(invoiceType, origin).Inc()
}

// RecordJobRun counts a scheduler run.
func RecordJobRun(job string, success bool) {
	s := "false"
	if success {
		s = "true"
	}
	jobRuns.WithLabelValues(job, s).Inc()
}
