package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "media",
			Subsystem: "registry",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "media",
			Subsystem: "registry",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// Registration outcomes
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "media",
			Subsystem: "registry",
			Name:      "registrations_total",
			Help:      "Total number of successful media registrations",
		},
	)

	RegistrationRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "media",
			Subsystem: "registry",
			Name:      "registration_rejections_total",
			Help:      "Registrations rejected, labeled by rejection kind",
		},
		[]string{"reason"},
	)

	// Lookup outcomes
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "media",
			Subsystem: "registry",
			Name:      "lookups_total",
			Help:      "Media lookups, labeled by lookup kind and result",
		},
		[]string{"kind", "result"},
	)

	// Policy changes
	PolicyUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "media",
			Subsystem: "registry",
			Name:      "policy_updates_total",
			Help:      "Policy mutations, labeled by field",
		},
		[]string{"field"},
	)
)

// RecordRegistration increments the success counter.
func RecordRegistration() {
	RegistrationsTotal.Inc()
}

// RecordRejection increments the rejection counter for a kind.
func RecordRejection(reason string) {
	RegistrationRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordLookup increments the lookup counter.
func RecordLookup(kind, result string) {
	LookupsTotal.WithLabelValues(kind, result).Inc()
}

// RecordPolicyUpdate increments the policy mutation counter.
func RecordPolicyUpdate(field string) {
	PolicyUpdatesTotal.WithLabelValues(field).Inc()
}
