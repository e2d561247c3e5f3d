package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registration outcome labels.
const (
	OutcomeSuccess         = "success"
	OutcomeValidation      = "validation_failed"
	OutcomeDuplicate       = "duplicate"
	OutcomeCredentialFault = "credential_fault"
	OutcomeSigningFault    = "signing_fault"
)

// Registrations counts registration attempts by outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var Registrations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "registration_attempts_total",
		Help: "Total number of account registration attempts",
	},
	[]string{"outcome"},
)

// PasswordHashDuration observes how long a single bcrypt hash takes.
var PasswordHashDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "registration_password_hash_duration_seconds",
		Help:    "Password hashing duration in seconds",
		Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
)

// RegisterMetrics registers registration metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Registrations)
	reg.MustRegister(PasswordHashDuration)
}

func RecordRegistration(outcome string) {
	Registrations.WithLabelValues(outcome).Inc()
}

func RecordPasswordHash(d time.Duration) {
	PasswordHashDuration.Observe(d.Seconds())
}
