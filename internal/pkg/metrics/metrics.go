// Package metrics exposes Prometheus instrumentation for the verification
// and delay-monitoring flows.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring service health and performance
var (
	ProofsGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "delivery_proofs_generated_total",
			Help: "Total number of proof-of-delivery credentials issued",
		},
	)

	VerificationAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_verification_attempts_total",
			Help: "Total number of proof verification attempts by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	VerificationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "delivery_verification_duration_seconds",
			Help:    "Duration of proof verification requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	DelayTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_delay_transitions_total",
			Help: "Total number of delay status transitions by direction",
		},
		[]string{"direction"},
	)

	DelaySweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "delivery_delay_sweep_duration_seconds",
			Help:    "Duration of delay-monitor reconciliation sweeps",
			Buckets: prometheus.DefBuckets,
		},
	)

	DelayedOrdersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "delivery_delayed_orders",
			Help: "Number of orders currently in DELAYED status",
		},
	)
)

// Label values for VerificationAttemptsTotal outcome and
// DelayTransitionsTotal direction.
const (
	OutcomeVerified       = "verified"
	OutcomeMismatch       = "mismatch"
	OutcomeExpired        = "expired"
	OutcomeNoProof        = "no_proof"
	OutcomeAlreadyDone    = "already_verified"
	OutcomeMalformed      = "malformed"
	OutcomeError          = "error"
	DirectionMarkDelayed  = "mark_delayed"
	DirectionClearDelayed = "clear_delayed"
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(ProofsGeneratedTotal)
	prometheus.MustRegister(VerificationAttemptsTotal)
	prometheus.MustRegister(VerificationDuration)
	prometheus.MustRegister(DelayTransitionsTotal)
	prometheus.MustRegister(DelaySweepDuration)
	prometheus.MustRegister(DelayedOrdersGauge)
}
