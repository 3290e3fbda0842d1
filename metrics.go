package argon

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects counters for a Hasher or Verifier.
// A nil *Metrics records nothing.
type Metrics struct {
	HashCount    *prometheus.CounterVec
	HashDuration *prometheus.HistogramVec
	VerifyCount  *prometheus.CounterVec
	ErrorCount   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HashCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argon2_hash_total",
				Help: "Number of hashes computed",
			},
			[]string{"variant"},
		),
		HashDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "argon2_hash_duration_seconds",
				Help:    "Time spent computing a hash",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
			},
			[]string{"variant"},
		),
		VerifyCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argon2_verify_total",
				Help: "Number of verifications by result",
			},
			[]string{"result"},
		),
		ErrorCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argon2_errors_total",
				Help: "Number of failed operations by error kind",
			},
			[]string{"kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.HashCount, m.HashDuration, m.VerifyCount, m.ErrorCount)
	}
	return m
}

func (m *Metrics) observeHash(v Variant, start time.Time) {
	if m == nil {
		return
	}
	m.HashCount.WithLabelValues(v.String()).Inc()
	m.HashDuration.WithLabelValues(v.String()).Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeVerify(ok bool) {
	if m == nil {
		return
	}
	result := "mismatch"
	if ok {
		result = "match"
	}
	m.VerifyCount.WithLabelValues(result).Inc()
}

func (m *Metrics) observeError(err error) {
	if m == nil || err == nil {
		return
	}
	m.ErrorCount.WithLabelValues(errorKind(err)).Inc()
}
