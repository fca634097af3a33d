// Package metrics holds the Prometheus collectors of the toolkit.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics contains all Prometheus metrics of the toolkit
type Metrics struct {
	// Operations counts every service call by operation and result.
	Operations *prometheus.CounterVec

	// Signature verification outcomes
	Verifications *prometheus.CounterVec

	// Transaction signing metrics
	TransactionsSigned    *prometheus.CounterVec
	UnknownChainFallbacks prometheus.Counter

	// Hybrid cipher metrics
	DecryptionFailures *prometheus.CounterVec
}

// NewMetrics initializes and registers Prometheus metrics
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry initializes and registers Prometheus metrics with a custom registry
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptokit_operations_total",
				Help: "The total number of toolkit operations",
			},
			[]string{"operation", "result"},
		),
		Verifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptokit_signature_verifications_total",
				Help: "The total number of signature verifications by outcome",
			},
			[]string{"valid"},
		),
		TransactionsSigned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptokit_transactions_signed_total",
				Help: "The total number of signed transactions",
			},
			[]string{"chain"},
		),
		UnknownChainFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "cryptokit_unknown_chain_fallbacks_total",
			Help: "The total number of transactions signed with the default chain profile",
		}),
		DecryptionFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptokit_decryption_failures_total",
				Help: "The total number of failed hybrid decryptions",
			},
			[]string{"reason"},
		),
	}
}

// ObserveOperation records one call of operation. A nil receiver is a no-op.
func (m *Metrics) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	m.Operations.WithLabelValues(operation, result).Inc()
}

// ObserveVerification records a completed verification. A nil receiver is a no-op.
func (m *Metrics) ObserveVerification(valid bool) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(strconv.FormatBool(valid)).Inc()
}

// ObserveTransaction records a signed transaction. A nil receiver is a no-op.
func (m *Metrics) ObserveTransaction(chain string, known bool) {
	if m == nil {
		return
	}
	m.TransactionsSigned.WithLabelValues(chain).Inc()
	if !known {
		m.UnknownChainFallbacks.Inc()
	}
}

// ObserveDecryptionFailure records a failed decryption. A nil receiver is a no-op.
func (m *Metrics) ObserveDecryptionFailure(reason string) {
	if m == nil {
		return
	}
	m.DecryptionFailures.WithLabelValues(reason).Inc()
}
