package metrics

import (
	"errors"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// LedgerOperations counts ledger mutations by operation and outcome ("ok" or an error kind).
	LedgerOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Ledger mutations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	PaymentCentsAllocated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_payment_cents_allocated_total",
		Help: "Cents of recorded payments applied to charges",
	})

	PaymentCentsUnapplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_payment_cents_unapplied_total",
		Help: "Cents of recorded payments left unapplied because no charge was outstanding",
	})

	LateFeeCentsAssessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_late_fee_cents_assessed_total",
		Help: "Cents of late fees assessed",
	})
)

var outcomeKinds = []struct {
	err   error
	label string
}{
	{apperrors.ErrNotFound, "not_found"},
	{apperrors.ErrInvalidAmount, "invalid_amount"},
	{apperrors.ErrValidation, "validation"},
	{apperrors.ErrInvalidType, "invalid_type"},
	{apperrors.ErrInvalidStatus, "invalid_status"},
	{apperrors.ErrInvalidStatusTransition, "invalid_transition"},
	{apperrors.ErrAlreadyApplied, "already_applied"},
	{apperrors.ErrGracePeriodNotElapsed, "grace_period"},
	{apperrors.ErrFeatureDisabled, "disabled"},
	{apperrors.ErrZeroFee, "zero_fee"},
	{apperrors.ErrConcurrentModification, "conflict"},
}

// Outcome maps an operation result to a low-cardinality label.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	for _, k := range outcomeKinds {
		if errors.Is(err, k.err) {
			return k.label
		}
	}
	return "error"
}

// RecordOperation counts one ledger mutation.
func RecordOperation(operation string, err error) {
	LedgerOperations.WithLabelValues(operation, Outcome(err)).Inc()
}
