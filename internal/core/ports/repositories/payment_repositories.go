package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a payment with its allocations; apperrors.ErrPaymentNotFound when missing.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByLease returns a lease's payments, newest first.
	ListPaymentsByLease(ctx context.Context, leaseID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment atomically inserts the payment and its allocations, writes every touched charge
	// (each guarded by the Version it was read at) and appends the audit entry. On any failure,
	// including a version mismatch, nothing is committed.
	SavePayment(ctx context.Context, payment domain.Payment, touched []domain.Charge, audit domain.AuditEntry) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
