package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPaymentsByLease(ctx context.Context, leaseID string) ([]domain.Payment, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// RecordPayment allocates a payment across the lease's outstanding charges, oldest due first.
	// Any amount beyond the total outstanding is left unapplied on the payment.
	RecordPayment(ctx context.Context, leaseID string, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
