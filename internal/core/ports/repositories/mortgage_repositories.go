package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// MortgageReader defines read operations for mortgage data
type MortgageReader interface {
	// FindMortgageByID retrieves a mortgage; apperrors.ErrMortgageNotFound when missing.
	FindMortgageByID(ctx context.Context, mortgageID string) (*domain.Mortgage, error)

	// ListMortgagePayments returns the payment history of a mortgage, oldest first.
	ListMortgagePayments(ctx context.Context, mortgageID string) ([]domain.MortgagePayment, error)
}

// MortgageWriter defines write operations for mortgage data
type MortgageWriter interface {
	// SaveMortgage inserts a new mortgage with its audit entry.
	SaveMortgage(ctx context.Context, mortgage domain.Mortgage, audit domain.AuditEntry) error

	// SaveMortgagePayment appends the payment and writes the updated mortgage (guarded by the
	// Version it was read at) with its audit entry in one atomic operation.
	SaveMortgagePayment(ctx context.Context, mortgage domain.Mortgage, payment domain.MortgagePayment, audit domain.AuditEntry) error
}

// MortgageRepositoryFacade combines all mortgage-related repository interfaces
type MortgageRepositoryFacade interface {
	MortgageReader
	MortgageWriter
}
