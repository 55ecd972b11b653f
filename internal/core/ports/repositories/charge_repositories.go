package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// ChargeReader defines read operations for charge data
type ChargeReader interface {
	// FindChargeByID retrieves a charge; apperrors.ErrChargeNotFound when missing.
	FindChargeByID(ctx context.Context, chargeID string) (*domain.Charge, error)

	// FindOutstandingChargesByLease returns the lease's open and partial charges in allocation order
	// (due date, then creation order).
	FindOutstandingChargesByLease(ctx context.Context, leaseID string) ([]domain.Charge, error)

	// FindChargesByLease returns every charge of a lease, voided ones included.
	FindChargesByLease(ctx context.Context, leaseID string) ([]domain.Charge, error)

	// ListChargesByLease retrieves a page of charges ordered by (due date, creation order) using token-based pagination.
	// It returns the charges, a token for the next page, and an error.
	ListChargesByLease(ctx context.Context, leaseID string, filter domain.ChargeFilter, limit int, nextToken *string) ([]domain.Charge, *string, error)
}

// ChargeWriter defines write operations for charge data. Every write commits its audit entry in the
// same atomic operation. Updates are guarded by the Version carried on the charge passed in: if the
// stored version differs nothing is written and apperrors.ErrConcurrentModification is returned.
type ChargeWriter interface {
	// SaveCharge inserts a new charge and returns it with Sequence and Version assigned.
	SaveCharge(ctx context.Context, charge domain.Charge, audit domain.AuditEntry) (*domain.Charge, error)

	// SaveVoidedCharge persists the void fields and status of a charge.
	SaveVoidedCharge(ctx context.Context, charge domain.Charge, audit domain.AuditEntry) error

	// SaveLateFee inserts the late-fee charge and stamps the original with LateFeeAppliedAt/LateFeeChargeID.
	// The stamp only lands if the original is still unstamped at the expected version; otherwise the whole
	// write is abandoned with apperrors.ErrAlreadyApplied or apperrors.ErrConcurrentModification.
	SaveLateFee(ctx context.Context, original domain.Charge, fee domain.Charge, audit domain.AuditEntry) (*domain.Charge, error)
}

// ChargeRepositoryFacade combines all charge-related repository interfaces
type ChargeRepositoryFacade interface {
	ChargeReader
	ChargeWriter
}
