package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// LeaseReader gives the ledger read access to lease records owned by the leasing module.
type LeaseReader interface {
	// FindLeaseByID retrieves a lease; apperrors.ErrLeaseNotFound when missing.
	FindLeaseByID(ctx context.Context, leaseID string) (*domain.Lease, error)
}

// LateFeePolicyRepository stores per-landlord-entity late-fee settings.
type LateFeePolicyRepository interface {
	// FindLateFeeSettings returns apperrors.ErrNotFound when the entity never configured a policy.
	FindLateFeeSettings(ctx context.Context, entityID string) (*domain.LateFeeSettings, error)

	// SaveLateFeeSettings inserts or replaces the entity's policy together with its audit entry.
	SaveLateFeeSettings(ctx context.Context, settings domain.LateFeeSettings, audit domain.AuditEntry) error
}
