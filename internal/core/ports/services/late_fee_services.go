package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/dto"
)

// LateFeeAssessorSvc assesses late fees on overdue charges.
type LateFeeAssessorSvc interface {
	// ApplyLateFee posts a late-fee charge linked to chargeID. At most one fee is ever applied per charge.
	ApplyLateFee(ctx context.Context, chargeID string, userID string) (*domain.LateFeeResult, error)
}

// LateFeePolicySvc manages the per-entity late-fee policy.
type LateFeePolicySvc interface {
	// GetLateFeeSettings returns the entity's policy, or the disabled default when none was configured.
	GetLateFeeSettings(ctx context.Context, entityID string) (*domain.LateFeeSettings, error)

	UpsertLateFeeSettings(ctx context.Context, entityID string, req dto.LateFeeSettingsRequest, userID string) (*domain.LateFeeSettings, error)
}

// LateFeeSvcFacade combines all late-fee service interfaces
type LateFeeSvcFacade interface {
	LateFeeAssessorSvc
	LateFeePolicySvc
}
