package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/dto"
)

// ChargeReaderSvc defines read operations for charge data
type ChargeReaderSvc interface {
	// GetCharge retrieves a specific charge by its unique identifier.
	GetCharge(ctx context.Context, chargeID string) (*domain.Charge, error)

	// ListChargesByLease retrieves a page of a lease's charges in (due date, creation) order.
	ListChargesByLease(ctx context.Context, leaseID string, params dto.ListChargesParams) (*dto.ListChargesResponse, error)
}

// ChargeWriterSvc defines write operations for charge data
type ChargeWriterSvc interface {
	// CreateCharge posts a new open charge against an existing lease.
	CreateCharge(ctx context.Context, leaseID string, req dto.CreateChargeRequest, userID string) (*domain.Charge, error)

	// VoidCharge voids an open or partially paid charge. Amounts already paid are kept.
	VoidCharge(ctx context.Context, chargeID string, req dto.VoidChargeRequest, userID string) (*domain.Charge, error)
}

// ChargeSvcFacade combines all charge-related service interfaces
type ChargeSvcFacade interface {
	ChargeReaderSvc
	ChargeWriterSvc
}
