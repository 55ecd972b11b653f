package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// SummarySvc produces read-only rollups. It never writes.
type SummarySvc interface {
	LeaseChargeSummary(ctx context.Context, leaseID string) (*domain.LeaseChargeSummary, error)
	MortgageSummary(ctx context.Context, mortgageID string) (*domain.MortgageSummary, error)
}
