package dto

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// LateFeeSettingsRequest replaces an entity's late-fee policy.
type LateFeeSettingsRequest struct {
	Enabled    bool               `json:"enabled"`
	Type       domain.LateFeeType `json:"type" binding:"required,oneof=flat percentage"`
	FlatAmount accounting.Cents   `json:"flatAmount"`
	Percentage decimal.Decimal    `json:"percentage"`
	MaxAmount  *accounting.Cents  `json:"maxAmount"`
	GraceDays  *int               `json:"graceDays"` // defaults to domain.DefaultGraceDays
}
