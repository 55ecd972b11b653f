package domain

import (
	"fmt"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// DefaultGraceDays is used when a landlord entity has not configured a grace period.
const DefaultGraceDays = 5

// LateFeeType selects how a late fee is computed.
type LateFeeType string

const (
	LateFeeFlat       LateFeeType = "flat"
	LateFeePercentage LateFeeType = "percentage"
)

// LateFeeSettings is the late-fee policy of one landlord entity.
type LateFeeSettings struct {
	EntityID   string            `json:"entityID"`
	Enabled    bool              `json:"enabled"`
	Type       LateFeeType       `json:"type"`
	FlatAmount accounting.Cents  `json:"flatAmount"` // used when Type is flat
	Percentage decimal.Decimal   `json:"percentage"` // of the outstanding balance, used when Type is percentage
	MaxAmount  *accounting.Cents `json:"maxAmount,omitempty"`
	GraceDays  int               `json:"graceDays"`
	AuditFields
}

// DefaultLateFeeSettings is the policy of an entity that never configured one: disabled.
func DefaultLateFeeSettings(entityID string) LateFeeSettings {
	return LateFeeSettings{
		EntityID:  entityID,
		Enabled:   false,
		Type:      LateFeeFlat,
		GraceDays: DefaultGraceDays,
	}
}

// Validate checks the policy is internally consistent.
func (s LateFeeSettings) Validate() error {
	switch s.Type {
	case LateFeeFlat:
		if s.FlatAmount < 0 {
			return fmt.Errorf("%w: flat late fee cannot be negative", apperrors.ErrInvalidAmount)
		}
	case LateFeePercentage:
		if s.Percentage.IsNegative() || s.Percentage.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%w: late fee percentage must be between 0 and 100", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown late fee type %q", apperrors.ErrValidation, s.Type)
	}
	if s.MaxAmount != nil && *s.MaxAmount < 0 {
		return fmt.Errorf("%w: late fee cap cannot be negative", apperrors.ErrInvalidAmount)
	}
	if s.GraceDays < 0 {
		return fmt.Errorf("%w: grace days cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

// ComputeFee returns the fee owed on an outstanding balance. It may be zero.
func (s LateFeeSettings) ComputeFee(outstanding accounting.Cents) accounting.Cents {
	switch s.Type {
	case LateFeeFlat:
		return s.FlatAmount
	case LateFeePercentage:
		fee := accounting.PercentOf(outstanding, s.Percentage)
		if s.MaxAmount != nil {
			fee = accounting.Min(fee, *s.MaxAmount)
		}
		return fee
	}
	return 0
}

// LateFeeResult is returned by a successful assessment.
type LateFeeResult struct {
	LateFeeChargeID string           `json:"lateFeeChargeID"`
	LateFeeAmount   accounting.Cents `json:"lateFeeAmount"`
}
