package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
)

// ChargeType is the closed set of things a lease can be billed for.
type ChargeType string

const (
	ChargeTypeRent       ChargeType = "rent"
	ChargeTypeLateFee    ChargeType = "late_fee"
	ChargeTypeUtility    ChargeType = "utility"
	ChargeTypeDeposit    ChargeType = "deposit"
	ChargeTypePetDeposit ChargeType = "pet_deposit"
	ChargeTypePetRent    ChargeType = "pet_rent"
	ChargeTypeParking    ChargeType = "parking"
	ChargeTypeDamage     ChargeType = "damage"
	ChargeTypeOther      ChargeType = "other"
)

// ChargeTypes lists every valid ChargeType.
var ChargeTypes = []ChargeType{
	ChargeTypeRent, ChargeTypeLateFee, ChargeTypeUtility, ChargeTypeDeposit, ChargeTypePetDeposit,
	ChargeTypePetRent, ChargeTypeParking, ChargeTypeDamage, ChargeTypeOther,
}

// Valid reports whether t is one of the known charge types.
func (t ChargeType) Valid() bool {
	for _, known := range ChargeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ChargeStatus is derived from a charge's amounts; it is never set directly.
type ChargeStatus string

const (
	ChargeOpen    ChargeStatus = "open"
	ChargePartial ChargeStatus = "partial"
	ChargePaid    ChargeStatus = "paid"
	ChargeVoid    ChargeStatus = "void"
)

// OutstandingStatuses are the statuses that can still receive payments.
var OutstandingStatuses = []ChargeStatus{ChargeOpen, ChargePartial}

// DeriveChargeStatus is the only definition of a charge's status.
func DeriveChargeStatus(amount, paidAmount accounting.Cents, voided bool) ChargeStatus {
	switch {
	case voided:
		return ChargeVoid
	case paidAmount <= 0:
		return ChargeOpen
	case paidAmount < amount:
		return ChargePartial
	default:
		return ChargePaid
	}
}

// BillingPeriod is a month bucket in YYYY-MM form.
type BillingPeriod string

const billingPeriodLayout = "2006-01"

// PeriodOf returns the billing period containing day.
func PeriodOf(day time.Time) BillingPeriod {
	return BillingPeriod(day.Format(billingPeriodLayout))
}

// Validate checks the YYYY-MM format.
func (p BillingPeriod) Validate() error {
	if _, err := time.Parse(billingPeriodLayout, string(p)); err != nil {
		return fmt.Errorf("%w: billing period %q must be YYYY-MM", apperrors.ErrValidation, p)
	}
	return nil
}

// Charge is an amount owed by a lease for a billing period.
type Charge struct {
	ChargeID         string           `json:"chargeID"`
	LeaseID          string           `json:"leaseID"`
	Period           BillingPeriod    `json:"period"`
	Type             ChargeType       `json:"type"`
	Description      string           `json:"description,omitempty"`
	Amount           accounting.Cents `json:"amount"`
	PaidAmount       accounting.Cents `json:"paidAmount"`
	DueDate          time.Time        `json:"dueDate"`
	Status           ChargeStatus     `json:"status"`
	LinkedChargeID   *string          `json:"linkedChargeID,omitempty"`   // set on a late fee: the charge it was assessed on
	LateFeeAppliedAt *time.Time       `json:"lateFeeAppliedAt,omitempty"` // set on the original once a fee exists
	LateFeeChargeID  *string          `json:"lateFeeChargeID,omitempty"`
	VoidReason       *string          `json:"voidReason,omitempty"`
	VoidedAt         *time.Time       `json:"voidedAt,omitempty"`
	Sequence         int64            `json:"sequence"` // creation order, assigned by the store
	Version          int64            `json:"version"`  // optimistic concurrency token
	AuditFields
}

// NewCharge validates the inputs and returns an open charge.
func NewCharge(id, leaseID string, chargeType ChargeType, amount accounting.Cents, dueDate time.Time, period BillingPeriod, description string) (Charge, error) {
	if !amount.IsPositive() {
		return Charge{}, fmt.Errorf("%w: charge amount must be positive, got %d", apperrors.ErrInvalidAmount, amount)
	}
	if !chargeType.Valid() {
		return Charge{}, fmt.Errorf("%w: unknown charge type %q", apperrors.ErrInvalidType, chargeType)
	}
	if dueDate.IsZero() {
		return Charge{}, fmt.Errorf("%w: due date is required", apperrors.ErrValidation)
	}
	if err := period.Validate(); err != nil {
		return Charge{}, err
	}
	c := Charge{
		ChargeID:    id,
		LeaseID:     leaseID,
		Period:      period,
		Type:        chargeType,
		Description: description,
		Amount:      amount,
		DueDate:     accounting.Day(dueDate),
	}
	c.RefreshStatus()
	return c, nil
}

// Balance is what is still owed on the charge.
func (c Charge) Balance() accounting.Cents {
	return c.Amount - c.PaidAmount
}

// IsVoided reports whether the charge has been voided.
func (c Charge) IsVoided() bool {
	return c.VoidedAt != nil
}

// IsOutstanding reports whether the charge can still receive payments.
func (c Charge) IsOutstanding() bool {
	return c.Status == ChargeOpen || c.Status == ChargePartial
}

// IsOverdue reports whether an outstanding charge was due before today.
func (c Charge) IsOverdue(today time.Time) bool {
	return c.IsOutstanding() && c.DueDate.Before(accounting.Day(today))
}

// RefreshStatus recomputes Status from the amounts. Every mutation below ends with it.
func (c *Charge) RefreshStatus() {
	c.Status = DeriveChargeStatus(c.Amount, c.PaidAmount, c.IsVoided())
}

// ApplyPayment adds amount to PaidAmount. It never over-pays and never touches a voided charge.
func (c *Charge) ApplyPayment(amount accounting.Cents) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: allocation must be positive", apperrors.ErrInvalidAmount)
	}
	if !c.IsOutstanding() {
		return fmt.Errorf("%w: charge %s is %s", apperrors.ErrInvalidStatus, c.ChargeID, c.Status)
	}
	if amount > c.Balance() {
		return fmt.Errorf("%w: allocation %d exceeds balance %d on charge %s", apperrors.ErrInvalidAmount, amount, c.Balance(), c.ChargeID)
	}
	c.PaidAmount += amount
	c.RefreshStatus()
	return nil
}

// Void freezes the charge. Previously recorded payments stay in PaidAmount.
func (c *Charge) Void(reason string, at time.Time) error {
	if !c.IsOutstanding() {
		return fmt.Errorf("%w: cannot void a %s charge", apperrors.ErrInvalidStatusTransition, c.Status)
	}
	voidedAt := at
	c.VoidReason = &reason
	c.VoidedAt = &voidedAt
	c.RefreshStatus()
	return nil
}

// MarkLateFeeApplied links the original charge to the late fee generated from it.
func (c *Charge) MarkLateFeeApplied(lateFeeChargeID string, at time.Time) error {
	if c.LateFeeAppliedAt != nil {
		return fmt.Errorf("%w: charge %s", apperrors.ErrAlreadyApplied, c.ChargeID)
	}
	appliedAt := at
	c.LateFeeAppliedAt = &appliedAt
	c.LateFeeChargeID = &lateFeeChargeID
	return nil
}

// SortForAllocation orders charges oldest-due first, ties broken by creation order.
func SortForAllocation(charges []Charge) {
	sort.SliceStable(charges, func(i, j int) bool {
		if !charges[i].DueDate.Equal(charges[j].DueDate) {
			return charges[i].DueDate.Before(charges[j].DueDate)
		}
		return charges[i].Sequence < charges[j].Sequence
	})
}

// ChargeFilter narrows charge listings.
type ChargeFilter struct {
	Statuses []ChargeStatus
}

// Matches reports whether c passes the filter. An empty filter matches everything.
func (f ChargeFilter) Matches(c Charge) bool {
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if c.Status == s {
			return true
		}
	}
	return false
}
