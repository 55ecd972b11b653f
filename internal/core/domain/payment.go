package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"

	"github.com/SscSPs/property_ledger/internal/utils/accounting"
)

// Allocation is the part of a payment applied to one charge.
type Allocation struct {
	ChargeID string           `json:"chargeID"`
	Amount   accounting.Cents `json:"amount"`
}

// Payment is a single tender recorded against a lease. It is immutable once stored.
type Payment struct {
	PaymentID string           `json:"paymentID"`
	LeaseID   string           `json:"leaseID"`
	TenantID  string           `json:"tenantID"`
	Amount    accounting.Cents `json:"amount"`
	Method    PaymentMethod    `json:"-"`
	AppliedTo []Allocation     `json:"appliedTo"`
	Memo      string           `json:"memo,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	CreatedBy string           `json:"createdBy"`
}

// AppliedTotal is the sum of all allocations.
func (p Payment) AppliedTotal() accounting.Cents {
	var total accounting.Cents
	for _, a := range p.AppliedTo {
		total += a.Amount
	}
	return total
}

// Unapplied is the residual that no outstanding charge could absorb. No credit is created for it.
func (p Payment) Unapplied() accounting.Cents {
	return p.Amount - p.AppliedTotal()
}

// MarshalJSON writes the method as its tagged form alongside the other fields.
func (p Payment) MarshalJSON() ([]byte, error) {
	type alias Payment
	var method json.RawMessage
	if p.Method != nil {
		encoded, err := MarshalPaymentMethod(p.Method)
		if err != nil {
			return nil, err
		}
		method = encoded
	}
	return json.Marshal(struct {
		alias
		Method    json.RawMessage  `json:"method,omitempty"`
		Unapplied accounting.Cents `json:"unapplied"`
	}{alias: alias(p), Method: method, Unapplied: p.Unapplied()})
}

// AllocatePayment spreads amount over charges, oldest due date first and creation order on ties,
// giving each charge min(remaining, balance). Charges that are not outstanding are skipped.
// It returns the allocations and the touched charges with PaidAmount and Status updated; the
// input slice is not modified. Whatever is left over stays unallocated.
func AllocatePayment(charges []Charge, amount accounting.Cents) ([]Allocation, []Charge, error) {
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: payment amount must be positive, got %d", apperrors.ErrInvalidAmount, amount)
	}

	ordered := make([]Charge, len(charges))
	copy(ordered, charges)
	SortForAllocation(ordered)

	var (
		allocations []Allocation
		touched     []Charge
	)
	remaining := amount
	for _, c := range ordered {
		if remaining == 0 {
			break
		}
		if !c.IsOutstanding() || c.Balance() <= 0 {
			continue
		}
		applied := accounting.Min(remaining, c.Balance())
		if err := c.ApplyPayment(applied); err != nil {
			return nil, nil, err
		}
		remaining -= applied
		allocations = append(allocations, Allocation{ChargeID: c.ChargeID, Amount: applied})
		touched = append(touched, c)
	}
	return allocations, touched, nil
}
