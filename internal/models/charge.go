package models

import "time"

// Charge is a row of the charges table. Amounts are stored in cents.
type Charge struct {
	ChargeID         string     `db:"charge_id"`
	LeaseID          string     `db:"lease_id"`
	Period           string     `db:"period"` // YYYY-MM
	ChargeType       string     `db:"charge_type"`
	Description      string     `db:"description"`
	Amount           int64      `db:"amount"`
	PaidAmount       int64      `db:"paid_amount"`
	DueDate          time.Time  `db:"due_date"`
	Status           string     `db:"status"`
	LinkedChargeID   *string    `db:"linked_charge_id"`    // Nullable
	LateFeeAppliedAt *time.Time `db:"late_fee_applied_at"` // Nullable
	LateFeeChargeID  *string    `db:"late_fee_charge_id"`  // Nullable
	VoidReason       *string    `db:"void_reason"`         // Nullable
	VoidedAt         *time.Time `db:"voided_at"`           // Nullable
	Sequence         int64      `db:"sequence"`            // BIGSERIAL
	Version          int64      `db:"version"`
	AuditFields
}
