package models

import "time"

// Payment is a row of the payments table. Method holds the tagged JSON form of the payment method.
type Payment struct {
	PaymentID string    `db:"payment_id"`
	LeaseID   string    `db:"lease_id"`
	TenantID  string    `db:"tenant_id"`
	Amount    int64     `db:"amount"`
	Method    []byte    `db:"method"` // JSONB
	Memo      string    `db:"memo"`
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}

// PaymentAllocation is a row of payment_allocations; Position keeps the allocation order.
type PaymentAllocation struct {
	PaymentID string `db:"payment_id"`
	ChargeID  string `db:"charge_id"`
	Amount    int64  `db:"amount"`
	Position  int    `db:"position"`
}
