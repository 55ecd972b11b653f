package models

import "github.com/shopspring/decimal"

// Lease is a row of the leases table. The ledger only reads it.
type Lease struct {
	LeaseID    string   `db:"lease_id"`
	EntityID   string   `db:"entity_id"`
	PropertyID string   `db:"property_id"`
	UnitID     string   `db:"unit_id"`
	TenantIDs  []string `db:"tenant_ids"` // TEXT[]
	Status     string   `db:"status"`
}

// LateFeeSettings is a row of late_fee_settings, keyed by landlord entity.
type LateFeeSettings struct {
	EntityID   string          `db:"entity_id"`
	Enabled    bool            `db:"enabled"`
	FeeType    string          `db:"fee_type"`
	FlatAmount int64           `db:"flat_amount"`
	Percentage decimal.Decimal `db:"percentage"`
	MaxAmount  *int64          `db:"max_amount"` // Nullable
	GraceDays  int             `db:"grace_days"`
	AuditFields
}
