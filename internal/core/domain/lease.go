package domain

// LeaseStatus mirrors the lease record owned by the leasing module.
type LeaseStatus string

const (
	LeaseActive     LeaseStatus = "active"
	LeasePending    LeaseStatus = "pending"
	LeaseEnded      LeaseStatus = "ended"
	LeaseTerminated LeaseStatus = "terminated"
)

// Lease is the ledger's read-only view of a lease.
type Lease struct {
	LeaseID    string      `json:"leaseID"`
	EntityID   string      `json:"entityID"` // landlord entity; owns the late-fee policy
	PropertyID string      `json:"propertyID"`
	UnitID     string      `json:"unitID"`
	TenantIDs  []string    `json:"tenantIDs"`
	Status     LeaseStatus `json:"status"`
}

// HasTenant reports whether tenantID is on the lease. A lease without a tenant list accepts anyone.
func (l Lease) HasTenant(tenantID string) bool {
	if len(l.TenantIDs) == 0 {
		return true
	}
	for _, id := range l.TenantIDs {
		if id == tenantID {
			return true
		}
	}
	return false
}
