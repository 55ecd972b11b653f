package mapping

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
)

// ToDomainLease converts a model Lease to a domain Lease
func ToDomainLease(m models.Lease) domain.Lease {
	return domain.Lease{
		LeaseID:    m.LeaseID,
		EntityID:   m.EntityID,
		PropertyID: m.PropertyID,
		UnitID:     m.UnitID,
		TenantIDs:  m.TenantIDs,
		Status:     domain.LeaseStatus(m.Status),
	}
}

// ToModelLateFeeSettings converts domain LateFeeSettings to a model LateFeeSettings
func ToModelLateFeeSettings(d domain.LateFeeSettings) models.LateFeeSettings {
	return models.LateFeeSettings{
		EntityID:    d.EntityID,
		Enabled:     d.Enabled,
		FeeType:     string(d.Type),
		FlatAmount:  int64(d.FlatAmount),
		Percentage:  d.Percentage,
		MaxAmount:   (*int64)(d.MaxAmount),
		GraceDays:   d.GraceDays,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLateFeeSettings converts model LateFeeSettings to domain LateFeeSettings
func ToDomainLateFeeSettings(m models.LateFeeSettings) domain.LateFeeSettings {
	return domain.LateFeeSettings{
		EntityID:    m.EntityID,
		Enabled:     m.Enabled,
		Type:        domain.LateFeeType(m.FeeType),
		FlatAmount:  accounting.Cents(m.FlatAmount),
		Percentage:  m.Percentage,
		MaxAmount:   (*accounting.Cents)(m.MaxAmount),
		GraceDays:   m.GraceDays,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
