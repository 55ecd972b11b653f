package mapping

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelAuditEntry converts a domain AuditEntry to its audit_log row
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		AuditID:    d.AuditID,
		Actor:      d.Actor,
		Action:     string(d.Action),
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		Before:     d.Before,
		After:      d.After,
		CreatedAt:  d.Timestamp,
	}
}

// ToDomainAuditEntry converts an audit_log row to a domain AuditEntry
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:    m.AuditID,
		Actor:      m.Actor,
		Action:     domain.AuditAction(m.Action),
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Before:     m.Before,
		After:      m.After,
		Timestamp:  m.CreatedAt,
	}
}
