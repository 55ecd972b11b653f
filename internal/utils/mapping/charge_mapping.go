package mapping

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
)

// ToModelCharge converts a domain Charge to a model Charge
func ToModelCharge(d domain.Charge) models.Charge {
	return models.Charge{
		ChargeID:         d.ChargeID,
		LeaseID:          d.LeaseID,
		Period:           string(d.Period),
		ChargeType:       string(d.Type),
		Description:      d.Description,
		Amount:           int64(d.Amount),
		PaidAmount:       int64(d.PaidAmount),
		DueDate:          d.DueDate,
		Status:           string(d.Status),
		LinkedChargeID:   d.LinkedChargeID,
		LateFeeAppliedAt: d.LateFeeAppliedAt,
		LateFeeChargeID:  d.LateFeeChargeID,
		VoidReason:       d.VoidReason,
		VoidedAt:         d.VoidedAt,
		Sequence:         d.Sequence,
		Version:          d.Version,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCharge converts a model Charge to a domain Charge. The stored status is ignored
// and derived again from the amounts.
func ToDomainCharge(m models.Charge) domain.Charge {
	c := domain.Charge{
		ChargeID:         m.ChargeID,
		LeaseID:          m.LeaseID,
		Period:           domain.BillingPeriod(m.Period),
		Type:             domain.ChargeType(m.ChargeType),
		Description:      m.Description,
		Amount:           accounting.Cents(m.Amount),
		PaidAmount:       accounting.Cents(m.PaidAmount),
		DueDate:          accounting.Day(m.DueDate),
		LinkedChargeID:   m.LinkedChargeID,
		LateFeeAppliedAt: m.LateFeeAppliedAt,
		LateFeeChargeID:  m.LateFeeChargeID,
		VoidReason:       m.VoidReason,
		VoidedAt:         m.VoidedAt,
		Sequence:         m.Sequence,
		Version:          m.Version,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	c.RefreshStatus()
	return c
}

// ToDomainChargeSlice converts a slice of model Charges to a slice of domain Charges
func ToDomainChargeSlice(ms []models.Charge) []domain.Charge {
	ds := make([]domain.Charge, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCharge(m)
	}
	return ds
}
