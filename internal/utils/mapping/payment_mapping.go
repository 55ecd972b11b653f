package mapping

import (
	"fmt"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
)

// ToModelPayment converts a domain Payment to its payments row and allocation rows.
func ToModelPayment(d domain.Payment) (models.Payment, []models.PaymentAllocation, error) {
	method, err := domain.MarshalPaymentMethod(d.Method)
	if err != nil {
		return models.Payment{}, nil, fmt.Errorf("failed to encode method of payment %s: %w", d.PaymentID, err)
	}
	allocations := make([]models.PaymentAllocation, len(d.AppliedTo))
	for i, a := range d.AppliedTo {
		allocations[i] = models.PaymentAllocation{
			PaymentID: d.PaymentID,
			ChargeID:  a.ChargeID,
			Amount:    int64(a.Amount),
			Position:  i,
		}
	}
	return models.Payment{
		PaymentID: d.PaymentID,
		LeaseID:   d.LeaseID,
		TenantID:  d.TenantID,
		Amount:    int64(d.Amount),
		Method:    method,
		Memo:      d.Memo,
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}, allocations, nil
}

// ToDomainPayment rebuilds a domain Payment from its row and its allocations in Position order.
func ToDomainPayment(m models.Payment, allocations []models.PaymentAllocation) (domain.Payment, error) {
	method, err := domain.UnmarshalPaymentMethod(m.Method)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("failed to decode method of payment %s: %w", m.PaymentID, err)
	}
	applied := make([]domain.Allocation, len(allocations))
	for i, a := range allocations {
		applied[i] = domain.Allocation{ChargeID: a.ChargeID, Amount: accounting.Cents(a.Amount)}
	}
	return domain.Payment{
		PaymentID: m.PaymentID,
		LeaseID:   m.LeaseID,
		TenantID:  m.TenantID,
		Amount:    accounting.Cents(m.Amount),
		Method:    method,
		AppliedTo: applied,
		Memo:      m.Memo,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}, nil
}
