package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
)

func clonePayment(p domain.Payment) domain.Payment {
	p.AppliedTo = append([]domain.Allocation{}, p.AppliedTo...)
	return p
}

func (s *Store) FindPaymentByID(_ context.Context, paymentID string) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payment, ok := s.payments[paymentID]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	payment = clonePayment(payment)
	return &payment, nil
}

func (s *Store) ListPaymentsByLease(_ context.Context, leaseID string) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Payment
	for _, p := range s.payments {
		if p.LeaseID == leaseID {
			out = append(out, clonePayment(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].PaymentID > out[j].PaymentID
	})
	return out, nil
}

func (s *Store) SavePayment(_ context.Context, payment domain.Payment, touched []domain.Charge, audit domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.payments[payment.PaymentID]; exists {
		return fmt.Errorf("%w: payment %s", apperrors.ErrDuplicate, payment.PaymentID)
	}
	// Validate every guard before the first write so a conflict leaves nothing behind.
	for _, c := range touched {
		if err := s.checkVersion(c); err != nil {
			return err
		}
	}
	for _, c := range touched {
		c.Version++
		s.charges[c.ChargeID] = c
	}
	s.payments[payment.PaymentID] = clonePayment(payment)
	s.audit = append(s.audit, audit)
	return nil
}
