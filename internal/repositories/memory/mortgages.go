package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
)

func (s *Store) FindMortgageByID(_ context.Context, mortgageID string) (*domain.Mortgage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mortgages[mortgageID]
	if !ok {
		return nil, apperrors.ErrMortgageNotFound
	}
	return &m, nil
}

func (s *Store) ListMortgagePayments(_ context.Context, mortgageID string) ([]domain.MortgagePayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.MortgagePayment(nil), s.mortgagePayments[mortgageID]...), nil
}

func (s *Store) SaveMortgage(_ context.Context, mortgage domain.Mortgage, audit domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.mortgages[mortgage.MortgageID]; exists {
		return fmt.Errorf("%w: mortgage %s", apperrors.ErrDuplicate, mortgage.MortgageID)
	}
	if mortgage.Version == 0 {
		mortgage.Version = 1
	}
	s.mortgages[mortgage.MortgageID] = mortgage
	s.audit = append(s.audit, audit)
	return nil
}

func (s *Store) SaveMortgagePayment(_ context.Context, mortgage domain.Mortgage, payment domain.MortgagePayment, audit domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.mortgages[mortgage.MortgageID]
	if !ok {
		return apperrors.ErrMortgageNotFound
	}
	if stored.Version != mortgage.Version {
		return fmt.Errorf("%w: mortgage %s is at version %d, expected %d", apperrors.ErrConcurrentModification, mortgage.MortgageID, stored.Version, mortgage.Version)
	}
	mortgage.Version++
	s.mortgages[mortgage.MortgageID] = mortgage
	s.mortgagePayments[mortgage.MortgageID] = append(s.mortgagePayments[mortgage.MortgageID], payment)
	s.audit = append(s.audit, audit)
	return nil
}
