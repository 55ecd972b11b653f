package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
)

func (s *Store) FindChargeByID(_ context.Context, chargeID string) (*domain.Charge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	charge, ok := s.charges[chargeID]
	if !ok {
		return nil, apperrors.ErrChargeNotFound
	}
	return &charge, nil
}

// chargesOfLease returns the lease's charges matching filter in allocation order. Caller holds the lock.
func (s *Store) chargesOfLease(leaseID string, filter domain.ChargeFilter) []domain.Charge {
	var out []domain.Charge
	for _, c := range s.charges {
		if c.LeaseID == leaseID && filter.Matches(c) {
			out = append(out, c)
		}
	}
	domain.SortForAllocation(out)
	return out
}

func (s *Store) FindOutstandingChargesByLease(_ context.Context, leaseID string) ([]domain.Charge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chargesOfLease(leaseID, domain.ChargeFilter{Statuses: domain.OutstandingStatuses}), nil
}

func (s *Store) FindChargesByLease(_ context.Context, leaseID string) ([]domain.Charge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chargesOfLease(leaseID, domain.ChargeFilter{}), nil
}

func (s *Store) ListChargesByLease(_ context.Context, leaseID string, filter domain.ChargeFilter, limit int, nextToken *string) ([]domain.Charge, *string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.chargesOfLease(leaseID, filter)
	if nextToken != nil && *nextToken != "" {
		cursorDate, cursorSeq, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		start := len(all)
		for i, c := range all {
			if pagination.After(c.DueDate, c.Sequence, cursorDate, cursorSeq) {
				start = i
				break
			}
		}
		all = all[start:]
	}

	if len(all) <= limit {
		return all, nil, nil
	}
	page := all[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.DueDate, last.Sequence)
	return page, &token, nil
}

// insertCharge assigns the next sequence and stores a new charge. Caller holds the write lock.
func (s *Store) insertCharge(charge domain.Charge) (domain.Charge, error) {
	if _, exists := s.charges[charge.ChargeID]; exists {
		return domain.Charge{}, fmt.Errorf("%w: charge %s", apperrors.ErrDuplicate, charge.ChargeID)
	}
	s.chargeSeq++
	charge.Sequence = s.chargeSeq
	if charge.Version == 0 {
		charge.Version = 1
	}
	s.charges[charge.ChargeID] = charge
	return charge, nil
}

// checkVersion verifies the stored charge still carries the version it was read at. Caller holds the lock.
func (s *Store) checkVersion(charge domain.Charge) error {
	stored, ok := s.charges[charge.ChargeID]
	if !ok {
		return apperrors.ErrChargeNotFound
	}
	if stored.Version != charge.Version {
		return fmt.Errorf("%w: charge %s is at version %d, expected %d", apperrors.ErrConcurrentModification, charge.ChargeID, stored.Version, charge.Version)
	}
	return nil
}

func (s *Store) SaveCharge(_ context.Context, charge domain.Charge, audit domain.AuditEntry) (*domain.Charge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved, err := s.insertCharge(charge)
	if err != nil {
		return nil, err
	}
	s.audit = append(s.audit, audit)
	return &saved, nil
}

func (s *Store) SaveVoidedCharge(_ context.Context, charge domain.Charge, audit domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkVersion(charge); err != nil {
		return err
	}
	charge.Version++
	s.charges[charge.ChargeID] = charge
	s.audit = append(s.audit, audit)
	return nil
}

func (s *Store) SaveLateFee(_ context.Context, original domain.Charge, fee domain.Charge, audit domain.AuditEntry) (*domain.Charge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.charges[original.ChargeID]
	if !ok {
		return nil, apperrors.ErrChargeNotFound
	}
	if stored.LateFeeAppliedAt != nil {
		return nil, fmt.Errorf("%w: charge %s", apperrors.ErrAlreadyApplied, original.ChargeID)
	}
	if err := s.checkVersion(original); err != nil {
		return nil, err
	}

	saved, err := s.insertCharge(fee)
	if err != nil {
		return nil, err
	}
	original.Version++
	s.charges[original.ChargeID] = original
	s.audit = append(s.audit, audit)
	return &saved, nil
}
