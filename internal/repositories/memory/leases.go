package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// PutLease registers or replaces a lease. Leases belong to the leasing module; the ledger only
// reads them, so this is the seeding hook for dev mode and tests.
func (s *Store) PutLease(lease domain.Lease) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lease.TenantIDs = append([]string(nil), lease.TenantIDs...)
	s.leases[lease.LeaseID] = lease
}

// LoadLeases reads a JSON array of leases and registers each of them. Nothing is stored when the
// document is malformed or any entry lacks an ID.
func (s *Store) LoadLeases(r io.Reader) (int, error) {
	var leases []domain.Lease
	if err := json.NewDecoder(r).Decode(&leases); err != nil {
		return 0, fmt.Errorf("%w: decoding lease seed: %v", apperrors.ErrValidation, err)
	}
	for i, lease := range leases {
		if lease.LeaseID == "" {
			return 0, fmt.Errorf("%w: lease seed entry %d has no leaseID", apperrors.ErrValidation, i)
		}
		if lease.Status == "" {
			leases[i].Status = domain.LeaseActive
		}
	}
	for _, lease := range leases {
		s.PutLease(lease)
	}
	return len(leases), nil
}

func (s *Store) FindLeaseByID(_ context.Context, leaseID string) (*domain.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lease, ok := s.leases[leaseID]
	if !ok {
		return nil, apperrors.ErrLeaseNotFound
	}
	lease.TenantIDs = append([]string(nil), lease.TenantIDs...)
	return &lease, nil
}

func (s *Store) FindLateFeeSettings(_ context.Context, entityID string) (*domain.LateFeeSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings, ok := s.settings[entityID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &settings, nil
}

func (s *Store) SaveLateFeeSettings(_ context.Context, settings domain.LateFeeSettings, audit domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[settings.EntityID] = settings
	s.audit = append(s.audit, audit)
	return nil
}
