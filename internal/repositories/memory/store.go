// Package memory is an in-process implementation of every repository port. It backs dev mode
// (no PGSQL_URL) and service tests. Each write is applied under one mutex so it is atomic with
// its audit entry, and the same version guards as the Postgres store apply.
package memory

import (
	"sync"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
)

// Store holds all ledger state.
type Store struct {
	mu sync.RWMutex

	leases           map[string]domain.Lease
	charges          map[string]domain.Charge
	chargeSeq        int64
	payments         map[string]domain.Payment
	settings         map[string]domain.LateFeeSettings
	mortgages        map[string]domain.Mortgage
	mortgagePayments map[string][]domain.MortgagePayment
	audit            []domain.AuditEntry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		leases:           make(map[string]domain.Lease),
		charges:          make(map[string]domain.Charge),
		payments:         make(map[string]domain.Payment),
		settings:         make(map[string]domain.LateFeeSettings),
		mortgages:        make(map[string]domain.Mortgage),
		mortgagePayments: make(map[string][]domain.MortgagePayment),
	}
}

var (
	_ portsrepo.ChargeRepositoryFacade   = (*Store)(nil)
	_ portsrepo.PaymentRepositoryFacade  = (*Store)(nil)
	_ portsrepo.LeaseReader              = (*Store)(nil)
	_ portsrepo.LateFeePolicyRepository  = (*Store)(nil)
	_ portsrepo.MortgageRepositoryFacade = (*Store)(nil)
)

// Repositories exposes the store through every repository port.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ChargeRepo:        s,
		PaymentRepo:       s,
		LeaseRepo:         s,
		LateFeePolicyRepo: s,
		MortgageRepo:      s,
	}
}

// AuditLog returns a copy of every audit entry written so far, oldest first.
func (s *Store) AuditLog() []domain.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AuditEntry, len(s.audit))
	copy(out, s.audit)
	return out
}
