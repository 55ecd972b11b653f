package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/core/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/platform/clock"
	"github.com/SscSPs/property_ledger/internal/platform/lock"
	"github.com/SscSPs/property_ledger/internal/repositories/memory"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/stretchr/testify/require"
)

const (
	testLeaseID  = "lease-1"
	testEntityID = "entity-1"
	testTenantID = "tenant-1"
	testUserID   = "user-1"
)

// ledgerFixture wires every service to one in-memory store with a pinned clock.
type ledgerFixture struct {
	store  *memory.Store
	clock  *clock.FixedClock
	locker *lock.LocalLocker
	svc    *portssvc.ServiceContainer
}

func newLedgerFixture(now time.Time) *ledgerFixture {
	store := memory.NewStore()
	store.PutLease(domain.Lease{
		LeaseID:   testLeaseID,
		EntityID:  testEntityID,
		TenantIDs: []string{testTenantID},
		Status:    domain.LeaseActive,
	})
	clk := clock.NewFixedClock(now)
	locker := lock.NewLocalLocker()
	return &ledgerFixture{
		store:  store,
		clock:  clk,
		locker: locker,
		svc:    services.NewServiceContainer(store.Repositories(), services.WithClock(clk), services.WithLocker(locker)),
	}
}

func (f *ledgerFixture) charge(t *testing.T, amount accounting.Cents, dueDate string) *domain.Charge {
	t.Helper()
	c, err := f.svc.Charge.CreateCharge(context.Background(), testLeaseID, dto.CreateChargeRequest{
		Type:    domain.ChargeTypeRent,
		Amount:  amount,
		DueDate: dueDate,
	}, testUserID)
	require.NoError(t, err)
	return c
}

func (f *ledgerFixture) reload(t *testing.T, chargeID string) *domain.Charge {
	t.Helper()
	c, err := f.svc.Charge.GetCharge(context.Background(), chargeID)
	require.NoError(t, err)
	return c
}

func day(s string) time.Time {
	d, err := accounting.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}
