package services_test

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockChargeRepository is a mock type for the ChargeRepositoryFacade interface
type MockChargeRepository struct {
	mock.Mock
}

func (m *MockChargeRepository) FindChargeByID(ctx context.Context, chargeID string) (*domain.Charge, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Charge), args.Error(1)
}

func (m *MockChargeRepository) FindOutstandingChargesByLease(ctx context.Context, leaseID string) ([]domain.Charge, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Charge), args.Error(1)
}

func (m *MockChargeRepository) FindChargesByLease(ctx context.Context, leaseID string) ([]domain.Charge, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Charge), args.Error(1)
}

func (m *MockChargeRepository) ListChargesByLease(ctx context.Context, leaseID string, filter domain.ChargeFilter, limit int, nextToken *string) ([]domain.Charge, *string, error) {
	args := m.Called(ctx, leaseID, filter, limit, nextToken)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.Charge), token, args.Error(2)
}

func (m *MockChargeRepository) SaveCharge(ctx context.Context, charge domain.Charge, audit domain.AuditEntry) (*domain.Charge, error) {
	args := m.Called(ctx, charge, audit)
	if fn, ok := args.Get(0).(func(context.Context, domain.Charge, domain.AuditEntry) *domain.Charge); ok {
		return fn(ctx, charge, audit), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Charge), args.Error(1)
}

func (m *MockChargeRepository) SaveVoidedCharge(ctx context.Context, charge domain.Charge, audit domain.AuditEntry) error {
	args := m.Called(ctx, charge, audit)
	return args.Error(0)
}

func (m *MockChargeRepository) SaveLateFee(ctx context.Context, original domain.Charge, fee domain.Charge, audit domain.AuditEntry) (*domain.Charge, error) {
	args := m.Called(ctx, original, fee, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Charge), args.Error(1)
}

// MockLeaseReader is a mock type for the LeaseReader interface
type MockLeaseReader struct {
	mock.Mock
}

func (m *MockLeaseReader) FindLeaseByID(ctx context.Context, leaseID string) (*domain.Lease, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}

var (
	_ portsrepo.ChargeRepositoryFacade = (*MockChargeRepository)(nil)
	_ portsrepo.LeaseReader            = (*MockLeaseReader)(nil)
)
