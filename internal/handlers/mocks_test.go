package handlers_test

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock ChargeService ---
type MockChargeService struct {
	mock.Mock
}

func (m *MockChargeService) GetCharge(ctx context.Context, chargeID string) (*domain.Charge, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Charge), args.Error(1)
}
func (m *MockChargeService) ListChargesByLease(ctx context.Context, leaseID string, params dto.ListChargesParams) (*dto.ListChargesResponse, error) {
	args := m.Called(ctx, leaseID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListChargesResponse), args.Error(1)
}
func (m *MockChargeService) CreateCharge(ctx context.Context, leaseID string, req dto.CreateChargeRequest, userID string) (*domain.Charge, error) {
	args := m.Called(ctx, leaseID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Charge), args.Error(1)
}
func (m *MockChargeService) VoidCharge(ctx context.Context, chargeID string, req dto.VoidChargeRequest, userID string) (*domain.Charge, error) {
	args := m.Called(ctx, chargeID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Charge), args.Error(1)
}

var _ portssvc.ChargeSvcFacade = (*MockChargeService)(nil)

// --- Mock LateFeeService ---
type MockLateFeeService struct {
	mock.Mock
}

func (m *MockLateFeeService) ApplyLateFee(ctx context.Context, chargeID string, userID string) (*domain.LateFeeResult, error) {
	args := m.Called(ctx, chargeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LateFeeResult), args.Error(1)
}
func (m *MockLateFeeService) GetLateFeeSettings(ctx context.Context, entityID string) (*domain.LateFeeSettings, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LateFeeSettings), args.Error(1)
}
func (m *MockLateFeeService) UpsertLateFeeSettings(ctx context.Context, entityID string, req dto.LateFeeSettingsRequest, userID string) (*domain.LateFeeSettings, error) {
	args := m.Called(ctx, entityID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LateFeeSettings), args.Error(1)
}

var _ portssvc.LateFeeSvcFacade = (*MockLateFeeService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) ListPaymentsByLease(ctx context.Context, leaseID string) ([]domain.Payment, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentService) RecordPayment(ctx context.Context, leaseID string, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	args := m.Called(ctx, leaseID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock MortgageService ---
type MockMortgageService struct {
	mock.Mock
}

func (m *MockMortgageService) GetMortgage(ctx context.Context, mortgageID string) (*domain.Mortgage, error) {
	args := m.Called(ctx, mortgageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mortgage), args.Error(1)
}
func (m *MockMortgageService) ListMortgagePayments(ctx context.Context, mortgageID string) ([]domain.MortgagePayment, error) {
	args := m.Called(ctx, mortgageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MortgagePayment), args.Error(1)
}
func (m *MockMortgageService) CreateMortgage(ctx context.Context, req dto.CreateMortgageRequest, userID string) (*domain.Mortgage, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mortgage), args.Error(1)
}
func (m *MockMortgageService) RecordMortgagePayment(ctx context.Context, mortgageID string, req dto.RecordMortgagePaymentRequest, userID string) (*domain.MortgagePayment, error) {
	args := m.Called(ctx, mortgageID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MortgagePayment), args.Error(1)
}
func (m *MockMortgageService) GetAmortizationSchedule(ctx context.Context, mortgageID string, remainingOnly bool) ([]domain.AmortizationEntry, error) {
	args := m.Called(ctx, mortgageID, remainingOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AmortizationEntry), args.Error(1)
}
func (m *MockMortgageService) ComputeSchedule(ctx context.Context, req dto.AmortizationScheduleRequest) ([]domain.AmortizationEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AmortizationEntry), args.Error(1)
}

var _ portssvc.MortgageSvcFacade = (*MockMortgageService)(nil)

// --- Mock SummaryService ---
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) LeaseChargeSummary(ctx context.Context, leaseID string) (*domain.LeaseChargeSummary, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseChargeSummary), args.Error(1)
}
func (m *MockSummaryService) MortgageSummary(ctx context.Context, mortgageID string) (*domain.MortgageSummary, error) {
	args := m.Called(ctx, mortgageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MortgageSummary), args.Error(1)
}

var _ portssvc.SummarySvc = (*MockSummaryService)(nil)
