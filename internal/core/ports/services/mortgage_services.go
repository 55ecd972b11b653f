package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/dto"
)

// MortgageReaderSvc defines read operations for mortgage data
type MortgageReaderSvc interface {
	GetMortgage(ctx context.Context, mortgageID string) (*domain.Mortgage, error)
	ListMortgagePayments(ctx context.Context, mortgageID string) ([]domain.MortgagePayment, error)
}

// MortgageWriterSvc defines write operations for mortgage data
type MortgageWriterSvc interface {
	CreateMortgage(ctx context.Context, req dto.CreateMortgageRequest, userID string) (*domain.Mortgage, error)

	// RecordMortgagePayment applies one servicing payment: principal reduces the balance, the next
	// payment date advances one month.
	RecordMortgagePayment(ctx context.Context, mortgageID string, req dto.RecordMortgagePaymentRequest, userID string) (*domain.MortgagePayment, error)
}

// AmortizationSvc computes level-payment schedules.
type AmortizationSvc interface {
	// GetAmortizationSchedule returns the mortgage's full schedule, or only the periods left from its
	// current balance when remainingOnly is set.
	GetAmortizationSchedule(ctx context.Context, mortgageID string, remainingOnly bool) ([]domain.AmortizationEntry, error)

	// ComputeSchedule computes a schedule for arbitrary terms without touching the store.
	ComputeSchedule(ctx context.Context, req dto.AmortizationScheduleRequest) ([]domain.AmortizationEntry, error)
}

// MortgageSvcFacade combines all mortgage-related service interfaces
type MortgageSvcFacade interface {
	MortgageReaderSvc
	MortgageWriterSvc
	AmortizationSvc
}
