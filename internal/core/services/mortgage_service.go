package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/platform/metrics"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// mortgageService implements mortgage servicing and the amortization views over it.
type mortgageService struct {
	BaseService
	mortgageRepo portsrepo.MortgageRepositoryFacade
}

// NewMortgageService creates a new mortgage service.
func NewMortgageService(mortgageRepo portsrepo.MortgageRepositoryFacade, options ...ServiceOption) portssvc.MortgageSvcFacade {
	return &mortgageService{
		BaseService:  newBaseService(options...),
		mortgageRepo: mortgageRepo,
	}
}

var _ portssvc.MortgageSvcFacade = (*mortgageService)(nil)

func (s *mortgageService) CreateMortgage(ctx context.Context, req dto.CreateMortgageRequest, userID string) (*domain.Mortgage, error) {
	mortgage, err := s.createMortgage(ctx, req, userID)
	metrics.RecordOperation(string(domain.AuditMortgageCreate), err)
	if err != nil {
		s.logFailure(ctx, err, "Failed to create mortgage", slog.String("property_id", req.PropertyID))
		return nil, err
	}
	s.LogInfo(ctx, "Mortgage created",
		slog.String("mortgage_id", mortgage.MortgageID),
		slog.String("property_id", mortgage.PropertyID),
		slog.Int64("monthly_payment", int64(mortgage.MonthlyPayment)))
	return mortgage, nil
}

func (s *mortgageService) createMortgage(ctx context.Context, req dto.CreateMortgageRequest, userID string) (*domain.Mortgage, error) {
	origination, err := accounting.ParseDay(req.OriginationDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid origination date %q", apperrors.ErrValidation, req.OriginationDate)
	}
	nextPayment := accounting.OnDayOfMonth(origination, 1, req.PaymentDueDay)
	if req.NextPaymentDate != "" {
		if nextPayment, err = accounting.ParseDay(req.NextPaymentDate); err != nil {
			return nil, fmt.Errorf("%w: invalid next payment date %q", apperrors.ErrValidation, req.NextPaymentDate)
		}
	}

	balance := req.OriginalAmount
	if req.CurrentBalance != nil {
		balance = *req.CurrentBalance
	}
	monthly := accounting.LevelPayment(req.OriginalAmount, req.InterestRate, req.TermMonths)
	if req.MonthlyPayment != nil {
		monthly = *req.MonthlyPayment
	}

	now := s.Clock.Now()
	mortgage := domain.Mortgage{
		MortgageID:      uuid.NewString(),
		PropertyID:      req.PropertyID,
		Lender:          strings.TrimSpace(req.Lender),
		Type:            req.Type,
		OriginalAmount:  req.OriginalAmount,
		CurrentBalance:  balance,
		InterestRate:    req.InterestRate,
		TermMonths:      req.TermMonths,
		MonthlyPayment:  monthly,
		EscrowAmount:    req.EscrowAmount,
		PaymentDueDay:   req.PaymentDueDay,
		OriginationDate: origination,
		NextPaymentDate: nextPayment,
		Status:          domain.MortgageActive,
		Version:         1,
		AuditFields:     domain.NewAuditFields(userID, now),
	}
	if balance == 0 {
		mortgage.Status = domain.MortgagePaidOff
	}
	if err := mortgage.Validate(); err != nil {
		return nil, err
	}

	audit, err := s.newAudit(userID, domain.AuditMortgageCreate, domain.EntityMortgage, mortgage.MortgageID, nil, mortgage)
	if err != nil {
		return nil, err
	}
	if err := s.mortgageRepo.SaveMortgage(ctx, mortgage, audit); err != nil {
		return nil, err
	}
	return &mortgage, nil
}

func (s *mortgageService) GetMortgage(ctx context.Context, mortgageID string) (*domain.Mortgage, error) {
	mortgage, err := s.mortgageRepo.FindMortgageByID(ctx, mortgageID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get mortgage", slog.String("mortgage_id", mortgageID))
		return nil, err
	}
	return mortgage, nil
}

func (s *mortgageService) ListMortgagePayments(ctx context.Context, mortgageID string) ([]domain.MortgagePayment, error) {
	if _, err := s.mortgageRepo.FindMortgageByID(ctx, mortgageID); err != nil {
		s.logFailure(ctx, err, "Failed to find mortgage for payment listing", slog.String("mortgage_id", mortgageID))
		return nil, err
	}
	payments, err := s.mortgageRepo.ListMortgagePayments(ctx, mortgageID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to list mortgage payments", slog.String("mortgage_id", mortgageID))
		return nil, err
	}
	if payments == nil {
		payments = []domain.MortgagePayment{}
	}
	return payments, nil
}

func (s *mortgageService) RecordMortgagePayment(ctx context.Context, mortgageID string, req dto.RecordMortgagePaymentRequest, userID string) (*domain.MortgagePayment, error) {
	payment, err := s.recordMortgagePayment(ctx, mortgageID, req, userID)
	metrics.RecordOperation(string(domain.AuditMortgagePayment), err)
	if err != nil {
		s.logFailure(ctx, err, "Failed to record mortgage payment", slog.String("mortgage_id", mortgageID))
		return nil, err
	}
	s.LogInfo(ctx, "Mortgage payment recorded",
		slog.String("mortgage_id", mortgageID),
		slog.String("mortgage_payment_id", payment.MortgagePaymentID),
		slog.Int64("principal", int64(payment.PrincipalAmount)),
		slog.Int64("remaining_balance", int64(payment.RemainingBalance)))
	return payment, nil
}

func (s *mortgageService) recordMortgagePayment(ctx context.Context, mortgageID string, req dto.RecordMortgagePaymentRequest, userID string) (*domain.MortgagePayment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive, got %d", apperrors.ErrInvalidAmount, req.Amount)
	}
	if req.PrincipalAmount < 0 || req.InterestAmount < 0 || (req.EscrowAmount != nil && *req.EscrowAmount < 0) {
		return nil, fmt.Errorf("%w: payment components cannot be negative", apperrors.ErrInvalidAmount)
	}
	paymentDate, err := accounting.ParseDay(req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment date %q", apperrors.ErrValidation, req.PaymentDate)
	}

	release, err := s.acquire(ctx, "mortgage:"+mortgageID)
	if err != nil {
		return nil, err
	}
	defer release()

	mortgage, err := s.mortgageRepo.FindMortgageByID(ctx, mortgageID)
	if err != nil {
		return nil, err
	}
	if mortgage.Status != domain.MortgageActive {
		return nil, fmt.Errorf("%w: mortgage %s is %s", apperrors.ErrInvalidStatusTransition, mortgageID, mortgage.Status)
	}

	dueDate := mortgage.NextPaymentDate
	if req.DueDate != "" {
		if dueDate, err = accounting.ParseDay(req.DueDate); err != nil {
			return nil, fmt.Errorf("%w: invalid due date %q", apperrors.ErrValidation, req.DueDate)
		}
	}

	before := *mortgage
	now := s.Clock.Now()
	mortgage.ApplyPrincipal(req.PrincipalAmount)
	mortgage.AdvanceNextPaymentDate()
	mortgage.Touch(userID, now)

	status := domain.MortgagePaymentCompleted
	if paymentDate.After(dueDate) {
		status = domain.MortgagePaymentLate
	}
	payment := domain.MortgagePayment{
		MortgagePaymentID: uuid.NewString(),
		MortgageID:        mortgageID,
		PaymentDate:       paymentDate,
		DueDate:           dueDate,
		Amount:            req.Amount,
		PrincipalAmount:   req.PrincipalAmount,
		InterestAmount:    req.InterestAmount,
		EscrowAmount:      req.EscrowAmount,
		RemainingBalance:  mortgage.CurrentBalance,
		Status:            status,
		AuditFields:       domain.NewAuditFields(userID, now),
	}

	audit, err := s.newAudit(userID, domain.AuditMortgagePayment, domain.EntityMortgage, mortgageID, before, struct {
		Mortgage domain.Mortgage        `json:"mortgage"`
		Payment  domain.MortgagePayment `json:"payment"`
	}{*mortgage, payment})
	if err != nil {
		return nil, err
	}
	if err := s.mortgageRepo.SaveMortgagePayment(ctx, *mortgage, payment, audit); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *mortgageService) GetAmortizationSchedule(ctx context.Context, mortgageID string, remainingOnly bool) ([]domain.AmortizationEntry, error) {
	mortgage, err := s.mortgageRepo.FindMortgageByID(ctx, mortgageID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find mortgage for schedule", slog.String("mortgage_id", mortgageID))
		return nil, err
	}
	entries, err := mortgageSchedule(*mortgage, remainingOnly)
	if err != nil {
		s.logFailure(ctx, err, "Failed to compute amortization schedule", slog.String("mortgage_id", mortgageID))
		return nil, err
	}
	return entries, nil
}

func (s *mortgageService) ComputeSchedule(ctx context.Context, req dto.AmortizationScheduleRequest) ([]domain.AmortizationEntry, error) {
	start, err := accounting.ParseDay(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, req.StartDate)
	}
	entries, err := accounting.ComputeSchedule(req.Principal, req.InterestRate, req.TermMonths, start, req.FromBalance)
	if err != nil {
		s.logFailure(ctx, err, "Failed to compute amortization schedule")
		return nil, err
	}
	return entries, nil
}

// mortgageSchedule runs the amortization for a stored mortgage. Only fixed-rate loans amortize; other
// products return ErrInvalidType. The full schedule starts on the first due day after origination; the
// remaining one starts at NextPaymentDate from CurrentBalance and ends on the last period of the term.
// Entries are dated on PaymentDueDay so a clamped start (e.g. Feb 28 for day 31) does not drag later months.
func mortgageSchedule(m domain.Mortgage, remainingOnly bool) ([]domain.AmortizationEntry, error) {
	if !m.Type.Amortizes() {
		return nil, fmt.Errorf("%w: %s mortgages have no level-payment schedule", apperrors.ErrInvalidType, m.Type)
	}
	firstDue := accounting.OnDayOfMonth(m.OriginationDate, 1, m.PaymentDueDay)
	start := firstDue

	var entries []domain.AmortizationEntry
	var err error
	if remainingOnly {
		start = m.NextPaymentDate
		periodsLeft := m.TermMonths - accounting.MonthsBetween(firstDue, m.NextPaymentDate)
		entries, err = accounting.ComputeRemainingSchedule(m.OriginalAmount, m.InterestRate, m.TermMonths, start, m.CurrentBalance, periodsLeft)
	} else {
		entries, err = accounting.ComputeSchedule(m.OriginalAmount, m.InterestRate, m.TermMonths, start, nil)
	}
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].PaymentDate = accounting.OnDayOfMonth(start, i, m.PaymentDueDay)
	}
	return entries, nil
}
