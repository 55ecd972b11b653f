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
	"github.com/google/uuid"
)

// paymentService implements the Payment Allocation Engine.
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	chargeRepo  portsrepo.ChargeReader
	leaseRepo   portsrepo.LeaseReader
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, chargeRepo portsrepo.ChargeReader, leaseRepo portsrepo.LeaseReader, options ...ServiceOption) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService: newBaseService(options...),
		paymentRepo: paymentRepo,
		chargeRepo:  chargeRepo,
		leaseRepo:   leaseRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) RecordPayment(ctx context.Context, leaseID string, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	payment, err := s.recordPayment(ctx, leaseID, req, userID)
	metrics.RecordOperation(string(domain.AuditPaymentRecord), err)
	if err != nil {
		s.logFailure(ctx, err, "Failed to record payment", slog.String("lease_id", leaseID))
		return nil, err
	}

	applied := payment.AppliedTotal()
	metrics.PaymentCentsAllocated.Add(float64(applied))
	metrics.PaymentCentsUnapplied.Add(float64(payment.Unapplied()))
	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("lease_id", leaseID),
		slog.Int64("amount", int64(payment.Amount)),
		slog.Int64("applied", int64(applied)),
		slog.Int("charges_touched", len(payment.AppliedTo)))
	return payment, nil
}

func (s *paymentService) recordPayment(ctx context.Context, leaseID string, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive, got %d", apperrors.ErrInvalidAmount, req.Amount)
	}
	method, err := domain.UnmarshalPaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}
	if err := method.Validate(); err != nil {
		return nil, err
	}

	lease, err := s.leaseRepo.FindLeaseByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if !lease.HasTenant(req.TenantID) {
		return nil, fmt.Errorf("%w: tenant %s is not on lease %s", apperrors.ErrValidation, req.TenantID, leaseID)
	}

	release, err := s.acquire(ctx, "lease:"+leaseID)
	if err != nil {
		return nil, err
	}
	defer release()

	outstanding, err := s.chargeRepo.FindOutstandingChargesByLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	allocations, touched, err := domain.AllocatePayment(outstanding, req.Amount)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	for i := range touched {
		touched[i].Touch(userID, now)
	}
	if allocations == nil {
		allocations = []domain.Allocation{}
	}

	payment := domain.Payment{
		PaymentID: uuid.NewString(),
		LeaseID:   leaseID,
		TenantID:  req.TenantID,
		Amount:    req.Amount,
		Method:    method,
		AppliedTo: allocations,
		Memo:      strings.TrimSpace(req.Memo),
		CreatedAt: now,
		CreatedBy: userID,
	}

	audit, err := s.newAudit(userID, domain.AuditPaymentRecord, domain.EntityPayment, payment.PaymentID, nil, payment)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.SavePayment(ctx, payment, touched, audit); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get payment", slog.String("payment_id", paymentID))
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListPaymentsByLease(ctx context.Context, leaseID string) ([]domain.Payment, error) {
	if _, err := s.leaseRepo.FindLeaseByID(ctx, leaseID); err != nil {
		s.logFailure(ctx, err, "Failed to find lease for payment listing", slog.String("lease_id", leaseID))
		return nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByLease(ctx, leaseID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to list payments", slog.String("lease_id", leaseID))
		return nil, err
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}
