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

const defaultChargePageSize = 50

// chargeService implements the Charge Ledger: posting, voiding and listing charges.
type chargeService struct {
	BaseService
	chargeRepo portsrepo.ChargeRepositoryFacade
	leaseRepo  portsrepo.LeaseReader
}

// NewChargeService creates a new charge service.
func NewChargeService(chargeRepo portsrepo.ChargeRepositoryFacade, leaseRepo portsrepo.LeaseReader, options ...ServiceOption) portssvc.ChargeSvcFacade {
	return &chargeService{
		BaseService: newBaseService(options...),
		chargeRepo:  chargeRepo,
		leaseRepo:   leaseRepo,
	}
}

var _ portssvc.ChargeSvcFacade = (*chargeService)(nil)

func (s *chargeService) CreateCharge(ctx context.Context, leaseID string, req dto.CreateChargeRequest, userID string) (*domain.Charge, error) {
	charge, err := s.createCharge(ctx, leaseID, req, userID)
	metrics.RecordOperation(string(domain.AuditChargeCreate), err)
	if err != nil {
		s.logFailure(ctx, err, "Failed to create charge", slog.String("lease_id", leaseID))
		return nil, err
	}
	s.LogInfo(ctx, "Charge created",
		slog.String("charge_id", charge.ChargeID),
		slog.String("lease_id", leaseID),
		slog.Int64("amount", int64(charge.Amount)))
	return charge, nil
}

func (s *chargeService) createCharge(ctx context.Context, leaseID string, req dto.CreateChargeRequest, userID string) (*domain.Charge, error) {
	if _, err := s.leaseRepo.FindLeaseByID(ctx, leaseID); err != nil {
		return nil, err
	}

	dueDate, err := accounting.ParseDay(req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date %q", apperrors.ErrValidation, req.DueDate)
	}
	period := domain.BillingPeriod(req.Period)
	if period == "" {
		period = domain.PeriodOf(dueDate)
	}

	charge, err := domain.NewCharge(uuid.NewString(), leaseID, req.Type, req.Amount, dueDate, period, strings.TrimSpace(req.Description))
	if err != nil {
		return nil, err
	}
	charge.AuditFields = domain.NewAuditFields(userID, s.Clock.Now())
	charge.Version = 1

	audit, err := s.newAudit(userID, domain.AuditChargeCreate, domain.EntityCharge, charge.ChargeID, nil, charge)
	if err != nil {
		return nil, err
	}
	return s.chargeRepo.SaveCharge(ctx, charge, audit)
}

func (s *chargeService) VoidCharge(ctx context.Context, chargeID string, req dto.VoidChargeRequest, userID string) (*domain.Charge, error) {
	charge, err := s.voidCharge(ctx, chargeID, req, userID)
	metrics.RecordOperation(string(domain.AuditChargeVoid), err)
	if err != nil {
		s.logFailure(ctx, err, "Failed to void charge", slog.String("charge_id", chargeID))
		return nil, err
	}
	s.LogInfo(ctx, "Charge voided", slog.String("charge_id", chargeID), slog.Int64("paid_amount", int64(charge.PaidAmount)))
	return charge, nil
}

func (s *chargeService) voidCharge(ctx context.Context, chargeID string, req dto.VoidChargeRequest, userID string) (*domain.Charge, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a void reason is required", apperrors.ErrValidation)
	}

	charge, err := s.chargeRepo.FindChargeByID(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	charge.RefreshStatus()
	before := *charge

	now := s.Clock.Now()
	if err := charge.Void(reason, now); err != nil {
		return nil, err
	}
	charge.Touch(userID, now)

	audit, err := s.newAudit(userID, domain.AuditChargeVoid, domain.EntityCharge, chargeID, before, charge)
	if err != nil {
		return nil, err
	}
	if err := s.chargeRepo.SaveVoidedCharge(ctx, *charge, audit); err != nil {
		return nil, err
	}
	charge.Version++
	return charge, nil
}

func (s *chargeService) GetCharge(ctx context.Context, chargeID string) (*domain.Charge, error) {
	charge, err := s.chargeRepo.FindChargeByID(ctx, chargeID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get charge", slog.String("charge_id", chargeID))
		return nil, err
	}
	charge.RefreshStatus()
	return charge, nil
}

func (s *chargeService) ListChargesByLease(ctx context.Context, leaseID string, params dto.ListChargesParams) (*dto.ListChargesResponse, error) {
	if _, err := s.leaseRepo.FindLeaseByID(ctx, leaseID); err != nil {
		s.logFailure(ctx, err, "Failed to find lease for charge listing", slog.String("lease_id", leaseID))
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultChargePageSize
	}
	filter := domain.ChargeFilter{}
	for _, st := range params.Status {
		filter.Statuses = append(filter.Statuses, domain.ChargeStatus(st))
	}

	charges, nextToken, err := s.chargeRepo.ListChargesByLease(ctx, leaseID, filter, limit, params.NextToken)
	if err != nil {
		s.logFailure(ctx, err, "Failed to list charges", slog.String("lease_id", leaseID))
		return nil, err
	}
	if charges == nil {
		charges = []domain.Charge{}
	}
	return &dto.ListChargesResponse{Charges: charges, NextToken: nextToken}, nil
}
