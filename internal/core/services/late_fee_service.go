package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/platform/metrics"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// lateFeeService implements the Late Fee Assessor and the policy store behind it.
type lateFeeService struct {
	BaseService
	chargeRepo portsrepo.ChargeRepositoryFacade
	leaseRepo  portsrepo.LeaseReader
	policyRepo portsrepo.LateFeePolicyRepository
}

// NewLateFeeService creates a new late-fee service.
func NewLateFeeService(chargeRepo portsrepo.ChargeRepositoryFacade, leaseRepo portsrepo.LeaseReader, policyRepo portsrepo.LateFeePolicyRepository, options ...ServiceOption) portssvc.LateFeeSvcFacade {
	return &lateFeeService{
		BaseService: newBaseService(options...),
		chargeRepo:  chargeRepo,
		leaseRepo:   leaseRepo,
		policyRepo:  policyRepo,
	}
}

var _ portssvc.LateFeeSvcFacade = (*lateFeeService)(nil)

func (s *lateFeeService) ApplyLateFee(ctx context.Context, chargeID string, userID string) (*domain.LateFeeResult, error) {
	result, err := s.applyLateFee(ctx, chargeID, userID)
	metrics.RecordOperation(string(domain.AuditLateFeeApply), err)
	if err != nil {
		s.logFailure(ctx, err, "Late fee not applied", slog.String("charge_id", chargeID))
		return nil, err
	}
	metrics.LateFeeCentsAssessed.Add(float64(result.LateFeeAmount))
	s.LogInfo(ctx, "Late fee applied",
		slog.String("charge_id", chargeID),
		slog.String("late_fee_charge_id", result.LateFeeChargeID),
		slog.Int64("amount", int64(result.LateFeeAmount)))
	return result, nil
}

func (s *lateFeeService) applyLateFee(ctx context.Context, chargeID string, userID string) (*domain.LateFeeResult, error) {
	release, err := s.acquire(ctx, "late-fee:"+chargeID)
	if err != nil {
		return nil, err
	}
	defer release()

	charge, err := s.chargeRepo.FindChargeByID(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	charge.RefreshStatus()

	lease, err := s.leaseRepo.FindLeaseByID(ctx, charge.LeaseID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsFor(ctx, lease.EntityID)
	if err != nil {
		return nil, err
	}

	if !settings.Enabled {
		return nil, fmt.Errorf("%w: late fees are disabled for entity %s", apperrors.ErrFeatureDisabled, lease.EntityID)
	}
	if charge.Type == domain.ChargeTypeLateFee {
		return nil, fmt.Errorf("%w: charge %s is itself a late fee", apperrors.ErrInvalidType, chargeID)
	}
	if !charge.IsOutstanding() {
		return nil, fmt.Errorf("%w: charge %s is %s", apperrors.ErrInvalidStatus, chargeID, charge.Status)
	}
	if charge.LateFeeAppliedAt != nil {
		return nil, fmt.Errorf("%w: charge %s", apperrors.ErrAlreadyApplied, chargeID)
	}
	today := s.Clock.Today()
	if daysLate := accounting.DaysBetween(charge.DueDate, today); daysLate < settings.GraceDays {
		return nil, fmt.Errorf("%w: charge %s is %d days past due, grace is %d", apperrors.ErrGracePeriodNotElapsed, chargeID, daysLate, settings.GraceDays)
	}

	amount := settings.ComputeFee(charge.Balance())
	if amount <= 0 {
		return nil, fmt.Errorf("%w: charge %s", apperrors.ErrZeroFee, chargeID)
	}

	now := s.Clock.Now()
	fee, err := domain.NewCharge(uuid.NewString(), charge.LeaseID, domain.ChargeTypeLateFee, amount, today, charge.Period,
		fmt.Sprintf("Late fee on %s charge due %s", charge.Type, charge.DueDate.Format(accounting.DateLayout)))
	if err != nil {
		return nil, err
	}
	linkedID := charge.ChargeID
	fee.LinkedChargeID = &linkedID
	fee.AuditFields = domain.NewAuditFields(userID, now)
	fee.Version = 1

	before := *charge
	if err := charge.MarkLateFeeApplied(fee.ChargeID, now); err != nil {
		return nil, err
	}
	charge.Touch(userID, now)

	audit, err := s.newAudit(userID, domain.AuditLateFeeApply, domain.EntityCharge, chargeID, before, struct {
		Original domain.Charge `json:"original"`
		LateFee  domain.Charge `json:"lateFee"`
	}{*charge, fee})
	if err != nil {
		return nil, err
	}

	saved, err := s.chargeRepo.SaveLateFee(ctx, *charge, fee, audit)
	if err != nil {
		return nil, err
	}
	return &domain.LateFeeResult{LateFeeChargeID: saved.ChargeID, LateFeeAmount: saved.Amount}, nil
}

// settingsFor returns the stored policy, falling back to the disabled default.
func (s *lateFeeService) settingsFor(ctx context.Context, entityID string) (*domain.LateFeeSettings, error) {
	settings, err := s.policyRepo.FindLateFeeSettings(ctx, entityID)
	if errors.Is(err, apperrors.ErrNotFound) {
		def := domain.DefaultLateFeeSettings(entityID)
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *lateFeeService) GetLateFeeSettings(ctx context.Context, entityID string) (*domain.LateFeeSettings, error) {
	settings, err := s.settingsFor(ctx, entityID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to load late fee settings", slog.String("entity_id", entityID))
		return nil, err
	}
	return settings, nil
}

func (s *lateFeeService) UpsertLateFeeSettings(ctx context.Context, entityID string, req dto.LateFeeSettingsRequest, userID string) (*domain.LateFeeSettings, error) {
	settings, err := s.upsertLateFeeSettings(ctx, entityID, req, userID)
	metrics.RecordOperation(string(domain.AuditLateFeePolicyUpdate), err)
	if err != nil {
		s.logFailure(ctx, err, "Failed to update late fee settings", slog.String("entity_id", entityID))
		return nil, err
	}
	s.LogInfo(ctx, "Late fee settings updated",
		slog.String("entity_id", entityID),
		slog.Bool("enabled", settings.Enabled),
		slog.String("type", string(settings.Type)))
	return settings, nil
}

func (s *lateFeeService) upsertLateFeeSettings(ctx context.Context, entityID string, req dto.LateFeeSettingsRequest, userID string) (*domain.LateFeeSettings, error) {
	if entityID == "" {
		return nil, fmt.Errorf("%w: entity id is required", apperrors.ErrValidation)
	}

	existing, err := s.policyRepo.FindLateFeeSettings(ctx, entityID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := s.Clock.Now()
	settings := domain.LateFeeSettings{
		EntityID:   entityID,
		Enabled:    req.Enabled,
		Type:       req.Type,
		FlatAmount: req.FlatAmount,
		Percentage: req.Percentage,
		MaxAmount:  req.MaxAmount,
		GraceDays:  domain.DefaultGraceDays,
	}
	if req.GraceDays != nil {
		settings.GraceDays = *req.GraceDays
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	var before any
	if existing != nil {
		before = *existing
		settings.AuditFields = existing.AuditFields
		settings.Touch(userID, now)
	} else {
		settings.AuditFields = domain.NewAuditFields(userID, now)
	}

	audit, err := s.newAudit(userID, domain.AuditLateFeePolicyUpdate, domain.EntityLateFeeSettings, entityID, before, settings)
	if err != nil {
		return nil, err
	}
	if err := s.policyRepo.SaveLateFeeSettings(ctx, settings, audit); err != nil {
		return nil, err
	}
	return &settings, nil
}
