package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
)

// summaryService builds read-only rollups. Reads are not transactional with the writes that
// produced them, so results may be slightly stale and must not drive a further mutation.
type summaryService struct {
	BaseService
	chargeRepo   portsrepo.ChargeReader
	leaseRepo    portsrepo.LeaseReader
	mortgageRepo portsrepo.MortgageReader
}

// NewSummaryService creates a new summary service.
func NewSummaryService(chargeRepo portsrepo.ChargeReader, leaseRepo portsrepo.LeaseReader, mortgageRepo portsrepo.MortgageReader, options ...ServiceOption) portssvc.SummarySvc {
	return &summaryService{
		BaseService:  newBaseService(options...),
		chargeRepo:   chargeRepo,
		leaseRepo:    leaseRepo,
		mortgageRepo: mortgageRepo,
	}
}

var _ portssvc.SummarySvc = (*summaryService)(nil)

func (s *summaryService) LeaseChargeSummary(ctx context.Context, leaseID string) (*domain.LeaseChargeSummary, error) {
	if _, err := s.leaseRepo.FindLeaseByID(ctx, leaseID); err != nil {
		s.logFailure(ctx, err, "Failed to find lease for summary", slog.String("lease_id", leaseID))
		return nil, err
	}
	charges, err := s.chargeRepo.FindChargesByLease(ctx, leaseID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to load charges for summary", slog.String("lease_id", leaseID))
		return nil, err
	}

	today := s.Clock.Today()
	summary := &domain.LeaseChargeSummary{LeaseID: leaseID, AsOf: today}
	for _, c := range charges {
		c.RefreshStatus()
		summary.TotalPaid += c.PaidAmount

		switch c.Status {
		case domain.ChargeVoid:
			summary.VoidCount++
			continue
		case domain.ChargeOpen:
			summary.OpenCount++
		case domain.ChargePartial:
			summary.PartialCount++
		case domain.ChargePaid:
			summary.PaidCount++
		}
		summary.TotalCharged += c.Amount

		if c.IsOutstanding() {
			summary.OpenBalance += c.Balance()
			if c.IsOverdue(today) {
				summary.OverdueBalance += c.Balance()
				summary.OverdueCount++
			}
		}
	}
	return summary, nil
}

func (s *summaryService) MortgageSummary(ctx context.Context, mortgageID string) (*domain.MortgageSummary, error) {
	m, err := s.mortgageRepo.FindMortgageByID(ctx, mortgageID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find mortgage for summary", slog.String("mortgage_id", mortgageID))
		return nil, err
	}

	var totals accounting.ScheduleTotals
	if m.Type.Amortizes() {
		remaining, err := mortgageSchedule(*m, true)
		if err != nil {
			s.logFailure(ctx, err, "Failed to compute remaining schedule", slog.String("mortgage_id", mortgageID))
			return nil, err
		}
		totals = accounting.SummarizeSchedule(remaining)
	}

	today := s.Clock.Today()
	return &domain.MortgageSummary{
		MortgageID:        m.MortgageID,
		AsOf:              today,
		Status:            m.Status,
		OriginalAmount:    m.OriginalAmount,
		CurrentBalance:    m.CurrentBalance,
		PercentPaidOff:    m.PercentPaidOff(),
		NextPaymentDate:   m.NextPaymentDate,
		DaysUntilPayment:  accounting.DaysBetween(today, m.NextPaymentDate),
		RemainingPayments: totals.Payments,
		RemainingInterest: totals.TotalInterest,
		PayoffDate:        totals.PayoffDate,
	}, nil
}
