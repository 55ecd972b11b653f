package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaseChargeSummary(t *testing.T) {
	f := newLedgerFixture(day("2025-03-15"))
	ctx := context.Background()

	f.charge(t, 10_000, "2025-01-01")
	f.charge(t, 10_000, "2025-02-01")
	f.charge(t, 10_000, "2025-04-01")
	voided := f.charge(t, 3_000, "2025-03-01")

	_, err := f.svc.Payment.RecordPayment(ctx, testLeaseID, dto.RecordPaymentRequest{
		TenantID: testTenantID, Amount: 14_000, Method: json.RawMessage(`{"type":"cash"}`),
	}, testUserID)
	require.NoError(t, err)
	// feb takes the remaining 6000, the march charge 1000
	_, err = f.svc.Payment.RecordPayment(ctx, testLeaseID, dto.RecordPaymentRequest{
		TenantID: testTenantID, Amount: 7_000, Method: json.RawMessage(`{"type":"cash"}`),
	}, testUserID)
	require.NoError(t, err)
	_, err = f.svc.Charge.VoidCharge(ctx, voided.ChargeID, dto.VoidChargeRequest{Reason: "waived"}, testUserID)
	require.NoError(t, err)

	summary, err := f.svc.Summary.LeaseChargeSummary(ctx, testLeaseID)
	require.NoError(t, err)

	assert.Equal(t, day("2025-03-15"), summary.AsOf)
	assert.Equal(t, 2, summary.PaidCount)
	assert.Equal(t, 0, summary.PartialCount)
	assert.Equal(t, 1, summary.OpenCount)
	assert.Equal(t, 1, summary.VoidCount)
	assert.Equal(t, accounting.Cents(30_000), summary.TotalCharged)
	assert.Equal(t, accounting.Cents(21_000), summary.TotalPaid)
	assert.Equal(t, accounting.Cents(10_000), summary.OpenBalance)
	assert.Equal(t, accounting.Cents(0), summary.OverdueBalance)
	assert.Equal(t, 0, summary.OverdueCount)

	_, err = f.svc.Summary.LeaseChargeSummary(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrLeaseNotFound)
}

func TestLeaseChargeSummary_Overdue(t *testing.T) {
	f := newLedgerFixture(day("2025-03-15"))
	ctx := context.Background()
	f.charge(t, 10_000, "2025-02-01")
	f.charge(t, 5_000, "2025-03-15") // due today is not overdue
	_, err := f.svc.Payment.RecordPayment(ctx, testLeaseID, dto.RecordPaymentRequest{
		TenantID: testTenantID, Amount: 4_000, Method: json.RawMessage(`{"type":"cash"}`),
	}, testUserID)
	require.NoError(t, err)

	summary, err := f.svc.Summary.LeaseChargeSummary(ctx, testLeaseID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.PartialCount)
	assert.Equal(t, 1, summary.OpenCount)
	assert.Equal(t, accounting.Cents(11_000), summary.OpenBalance)
	assert.Equal(t, accounting.Cents(6_000), summary.OverdueBalance)
	assert.Equal(t, 1, summary.OverdueCount)
}

func TestMortgageSummary(t *testing.T) {
	f := newLedgerFixture(day("2024-03-20"))
	ctx := context.Background()
	balance := accounting.Cents(75_000)
	m, err := f.svc.Mortgage.CreateMortgage(ctx, dto.CreateMortgageRequest{
		PropertyID:      "property-1",
		Lender:          "Credit Union",
		Type:            domain.MortgageFixed,
		OriginalAmount:  100_000,
		CurrentBalance:  &balance,
		InterestRate:    decimal.Zero,
		TermMonths:      10,
		PaymentDueDay:   1,
		OriginationDate: "2024-01-01",
		NextPaymentDate: "2024-04-01",
	}, testUserID)
	require.NoError(t, err)

	summary, err := f.svc.Summary.MortgageSummary(ctx, m.MortgageID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.25").Equal(summary.PercentPaidOff), summary.PercentPaidOff.String())
	assert.Equal(t, 12, summary.DaysUntilPayment)
	assert.Equal(t, 8, summary.RemainingPayments) // 10_000 a month against 75_000
	assert.Equal(t, accounting.Cents(0), summary.RemainingInterest)
	require.NotNil(t, summary.PayoffDate)
	assert.Equal(t, day("2024-11-01"), *summary.PayoffDate)

	_, err = f.svc.Summary.MortgageSummary(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrMortgageNotFound)
}
