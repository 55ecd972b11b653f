package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openCharge(id string, amount accounting.Cents, due time.Time, seq int64) domain.Charge {
	c := domain.Charge{ChargeID: id, Amount: amount, DueDate: due, Sequence: seq}
	c.RefreshStatus()
	return c
}

func TestAllocatePayment_OldestFirst(t *testing.T) {
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	charges := []domain.Charge{
		openCharge("mar", 10_000, jan.AddDate(0, 2, 0), 3),
		openCharge("jan", 10_000, jan, 1),
		openCharge("feb", 10_000, jan.AddDate(0, 1, 0), 2),
	}

	allocations, touched, err := domain.AllocatePayment(charges, 15_000)
	require.NoError(t, err)
	assert.Equal(t, []domain.Allocation{
		{ChargeID: "jan", Amount: 10_000},
		{ChargeID: "feb", Amount: 5_000},
	}, allocations)

	require.Len(t, touched, 2)
	assert.Equal(t, domain.ChargePaid, touched[0].Status)
	assert.Equal(t, domain.ChargePartial, touched[1].Status)
	assert.Equal(t, accounting.Cents(5_000), touched[1].PaidAmount)

	// the caller's slice is untouched
	assert.Equal(t, accounting.Cents(0), charges[1].PaidAmount)
	assert.Equal(t, "mar", charges[0].ChargeID)
}

func TestAllocatePayment_ResidualStaysUnapplied(t *testing.T) {
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	partial := openCharge("a", 10_000, due, 1)
	require.NoError(t, partial.ApplyPayment(4_000))

	allocations, touched, err := domain.AllocatePayment([]domain.Charge{partial}, 9_000)
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, accounting.Cents(6_000), allocations[0].Amount)
	assert.Equal(t, accounting.Cents(10_000), touched[0].PaidAmount)

	p := domain.Payment{Amount: 9_000, AppliedTo: allocations}
	assert.Equal(t, accounting.Cents(6_000), p.AppliedTotal())
	assert.Equal(t, accounting.Cents(3_000), p.Unapplied())
}

func TestAllocatePayment_SkipsSettledCharges(t *testing.T) {
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	paid := openCharge("paid", 500, due, 1)
	require.NoError(t, paid.ApplyPayment(500))
	voided := openCharge("void", 500, due, 2)
	require.NoError(t, voided.Void("billed twice", due))

	allocations, touched, err := domain.AllocatePayment([]domain.Charge{paid, voided}, 100)
	require.NoError(t, err)
	assert.Empty(t, allocations)
	assert.Empty(t, touched)
}

func TestAllocatePayment_RejectsNonPositive(t *testing.T) {
	_, _, err := domain.AllocatePayment(nil, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}
