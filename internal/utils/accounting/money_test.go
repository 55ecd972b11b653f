package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want Cents
	}{
		{"0.5", 1},
		{"1.49", 1},
		{"2.5", 3},
		{"149999.9999", 150000},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundHalfUp(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, Cents(5000), PercentOf(100_000, decimal.NewFromInt(5)))
	// 12345 * 2.5% = 308.625 -> 309
	assert.Equal(t, Cents(309), PercentOf(12_345, decimal.RequireFromString("2.5")))
	assert.Equal(t, Cents(0), PercentOf(10, decimal.RequireFromString("1")))
}

func TestCentsStringAndParse(t *testing.T) {
	assert.Equal(t, "123.45", Cents(12345).String())
	assert.Equal(t, "0.05", Cents(5).String())

	c, err := ParseCents("1798.65")
	require.NoError(t, err)
	assert.Equal(t, Cents(179865), c)

	_, err = ParseCents("1.234")
	assert.Error(t, err)
	_, err = ParseCents("abc")
	assert.Error(t, err)
}

func TestDays(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	late := time.Date(2025, 3, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Day(late))

	a := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 6, DaysBetween(a, a.AddDate(0, 0, 6)))
	assert.Equal(t, -4, DaysBetween(a, a.AddDate(0, 0, -4)))
	assert.Equal(t, time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC), AddDays(a, 5))

	_, err := ParseDay("2025-02-30")
	assert.Error(t, err)
	d, err := ParseDay("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())
}

func TestAddMonths(t *testing.T) {
	jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 1))
	assert.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 3))
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), AddMonths(jan31, -1))

	feb28 := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), OnDayOfMonth(feb28, 1, 31))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
}

func TestMonthsBetween(t *testing.T) {
	feb1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 12, MonthsBetween(feb1, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, MonthsBetween(feb1, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, MonthsBetween(feb1, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
}
