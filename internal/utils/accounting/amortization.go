package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ratePrecision bounds the scale of intermediate rate products so (1+r)^n stays cheap to compute.
const ratePrecision = 20

// MaxTermMonths is the longest loan term the engine amortizes (50 years).
const MaxTermMonths = 600

var monthsPerYearPercent = decimal.NewFromInt(1200)

// AmortizationEntry is one period of a level-payment schedule. It is derived, never persisted.
type AmortizationEntry struct {
	PaymentNumber      int       `json:"paymentNumber"`
	PaymentDate        time.Time `json:"paymentDate"`
	Payment            Cents     `json:"payment"`
	Principal          Cents     `json:"principal"`
	Interest           Cents     `json:"interest"`
	Balance            Cents     `json:"balance"`
	CumulativeInterest Cents     `json:"cumulativeInterest"`
}

// ScheduleTotals summarises a computed schedule.
type ScheduleTotals struct {
	Payments       int
	TotalInterest  Cents
	TotalPrincipal Cents
	PayoffDate     *time.Time
}

// MonthlyRate converts an annual percentage (6.25 for 6.25%) into a monthly fraction.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.DivRound(monthsPerYearPercent, ratePrecision)
}

// LevelPayment returns the fixed principal+interest payment that retires principal over
// termMonths: P = principal * r / (1 - (1+r)^-n), rounded half-up to the cent.
// It returns 0 when the term is outside 1..MaxTermMonths.
func LevelPayment(principal Cents, annualRatePercent decimal.Decimal, termMonths int) Cents {
	if termMonths <= 0 || termMonths > MaxTermMonths || principal <= 0 {
		return 0
	}
	r := MonthlyRate(annualRatePercent)
	if r.IsZero() {
		return RoundHalfUp(principal.Decimal().DivRound(decimal.NewFromInt(int64(termMonths)), ratePrecision))
	}

	onePlusR := decimal.NewFromInt(1).Add(r)
	growth := decimal.NewFromInt(1)
	for i := 0; i < termMonths; i++ {
		growth = growth.Mul(onePlusR).Round(ratePrecision)
	}
	// r*f/(f-1) is the same quantity as r/(1-f^-1) without a second division.
	numerator := principal.Decimal().Mul(r).Mul(growth)
	denominator := growth.Sub(decimal.NewFromInt(1))
	return RoundHalfUp(numerator.DivRound(denominator, ratePrecision))
}

// ComputeSchedule builds a level-payment amortization schedule.
//
// The level payment is always derived from the original (principal, rate, term). When fromBalance
// is nil the schedule starts at principal and runs the full term. When fromBalance is given the same
// payment is applied to that balance until it is retired, capped at termMonths periods.
// startDate is the date of the first listed payment; later entries fall on the same day of month.
// Every period pays principal = payment - interest; only the period that reaches the end of the term
// takes whatever balance is left, so rounding drift lands there.
func ComputeSchedule(principal Cents, annualRatePercent decimal.Decimal, termMonths int, startDate time.Time, fromBalance *Cents) ([]AmortizationEntry, error) {
	if err := validateTerms(principal, annualRatePercent, termMonths); err != nil {
		return nil, err
	}
	balance := principal
	if fromBalance != nil {
		if *fromBalance < 0 {
			return nil, fmt.Errorf("%w: balance cannot be negative", apperrors.ErrInvalidAmount)
		}
		balance = *fromBalance
	}
	return amortize(principal, annualRatePercent, termMonths, startDate, balance, termMonths), nil
}

// ComputeRemainingSchedule resumes a schedule part way through its term. periodsLeft is the number of
// payments still due on the original term; the last of them retires whatever balance remains, which
// makes the result identical to the tail of the full schedule when balance is on track.
// A loan past maturity (periodsLeft < 1) is due in a single period.
func ComputeRemainingSchedule(principal Cents, annualRatePercent decimal.Decimal, termMonths int, startDate time.Time, balance Cents, periodsLeft int) ([]AmortizationEntry, error) {
	if err := validateTerms(principal, annualRatePercent, termMonths); err != nil {
		return nil, err
	}
	if balance < 0 {
		return nil, fmt.Errorf("%w: balance cannot be negative", apperrors.ErrInvalidAmount)
	}
	periodsLeft = min(max(periodsLeft, 1), termMonths)
	return amortize(principal, annualRatePercent, termMonths, startDate, balance, periodsLeft), nil
}

func validateTerms(principal Cents, annualRatePercent decimal.Decimal, termMonths int) error {
	if principal <= 0 {
		return fmt.Errorf("%w: principal must be positive", apperrors.ErrInvalidAmount)
	}
	if termMonths <= 0 || termMonths > MaxTermMonths {
		return fmt.Errorf("%w: term must be between 1 and %d months", apperrors.ErrValidation, MaxTermMonths)
	}
	if annualRatePercent.IsNegative() {
		return fmt.Errorf("%w: interest rate cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

func amortize(principal Cents, annualRatePercent decimal.Decimal, termMonths int, startDate time.Time, balance Cents, periods int) []AmortizationEntry {
	r := MonthlyRate(annualRatePercent)
	payment := LevelPayment(principal, annualRatePercent, termMonths)
	first := Day(startDate)
	dayOfMonth := first.Day()

	entries := make([]AmortizationEntry, 0, periods)
	var cumulative Cents
	for n := 1; balance > 0 && n <= periods; n++ {
		interest := RoundHalfUp(balance.Decimal().Mul(r))
		principalPortion := payment - interest
		if principalPortion < 0 {
			principalPortion = 0
		}
		if n == periods || principalPortion >= balance {
			principalPortion = balance
		}

		balance -= principalPortion
		cumulative += interest
		entries = append(entries, AmortizationEntry{
			PaymentNumber:      n,
			PaymentDate:        OnDayOfMonth(first, n-1, dayOfMonth),
			Payment:            principalPortion + interest,
			Principal:          principalPortion,
			Interest:           interest,
			Balance:            balance,
			CumulativeInterest: cumulative,
		})
	}
	return entries
}

// SummarizeSchedule totals a schedule produced by ComputeSchedule.
func SummarizeSchedule(entries []AmortizationEntry) ScheduleTotals {
	totals := ScheduleTotals{Payments: len(entries)}
	for _, e := range entries {
		totals.TotalInterest += e.Interest
		totals.TotalPrincipal += e.Principal
	}
	if len(entries) > 0 {
		payoff := entries[len(entries)-1].PaymentDate
		totals.PayoffDate = &payoff
	}
	return totals
}
