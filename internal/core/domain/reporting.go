package domain

import (
	"time"

	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// LeaseChargeSummary is a read-only roll-up of a lease's charges as of a day.
type LeaseChargeSummary struct {
	LeaseID        string           `json:"leaseID"`
	AsOf           time.Time        `json:"asOf"`
	OpenBalance    accounting.Cents `json:"openBalance"`
	OverdueBalance accounting.Cents `json:"overdueBalance"`
	TotalCharged   accounting.Cents `json:"totalCharged"` // excludes voided charges
	TotalPaid      accounting.Cents `json:"totalPaid"`    // includes payments on charges voided later
	OpenCount      int              `json:"openCount"`
	PartialCount   int              `json:"partialCount"`
	PaidCount      int              `json:"paidCount"`
	VoidCount      int              `json:"voidCount"`
	OverdueCount   int              `json:"overdueCount"`
}

// MortgageSummary is a read-only servicing snapshot of a mortgage.
type MortgageSummary struct {
	MortgageID        string           `json:"mortgageID"`
	AsOf              time.Time        `json:"asOf"`
	Status            MortgageStatus   `json:"status"`
	OriginalAmount    accounting.Cents `json:"originalAmount"`
	CurrentBalance    accounting.Cents `json:"currentBalance"`
	PercentPaidOff    decimal.Decimal  `json:"percentPaidOff"` // fraction, 0.2500 = 25%
	NextPaymentDate   time.Time        `json:"nextPaymentDate"`
	DaysUntilPayment  int              `json:"daysUntilPayment"`
	RemainingPayments int              `json:"remainingPayments"`
	RemainingInterest accounting.Cents `json:"remainingInterest"`
	PayoffDate        *time.Time       `json:"payoffDate,omitempty"`
}
