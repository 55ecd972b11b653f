package dto

import (
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreateMortgageRequest defines the data needed to register a mortgage.
type CreateMortgageRequest struct {
	PropertyID      string              `json:"propertyID" binding:"required"`
	Lender          string              `json:"lender" binding:"required"`
	Type            domain.MortgageType `json:"type" binding:"required,oneof=fixed adjustable interest_only balloon"`
	OriginalAmount  accounting.Cents    `json:"originalAmount" binding:"required"`
	CurrentBalance  *accounting.Cents   `json:"currentBalance"` // defaults to OriginalAmount
	InterestRate    decimal.Decimal     `json:"interestRate"`   // annual percent
	TermMonths      int                 `json:"termMonths" binding:"required,min=1,max=600"`
	MonthlyPayment  *accounting.Cents   `json:"monthlyPayment"` // derived from the amortization formula when omitted
	EscrowAmount    *accounting.Cents   `json:"escrowAmount"`
	PaymentDueDay   int                 `json:"paymentDueDay" binding:"required,min=1,max=31"`
	OriginationDate string              `json:"originationDate" binding:"required,datetime=2006-01-02"`
	NextPaymentDate string              `json:"nextPaymentDate" binding:"omitempty,datetime=2006-01-02"` // defaults to the due day of the month after origination
}

// RecordMortgagePaymentRequest defines a single servicing payment.
type RecordMortgagePaymentRequest struct {
	PaymentDate     string            `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	DueDate         string            `json:"dueDate" binding:"omitempty,datetime=2006-01-02"` // defaults to the mortgage's next payment date
	Amount          accounting.Cents  `json:"amount"`
	PrincipalAmount accounting.Cents  `json:"principalAmount"`
	InterestAmount  accounting.Cents  `json:"interestAmount"`
	EscrowAmount    *accounting.Cents `json:"escrowAmount"`
}

// AmortizationScheduleRequest asks for an ad-hoc schedule without a stored mortgage.
type AmortizationScheduleRequest struct {
	Principal    accounting.Cents  `json:"principal" binding:"required"`
	InterestRate decimal.Decimal   `json:"interestRate"`
	TermMonths   int               `json:"termMonths" binding:"required,min=1,max=600"`
	StartDate    string            `json:"startDate" binding:"required,datetime=2006-01-02"`
	FromBalance  *accounting.Cents `json:"fromBalance"`
}

// AmortizationScheduleResponse is a schedule plus its totals.
type AmortizationScheduleResponse struct {
	Entries        []domain.AmortizationEntry `json:"entries"`
	TotalPayments  int                        `json:"totalPayments"`
	TotalInterest  accounting.Cents           `json:"totalInterest"`
	TotalPrincipal accounting.Cents           `json:"totalPrincipal"`
	PayoffDate     *time.Time                 `json:"payoffDate,omitempty"`
}

// ToAmortizationScheduleResponse totals a computed schedule.
func ToAmortizationScheduleResponse(entries []domain.AmortizationEntry) AmortizationScheduleResponse {
	totals := accounting.SummarizeSchedule(entries)
	if entries == nil {
		entries = []domain.AmortizationEntry{}
	}
	return AmortizationScheduleResponse{
		Entries:        entries,
		TotalPayments:  totals.Payments,
		TotalInterest:  totals.TotalInterest,
		TotalPrincipal: totals.TotalPrincipal,
		PayoffDate:     totals.PayoffDate,
	}
}

// ListMortgagePaymentsResponse wraps a mortgage's payment history.
type ListMortgagePaymentsResponse struct {
	Payments []domain.MortgagePayment `json:"payments"`
}
