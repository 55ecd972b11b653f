package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// MortgageType is the closed set of loan products.
type MortgageType string

const (
	MortgageFixed        MortgageType = "fixed"
	MortgageAdjustable   MortgageType = "adjustable"
	MortgageInterestOnly MortgageType = "interest_only"
	MortgageBalloon      MortgageType = "balloon"
)

func (t MortgageType) Valid() bool {
	switch t {
	case MortgageFixed, MortgageAdjustable, MortgageInterestOnly, MortgageBalloon:
		return true
	}
	return false
}

// Amortizes reports whether the product follows a level-payment schedule.
func (t MortgageType) Amortizes() bool {
	return t == MortgageFixed
}

type MortgageStatus string

const (
	MortgageActive     MortgageStatus = "active"
	MortgagePaidOff    MortgageStatus = "paid_off"
	MortgageDefaulted  MortgageStatus = "defaulted"
	MortgageRefinanced MortgageStatus = "refinanced"
)

// Mortgage is the servicing record of a loan against a property.
type Mortgage struct {
	MortgageID      string            `json:"mortgageID"`
	PropertyID      string            `json:"propertyID"`
	Lender          string            `json:"lender"`
	Type            MortgageType      `json:"type"`
	OriginalAmount  accounting.Cents  `json:"originalAmount"`
	CurrentBalance  accounting.Cents  `json:"currentBalance"`
	InterestRate    decimal.Decimal   `json:"interestRate"` // annual percent, e.g. 6.25
	TermMonths      int               `json:"termMonths"`
	MonthlyPayment  accounting.Cents  `json:"monthlyPayment"` // principal + interest
	EscrowAmount    *accounting.Cents `json:"escrowAmount,omitempty"`
	PaymentDueDay   int               `json:"paymentDueDay"`
	OriginationDate time.Time         `json:"originationDate"`
	NextPaymentDate time.Time         `json:"nextPaymentDate"`
	Status          MortgageStatus    `json:"status"`
	Version         int64             `json:"version"`
	AuditFields
}

// Validate checks a mortgage before it is first stored.
func (m Mortgage) Validate() error {
	if !m.OriginalAmount.IsPositive() {
		return fmt.Errorf("%w: original amount must be positive", apperrors.ErrInvalidAmount)
	}
	if m.CurrentBalance < 0 || m.CurrentBalance > m.OriginalAmount {
		return fmt.Errorf("%w: current balance must be between 0 and the original amount", apperrors.ErrInvalidAmount)
	}
	if m.MonthlyPayment < 0 {
		return fmt.Errorf("%w: monthly payment cannot be negative", apperrors.ErrInvalidAmount)
	}
	if m.EscrowAmount != nil && *m.EscrowAmount < 0 {
		return fmt.Errorf("%w: escrow amount cannot be negative", apperrors.ErrInvalidAmount)
	}
	if m.InterestRate.IsNegative() {
		return fmt.Errorf("%w: interest rate cannot be negative", apperrors.ErrValidation)
	}
	if m.TermMonths <= 0 || m.TermMonths > accounting.MaxTermMonths {
		return fmt.Errorf("%w: term must be between 1 and %d months", apperrors.ErrValidation, accounting.MaxTermMonths)
	}
	if m.PaymentDueDay < 1 || m.PaymentDueDay > 31 {
		return fmt.Errorf("%w: payment due day must be between 1 and 31", apperrors.ErrValidation)
	}
	if !m.Type.Valid() {
		return fmt.Errorf("%w: unknown mortgage type %q", apperrors.ErrValidation, m.Type)
	}
	if m.Lender == "" || m.PropertyID == "" {
		return fmt.Errorf("%w: lender and property are required", apperrors.ErrValidation)
	}
	return nil
}

// ApplyPrincipal reduces the balance, clamping at zero. Reaching zero pays the loan off.
func (m *Mortgage) ApplyPrincipal(principal accounting.Cents) {
	m.CurrentBalance -= principal
	if m.CurrentBalance <= 0 {
		m.CurrentBalance = 0
		m.Status = MortgagePaidOff
	}
}

// AdvanceNextPaymentDate moves the next due date forward one month onto PaymentDueDay.
func (m *Mortgage) AdvanceNextPaymentDate() {
	m.NextPaymentDate = accounting.OnDayOfMonth(m.NextPaymentDate, 1, m.PaymentDueDay)
}

// PercentPaidOff is (original - current) / original as a fraction with 4 decimal places.
func (m Mortgage) PercentPaidOff() decimal.Decimal {
	if m.OriginalAmount <= 0 {
		return decimal.Zero
	}
	paid := (m.OriginalAmount - m.CurrentBalance).Decimal()
	return paid.DivRound(m.OriginalAmount.Decimal(), 4)
}

type MortgagePaymentStatus string

const (
	MortgagePaymentCompleted MortgagePaymentStatus = "completed"
	MortgagePaymentLate      MortgagePaymentStatus = "late"
)

// MortgagePayment is one recorded servicing payment. The component split is caller-supplied.
type MortgagePayment struct {
	MortgagePaymentID string                `json:"mortgagePaymentID"`
	MortgageID        string                `json:"mortgageID"`
	PaymentDate       time.Time             `json:"paymentDate"`
	DueDate           time.Time             `json:"dueDate"`
	Amount            accounting.Cents      `json:"amount"`
	PrincipalAmount   accounting.Cents      `json:"principalAmount"`
	InterestAmount    accounting.Cents      `json:"interestAmount"`
	EscrowAmount      *accounting.Cents     `json:"escrowAmount,omitempty"`
	RemainingBalance  accounting.Cents      `json:"remainingBalance"`
	Status            MortgagePaymentStatus `json:"status"`
	AuditFields
}

// AmortizationEntry is one period of a level-payment schedule.
type AmortizationEntry = accounting.AmortizationEntry
