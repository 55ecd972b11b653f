package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mortgage is a row of the mortgages table.
type Mortgage struct {
	MortgageID      string          `db:"mortgage_id"`
	PropertyID      string          `db:"property_id"`
	Lender          string          `db:"lender"`
	MortgageType    string          `db:"mortgage_type"`
	OriginalAmount  int64           `db:"original_amount"`
	CurrentBalance  int64           `db:"current_balance"`
	InterestRate    decimal.Decimal `db:"interest_rate"`
	TermMonths      int             `db:"term_months"`
	MonthlyPayment  int64           `db:"monthly_payment"`
	EscrowAmount    *int64          `db:"escrow_amount"` // Nullable
	PaymentDueDay   int             `db:"payment_due_day"`
	OriginationDate time.Time       `db:"origination_date"`
	NextPaymentDate time.Time       `db:"next_payment_date"`
	Status          string          `db:"status"`
	Version         int64           `db:"version"`
	AuditFields
}

// MortgagePayment is a row of mortgage_payments.
type MortgagePayment struct {
	MortgagePaymentID string    `db:"mortgage_payment_id"`
	MortgageID        string    `db:"mortgage_id"`
	PaymentDate       time.Time `db:"payment_date"`
	DueDate           time.Time `db:"due_date"`
	Amount            int64     `db:"amount"`
	PrincipalAmount   int64     `db:"principal_amount"`
	InterestAmount    int64     `db:"interest_amount"`
	EscrowAmount      *int64    `db:"escrow_amount"` // Nullable
	RemainingBalance  int64     `db:"remaining_balance"`
	Status            string    `db:"status"`
	AuditFields
}
