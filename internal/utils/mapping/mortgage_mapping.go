package mapping

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
)

// ToModelMortgage converts a domain Mortgage to a model Mortgage
func ToModelMortgage(d domain.Mortgage) models.Mortgage {
	return models.Mortgage{
		MortgageID:      d.MortgageID,
		PropertyID:      d.PropertyID,
		Lender:          d.Lender,
		MortgageType:    string(d.Type),
		OriginalAmount:  int64(d.OriginalAmount),
		CurrentBalance:  int64(d.CurrentBalance),
		InterestRate:    d.InterestRate,
		TermMonths:      d.TermMonths,
		MonthlyPayment:  int64(d.MonthlyPayment),
		EscrowAmount:    (*int64)(d.EscrowAmount),
		PaymentDueDay:   d.PaymentDueDay,
		OriginationDate: d.OriginationDate,
		NextPaymentDate: d.NextPaymentDate,
		Status:          string(d.Status),
		Version:         d.Version,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMortgage converts a model Mortgage to a domain Mortgage
func ToDomainMortgage(m models.Mortgage) domain.Mortgage {
	return domain.Mortgage{
		MortgageID:      m.MortgageID,
		PropertyID:      m.PropertyID,
		Lender:          m.Lender,
		Type:            domain.MortgageType(m.MortgageType),
		OriginalAmount:  accounting.Cents(m.OriginalAmount),
		CurrentBalance:  accounting.Cents(m.CurrentBalance),
		InterestRate:    m.InterestRate,
		TermMonths:      m.TermMonths,
		MonthlyPayment:  accounting.Cents(m.MonthlyPayment),
		EscrowAmount:    (*accounting.Cents)(m.EscrowAmount),
		PaymentDueDay:   m.PaymentDueDay,
		OriginationDate: accounting.Day(m.OriginationDate),
		NextPaymentDate: accounting.Day(m.NextPaymentDate),
		Status:          domain.MortgageStatus(m.Status),
		Version:         m.Version,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelMortgagePayment converts a domain MortgagePayment to a model MortgagePayment
func ToModelMortgagePayment(d domain.MortgagePayment) models.MortgagePayment {
	return models.MortgagePayment{
		MortgagePaymentID: d.MortgagePaymentID,
		MortgageID:        d.MortgageID,
		PaymentDate:       d.PaymentDate,
		DueDate:           d.DueDate,
		Amount:            int64(d.Amount),
		PrincipalAmount:   int64(d.PrincipalAmount),
		InterestAmount:    int64(d.InterestAmount),
		EscrowAmount:      (*int64)(d.EscrowAmount),
		RemainingBalance:  int64(d.RemainingBalance),
		Status:            string(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMortgagePayment converts a model MortgagePayment to a domain MortgagePayment
func ToDomainMortgagePayment(m models.MortgagePayment) domain.MortgagePayment {
	return domain.MortgagePayment{
		MortgagePaymentID: m.MortgagePaymentID,
		MortgageID:        m.MortgageID,
		PaymentDate:       accounting.Day(m.PaymentDate),
		DueDate:           accounting.Day(m.DueDate),
		Amount:            accounting.Cents(m.Amount),
		PrincipalAmount:   accounting.Cents(m.PrincipalAmount),
		InterestAmount:    accounting.Cents(m.InterestAmount),
		EscrowAmount:      (*accounting.Cents)(m.EscrowAmount),
		RemainingBalance:  accounting.Cents(m.RemainingBalance),
		Status:            domain.MortgagePaymentStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
