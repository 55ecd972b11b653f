package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	f *ledgerFixture
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.f = newLedgerFixture(day("2025-03-15"))
}

func (suite *PaymentServiceTestSuite) pay(amount accounting.Cents) (*domain.Payment, error) {
	return suite.f.svc.Payment.RecordPayment(context.Background(), testLeaseID, dto.RecordPaymentRequest{
		TenantID: testTenantID,
		Amount:   amount,
		Method:   json.RawMessage(`{"type":"check","checkNumber":"1042"}`),
	}, testUserID)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_AllocatesOldestFirst() {
	t := suite.T()
	mar := suite.f.charge(t, 10_000, "2025-03-01")
	jan := suite.f.charge(t, 10_000, "2025-01-01")
	feb := suite.f.charge(t, 10_000, "2025-02-01")

	payment, err := suite.pay(15_000)
	suite.Require().NoError(err)
	suite.Equal([]domain.Allocation{
		{ChargeID: jan.ChargeID, Amount: 10_000},
		{ChargeID: feb.ChargeID, Amount: 5_000},
	}, payment.AppliedTo)
	suite.Equal(accounting.Cents(0), payment.Unapplied())
	suite.Equal(domain.CheckMethod{CheckNumber: "1042"}, payment.Method)

	suite.Equal(domain.ChargePaid, suite.f.reload(t, jan.ChargeID).Status)
	partial := suite.f.reload(t, feb.ChargeID)
	suite.Equal(domain.ChargePartial, partial.Status)
	suite.Equal(accounting.Cents(5_000), partial.PaidAmount)
	suite.Equal(domain.ChargeOpen, suite.f.reload(t, mar.ChargeID).Status)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_TiesBrokenByCreationOrder() {
	t := suite.T()
	first := suite.f.charge(t, 1_000, "2025-02-01")
	second := suite.f.charge(t, 1_000, "2025-02-01")

	payment, err := suite.pay(1_500)
	suite.Require().NoError(err)
	suite.Require().Len(payment.AppliedTo, 2)
	suite.Equal(first.ChargeID, payment.AppliedTo[0].ChargeID)
	suite.Equal(accounting.Cents(1_000), payment.AppliedTo[0].Amount)
	suite.Equal(second.ChargeID, payment.AppliedTo[1].ChargeID)
	suite.Equal(accounting.Cents(500), payment.AppliedTo[1].Amount)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ResidualLeftUnapplied() {
	t := suite.T()
	suite.f.charge(t, 10_000, "2025-01-01")
	suite.f.charge(t, 20_000, "2025-02-01")

	payment, err := suite.pay(35_000)
	suite.Require().NoError(err)
	suite.Equal(accounting.Cents(30_000), payment.AppliedTotal())
	suite.Equal(accounting.Cents(5_000), payment.Unapplied())

	// nothing left to pay: the whole amount stays unapplied and no charge is touched
	payment, err = suite.pay(2_000)
	suite.Require().NoError(err)
	suite.Empty(payment.AppliedTo)
	suite.Equal(accounting.Cents(2_000), payment.Unapplied())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_PaidAmountsMatchAllocations() {
	t := suite.T()
	for _, due := range []string{"2025-01-01", "2025-02-01", "2025-03-01", "2025-04-01"} {
		suite.f.charge(t, 7_777, due)
	}
	for _, amount := range []accounting.Cents{1_000, 9_999, 123, 15_000, 50_000} {
		_, err := suite.pay(amount)
		suite.Require().NoError(err)
	}

	ctx := context.Background()
	payments, err := suite.f.svc.Payment.ListPaymentsByLease(ctx, testLeaseID)
	suite.Require().NoError(err)
	suite.Len(payments, 5)

	applied := map[string]accounting.Cents{}
	for _, p := range payments {
		suite.LessOrEqual(p.AppliedTotal(), p.Amount)
		for _, a := range p.AppliedTo {
			applied[a.ChargeID] += a.Amount
		}
	}
	charges, err := suite.f.store.FindChargesByLease(ctx, testLeaseID)
	suite.Require().NoError(err)
	for _, c := range charges {
		suite.Equal(applied[c.ChargeID], c.PaidAmount, "charge %s", c.ChargeID)
		suite.LessOrEqual(c.PaidAmount, c.Amount)
		suite.Equal(domain.DeriveChargeStatus(c.Amount, c.PaidAmount, c.IsVoided()), c.Status)
	}
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_SkipsVoidedCharges() {
	t := suite.T()
	ctx := context.Background()
	voided := suite.f.charge(t, 5_000, "2025-01-01")
	open := suite.f.charge(t, 5_000, "2025-02-01")
	_, err := suite.f.svc.Charge.VoidCharge(ctx, voided.ChargeID, dto.VoidChargeRequest{Reason: "waived"}, testUserID)
	suite.Require().NoError(err)

	payment, err := suite.pay(5_000)
	suite.Require().NoError(err)
	suite.Equal([]domain.Allocation{{ChargeID: open.ChargeID, Amount: 5_000}}, payment.AppliedTo)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_Rejections() {
	ctx := context.Background()
	check := json.RawMessage(`{"type":"cash"}`)

	_, err := suite.pay(0)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, err = suite.f.svc.Payment.RecordPayment(ctx, "nope", dto.RecordPaymentRequest{TenantID: testTenantID, Amount: 100, Method: check}, testUserID)
	suite.ErrorIs(err, apperrors.ErrLeaseNotFound)

	_, err = suite.f.svc.Payment.RecordPayment(ctx, testLeaseID, dto.RecordPaymentRequest{TenantID: "stranger", Amount: 100, Method: check}, testUserID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.f.svc.Payment.RecordPayment(ctx, testLeaseID, dto.RecordPaymentRequest{
		TenantID: testTenantID, Amount: 100, Method: json.RawMessage(`{"type":"card","brand":"visa"}`),
	}, testUserID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.f.svc.Payment.RecordPayment(ctx, testLeaseID, dto.RecordPaymentRequest{
		TenantID: testTenantID, Amount: 100, Method: json.RawMessage(`{"type":"barter"}`),
	}, testUserID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_LeaseLockHeld() {
	suite.f.charge(suite.T(), 1_000, "2025-01-01")
	release, err := suite.f.locker.Acquire(context.Background(), "lease:"+testLeaseID)
	suite.Require().NoError(err)
	defer release()

	_, err = suite.pay(500)
	suite.ErrorIs(err, apperrors.ErrConcurrentModification)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_WritesAuditEntry() {
	suite.f.charge(suite.T(), 1_000, "2025-01-01")
	payment, err := suite.pay(1_000)
	suite.Require().NoError(err)

	log := suite.f.store.AuditLog()
	last := log[len(log)-1]
	suite.Equal(domain.AuditPaymentRecord, last.Action)
	suite.Equal(payment.PaymentID, last.EntityID)
	suite.Equal(testUserID, last.Actor)
	suite.Contains(string(last.After), `"type":"check"`)
}

func (suite *PaymentServiceTestSuite) TestGetPayment_NotFound() {
	_, err := suite.f.svc.Payment.GetPayment(context.Background(), "missing")
	suite.ErrorIs(err, apperrors.ErrPaymentNotFound)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
