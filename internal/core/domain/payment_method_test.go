package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalPaymentMethod(t *testing.T) {
	m, err := domain.UnmarshalPaymentMethod([]byte(`{"type":"card","brand":"visa","last4":"4242"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.CardMethod{Brand: "visa", Last4: "4242"}, m)
	assert.NoError(t, m.Validate())

	m, err = domain.UnmarshalPaymentMethod([]byte(`{"type":"check","checkNumber":"1001"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.MethodCheck, m.Kind())

	_, err = domain.UnmarshalPaymentMethod([]byte(`{"type":"crypto"}`))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.UnmarshalPaymentMethod([]byte(`not json`))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCardMethod_Validate(t *testing.T) {
	assert.ErrorIs(t, domain.CardMethod{Last4: "4242"}.Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, domain.CardMethod{Brand: "visa", Last4: "42a2"}.Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, domain.CardMethod{Brand: "visa", Last4: "42424"}.Validate(), apperrors.ErrValidation)
	assert.NoError(t, domain.CashMethod{}.Validate())
}

func TestPayment_MarshalJSON(t *testing.T) {
	p := domain.Payment{
		PaymentID: "p1",
		Amount:    15000,
		Method:    domain.MoneyOrderMethod{SerialNumber: "MO-1"},
		AppliedTo: []domain.Allocation{{ChargeID: "c1", Amount: 10000}},
	}
	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, float64(5000), decoded["unapplied"])
	method := decoded["method"].(map[string]any)
	assert.Equal(t, "money_order", method["type"])
	assert.Equal(t, "MO-1", method["serialNumber"])
}
