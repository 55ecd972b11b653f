package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SscSPs/property_ledger/internal/apperrors"
)

// PaymentMethodKind tags a PaymentMethod variant.
type PaymentMethodKind string

const (
	MethodCash         PaymentMethodKind = "cash"
	MethodCheck        PaymentMethodKind = "check"
	MethodMoneyOrder   PaymentMethodKind = "money_order"
	MethodBankTransfer PaymentMethodKind = "bank_transfer"
	MethodCard         PaymentMethodKind = "card"
	MethodOther        PaymentMethodKind = "other"
)

// PaymentMethod is a closed tagged union; only the variants below implement it.
type PaymentMethod interface {
	Kind() PaymentMethodKind
	Validate() error
	isPaymentMethod()
}

type CashMethod struct {
	ReceivedBy string `json:"receivedBy,omitempty"`
}

type CheckMethod struct {
	CheckNumber string `json:"checkNumber,omitempty"`
	BankName    string `json:"bankName,omitempty"`
}

type MoneyOrderMethod struct {
	SerialNumber string `json:"serialNumber,omitempty"`
	Issuer       string `json:"issuer,omitempty"`
}

type BankTransferMethod struct {
	ReferenceNumber string `json:"referenceNumber,omitempty"`
	BankName        string `json:"bankName,omitempty"`
}

// CardMethod requires both the brand and the last four digits.
type CardMethod struct {
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

type OtherMethod struct {
	Description string `json:"description,omitempty"`
}

func (CashMethod) Kind() PaymentMethodKind         { return MethodCash }
func (CheckMethod) Kind() PaymentMethodKind        { return MethodCheck }
func (MoneyOrderMethod) Kind() PaymentMethodKind   { return MethodMoneyOrder }
func (BankTransferMethod) Kind() PaymentMethodKind { return MethodBankTransfer }
func (CardMethod) Kind() PaymentMethodKind         { return MethodCard }
func (OtherMethod) Kind() PaymentMethodKind        { return MethodOther }

func (CashMethod) isPaymentMethod()         {}
func (CheckMethod) isPaymentMethod()        {}
func (MoneyOrderMethod) isPaymentMethod()   {}
func (BankTransferMethod) isPaymentMethod() {}
func (CardMethod) isPaymentMethod()         {}
func (OtherMethod) isPaymentMethod()        {}

func (CashMethod) Validate() error         { return nil }
func (CheckMethod) Validate() error        { return nil }
func (MoneyOrderMethod) Validate() error   { return nil }
func (BankTransferMethod) Validate() error { return nil }
func (OtherMethod) Validate() error        { return nil }

func (m CardMethod) Validate() error {
	if strings.TrimSpace(m.Brand) == "" {
		return fmt.Errorf("%w: card payments require a brand", apperrors.ErrValidation)
	}
	if len(m.Last4) != 4 || strings.Trim(m.Last4, "0123456789") != "" {
		return fmt.Errorf("%w: card payments require the last 4 digits", apperrors.ErrValidation)
	}
	return nil
}

// MarshalPaymentMethod encodes a method as a flat JSON object tagged with "type".
func MarshalPaymentMethod(m PaymentMethod) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: payment method is required", apperrors.ErrValidation)
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	fields["type"] = m.Kind()
	return json.Marshal(fields)
}

// UnmarshalPaymentMethod decodes the tagged JSON form produced by MarshalPaymentMethod.
func UnmarshalPaymentMethod(data []byte) (PaymentMethod, error) {
	var head struct {
		Type PaymentMethodKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: malformed payment method: %v", apperrors.ErrValidation, err)
	}

	var (
		m   PaymentMethod
		err error
	)
	switch head.Type {
	case MethodCash:
		var v CashMethod
		err = json.Unmarshal(data, &v)
		m = v
	case MethodCheck:
		var v CheckMethod
		err = json.Unmarshal(data, &v)
		m = v
	case MethodMoneyOrder:
		var v MoneyOrderMethod
		err = json.Unmarshal(data, &v)
		m = v
	case MethodBankTransfer:
		var v BankTransferMethod
		err = json.Unmarshal(data, &v)
		m = v
	case MethodCard:
		var v CardMethod
		err = json.Unmarshal(data, &v)
		m = v
	case MethodOther:
		var v OtherMethod
		err = json.Unmarshal(data, &v)
		m = v
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, head.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: malformed %s payment method: %v", apperrors.ErrValidation, head.Type, err)
	}
	return m, nil
}
