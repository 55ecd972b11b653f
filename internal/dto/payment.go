package dto

import (
	"encoding/json"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
)

// RecordPaymentRequest defines the data needed to record a tenant payment.
// Method is the tagged JSON form, e.g. {"type":"check","checkNumber":"1042"}.
type RecordPaymentRequest struct {
	TenantID string           `json:"tenantID" binding:"required"`
	Amount   accounting.Cents `json:"amount"`
	Method   json.RawMessage  `json:"method" binding:"required"`
	Memo     string           `json:"memo" binding:"max=500"`
}

// ListPaymentsResponse wraps a lease's payment history.
type ListPaymentsResponse struct {
	Payments []domain.Payment `json:"payments"`
}
