package dto

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
)

// CreateChargeRequest defines the data needed to post a charge against a lease.
type CreateChargeRequest struct {
	Type        domain.ChargeType `json:"type" binding:"required,chargetype"`
	Amount      accounting.Cents  `json:"amount"`
	DueDate     string            `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Period      string            `json:"period" binding:"omitempty,period"` // defaults to the due date's month
	Description string            `json:"description" binding:"max=500"`
}

// VoidChargeRequest carries the mandatory void reason.
type VoidChargeRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListChargesParams defines the query parameters for listing a lease's charges.
type ListChargesParams struct {
	Limit     int      `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken *string  `form:"nextToken"`
	Status    []string `form:"status" binding:"dive,oneof=open partial paid void"`
}

// ListChargesResponse is one page of charges in (due date, creation) order.
type ListChargesResponse struct {
	Charges   []domain.Charge `json:"charges"`
	NextToken *string         `json:"nextToken,omitempty"`
}
