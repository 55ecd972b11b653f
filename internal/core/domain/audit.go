package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type AuditAction string

const (
	AuditChargeCreate        AuditAction = "charge.create"
	AuditChargeVoid          AuditAction = "charge.void"
	AuditPaymentRecord       AuditAction = "payment.record"
	AuditLateFeeApply        AuditAction = "late_fee.apply"
	AuditLateFeePolicyUpdate AuditAction = "late_fee_settings.update"
	AuditMortgageCreate      AuditAction = "mortgage.create"
	AuditMortgagePayment     AuditAction = "mortgage.payment"
)

// Entity types recorded in the audit log.
const (
	EntityCharge          = "charge"
	EntityPayment         = "payment"
	EntityLateFeeSettings = "late_fee_settings"
	EntityMortgage        = "mortgage"
)

// AuditEntry is an append-only record of one mutation. It is committed in the same
// atomic write as the mutation it describes.
type AuditEntry struct {
	AuditID    string          `json:"auditID"`
	Actor      string          `json:"actor"`
	Action     AuditAction     `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityID"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NewAuditEntry snapshots before and after as JSON. A nil snapshot is left empty.
func NewAuditEntry(id, actor string, action AuditAction, entityType, entityID string, before, after any, at time.Time) (AuditEntry, error) {
	entry := AuditEntry{
		AuditID:    id,
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Timestamp:  at,
	}
	if before != nil {
		raw, err := json.Marshal(before)
		if err != nil {
			return AuditEntry{}, fmt.Errorf("failed to snapshot %s %s: %w", entityType, entityID, err)
		}
		entry.Before = raw
	}
	if after != nil {
		raw, err := json.Marshal(after)
		if err != nil {
			return AuditEntry{}, fmt.Errorf("failed to snapshot %s %s: %w", entityType, entityID, err)
		}
		entry.After = raw
	}
	return entry, nil
}
