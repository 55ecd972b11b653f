package models

import "time"

// AuditEntry is a row of the append-only audit_log table.
type AuditEntry struct {
	AuditID    string    `db:"audit_id"`
	Actor      string    `db:"actor"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Before     []byte    `db:"before_state"` // JSONB, nullable
	After      []byte    `db:"after_state"`  // JSONB, nullable
	CreatedAt  time.Time `db:"created_at"`
}
