package models

import "time"

// AuditLog mirrors a row of the append-only audit_logs table. Old/new values
// are stored as redacted JSON.
type AuditLog struct {
	AuditID        string         `db:"audit_id"`
	TableName      string         `db:"table_name"`
	Operation      string         `db:"operation"`
	RecordID       string         `db:"record_id"`
	OldValues      map[string]any `db:"old_values"`
	NewValues      map[string]any `db:"new_values"`
	RedactedFields []string       `db:"redacted_fields"`
	PerformedBy    string         `db:"performed_by"`
	Timestamp      time.Time      `db:"timestamp"`
}
