package domain

import "time"

// AuditOperation names the mutation an audit entry records.
type AuditOperation string

const (
	AuditCreate AuditOperation = "CREATE"
	AuditUpdate AuditOperation = "UPDATE"
	AuditDelete AuditOperation = "DELETE"
)

// AuditEntry is an immutable before/after snapshot of one mutation. Values
// are stored redacted; RedactedFields records which fields were masked so the
// trail stays traceable.
type AuditEntry struct {
	AuditID        string         `json:"auditID"`
	TableName      string         `json:"tableName"`
	Operation      AuditOperation `json:"operation"`
	RecordID       string         `json:"recordID"`
	OldValues      map[string]any `json:"oldValues,omitempty"`
	NewValues      map[string]any `json:"newValues,omitempty"`
	RedactedFields []string       `json:"redactedFields,omitempty"`
	PerformedBy    string         `json:"performedBy"`
	Timestamp      time.Time      `json:"timestamp"`
}
