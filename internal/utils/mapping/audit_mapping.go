package mapping

import (
	"github.com/kudibook/kudibook_app/internal/core/domain"
	"github.com/kudibook/kudibook_app/internal/models"
)

// ToModelAuditLog converts a domain.AuditEntry to its database model.
func ToModelAuditLog(d domain.AuditEntry) models.AuditLog {
	return models.AuditLog{
		AuditID:        d.AuditID,
		TableName:      d.TableName,
		Operation:      string(d.Operation),
		RecordID:       d.RecordID,
		OldValues:      d.OldValues,
		NewValues:      d.NewValues,
		RedactedFields: d.RedactedFields,
		PerformedBy:    d.PerformedBy,
		Timestamp:      d.Timestamp,
	}
}

// ToDomainAuditEntry converts a models.AuditLog to its domain form.
func ToDomainAuditEntry(m models.AuditLog) domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:        m.AuditID,
		TableName:      m.TableName,
		Operation:      domain.AuditOperation(m.Operation),
		RecordID:       m.RecordID,
		OldValues:      m.OldValues,
		NewValues:      m.NewValues,
		RedactedFields: m.RedactedFields,
		PerformedBy:    m.PerformedBy,
		Timestamp:      m.Timestamp,
	}
}
