package repositories

import (
	"context"

	"github.com/kudibook/kudibook_app/internal/core/domain"
)

// AuditRepositoryFacade persists the append-only audit trail.
type AuditRepositoryFacade interface {
	// SaveAuditLogs appends a batch of audit entries.
	SaveAuditLogs(ctx context.Context, entries []domain.AuditEntry) error

	// ListAuditLogsByRecord retrieves the trail for one record, newest first.
	ListAuditLogsByRecord(ctx context.Context, recordID string, limit int) ([]domain.AuditEntry, error)
}
