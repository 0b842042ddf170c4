package services

import (
	"context"

	"github.com/kudibook/kudibook_app/internal/core/domain"
	"github.com/kudibook/kudibook_app/internal/utils/money"
)

// AuditSvcFacade is the best-effort audit sink. Record calls never return an
// error to the caller: a failed audit write is logged and swallowed, because
// losing a trail entry must never roll back a financial mutation that already
// committed.
type AuditSvcFacade interface {
	// RecordCreate appends a CREATE entry for the record.
	RecordCreate(ctx context.Context, tableName, recordID string, newValues map[string]any, performedBy string)

	// RecordUpdate appends an UPDATE entry with before/after state.
	RecordUpdate(ctx context.Context, tableName, recordID string, oldValues, newValues map[string]any, performedBy string)

	// RecordDelete appends a DELETE entry with the last known state.
	RecordDelete(ctx context.Context, tableName, recordID string, oldValues map[string]any, performedBy string)

	// RecordAllocations appends one UPDATE entry per debt a payment touched.
	RecordAllocations(ctx context.Context, paymentID string, allocations []money.DebtAllocation, performedBy string)

	// ListByRecord retrieves the trail for one record.
	ListByRecord(ctx context.Context, recordID string, limit int) ([]domain.AuditEntry, error)
}
