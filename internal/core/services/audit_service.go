package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kudibook/kudibook_app/internal/core/domain"
	portsrepo "github.com/kudibook/kudibook_app/internal/core/ports/repositories"
	portssvc "github.com/kudibook/kudibook_app/internal/core/ports/services"
	"github.com/kudibook/kudibook_app/internal/middleware"
	"github.com/kudibook/kudibook_app/internal/utils/money"
	"github.com/kudibook/kudibook_app/internal/utils/redact"
)

// auditService is the best-effort audit sink. Entries are redacted, then
// appended after the financial write committed. Persistence failures are
// logged and swallowed.
type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates the audit sink.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) RecordCreate(ctx context.Context, tableName, recordID string, newValues map[string]any, performedBy string) {
	redactedNew, hits := redact.Fields(newValues)
	s.persist(ctx, domain.AuditEntry{
		AuditID:        uuid.NewString(),
		TableName:      tableName,
		Operation:      domain.AuditCreate,
		RecordID:       recordID,
		NewValues:      redactedNew,
		RedactedFields: hits,
		PerformedBy:    performedBy,
		Timestamp:      time.Now().UTC(),
	})
}

func (s *auditService) RecordUpdate(ctx context.Context, tableName, recordID string, oldValues, newValues map[string]any, performedBy string) {
	redactedOld, oldHits := redact.Fields(oldValues)
	redactedNew, newHits := redact.Fields(newValues)
	s.persist(ctx, domain.AuditEntry{
		AuditID:        uuid.NewString(),
		TableName:      tableName,
		Operation:      domain.AuditUpdate,
		RecordID:       recordID,
		OldValues:      redactedOld,
		NewValues:      redactedNew,
		RedactedFields: mergeHits(oldHits, newHits),
		PerformedBy:    performedBy,
		Timestamp:      time.Now().UTC(),
	})
}

func (s *auditService) RecordDelete(ctx context.Context, tableName, recordID string, oldValues map[string]any, performedBy string) {
	redactedOld, hits := redact.Fields(oldValues)
	s.persist(ctx, domain.AuditEntry{
		AuditID:        uuid.NewString(),
		TableName:      tableName,
		Operation:      domain.AuditDelete,
		RecordID:       recordID,
		OldValues:      redactedOld,
		RedactedFields: hits,
		PerformedBy:    performedBy,
		Timestamp:      time.Now().UTC(),
	})
}

// RecordAllocations writes one UPDATE entry per debt the payment touched, so
// the trail shows exactly how a payment was split.
func (s *auditService) RecordAllocations(ctx context.Context, paymentID string, allocations []money.DebtAllocation, performedBy string) {
	if len(allocations) == 0 {
		return
	}

	now := time.Now().UTC()
	entries := make([]domain.AuditEntry, 0, len(allocations))
	for _, alloc := range allocations {
		entries = append(entries, domain.AuditEntry{
			AuditID:   uuid.NewString(),
			TableName: transactionsTable,
			Operation: domain.AuditUpdate,
			RecordID:  alloc.TransactionID,
			NewValues: map[string]any{
				"paymentID":       paymentID,
				"allocated":       alloc.Allocated,
				"paidAmount":      alloc.NewPaid,
				"remainingAmount": alloc.NewRemaining,
				"status":          string(alloc.NewStatus),
			},
			PerformedBy: performedBy,
			Timestamp:   now,
		})
	}

	if err := s.auditRepo.SaveAuditLogs(ctx, entries); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to save allocation audit entries",
			slog.String("error", err.Error()),
			slog.String("payment_id", paymentID),
			slog.Int("count", len(entries)))
	}
}

func (s *auditService) ListByRecord(ctx context.Context, recordID string, limit int) ([]domain.AuditEntry, error) {
	return s.auditRepo.ListAuditLogsByRecord(ctx, recordID, limit)
}

// persist appends the entry, logging and swallowing any failure. A lost trail
// entry must never surface as an error on a mutation that already committed.
func (s *auditService) persist(ctx context.Context, entry domain.AuditEntry) {
	if err := s.auditRepo.SaveAuditLogs(ctx, []domain.AuditEntry{entry}); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to save audit entry",
			slog.String("error", err.Error()),
			slog.String("table", entry.TableName),
			slog.String("record_id", entry.RecordID),
			slog.String("operation", string(entry.Operation)))
	}
}

func mergeHits(a, b []string) []string {
	if len(a) == 0 {
		return b
	}
	seen := make(map[string]bool, len(a))
	merged := make([]string, 0, len(a)+len(b))
	for _, f := range a {
		seen[f] = true
		merged = append(merged, f)
	}
	for _, f := range b {
		if !seen[f] {
			merged = append(merged, f)
		}
	}
	return merged
}
