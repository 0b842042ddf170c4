package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kudibook/kudibook_app/internal/apperrors"
	"github.com/kudibook/kudibook_app/internal/core/domain"
	portsrepo "github.com/kudibook/kudibook_app/internal/core/ports/repositories"
	"github.com/kudibook/kudibook_app/internal/models"
	"github.com/kudibook/kudibook_app/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the append-only audit
// trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveAuditLogs appends a batch of audit entries. The table is insert-only;
// there is no update or delete path.
func (r *PgxAuditRepository) SaveAuditLogs(ctx context.Context, entries []domain.AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO audit_logs (audit_id, table_name, operation, record_id, old_values, new_values, redacted_fields, performed_by, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelAuditLog(entry)
		batch.Queue(query,
			m.AuditID,
			m.TableName,
			m.Operation,
			m.RecordID,
			m.OldValues,
			m.NewValues,
			m.RedactedFields,
			m.PerformedBy,
			m.Timestamp,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entries", err)
	}
	return nil
}

// ListAuditLogsByRecord retrieves the trail for one record, newest first.
func (r *PgxAuditRepository) ListAuditLogsByRecord(ctx context.Context, recordID string, limit int) ([]domain.AuditEntry, error) {
	query := `
		SELECT audit_id, table_name, operation, record_id, old_values, new_values, redacted_fields, performed_by, timestamp
		FROM audit_logs
		WHERE record_id = $1
		ORDER BY timestamp DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, recordID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list audit entries for record "+recordID, err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(
			&m.AuditID,
			&m.TableName,
			&m.Operation,
			&m.RecordID,
			&m.OldValues,
			&m.NewValues,
			&m.RedactedFields,
			&m.PerformedBy,
			&m.Timestamp,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit row", err)
		}
		entries = append(entries, mapping.ToDomainAuditEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating audit rows", err)
	}
	return entries, nil
}
