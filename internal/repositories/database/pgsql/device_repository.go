package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kudibook/kudibook_app/internal/apperrors"
	"github.com/kudibook/kudibook_app/internal/core/domain"
	portsrepo "github.com/kudibook/kudibook_app/internal/core/ports/repositories"
	"github.com/kudibook/kudibook_app/internal/models"
)

type PgxDeviceRepository struct {
	BaseRepository
}

// newPgxDeviceRepository creates a new repository for registered devices.
func newPgxDeviceRepository(pool *pgxpool.Pool) portsrepo.DeviceRepositoryFacade {
	return &PgxDeviceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DeviceRepositoryFacade = (*PgxDeviceRepository)(nil)

// SaveDevice inserts a device record.
func (r *PgxDeviceRepository) SaveDevice(ctx context.Context, device domain.Device) error {
	query := `
		INSERT INTO devices (device_id, name, secret_hash, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		device.DeviceID,
		device.Name,
		device.SecretHash,
		device.CreatedAt,
		device.CreatedBy,
		device.LastUpdatedAt,
		device.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save device "+device.DeviceID, err)
	}
	return nil
}

// FindDeviceByID retrieves a device by its ID.
func (r *PgxDeviceRepository) FindDeviceByID(ctx context.Context, deviceID string) (*domain.Device, error) {
	query := `
		SELECT device_id, name, secret_hash, created_at, created_by, last_updated_at, last_updated_by
		FROM devices
		WHERE device_id = $1;
	`
	var m models.Device
	err := r.Pool.QueryRow(ctx, query, deviceID).Scan(
		&m.DeviceID,
		&m.Name,
		&m.SecretHash,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find device by ID "+deviceID, err)
	}

	return &domain.Device{
		DeviceID:   m.DeviceID,
		Name:       m.Name,
		SecretHash: m.SecretHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}
