package repositories

import (
	"context"

	"github.com/kudibook/kudibook_app/internal/core/domain"
)

// DeviceRepositoryFacade persists registered store devices.
type DeviceRepositoryFacade interface {
	// SaveDevice inserts a device record.
	SaveDevice(ctx context.Context, device domain.Device) error

	// FindDeviceByID retrieves a device.
	FindDeviceByID(ctx context.Context, deviceID string) (*domain.Device, error)
}
