package services

import (
	"context"

	"github.com/kudibook/kudibook_app/internal/core/domain"
	"github.com/kudibook/kudibook_app/internal/dto"
)

// AuthSvcFacade registers store devices and issues their API tokens.
type AuthSvcFacade interface {
	// RegisterDevice registers a new device, hashing its secret.
	RegisterDevice(ctx context.Context, req dto.RegisterDeviceRequest) (*domain.Device, error)

	// LoginDevice verifies a device secret and returns a signed JWT.
	LoginDevice(ctx context.Context, req dto.LoginDeviceRequest) (string, error)
}
