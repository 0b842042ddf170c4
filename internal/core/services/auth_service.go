package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kudibook/kudibook_app/internal/apperrors"
	"github.com/kudibook/kudibook_app/internal/core/domain"
	portsrepo "github.com/kudibook/kudibook_app/internal/core/ports/repositories"
	portssvc "github.com/kudibook/kudibook_app/internal/core/ports/services"
	"github.com/kudibook/kudibook_app/internal/dto"
	"github.com/kudibook/kudibook_app/internal/middleware"
	"github.com/kudibook/kudibook_app/internal/utils"
)

type authService struct {
	deviceRepo portsrepo.DeviceRepositoryFacade
	jwtSecret  string
	jwtExpiry  time.Duration
	jwtIssuer  string
}

// NewAuthService creates the device auth service.
func NewAuthService(deviceRepo portsrepo.DeviceRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		deviceRepo: deviceRepo,
		jwtSecret:  jwtSecret,
		jwtExpiry:  jwtExpiry,
		jwtIssuer:  jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) RegisterDevice(ctx context.Context, req dto.RegisterDeviceRequest) (*domain.Device, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashSecret(req.Secret)
	if err != nil {
		logger.Error("Failed to hash device secret", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to register device", err)
	}

	now := time.Now().UTC()
	device := domain.Device{
		DeviceID:   uuid.NewString(),
		Name:       req.Name,
		SecretHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	device.CreatedBy = device.DeviceID
	device.LastUpdatedBy = device.DeviceID

	if err := s.deviceRepo.SaveDevice(ctx, device); err != nil {
		logger.Error("Failed to save device", slog.String("error", err.Error()))
		return nil, err
	}

	return &device, nil
}

func (s *authService) LoginDevice(ctx context.Context, req dto.LoginDeviceRequest) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	device, err := s.deviceRepo.FindDeviceByID(ctx, req.DeviceID)
	if err != nil {
		return "", err
	}

	if !utils.CheckSecretHash(req.Secret, device.SecretHash) {
		logger.Warn("Device login failed", slog.String("device_id", req.DeviceID))
		return "", fmt.Errorf("%w: invalid device credentials", apperrors.ErrValidation)
	}

	token, err := utils.GenerateJWT(device.DeviceID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		return "", apperrors.NewAppError(500, "failed to issue token", err)
	}
	return token, nil
}
