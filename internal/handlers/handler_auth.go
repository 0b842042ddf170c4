package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kudibook/kudibook_app/internal/core/ports/services"
	"github.com/kudibook/kudibook_app/internal/dto"
	"github.com/kudibook/kudibook_app/internal/middleware"
)

// authHandler handles device registration and login.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, as portssvc.AuthSvcFacade) {
	h := &authHandler{authService: as}

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.registerDevice)
		auth.POST("/login", h.loginDevice)
	}
}

// registerDevice godoc
// @Summary Register a store device
// @Description Registers a new device and returns its ID for subsequent logins
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   device body dto.RegisterDeviceRequest true "Device details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /auth/register [post]
func (h *authHandler) registerDevice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for register device request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	device, err := h.authService.RegisterDevice(c.Request.Context(), req)
	if err != nil {
		respondWithServiceError(c, logger, err, "register device")
		return
	}

	logger.Info("Device registered", slog.String("device_id", device.DeviceID))
	c.JSON(http.StatusCreated, gin.H{"deviceID": device.DeviceID, "name": device.Name})
}

// loginDevice godoc
// @Summary Authenticate a device
// @Description Verifies the device secret and returns a bearer token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginDeviceRequest true "Device credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) loginDevice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for login request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	token, err := h.authService.LoginDevice(c.Request.Context(), req)
	if err != nil {
		// Invalid secret and unknown device look identical to the caller.
		logger.Warn("Device login rejected", slog.String("device_id", req.DeviceID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid device credentials"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{DeviceID: req.DeviceID, Token: token})
}
