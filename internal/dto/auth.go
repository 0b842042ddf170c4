package dto

// RegisterDeviceRequest registers a new store device.
type RegisterDeviceRequest struct {
	Name   string `json:"name" binding:"required"`
	Secret string `json:"secret" binding:"required,min=8"`
}

// LoginDeviceRequest authenticates a registered device.
type LoginDeviceRequest struct {
	DeviceID string `json:"deviceID" binding:"required"`
	Secret   string `json:"secret" binding:"required"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	DeviceID string `json:"deviceID"`
	Token    string `json:"token"`
}
