package domain

// Device is a registered store device (typically the shop owner's phone).
// Devices authenticate with a secret and receive a JWT for API access.
type Device struct {
	DeviceID   string `json:"deviceID"` // Primary Key (UUID)
	Name       string `json:"name"`
	SecretHash string `json:"-"` // bcrypt hash, never serialized
	AuditFields
}
