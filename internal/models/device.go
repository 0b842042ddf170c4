package models

// Device mirrors a row of the devices table.
type Device struct {
	DeviceID   string `db:"device_id"`
	Name       string `db:"name"`
	SecretHash string `db:"secret_hash"`
	AuditFields
}
