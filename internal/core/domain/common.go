package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy/LastUpdatedBy reference the device that performed the mutation.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
