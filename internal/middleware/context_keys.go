package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// deviceIDKey is the key used to store the authenticated device's ID.
// Using a custom type prevents collisions.
const deviceIDKey = contextKey("deviceID")

// GetDeviceIDFromContext retrieves the authenticated device ID from the Gin
// context. It returns the device ID and a boolean indicating if it was found.
func GetDeviceIDFromContext(c *gin.Context) (string, bool) {
	deviceIDVal, exists := c.Get(string(deviceIDKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(deviceIDKey)
		if ctxVal != nil {
			if id, ok := ctxVal.(string); ok {
				return id, true
			}
		}
		return "", false
	}

	deviceID, ok := deviceIDVal.(string)
	if !ok {
		return "", false
	}

	return deviceID, true
}

// setDeviceID stores the device ID in both the Gin context and the request
// context.
func setDeviceID(c *gin.Context, deviceID string) {
	c.Set(string(deviceIDKey), deviceID)
	ctx := context.WithValue(c.Request.Context(), deviceIDKey, deviceID)
	c.Request = c.Request.WithContext(ctx)
}
