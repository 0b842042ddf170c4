package redact_test

import (
	"testing"

	"github.com/kudibook/kudibook_app/internal/utils/redact"
	"github.com/stretchr/testify/assert"
)

func TestFieldsDenylist(t *testing.T) {
	values := map[string]any{
		"amount":   5000,
		"phone":    "08012345678",
		"email":    "shop@example.com",
		"password": "hunter2",
	}

	got, hit := redact.Fields(values)

	assert.Equal(t, 5000, got["amount"])
	assert.Equal(t, redact.Marker, got["phone"])
	assert.Equal(t, redact.Marker, got["email"])
	assert.Equal(t, redact.Marker, got["password"])
	assert.Equal(t, []string{"email", "password", "phone"}, hit)

	// Input map must not be mutated.
	assert.Equal(t, "hunter2", values["password"])
}

func TestFieldsPatternMatch(t *testing.T) {
	got, hit := redact.Fields(map[string]any{
		"refreshToken": "abc",
		"secret_key":   "def",
		"description":  "two crates of soda",
	})

	assert.Equal(t, redact.Marker, got["refreshToken"])
	assert.Equal(t, redact.Marker, got["secret_key"])
	assert.Equal(t, "two crates of soda", got["description"])
	assert.ElementsMatch(t, []string{"refreshToken", "secret_key"}, hit)
}

func TestFieldsNested(t *testing.T) {
	got, hit := redact.Fields(map[string]any{
		"metadata": map[string]any{
			"apiKey": "xyz",
			"note":   "ok",
		},
	})

	nested := got["metadata"].(map[string]any)
	assert.Equal(t, redact.Marker, nested["apiKey"])
	assert.Equal(t, "ok", nested["note"])
	assert.Equal(t, []string{"apiKey"}, hit)
}

func TestFieldsNil(t *testing.T) {
	got, hit := redact.Fields(nil)
	assert.Nil(t, got)
	assert.Nil(t, hit)
}
