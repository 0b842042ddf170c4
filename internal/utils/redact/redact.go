// Package redact masks sensitive values in audit snapshots before they are
// persisted.
package redact

import (
	"regexp"
	"sort"
	"strings"
)

// Marker replaces redacted values in stored snapshots.
const Marker = "[REDACTED]"

// deniedFields is the fixed denylist of field names whose values are always
// masked, compared case-insensitively.
var deniedFields = map[string]struct{}{
	"password":   {},
	"token":      {},
	"apikey":     {},
	"ssn":        {},
	"email":      {},
	"phone":      {},
	"creditcard": {},
	"privatekey": {},
}

// sensitivePattern catches field names the denylist misses, e.g.
// "refreshToken" or "secret_key".
var sensitivePattern = regexp.MustCompile(`(?i)(secret|token|password|key)`)

// Fields returns a copy of values with sensitive fields replaced by Marker,
// plus the sorted list of field names that were redacted. Nested maps are
// redacted recursively.
func Fields(values map[string]any) (map[string]any, []string) {
	if values == nil {
		return nil, nil
	}

	redacted := make(map[string]any, len(values))
	var hit []string
	for name, value := range values {
		if isSensitive(name) {
			redacted[name] = Marker
			hit = append(hit, name)
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			nestedRedacted, nestedHit := Fields(nested)
			redacted[name] = nestedRedacted
			hit = append(hit, nestedHit...)
			continue
		}
		redacted[name] = value
	}

	sort.Strings(hit)
	return redacted, hit
}

func isSensitive(name string) bool {
	if _, denied := deniedFields[strings.ToLower(name)]; denied {
		return true
	}
	return sensitivePattern.MatchString(name)
}
