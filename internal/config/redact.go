package config

import "strings"

const redactedValue = "********"

// KeysToRedact lists keys whose values never appear in log context.
// Keys matching sensitiveKeywords are masked as well.
var KeysToRedact = []string{}

var sensitiveKeywords = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"credential",
}

// Redacted returns Context with sensitive values masked.
func (c Config) Redacted() map[string]any {
	out := c.Context()
	for key := range out {
		if isSensitiveKey(key) {
			out[key] = redactedValue
		}
	}
	return out
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, k := range KeysToRedact {
		if strings.ToLower(k) == lower {
			return true
		}
	}
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
