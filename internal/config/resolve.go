package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Sources are the raw inputs merged by Resolve.
type Sources struct {
	File      map[string]string
	LookupEnv LookupEnvFunc
	CLI       map[string]string
}

// CoercionError reports a value that could not be converted to its declared kind.
type CoercionError struct {
	Key   string
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: cannot convert %q to an integer: %v", e.Key, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// Resolve merges defaults, file values, environment variables and CLI values
// into one flat map. Empty values never override an earlier layer. Keys not
// declared in entries are passed through as strings.
func Resolve(entries []Entry, src Sources) (map[string]any, error) {
	raw := make(map[string]string, len(entries))

	for _, e := range entries {
		raw[e.Key] = e.Default
	}

	overlay(raw, src.File)

	// CLI is applied twice: once to prime, once to take final precedence over env.
	overlay(raw, src.CLI)

	if src.LookupEnv != nil {
		for _, e := range entries {
			if e.Env == "" {
				continue
			}
			if v, ok := src.LookupEnv(e.Env); ok && v != "" {
				raw[e.Key] = v
			}
		}
	}

	overlay(raw, src.CLI)

	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}

	for _, e := range entries {
		switch e.Kind {
		case KindBool:
			out[e.Key] = ParseBool(raw[e.Key])
		case KindInt:
			n, err := strconv.Atoi(strings.TrimSpace(raw[e.Key]))
			if err != nil {
				return nil, &CoercionError{Key: e.Key, Value: raw[e.Key], Err: err}
			}
			out[e.Key] = n
		}
	}

	return out, nil
}

// ParseBool reports whether s is one of true, 1, t, y or yes, ignoring case.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "t", "y", "yes":
		return true
	default:
		return false
	}
}

func overlay(dst, src map[string]string) {
	for k, v := range src {
		if v == "" {
			continue
		}
		dst[k] = v
	}
}
