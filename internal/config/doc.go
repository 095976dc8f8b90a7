// Package config resolves runtime configuration from a static table of
// settings. Each setting can come from a CLI flag, an environment variable, a
// YAML file or its default, with precedence: CLI flags > Environment variables
// > YAML config > Defaults. Boolean and integer settings are coerced after the
// merge, and the result is exposed as an immutable Config value.
package config
