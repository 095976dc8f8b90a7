package config

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	ConfigFile         string
	Debug              bool
	DockerLaunched     bool
	LogLevel           string
	SenzingDir         string
	SenzingPackage     string
	SenzingSourceDir   string
	SleepTimeInSeconds int
	Subcommand         string

	values map[string]any
}

// CLIOverrides holds command-line values keyed by configuration key.
// Empty strings are treated as "not given".
type CLIOverrides struct {
	Values map[string]string
}

// LookupEnvFunc matches os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(overrides *CLIOverrides, lookupEnv LookupEnvFunc) (Config, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	var cli map[string]string
	if overrides != nil {
		cli = overrides.Values
	}

	src := Sources{
		CLI:       cli,
		LookupEnv: lookupEnv,
	}

	if path := configFilePath(cli, lookupEnv); path != "" {
		fileValues, err := loadFromFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		src.File = fileValues
	}

	values, err := Resolve(Entries, src)
	if err != nil {
		return Config{}, err
	}

	cfg := newConfig(values)
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// FromValues builds a Config from already-typed values. Missing keys take
// their coerced defaults.
func FromValues(values map[string]any) (Config, error) {
	merged, err := Resolve(Entries, Sources{})
	if err != nil {
		return Config{}, err
	}
	maps.Copy(merged, values)

	cfg := newConfig(merged)
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Context returns a copy of every resolved key, including pass-through keys.
func (c Config) Context() map[string]any {
	out := make(map[string]any, len(c.values))
	maps.Copy(out, c.values)
	return out
}

// Value returns the resolved value for key.
func (c Config) Value(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

func newConfig(values map[string]any) Config {
	cfg := Config{values: values}
	cfg.ConfigFile, _ = values[KeyConfigFile].(string)
	cfg.Debug, _ = values[KeyDebug].(bool)
	cfg.DockerLaunched, _ = values[KeyDockerLaunched].(bool)
	cfg.LogLevel, _ = values[KeyLogLevel].(string)
	cfg.SenzingDir, _ = values[KeySenzingDir].(string)
	cfg.SenzingPackage, _ = values[KeySenzingPackage].(string)
	cfg.SenzingSourceDir, _ = values[KeySenzingSourceDir].(string)
	cfg.SleepTimeInSeconds, _ = values[KeySleepTimeInSeconds].(int)
	cfg.Subcommand, _ = values[KeySubcommand].(string)
	return cfg
}

func configFilePath(cli map[string]string, lookupEnv LookupEnvFunc) string {
	if path := strings.TrimSpace(cli[KeyConfigFile]); path != "" {
		return path
	}
	if path, ok := lookupEnv(envFor(KeyConfigFile)); ok {
		return strings.TrimSpace(path)
	}
	return ""
}

// loadFromFile loads flat key/value configuration from a YAML file.
func loadFromFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	out := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			continue
		case map[string]any, []any:
			return nil, fmt.Errorf("key %q: expected a scalar value", key)
		default:
			out[key] = fmt.Sprint(v)
		}
	}
	return out, nil
}

// MaxSleepTimeInSeconds is the longest sleep a time.Duration can hold.
const MaxSleepTimeInSeconds = int64(math.MaxInt64 / int64(time.Second))

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.SleepTimeInSeconds < 0 {
		return errors.New("SENZING_SLEEP_TIME_IN_SECONDS must be >= 0")
	}
	if int64(cfg.SleepTimeInSeconds) > MaxSleepTimeInSeconds {
		return fmt.Errorf("SENZING_SLEEP_TIME_IN_SECONDS must be <= %d", MaxSleepTimeInSeconds)
	}
	if strings.TrimSpace(cfg.SenzingDir) == "" {
		return errors.New("SENZING_DIR cannot be empty")
	}
	return nil
}
