// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Defaults used when neither flags, the config file nor the environment set a value.
const (
	DefaultModelPath        = "artifacts/best_model.json"
	DefaultFeatureNamesPath = "artifacts/feature_names.json"
	DefaultPort             = 8000
	DefaultReadTimeout      = 10 * time.Second
	DefaultWriteTimeout     = 30 * time.Second
)

// Duration is a time.Duration that reads from JSON strings such as "15s".
type Duration time.Duration

// UnmarshalJSON accepts a Go duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("duration must be a string or a number of seconds")
	}
	*d = Duration(time.Duration(seconds * float64(time.Second)))
	return nil
}

// MarshalJSON writes the duration in its string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Artifacts
	ModelPath        string `json:"model_path,omitempty"`         // Path to the model artifact (.json/.yaml)
	FeatureNamesPath string `json:"feature_names_path,omitempty"` // Path to the ordered feature name list

	// HTTP
	Port         int      `json:"port,omitempty"`
	ReadTimeout  Duration `json:"read_timeout,omitempty"`
	WriteTimeout Duration `json:"write_timeout,omitempty"`

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ModelPath:        DefaultModelPath,
		FeatureNamesPath: DefaultFeatureNamesPath,
		Port:             DefaultPort,
		ReadTimeout:      Duration(DefaultReadTimeout),
		WriteTimeout:     Duration(DefaultWriteTimeout),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns base with MODEL_PATH, FEATURE_NAMES_PATH, PORT, VERBOSE,
// READ_TIMEOUT and WRITE_TIMEOUT applied on top of it.
func FromEnv(base Config) Config {
	result := base
	result.ModelPath = getEnvString("MODEL_PATH", result.ModelPath)
	result.FeatureNamesPath = getEnvString("FEATURE_NAMES_PATH", result.FeatureNamesPath)
	result.Port = getEnvInt("PORT", result.Port)
	result.Verbose = getEnvBool("VERBOSE", result.Verbose)
	result.ReadTimeout = Duration(getEnvDuration("READ_TIMEOUT", time.Duration(result.ReadTimeout)))
	result.WriteTimeout = Duration(getEnvDuration("WRITE_TIMEOUT", time.Duration(result.WriteTimeout)))
	return result
}

// Validate checks that the configuration has valid values.
// Artifact files are not required to exist: the server starts degraded without them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("config error: 'read_timeout' must be non-negative")
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("config error: 'write_timeout' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ModelPath == "" {
		result.ModelPath = defaults.ModelPath
	}
	if result.FeatureNamesPath == "" {
		result.FeatureNamesPath = defaults.FeatureNamesPath
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ReadTimeout == 0 {
		result.ReadTimeout = defaults.ReadTimeout
	}
	if result.WriteTimeout == 0 {
		result.WriteTimeout = defaults.WriteTimeout
	}

	// Bool fields: an unset false cannot be told apart, so true wins from either side
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
