// Package config loads the job generator configuration from the environment
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment is the deployment environment the tools run in
type Environment int

const (
	EnvDevelopment Environment = iota
	EnvStaging
	EnvProduction
	EnvTest
)

func (e Environment) String() string {
	switch e {
	case EnvStaging:
		return "staging"
	case EnvProduction:
		return "prod"
	case EnvTest:
		return "test"
	default:
		return "dev"
	}
}

// ParseEnvironment accepts the short and long environment names
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dev", "development":
		return EnvDevelopment, nil
	case "staging":
		return EnvStaging, nil
	case "prod", "production":
		return EnvProduction, nil
	case "test":
		return EnvTest, nil
	}
	return EnvDevelopment, fmt.Errorf("AF3_ENV must be one of: [dev staging prod test], got: %s", s)
}

// Config holds all application configuration
type Config struct {
	Env               Environment
	LogLevel          string // empty means the environment default
	LogDir            string // empty disables file logging
	LogRetentionWeeks int    // Number of weeks to keep log files
	MetricsFile       string // prometheus textfile, empty disables it
	DirPerm           os.FileMode
	FilePerm          os.FileMode
}

// LoadDotEnv reads variables from files (.env by default) into the
// environment. Variables already set win. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	env, err := ParseEnvironment(getEnvWithDefault("AF3_ENV", "dev"))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid AF3_ENV: %w", err)
	}

	dirPerm, err := getPermEnvWithDefault("DIR_PERM", 0755)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid DIR_PERM: %w", err)
	}
	filePerm, err := getPermEnvWithDefault("FILE_PERM", 0644)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid FILE_PERM: %w", err)
	}

	cfg := &Config{
		Env:               env,
		LogLevel:          strings.ToLower(os.Getenv("LOG_LEVEL")),
		LogDir:            os.Getenv("LOG_DIR"),
		LogRetentionWeeks: getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4), // 4 weeks default
		MetricsFile:       os.Getenv("METRICS_FILE"),
		DirPerm:           dirPerm,
		FilePerm:          filePerm,
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := validateLogRetentionWeeks(cfg.LogRetentionWeeks); err != nil {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: %w", err)
	}

	// Owner must be able to traverse and write the job directories
	if cfg.DirPerm&0700 != 0700 {
		return fmt.Errorf("invalid DIR_PERM: %04o does not give the owner rwx", cfg.DirPerm)
	}

	if cfg.FilePerm&0600 != 0600 {
		return fmt.Errorf("invalid FILE_PERM: %04o does not give the owner rw", cfg.FilePerm)
	}

	return nil
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	if logLevel == "" {
		return nil
	}

	validLevels := []string{"debug", "info", "warn", "warning", "error"}
	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateLogRetentionWeeks validates the LOG_RETENTION_WEEKS environment variable
func validateLogRetentionWeeks(weeks int) error {
	if weeks <= 0 {
		return fmt.Errorf("LOG_RETENTION_WEEKS must be positive, got: %d", weeks)
	}

	if weeks > 52 { // 1 year maximum
		return fmt.Errorf("LOG_RETENTION_WEEKS is too large (max 52 weeks), got: %d", weeks)
	}

	return nil
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault gets an environment variable as int with a default value
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getPermEnvWithDefault parses an octal permission such as 0750
func getPermEnvWithDefault(key string, defaultValue os.FileMode) (os.FileMode, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	perm, err := strconv.ParseUint(value, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be an octal permission, got: %s", key, value)
	}
	if perm > 0777 {
		return 0, fmt.Errorf("%s must be at most 0777, got: %s", key, value)
	}
	return os.FileMode(perm), nil
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"AF3_ENV",
		"LOG_LEVEL",
		"LOG_DIR",
		"LOG_RETENTION_WEEKS",
		"METRICS_FILE",
		"DIR_PERM",
		"FILE_PERM",
	}
}
