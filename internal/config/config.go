package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read before the environment in non-production runs
const DefaultEnvFile = ".env.local"

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// ConfigurationError reports a required setting that is missing or unusable
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Key)
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Reason)
}

// Config holds all configuration for the storefront server
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Env      string
	Server   ServerConfig
	Store    StoreConfig
	Catalog  Layout
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type StoreConfig struct {
	Driver   string
	URL      string
	Key      string // credential injected into URL
	MaxConns int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	layout := DefaultLayout()
	if path := getEnv("CATALOG_FILE", ""); path != "" {
		var err error
		layout, err = LoadLayout(path)
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Store: StoreConfig{
			Driver:   strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
			URL:      getEnv("STORE_URL", ""),
			Key:      getEnv("STORE_KEY", ""),
			MaxConns: getEnvAsInt("STORE_MAX_CONNS", 10),
		},
		Catalog:  layout,
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return &ConfigurationError{Key: "PORT"}
	}

	switch c.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if c.Store.URL == "" {
			return &ConfigurationError{Key: "STORE_URL"}
		}
	default:
		return &ConfigurationError{Key: "STORE_DRIVER", Reason: fmt.Sprintf("unknown driver %q (must be postgres or memory)", c.Store.Driver)}
	}

	if err := validateLogLevel(c.LogLevel); err != nil {
		return err
	}

	return c.Catalog.Validate()
}

// IsProduction reports whether .env files should be ignored
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DSN returns the store URL with the credential applied
func (s StoreConfig) DSN() (string, error) {
	return buildDSN(s.URL, s.Key)
}

// SeedConfig holds the two values the seeding utility needs
type SeedConfig struct {
	StoreURL   string
	ServiceKey string
	LogLevel   string
}

// LoadSeed reads the seeding configuration; both store values are required
func LoadSeed() (*SeedConfig, error) {
	cfg := &SeedConfig{
		StoreURL:   getEnv("STORE_URL", ""),
		ServiceKey: getEnv("STORE_SERVICE_KEY", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	if cfg.StoreURL == "" {
		return nil, &ConfigurationError{Key: "STORE_URL"}
	}
	if cfg.ServiceKey == "" {
		return nil, &ConfigurationError{Key: "STORE_SERVICE_KEY"}
	}
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN returns the store URL authenticated with the service key
func (s *SeedConfig) DSN() (string, error) {
	return buildDSN(s.StoreURL, s.ServiceKey)
}

// LoadEnvFile loads variables from path without overriding the environment.
// A missing file is not an error.
func LoadEnvFile(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return true, nil
}

func buildDSN(raw, key string) (string, error) {
	if key == "" {
		return raw, nil
	}

	// keyword/value connection strings
	if !strings.Contains(raw, "://") {
		return raw + " password=" + quoteKeyword(key), nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", &ConfigurationError{Key: "STORE_URL", Reason: "not a valid URL"}
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, key)
	return u.String(), nil
}

func quoteKeyword(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func validateLogLevel(level string) error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(level)] {
		return &ConfigurationError{Key: "LOG_LEVEL", Reason: fmt.Sprintf("invalid log level %s (must be debug, info, warn, or error)", level)}
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
