package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(LevelForEnvironment(GetEnvWithDefault("APP_ENV", "development")))
}

const (
	// DefaultDatabaseURL points at a file-backed SQLite store in the working directory
	DefaultDatabaseURL = "sqlite:///app.db"
	DefaultPort        = 5555
	DefaultPriceMin    = 1.0
	DefaultPriceMax    = 30.0
)

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port            int           `json:"port"`
	Host            string        `json:"host"`
	Environment     string        `json:"environment"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// Database configuration
	DatabaseURL string `json:"database_url"`
	SeedOnStart bool   `json:"seed_on_start"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Accepted price range for a restaurant pizza, inclusive
	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`

	// Rate limiting, requests per second. Zero disables it.
	RateLimit      float64 `json:"rate_limit"`
	RateLimitBurst int     `json:"rate_limit_burst"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, Environment: %s, DatabaseURL: %s, SeedOnStart: %t, LogLevel: %s, PriceMin: %g, PriceMax: %g, RateLimit: %g, RateLimitBurst: %d}",
		c.Port, c.Host, c.Environment, maskDatabaseURL(c.DatabaseURL), c.SeedOnStart, c.LogLevel,
		c.PriceMin, c.PriceMax, c.RateLimit, c.RateLimitBurst)
}

// Address returns the host:port the HTTP server binds to
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// maskDatabaseURL masks password in database URL
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "REDACTED")
		}
	}

	return parsed.String()
}

// validateDatabaseURL accepts sqlite and postgres targets, or a bare file path
func validateDatabaseURL(dbURL string) error {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return fmt.Errorf("invalid DB_URI %q: %w", maskDatabaseURL(dbURL), err)
	}
	switch parsed.Scheme {
	case "", "sqlite", "sqlite3", "file", "postgres", "postgresql":
		return nil
	default:
		return fmt.Errorf("unsupported DB_URI scheme %q (supported: sqlite, file, postgres)", parsed.Scheme)
	}
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// Returns an error if any environment variable is present but invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	dbURL := GetEnvWithDefault("DB_URI", DefaultDatabaseURL)
	if err := validateDatabaseURL(dbURL); err != nil {
		return nil, err
	}

	priceMin, err := strconv.ParseFloat(GetEnvWithDefault("PRICE_MIN", strconv.FormatFloat(DefaultPriceMin, 'f', -1, 64)), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_MIN: %w", err)
	}
	priceMax, err := strconv.ParseFloat(GetEnvWithDefault("PRICE_MAX", strconv.FormatFloat(DefaultPriceMax, 'f', -1, 64)), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_MAX: %w", err)
	}
	if priceMin <= 0 {
		return nil, fmt.Errorf("PRICE_MIN (%g) must be positive", priceMin)
	}
	if priceMin > priceMax {
		return nil, fmt.Errorf("PRICE_MIN (%g) must not exceed PRICE_MAX (%g)", priceMin, priceMax)
	}

	rateLimit, err := strconv.ParseFloat(GetEnvWithDefault("RATE_LIMIT", "0"), 64)
	if err != nil || rateLimit < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %q", os.Getenv("RATE_LIMIT"))
	}

	config := &Config{
		Port:            port,
		Host:            GetEnvWithDefault("APP_HOST", "localhost"),
		Environment:     GetEnvWithDefault("APP_ENV", "development"),
		ReadTimeout:     time.Duration(GetEnvAsType("READ_TIMEOUT_SECONDS", 10)) * time.Second,
		WriteTimeout:    time.Duration(GetEnvAsType("WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
		ShutdownTimeout: time.Duration(GetEnvAsType("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
		DatabaseURL:     dbURL,
		SeedOnStart:     GetEnvAsType("SEED_ON_START", true),
		LogLevel:        GetEnvWithDefault("LOG_LEVEL", "info"),
		PriceMin:        priceMin,
		PriceMax:        priceMax,
		RateLimit:       rateLimit,
		RateLimitBurst:  GetEnvAsType("RATE_LIMIT_BURST", 0),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// LevelForEnvironment maps APP_ENV to the default log level
func LevelForEnvironment(environment string) logrus.Level {
	switch environment {
	case "development":
		return logrus.DebugLevel
	case "production":
		return logrus.ErrorLevel
	default:
		// Default to info level for other environments
		return logrus.InfoLevel
	}
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case float64:
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return defaultValue
		}
		return any(floatValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
