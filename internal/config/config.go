// Package config loads server settings from the environment. A .env file in
// the working directory is read first for local development.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/kaskos/internal/calculator"
	"github.com/mmynk/kaskos/internal/models"
)

const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

type Config struct {
	// HTTP Server
	Port string

	// Storage
	DataBackend   string
	DBPath        string
	MongoURI      string
	MongoDatabase string
	StoreTimeout  time.Duration

	// Sessions
	JWTSecret string
	TokenTTL  time.Duration

	// Dues
	DuesRate       int64
	DuesStart      string // YYYY-MM
	PreStartPolicy string // zero | one
	ReportMode     string // lifetime | period
	Timezone       string

	// Seed roster, applied only when no members exist
	RosterFile string

	LogLevel string

	// Values present in the environment that could not be parsed.
	parseErrs []string
}

// Load reads .env (if present) and then the environment.
func Load() *Config {
	// Missing .env is normal outside local development.
	_ = godotenv.Load()

	c := &Config{
		Port: getEnv("PORT", "8080"),

		DataBackend:   getEnv("DATA_BACKEND", BackendSQLite),
		DBPath:        getEnv("DB_PATH", "./data/kaskos.db"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "kaskos"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		DuesStart:      getEnv("DUES_START", ""),
		PreStartPolicy: getEnv("PRE_START_POLICY", "zero"),
		ReportMode:     getEnv("REPORT_MODE", string(calculator.ModeLifetime)),
		Timezone:       getEnv("LEDGER_TIMEZONE", "UTC"),

		RosterFile: getEnv("ROSTER_FILE", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Parse failures are kept for Validate.
	c.StoreTimeout = c.getEnvDuration("STORE_TIMEOUT", 5*time.Second)
	c.TokenTTL = c.getEnvDuration("TOKEN_TTL", 24*time.Hour)
	c.DuesRate = c.getEnvInt64("DUES_RATE", 50000)

	return c
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	errors := slices.Clone(c.parseErrs)

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{BackendSQLite, BackendMongo}
	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}
	if c.DataBackend == BackendSQLite && c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty when using sqlite backend")
	}
	if c.DataBackend == BackendMongo {
		if !strings.HasPrefix(c.MongoURI, "mongodb://") && !strings.HasPrefix(c.MongoURI, "mongodb+srv://") {
			errors = append(errors, fmt.Sprintf("invalid MONGO_URI '%s': must start with mongodb:// or mongodb+srv://", c.MongoURI))
		}
		if c.MongoDatabase == "" {
			errors = append(errors, "MONGO_DATABASE cannot be empty when using mongo backend")
		}
	}
	if c.StoreTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid store timeout %v: must be positive", c.StoreTimeout))
	}

	if len(c.JWTSecret) < 16 {
		errors = append(errors, "JWT_SECRET must be at least 16 characters")
	}
	if c.TokenTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid token TTL %v: must be at least 1 minute", c.TokenTTL))
	}

	if c.DuesRate <= 0 {
		errors = append(errors, fmt.Sprintf("invalid dues rate %d: must be positive", c.DuesRate))
	}
	if c.DuesStart == "" {
		errors = append(errors, "DUES_START is required (YYYY-MM)")
	} else if _, err := models.ParsePeriod(c.DuesStart); err != nil {
		errors = append(errors, err.Error())
	}
	if _, err := calculator.ParsePreStartPolicy(c.PreStartPolicy); err != nil {
		errors = append(errors, err.Error())
	}
	if _, err := calculator.ParseMode(c.ReportMode); err != nil {
		errors = append(errors, err.Error())
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid LEDGER_TIMEZONE '%s': %v", c.Timezone, err))
	}

	if c.RosterFile != "" {
		if _, err := os.Stat(c.RosterFile); err != nil {
			errors = append(errors, fmt.Sprintf("roster file is not readable: %v", err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Schedule returns the dues schedule. Call Validate first.
func (c *Config) Schedule() calculator.Schedule {
	start, _ := models.ParsePeriod(c.DuesStart)
	policy, _ := calculator.ParsePreStartPolicy(c.PreStartPolicy)
	return calculator.Schedule{
		Start:    start,
		Rate:     c.DuesRate,
		PreStart: policy,
	}
}

// Mode returns the default report mode. Call Validate first.
func (c *Config) Mode() calculator.Mode {
	mode, _ := calculator.ParseMode(c.ReportMode)
	return mode
}

// Location returns the ledger time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		c.parseErrs = append(c.parseErrs, fmt.Sprintf("invalid %s '%s': must be a whole number", key, value))
		return defaultValue
	}
	return i
}

func (c *Config) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		c.parseErrs = append(c.parseErrs, fmt.Sprintf("invalid %s '%s': must be a duration such as 30s or 24h", key, value))
		return defaultValue
	}
	return d
}
