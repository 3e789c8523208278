package config

import (
	"strings"
	"testing"
	"time"

	"github.com/mmynk/kaskos/internal/calculator"
	"github.com/mmynk/kaskos/internal/models"
)

func validConfig() Config {
	return Config{
		Port:           "8080",
		DataBackend:    BackendSQLite,
		DBPath:         "./data/test.db",
		StoreTimeout:   5 * time.Second,
		JWTSecret:      "0123456789abcdef0123",
		TokenTTL:       time.Hour,
		DuesRate:       50000,
		DuesStart:      "2025-01",
		PreStartPolicy: "zero",
		ReportMode:     "lifetime",
		Timezone:       "UTC",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(c *Config)
		errorString string
	}{
		{name: "valid sqlite config", modify: func(c *Config) {}},
		{
			name: "valid mongo config",
			modify: func(c *Config) {
				c.DataBackend = BackendMongo
				c.MongoURI = "mongodb://localhost:27017"
				c.MongoDatabase = "kaskos"
			},
		},
		{
			name:        "invalid port - non-numeric",
			modify:      func(c *Config) { c.Port = "abc" },
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			modify:      func(c *Config) { c.Port = "70000" },
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			modify:      func(c *Config) { c.DataBackend = "postgres" },
			errorString: "invalid data backend 'postgres': must be one of [sqlite mongo]",
		},
		{
			name:        "sqlite backend missing database path",
			modify:      func(c *Config) { c.DBPath = "" },
			errorString: "DB_PATH cannot be empty",
		},
		{
			name: "mongo backend with bad uri",
			modify: func(c *Config) {
				c.DataBackend = BackendMongo
				c.MongoURI = "localhost:27017"
				c.MongoDatabase = "kaskos"
			},
			errorString: "invalid MONGO_URI",
		},
		{
			name:        "short jwt secret",
			modify:      func(c *Config) { c.JWTSecret = "short" },
			errorString: "JWT_SECRET must be at least 16 characters",
		},
		{
			name:        "zero dues rate",
			modify:      func(c *Config) { c.DuesRate = 0 },
			errorString: "invalid dues rate 0: must be positive",
		},
		{
			name:        "missing dues start",
			modify:      func(c *Config) { c.DuesStart = "" },
			errorString: "DUES_START is required",
		},
		{
			name:        "malformed dues start",
			modify:      func(c *Config) { c.DuesStart = "Jan 2025" },
			errorString: `invalid period "Jan 2025"`,
		},
		{
			name:        "unknown pre-start policy",
			modify:      func(c *Config) { c.PreStartPolicy = "two" },
			errorString: "unknown pre-start policy",
		},
		{
			name:        "unknown report mode",
			modify:      func(c *Config) { c.ReportMode = "weekly" },
			errorString: "unknown report mode",
		},
		{
			name:        "unknown timezone",
			modify:      func(c *Config) { c.Timezone = "Mars/Olympus" },
			errorString: "invalid LEDGER_TIMEZONE",
		},
		{
			name:        "missing roster file",
			modify:      func(c *Config) { c.RosterFile = "/nonexistent/roster.yaml" },
			errorString: "roster file is not readable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.errorString == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errorString)
			}
			if !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.DuesRate = -1
	cfg.ReportMode = "weekly"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if n := strings.Count(err.Error(), "\n- "); n != 3 {
		t.Errorf("expected 3 problems, got %d: %v", n, err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DUES_RATE", "75000")
	t.Setenv("DUES_START", "2024-07")
	t.Setenv("PRE_START_POLICY", "one")
	t.Setenv("REPORT_MODE", "period")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.StoreTimeout != 2*time.Second {
		t.Errorf("StoreTimeout = %v, want 2s", cfg.StoreTimeout)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want default 24h", cfg.TokenTTL)
	}
	if len(cfg.parseErrs) != 1 || !strings.Contains(cfg.parseErrs[0], "TOKEN_TTL") {
		t.Errorf("parseErrs = %v, want TOKEN_TTL failure", cfg.parseErrs)
	}
	if cfg.DataBackend != BackendSQLite {
		t.Errorf("DataBackend = %s, want sqlite", cfg.DataBackend)
	}

	want := calculator.Schedule{
		Start:    models.Period{Year: 2024, Month: time.July},
		Rate:     75000,
		PreStart: calculator.FloorOne,
	}
	if got := cfg.Schedule(); got != want {
		t.Errorf("Schedule() = %+v, want %+v", got, want)
	}
	if cfg.Mode() != calculator.ModePeriod {
		t.Errorf("Mode() = %s, want period", cfg.Mode())
	}
	if cfg.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", cfg.Location())
	}
}

func TestLoad_UnparseableValuesFailValidation(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		value       string
		errorString string
	}{
		{"dues rate with thousands separator", "DUES_RATE", "75.000", "invalid DUES_RATE '75.000'"},
		{"dues rate not a number", "DUES_RATE", "lima puluh", "invalid DUES_RATE 'lima puluh'"},
		{"store timeout without unit", "STORE_TIMEOUT", "5", "invalid STORE_TIMEOUT '5'"},
		{"token ttl garbage", "TOKEN_TTL", "sehari", "invalid TOKEN_TTL 'sehari'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "0123456789abcdef0123")
			t.Setenv("DUES_START", "2025-01")
			t.Setenv(tt.key, tt.value)

			err := Load().Validate()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("expected error containing %q, got %q", tt.errorString, err.Error())
			}
		})
	}
}
