package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pocketledger/internal/log"
)

type Config struct {
	// Storage
	DataBackend  string
	DataDir      string
	SQLiteDBPath string
	LedgerKey    string

	// Insight generator
	InsightAPIKey          string
	InsightBaseURL         string
	InsightModel           string
	InsightTimeout         time.Duration
	InsightMaxTransactions int

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		DataBackend:  getEnv("LEDGER_BACKEND", "jsonfile"),
		DataDir:      getEnv("LEDGER_DATA_DIR", "./data"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/pocketledger.db"),
		LedgerKey:    getEnv("LEDGER_KEY", "pocketledger_transactions_v1"),

		InsightAPIKey:          getEnv("INSIGHT_API_KEY", ""),
		InsightBaseURL:         getEnv("INSIGHT_BASE_URL", ""),
		InsightModel:           getEnv("INSIGHT_MODEL", "gemini-2.5-flash"),
		InsightTimeout:         getEnvDuration("INSIGHT_TIMEOUT", 60*time.Second),
		InsightMaxTransactions: getEnvInt("INSIGHT_MAX_TRANSACTIONS", 50),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg
}

// InsightEnabled reports whether a generator can be built.
func (c *Config) InsightEnabled() bool {
	return strings.TrimSpace(c.InsightAPIKey) != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"memory", "jsonfile", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "jsonfile":
		if c.DataDir == "" {
			errors = append(errors, "data directory cannot be empty when using jsonfile backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if info, err := os.Stat(dir); err == nil && !info.IsDir() {
					errors = append(errors, fmt.Sprintf("SQLite database directory '%s' is not a directory", dir))
				}
			}
		}
	}

	if strings.TrimSpace(c.LedgerKey) == "" {
		errors = append(errors, "ledger key cannot be empty")
	}

	if c.InsightBaseURL != "" {
		if parsedURL, err := url.Parse(c.InsightBaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid insight base URL '%s': %v", c.InsightBaseURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid insight base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	if c.InsightTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid insight timeout %v: must be at least 1 second", c.InsightTimeout))
	} else if c.InsightTimeout > 10*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid insight timeout %v: must be at most 10 minutes", c.InsightTimeout))
	}

	if c.InsightMaxTransactions < 1 {
		errors = append(errors, fmt.Sprintf("invalid insight max transactions %d: must be at least 1", c.InsightMaxTransactions))
	} else if c.InsightMaxTransactions > 500 {
		errors = append(errors, fmt.Sprintf("invalid insight max transactions %d: must be at most 500", c.InsightMaxTransactions))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
