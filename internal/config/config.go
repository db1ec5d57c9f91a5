package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// Backend selection
	DataBackend string `env:"DATA_BACKEND" envDefault:"sheets"`

	// Google Sheets
	GoogleSpreadsheetID    string `env:"GOOGLE_SPREADSHEET_ID"`
	GoogleSpreadsheetTitle string `env:"GOOGLE_SPREADSHEET_TITLE" envDefault:"personal-expense-tracker"`
	GoogleSheetName        string `env:"GOOGLE_SHEET_NAME" envDefault:"expenses"`
	GoogleCredsJSON        string `env:"GOOGLE_CREDS_JSON"`
	GoogleCredsFile        string `env:"GOOGLE_CREDS_FILE" envDefault:"creds.json"`

	// Database
	SQLiteDBPath string `env:"SQLITE_DB_PATH" envDefault:"./data/expenses.db"`

	// Memory backend seed directory
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	// AMQP, optional
	AMQPURL        string `env:"AMQP_URL"`
	AMQPExchange   string `env:"AMQP_EXCHANGE" envDefault:"expenses"`
	AMQPRoutingKey string `env:"AMQP_ROUTING_KEY" envDefault:"expense.changed"`

	LogLevel  string        `env:"LOG_LEVEL" envDefault:"warn"`
	ExitPause time.Duration `env:"EXIT_PAUSE" envDefault:"3s"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// SlogLevel returns the parsed LOG_LEVEL, warn when it is invalid.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"sheets", "sqlite", "memory"}
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

	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.DataBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" && c.GoogleSpreadsheetTitle == "" {
			errors = append(errors, "either GOOGLE_SPREADSHEET_ID or GOOGLE_SPREADSHEET_TITLE must be provided for sheets backend")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when using sheets backend")
		}

		hasJSON := strings.TrimSpace(c.GoogleCredsJSON) != ""
		hasFile := c.GoogleCredsFile != ""
		switch {
		case !hasJSON && !hasFile:
			errors = append(errors, "either GOOGLE_CREDS_JSON or GOOGLE_CREDS_FILE must be provided for sheets backend")
		case !hasJSON:
			if _, err := os.Stat(c.GoogleCredsFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google credentials file does not exist: %s", c.GoogleCredsFile))
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingKey == "" {
			errors = append(errors, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.ExitPause < 0 {
		errors = append(errors, fmt.Sprintf("invalid exit pause %v: must not be negative", c.ExitPause))
	} else if c.ExitPause > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid exit pause %v: must be at most 1 minute", c.ExitPause))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}
