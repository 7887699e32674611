package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"billig/internal/core"
	"billig/internal/log"
	"billig/internal/report"
)

type Config struct {
	// Ledger
	LedgerPath string

	// Report
	ReportFrom  string
	ReportTo    string
	ReportSteps string
	Timeout     time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Diagnostics
	DiagMaxShown int
	DiagColor    bool

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Storage
	DBPath       string
	StoreReports bool
}

func Load() *Config {
	cfg := &Config{
		LedgerPath: getEnv("BILLIG_LEDGER", "ledger.yaml"),

		ReportFrom:  getEnv("REPORT_FROM", ""),
		ReportTo:    getEnv("REPORT_TO", ""),
		ReportSteps: getEnv("REPORT_STEPS", "month"),
		Timeout:     getEnvDuration("BILLIG_TIMEOUT", 30*time.Second),

		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DiagMaxShown: getEnvInt("DIAG_MAX_SHOWN", 10),
		DiagColor:    getEnvBool("DIAG_COLOR", true),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "billig"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "summaries"),

		DBPath:       getEnv("BILLIG_DB", "./data/billig.db"),
		StoreReports: getEnvBool("BILLIG_STORE", false),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.LedgerPath == "" {
		errors = append(errors, "ledger path cannot be empty")
	}

	// Report bounds are partial dates
	for _, bound := range []struct{ name, value string }{{"REPORT_FROM", c.ReportFrom}, {"REPORT_TO", c.ReportTo}} {
		if bound.value == "" {
			continue
		}
		if _, err := core.ParsePartialDate(bound.value); err != nil {
			errors = append(errors, fmt.Sprintf("invalid %s '%s': %v", bound.name, bound.value, err))
		}
	}
	if _, err := report.ParseDurations(c.ReportSteps); err != nil {
		errors = append(errors, fmt.Sprintf("invalid report steps '%s': %v", c.ReportSteps, err))
	}
	if c.Timeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid timeout %v: must be at least 1 second", c.Timeout))
	} else if c.Timeout > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid timeout %v: must be at most 1 hour", c.Timeout))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if c.DiagMaxShown < 1 {
		errors = append(errors, fmt.Sprintf("invalid diagnostics limit %d: must be at least 1", c.DiagMaxShown))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
	}

	// Validate AMQP exchange and queue names if AMQP is configured
	if c.AMQPURL != "" {
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.StoreReports && c.DBPath == "" {
		errors = append(errors, "database path cannot be empty when storing reports")
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Logger builds the logger described by LogLevel and LogFormat.
func (c *Config) Logger() (*log.Logger, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	cfg := log.DefaultConfig()
	cfg.Level = level
	cfg.Format = c.LogFormat
	return log.New(cfg), nil
}

// Durations are the steps of the report tables.
func (c *Config) Durations() ([]core.Duration, error) {
	return report.ParseDurations(c.ReportSteps)
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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
