package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig
	Extractor ExtractorConfig
	Pipeline  PipelineConfig
	Watch     WatchConfig
}

// DatabaseConfig holds database-related configuration. DSN selects the engine:
// a postgres:// URL opens pgx, anything else is treated as a SQLite path.
type DatabaseConfig struct {
	DSN             string
	MaxConns        int
	MaxConnLifetime time.Duration
	DialTimeout     time.Duration
}

// ExtractorConfig holds token-extraction configuration.
type ExtractorConfig struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
}

// PipelineConfig holds parsing behavior knobs.
type PipelineConfig struct {
	Workers   int     // per-document parse concurrency
	Tolerance float64 // absolute tolerance for arithmetic cross-checks
}

// WatchConfig holds daemon directory-watch configuration.
type WatchConfig struct {
	Roots      []string
	Debounce   time.Duration
	HealthAddr string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Extractor: ExtractorConfig{
			Pdftotext: getEnv("PDFTOTEXT", "pdftotext"),
			MaxPages:  getEnvAsInt("EXTRACT_MAX_PAGES", 0),
		},
		Pipeline: PipelineConfig{
			Workers:   getEnvAsInt("PIPELINE_WORKERS", 4),
			Tolerance: getEnvAsFloat64("ARITHMETIC_TOLERANCE", 1.0),
		},
		Watch: WatchConfig{
			Roots:      splitNonEmpty(getEnv("WATCH_ROOTS", "")),
			Debounce:   getEnvAsDuration("WATCH_DEBOUNCE", 2*time.Second),
			HealthAddr: getEnv("HEALTH_ADDR", ":8080"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Pipeline.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "PIPELINE_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}
