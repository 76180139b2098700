package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	SheetID  string
	SheetGID string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	FetchTimeout    time.Duration

	// Kafka alert publishing configuration. Publishing is enabled when
	// KAFKA_BROKERS is set.
	KafkaBrokers    []string
	KafkaAlertTopic string
	AlertsEnabled   bool

	// Columns maps logical record fields to sheet header names, optionally
	// overridden by a YAML file (COLUMN_MAP_FILE).
	Columns Columns
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	columns := DefaultColumns()
	if path := os.Getenv("COLUMN_MAP_FILE"); path != "" {
		columns, err = loadColumnMap(path)
		if err != nil {
			return nil, err
		}
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		SheetID:         os.Getenv("SHEET_ID"),
		SheetGID:        envOrDefault("SHEET_GID", "0"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		FetchTimeout:    fetchTimeout,
		KafkaBrokers:    brokers,
		KafkaAlertTopic: envOrDefault("KAFKA_ALERT_TOPIC", "viveiro-divergence-alerts"),
		AlertsEnabled:   len(brokers) > 0,
		Columns:         columns,
	}

	if cfg.SheetID == "" {
		return nil, errors.New("SHEET_ID is required")
	}
	if cfg.AlertsEnabled && cfg.KafkaAlertTopic == "" {
		return nil, errors.New("KAFKA_ALERT_TOPIC must not be empty when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parseBrokers(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func loadColumnMap(path string) (Columns, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Columns{}, fmt.Errorf("read column map: %w", err)
	}

	// Start from defaults so a partial file only overrides what it names.
	cols := DefaultColumns()
	if err := yaml.Unmarshal(data, &cols); err != nil {
		return Columns{}, fmt.Errorf("parse column map: %w", err)
	}
	return cols, nil
}
