package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
// Command-line flags take precedence over these values.
type Config struct {
	// DataPath is the default ledger CSV to load.
	DataPath string
	// ListenAddr is the bind address for serve mode.
	ListenAddr string
	// ThresholdDays is the default restock urgency threshold.
	ThresholdDays int
	// InsightBaseURL points at the external forecast/anomaly/sentiment
	// service; empty disables collaborator sections in reports.
	InsightBaseURL string
}

// Load reads environment variables (optionally from the provided file)
// and materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes
		// from the environment directly.
		_ = godotenv.Load()
	}

	threshold, err := getenvInt("STOCKLENS_THRESHOLD_DAYS", 7)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataPath:       os.Getenv("STOCKLENS_DATA"),
		ListenAddr:     getenvWithDefault("STOCKLENS_ADDR", ":8080"),
		ThresholdDays:  threshold,
		InsightBaseURL: os.Getenv("STOCKLENS_INSIGHT_URL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures the configuration is internally consistent.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.ListenAddr == "" {
		return errors.New("STOCKLENS_ADDR must not be empty")
	}
	if c.ThresholdDays <= 0 {
		return errors.New("STOCKLENS_THRESHOLD_DAYS must be positive")
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return n, nil
}
