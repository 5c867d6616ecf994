package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"paymentsengine/logging"
)

type AppConfig struct {
	LogLevel    string
	LogFormat   logging.Format
	MetricsFile string
}

// Load reads envFiles (".env" when none are named) into the environment
// without overriding variables already set, then builds the config from the
// environment. A missing default .env is not an error.
func Load(envFiles ...string) (AppConfig, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return AppConfig{}, fmt.Errorf("config: load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return AppConfig{}, fmt.Errorf("config: load %v: %w", envFiles, err)
	}

	return AppConfig{
		LogLevel:    getEnv("PAYMENTS_LOG_LEVEL", "warn"),
		LogFormat:   logging.Format(getEnv("PAYMENTS_LOG_FORMAT", string(logging.FormatConsole))),
		MetricsFile: getEnv("PAYMENTS_METRICS_FILE", ""),
	}, nil
}

func (c AppConfig) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: c.LogFormat}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
