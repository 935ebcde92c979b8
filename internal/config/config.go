// Package config reads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	EnvAddr     = "GORCC_ADDR"
	EnvDB       = "GORCC_DB"
	EnvLogLevel = "GORCC_LOG_LEVEL"
	EnvRate     = "GORCC_RATE"
	EnvBurst    = "GORCC_BURST"
)

// Config holds the runtime settings.
type Config struct {
	Addr     string     // HTTP listen address
	DBPath   string     // run history database
	LogLevel slog.Level // minimum log level
	Rate     float64    // API requests per second per client
	Burst    int        // API burst size per client
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:     ":8080",
		DBPath:   "gorcc.db",
		LogLevel: slog.LevelInfo,
		Rate:     5,
		Burst:    10,
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment, then builds the configuration from it. Missing
// files are not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		level, err := ParseLevel(v)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}
	if v := os.Getenv(EnvRate); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate <= 0 {
			return cfg, fmt.Errorf("invalid %s %q: must be a positive number", EnvRate, v)
		}
		cfg.Rate = rate
	}
	if v := os.Getenv(EnvBurst); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst <= 0 {
			return cfg, fmt.Errorf("invalid %s %q: must be a positive integer", EnvBurst, v)
		}
		cfg.Burst = burst
	}
	return cfg, nil
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
