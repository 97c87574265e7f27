// Package config loads server and CLI settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/friendsplit/internal/billsplit"
	"github.com/mmynk/friendsplit/internal/calculator"
)

// Config holds every runtime setting.
type Config struct {
	Port         int
	LogLevel     string
	Currency     string
	DefaultImage string
	SeedFriends  bool
	SessionTTL   time.Duration
	StaticPath   string
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Currency:     strings.ToUpper(getEnv("CURRENCY", calculator.DefaultCurrency)),
		DefaultImage: getEnv("DEFAULT_IMAGE", billsplit.DefaultImage),
		StaticPath:   getEnv("STATIC_PATH", ""),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return Config{}, err
	}
	if cfg.SeedFriends, err = getEnvBool("SEED_FRIENDS", true); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getEnvDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be caught while parsing.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if !calculator.ValidCurrency(c.Currency) {
		return fmt.Errorf("unknown CURRENCY %q", c.Currency)
	}
	if c.DefaultImage == "" {
		return fmt.Errorf("DEFAULT_IMAGE must not be empty")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative")
	}
	return nil
}

// SlogLevel maps LogLevel onto slog.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SplitterOptions returns the billsplit options implied by the config.
func (c Config) SplitterOptions() []billsplit.Option {
	return []billsplit.Option{
		billsplit.WithCurrency(c.Currency),
		billsplit.WithDefaultImage(c.DefaultImage),
		billsplit.WithSeedFriends(c.SeedFriends),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
