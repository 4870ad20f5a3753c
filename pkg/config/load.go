package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid config")

// Load reads the first env file found among envFiles, searching each name upward from the
// working directory, then decodes and validates the environment.
// Variables already set in the process environment win over file values.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default().With("component", "config")
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	loaded := false
	for _, name := range envFiles {
		path, err := findEnvFile(name)
		if err != nil {
			logger.Debug("env file not found", "name", name)
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logger.Warn("env file unreadable", "path", path, "error", err)
			continue
		}
		logger.Info("env file loaded", "path", path)
		loaded = true
		break
	}
	if !loaded {
		logger.Info("no env file found, using process environment")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	logger.Info("config loaded",
		"env", cfg.Env,
		"base_path", cfg.Server.BasePath,
		"db", maskValue(cfg.DB.Url),
		"auth_enabled", cfg.Auth.JwtSecret != "",
		"rate_cache_backend", cfg.RateCache.Backend,
		"rate_refresh_interval", cfg.RateCache.RefreshInterval,
		"reference_currency", cfg.Bank.ReferenceCurrency,
		"event_bus_driver", cfg.EventBus.Driver,
	)
	return &cfg, nil
}

func (c *App) normalize() error {
	c.Bank.ReferenceCurrency = strings.ToUpper(strings.TrimSpace(c.Bank.ReferenceCurrency))
	c.RateCache.Backend = strings.ToLower(strings.TrimSpace(c.RateCache.Backend))
	c.EventBus.Driver = strings.ToLower(strings.TrimSpace(c.EventBus.Driver))
	c.Server.BasePath = strings.TrimSuffix(c.Server.BasePath, "/")

	switch {
	case c.Bank.ReferenceCurrency == "":
		return fmt.Errorf("%w: BANK_REFERENCE_CURRENCY is empty", ErrInvalidConfig)
	case c.Bank.OverdraftLimit.IsNegative():
		return fmt.Errorf("%w: BANK_OVERDRAFT_LIMIT is negative", ErrInvalidConfig)
	case c.RateCache.RefreshInterval <= 0:
		return fmt.Errorf("%w: RATE_CACHE_REFRESH_INTERVAL must be positive", ErrInvalidConfig)
	case c.RateLimit.MaxRequests <= 0 || c.RateLimit.Window <= 0:
		return fmt.Errorf("%w: RATE_LIMIT_MAX_REQUESTS and RATE_LIMIT_WINDOW must be positive", ErrInvalidConfig)
	}
	return nil
}

// findEnvFile walks from the working directory up to the filesystem root looking for name.
func findEnvFile(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetEnvAsDuration parses key as a duration, returning fallback when unset or malformed.
func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}

func maskValue(v string) string {
	if len(v) <= 6 {
		return "****"
	}
	return v[:2] + "****" + v[len(v)-4:]
}
