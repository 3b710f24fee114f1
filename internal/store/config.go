// File path: internal/store/config.go
package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls the SQLite connection pool backing the store.
type Config struct {
	Path string

	MaxOpenConns int
	MaxIdleConns int

	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	BusyTimeout     time.Duration
}

// Merge overlays non-zero fields from the override onto the base config.
func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.Path) != "" {
		result.Path = strings.TrimSpace(override.Path)
	}
	if override.MaxOpenConns > 0 {
		result.MaxOpenConns = override.MaxOpenConns
	}
	if override.MaxIdleConns > 0 {
		result.MaxIdleConns = override.MaxIdleConns
	}
	if override.ConnMaxLifetime > 0 {
		result.ConnMaxLifetime = override.ConnMaxLifetime
	}
	if override.ConnMaxIdleTime > 0 {
		result.ConnMaxIdleTime = override.ConnMaxIdleTime
	}
	if override.BusyTimeout > 0 {
		result.BusyTimeout = override.BusyTimeout
	}
	return result
}

// LoadConfig builds the store configuration from GRIP_* environment
// variables with defaults applied.
func LoadConfig() (Config, error) {
	cfg := Config{}
	if path := strings.TrimSpace(os.Getenv("GRIP_DB")); path != "" {
		cfg.Path = path
	}
	if open := strings.TrimSpace(os.Getenv("GRIP_DB_MAX_OPEN_CONNS")); open != "" {
		value, err := strconv.Atoi(open)
		if err != nil {
			return Config{}, fmt.Errorf("parse GRIP_DB_MAX_OPEN_CONNS: %w", err)
		}
		cfg.MaxOpenConns = value
	}
	if idle := strings.TrimSpace(os.Getenv("GRIP_DB_MAX_IDLE_CONNS")); idle != "" {
		value, err := strconv.Atoi(idle)
		if err != nil {
			return Config{}, fmt.Errorf("parse GRIP_DB_MAX_IDLE_CONNS: %w", err)
		}
		cfg.MaxIdleConns = value
	}
	if lifetime := strings.TrimSpace(os.Getenv("GRIP_DB_CONN_MAX_LIFETIME")); lifetime != "" {
		parsed, err := time.ParseDuration(lifetime)
		if err != nil {
			return Config{}, fmt.Errorf("parse GRIP_DB_CONN_MAX_LIFETIME: %w", err)
		}
		cfg.ConnMaxLifetime = parsed
	}
	if idleTime := strings.TrimSpace(os.Getenv("GRIP_DB_CONN_MAX_IDLE_TIME")); idleTime != "" {
		parsed, err := time.ParseDuration(idleTime)
		if err != nil {
			return Config{}, fmt.Errorf("parse GRIP_DB_CONN_MAX_IDLE_TIME: %w", err)
		}
		cfg.ConnMaxIdleTime = parsed
	}
	if busy := strings.TrimSpace(os.Getenv("GRIP_DB_BUSY_TIMEOUT")); busy != "" {
		parsed, err := time.ParseDuration(busy)
		if err != nil {
			return Config{}, fmt.Errorf("parse GRIP_DB_BUSY_TIMEOUT: %w", err)
		}
		cfg.BusyTimeout = parsed
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Path == "" {
		c.Path = "data/grip.db"
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 4
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = c.MaxOpenConns
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = 15 * time.Minute
	}
	if c.ConnMaxIdleTime <= 0 {
		c.ConnMaxIdleTime = 5 * time.Minute
	}
	if c.BusyTimeout <= 0 {
		c.BusyTimeout = 5 * time.Second
	}
}
