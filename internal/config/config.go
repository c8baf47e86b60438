// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds all server settings. It is read once at startup.
type Config struct {
	// Server
	Port string

	// Game
	GameOverTime time.Duration

	// Storage
	StorageType string
	RedisURL    string

	// Auth
	SessionDuration time.Duration

	// Rate limit
	RateLimitRPS   float64
	RateLimitBurst int

	// Logging
	LogLevel slog.Level

	// Seed account, created at startup when email and password are set
	SeedUserEmail    string
	SeedUserPassword string
	SeedUserName     string
}

// Load reads Config from environment variables. Unset variables take their
// defaults; malformed values are reported together.
func Load() (*Config, error) {
	l := &loader{}

	cfg := &Config{
		Port:             l.getString("PORT", "8080"),
		GameOverTime:     time.Duration(l.getInt("GAME_OVER_TIME", 10)) * time.Minute,
		StorageType:      strings.ToLower(l.getString("STORAGE_TYPE", StorageMemory)),
		RedisURL:         l.getString("REDIS_URL", ""),
		SessionDuration:  l.getDuration("SESSION_DURATION", 24*time.Hour),
		RateLimitRPS:     l.getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:   l.getInt("RATE_LIMIT_BURST", 20),
		LogLevel:         l.getLevel("LOG_LEVEL", slog.LevelInfo),
		SeedUserEmail:    l.getString("SEED_USER_EMAIL", ""),
		SeedUserPassword: l.getString("SEED_USER_PASSWORD", ""),
		SeedUserName:     l.getString("SEED_USER_NAME", "admin"),
	}

	if cfg.GameOverTime <= 0 {
		l.fail("GAME_OVER_TIME", "must be positive")
	}
	switch cfg.StorageType {
	case StorageMemory:
	case StorageRedis:
		if cfg.RedisURL == "" {
			l.fail("REDIS_URL", "required when STORAGE_TYPE=redis")
		}
	default:
		l.fail("STORAGE_TYPE", "must be 'memory' or 'redis'")
	}
	if cfg.RateLimitRPS < 0 {
		l.fail("RATE_LIMIT_RPS", "must not be negative")
	}

	if len(l.problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(l.problems, "; "))
	}
	return cfg, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return ":" + c.Port
}

// SeedUserEnabled reports whether a seed account is configured
func (c *Config) SeedUserEnabled() bool {
	return c.SeedUserEmail != "" && c.SeedUserPassword != ""
}

type loader struct {
	problems []string
}

func (l *loader) fail(key, msg string) {
	l.problems = append(l.problems, key+" "+msg)
}

func (l *loader) getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func (l *loader) getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		l.fail(key, "must be an integer")
		return def
	}
	return n
}

func (l *loader) getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		l.fail(key, "must be a number")
		return def
	}
	return f
}

func (l *loader) getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		l.fail(key, "must be a positive duration")
		return def
	}
	return d
}

func (l *loader) getLevel(key string, def slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		l.fail(key, "must be one of debug, info, warn, error")
		return def
	}
	return lvl
}
