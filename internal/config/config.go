// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"vrp-visualizer-service/internal/domain"
)

type Config struct {
	Port string

	// Run history backend: Postgres wins over Redis, memory otherwise.
	DatabaseURL     string
	RedisURL        string
	RunHistoryLimit int

	CORSAllowedOrigins []string

	// Solve limiter, requests per second and burst
	RateLimitRPS   float64
	RateLimitBurst int

	Limits domain.Limits
	Field  domain.Field

	// Zero leaves the process-wide source unseeded.
	RandomSeed uint64
}

// Load reads the environment and the optional FIELD_CONFIG_PATH overlay.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               Get("PORT", "8080"),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:           strings.TrimSpace(os.Getenv("REDIS_URL")),
		RunHistoryLimit:    GetInt("RUN_HISTORY_LIMIT", 100),
		CORSAllowedOrigins: GetStringList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		RateLimitRPS:       GetFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:     GetInt("RATE_LIMIT_BURST", 40),
		Limits: domain.Limits{
			MaxCustomers: GetInt("MAX_CUSTOMERS", 500),
			MaxVehicles:  GetInt("MAX_VEHICLES", 50),
			MaxCapacity:  GetInt("MAX_CAPACITY", 10000),
		},
		Field: domain.DefaultField(),
	}

	seed, err := GetUint64("RANDOM_SEED", 0)
	if err != nil {
		return nil, err
	}
	cfg.RandomSeed = seed

	if path := strings.TrimSpace(os.Getenv("FIELD_CONFIG_PATH")); path != "" {
		field, err := LoadField(path, cfg.Field)
		if err != nil {
			return nil, err
		}
		cfg.Field = field
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.RunHistoryLimit < 1 || c.RunHistoryLimit > 10000 {
		return fmt.Errorf("RUN_HISTORY_LIMIT must be between 1 and 10000, got %d", c.RunHistoryLimit)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %g", c.RateLimitRPS)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimitBurst)
	}

	for _, l := range []struct {
		name  string
		value int
	}{
		{"MAX_CUSTOMERS", c.Limits.MaxCustomers},
		{"MAX_VEHICLES", c.Limits.MaxVehicles},
		{"MAX_CAPACITY", c.Limits.MaxCapacity},
	} {
		if l.value < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", l.name, l.value)
		}
	}

	if err := c.Field.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Get returns the value of key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return fallback
}

// GetUint64 is strict: a malformed seed would silently change reproducibility.
func GetUint64(key string, fallback uint64) (uint64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an unsigned integer: %w", key, err)
	}
	return n, nil
}

// GetStringList splits a comma-separated value, dropping empty entries.
func GetStringList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
