// Package config reads the application settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	App  string
	Addr string

	PostgresDSN           string
	PostgresMigrationsDir string
	DBPath                string
	DBMigrationsDir       string

	SimulatedLatency time.Duration
	DefaultUserID    string
	LogLevel         log.Level

	RateLimitRPS   float64
	RateLimitBurst int
}

const (
	defaultAddr           = ":8080"
	defaultLatency        = time.Second
	defaultUserID         = "test@test.com"
	defaultRateLimitRPS   = 20
	defaultRateLimitBurst = 40

	lambdaFunctionNameEnvVar = "AWS_LAMBDA_FUNCTION_NAME"
)

// InLambda reports whether the process runs inside AWS Lambda.
func InLambda() bool {
	return os.Getenv(lambdaFunctionNameEnvVar) != ""
}

// LoadDotEnv reads .env and .env.local outside Lambda. Missing files are ignored.
func LoadDotEnv() {
	if InLambda() {
		return
	}
	_ = godotenv.Load(".env", ".env.local")
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, which has the signature of os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		App:                   get("APP", ""),
		Addr:                  get("ADDR", defaultAddr),
		PostgresDSN:           get("POSTGRES_DSN", ""),
		PostgresMigrationsDir: get("POSTGRES_MIGRATIONS_DIR", ""),
		DBPath:                get("DB_PATH", ""),
		DBMigrationsDir:       get("DB_MIGRATIONS_DIR", ""),
		DefaultUserID:         get("DEFAULT_USER_ID", defaultUserID),
	}

	latency, err := time.ParseDuration(get("SIMULATED_LATENCY", defaultLatency.String()))
	if err != nil {
		return Config{}, fmt.Errorf("SIMULATED_LATENCY: %w", err)
	}
	if latency < 0 {
		return Config{}, fmt.Errorf("SIMULATED_LATENCY: must not be negative, got %s", latency)
	}
	cfg.SimulatedLatency = latency

	level, err := log.ParseLevel(get("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	rps, err := strconv.ParseFloat(get("RATE_LIMIT_RPS", strconv.Itoa(defaultRateLimitRPS)), 64)
	if err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if rps < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS: must not be negative, got %v", rps)
	}
	cfg.RateLimitRPS = rps

	burst, err := strconv.Atoi(get("RATE_LIMIT_BURST", strconv.Itoa(defaultRateLimitBurst)))
	if err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	if burst < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST: must not be negative, got %d", burst)
	}
	if rps > 0 && burst < 1 {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST: must be at least 1 when RATE_LIMIT_RPS is set, got %d", burst)
	}
	cfg.RateLimitBurst = burst

	return cfg, nil
}

// IsProd disables the demo data set.
func (c Config) IsProd() bool {
	return strings.EqualFold(c.App, "prod")
}

// NewLogger returns a logger writing to stderr at the configured level.
func (c Config) NewLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           c.LogLevel,
		ReportTimestamp: true,
	})
	if c.IsProd() {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}
