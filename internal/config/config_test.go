package config

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, time.Second, cfg.SimulatedLatency)
	assert.Equal(t, "test@test.com", cfg.DefaultUserID)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.False(t, cfg.IsProd())
	assert.Empty(t, cfg.PostgresDSN)
	assert.Empty(t, cfg.DBPath)
}

func TestOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"APP":               "PROD",
		"ADDR":              " :9000 ",
		"DB_PATH":           "picklego.db",
		"SIMULATED_LATENCY": "0s",
		"DEFAULT_USER_ID":   "me@example.com",
		"LOG_LEVEL":         "debug",
		"RATE_LIMIT_RPS":    "2.5",
		"RATE_LIMIT_BURST":  "5",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "picklego.db", cfg.DBPath)
	assert.Zero(t, cfg.SimulatedLatency)
	assert.Equal(t, "me@example.com", cfg.DefaultUserID)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 5, cfg.RateLimitBurst)
}

func TestInvalidValues(t *testing.T) {
	tests := map[string]string{
		"SIMULATED_LATENCY": "soon",
		"LOG_LEVEL":         "loud",
		"RATE_LIMIT_RPS":    "-1",
		"RATE_LIMIT_BURST":  "many",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(map[string]string{key: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestBurstRequiredWithRateLimit(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{"RATE_LIMIT_RPS": "5", "RATE_LIMIT_BURST": "0"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")

	cfg, err := FromLookup(lookupFrom(map[string]string{"RATE_LIMIT_RPS": "0", "RATE_LIMIT_BURST": "0"}))
	require.NoError(t, err)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Zero(t, cfg.RateLimitBurst)
}
