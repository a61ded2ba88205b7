package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "HTTP_PORT", "DATA_FILE", "AVAILABILITY_WINDOW",
		"SHUTDOWN_TIMEOUT", "WORKER_INTERVAL", "SEED_ON_START", "FIXTURE_SEED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "appointments.csv", cfg.DataFile)
	assert.Equal(t, 2*time.Hour, cfg.AvailabilityWindow)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Minute, cfg.WorkerInterval)
	assert.True(t, cfg.SeedOnStart)
	assert.Equal(t, uint64(42), cfg.FixtureSeed)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATA_FILE", "/var/lib/clinic/appointments.csv")
	t.Setenv("AVAILABILITY_WINDOW", "90m")
	t.Setenv("SHUTDOWN_TIMEOUT", "30")
	t.Setenv("WORKER_INTERVAL", "5m")
	t.Setenv("SEED_ON_START", "false")
	t.Setenv("FIXTURE_SEED", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "/var/lib/clinic/appointments.csv", cfg.DataFile)
	assert.Equal(t, 90*time.Minute, cfg.AvailabilityWindow)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout, "bare numbers read as seconds")
	assert.Equal(t, 5*time.Minute, cfg.WorkerInterval)
	assert.False(t, cfg.SeedOnStart)
	assert.Equal(t, uint64(7), cfg.FixtureSeed)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("AVAILABILITY_WINDOW", "soon")
	t.Setenv("SEED_ON_START", "yep")
	t.Setenv("FIXTURE_SEED", "-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.AvailabilityWindow)
	assert.True(t, cfg.SeedOnStart)
	assert.Equal(t, uint64(42), cfg.FixtureSeed)
}
