package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                string        // dev, prod
	HTTPPort           string        // default 8080
	DataFile           string        // CSV appointment log path
	AvailabilityWindow time.Duration // minimum separation between bookings sharing a doctor or room
	ShutdownTimeout    time.Duration // graceful shutdown timeout
	WorkerInterval     time.Duration // how often the status worker runs
	SeedOnStart        bool          // build the fixture network on startup
	FixtureSeed        uint64        // deterministic fixture generation seed
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:                getEnv("APP_ENV", "dev"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DataFile:           getEnv("DATA_FILE", "appointments.csv"),
		AvailabilityWindow: getDuration("AVAILABILITY_WINDOW", 2*time.Hour),
		ShutdownTimeout:    getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		WorkerInterval:     getDuration("WORKER_INTERVAL", time.Minute),
		SeedOnStart:        getBool("SEED_ON_START", true),
		FixtureSeed:        getUint("FIXTURE_SEED", 42),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		fmt.Fprintf(os.Stderr, "invalid duration for %s=%q, using default %s\n", key, v, def)
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		fmt.Fprintf(os.Stderr, "invalid bool for %s=%q, using default %t\n", key, v, def)
	}
	return def
}

func getUint(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
		fmt.Fprintf(os.Stderr, "invalid number for %s=%q, using default %d\n", key, v, def)
	}
	return def
}
