package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"APP_PORT", "APP_ENV", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSLMODE", "JWT_SECRET", "OFFLINE_THRESHOLD_SECONDS",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, 120*time.Second, cfg.OfflineThreshold)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("OFFLINE_THRESHOLD_SECONDS", "30")

	cfg := Load()
	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, 30*time.Second, cfg.OfflineThreshold)
}

func TestLoadBadThresholdFallsBack(t *testing.T) {
	t.Setenv("OFFLINE_THRESHOLD_SECONDS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 120*time.Second, cfg.OfflineThreshold)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5432", DBUser: "admin",
		DBPassword: "secret", DBName: "attendance", DBSSLMode: "disable",
	}
	assert.Equal(t,
		"host=db user=admin password=secret dbname=attendance port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN())
}
