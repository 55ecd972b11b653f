package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("PGSQL_URL", "")
	t.Setenv("LOCK_TTL", "not-a-duration")
	t.Setenv("LEDGER_TIMEZONE", "Mars/Olympus_Mons")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.LockTTL)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, "", cfg.LeaseSeedPath)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("PORT", "9090")
	t.Setenv("LOCK_TTL", "3s")
	t.Setenv("LEDGER_TIMEZONE", "America/New_York")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("RATE_LIMIT", "10-S")
	t.Setenv("LEASE_SEED_FILE", "testdata/leases.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.LockTTL)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "10-S", cfg.RateLimit)
	assert.Equal(t, "testdata/leases.json", cfg.LeaseSeedPath)
}
