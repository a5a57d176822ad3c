package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./bookings.db", cfg.Database.DSN)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.True(t, cfg.ReclaimEnabled())
	assert.Equal(t, "Local", cfg.Reclaim.Timezone)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8080
  rate_limit_per_sec: 25
database:
  driver: postgres
  dsn: "host=localhost user=booking dbname=booking"
reclaim:
  enabled: false
  timezone: "Europe/Berlin"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 25.0, cfg.Server.RateLimitPerSec)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.ReclaimEnabled())
	assert.Equal(t, "Europe/Berlin", cfg.Reclaim.Timezone)

	// Unset fields still get defaults.
	assert.Equal(t, 30, cfg.Server.CacheTTLSeconds)
	assert.Equal(t, 3600, cfg.Push.TTL)
}

func TestLoad_PortEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoad_InvalidPortEnvIgnored(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a mapping"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
