package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "https://www.patreon.com/api/oauth2/v2", cfg.Patreon.BaseURL)
	assert.Equal(t, "@every 15m", cfg.Scheduler.PatreonSchedule)
	assert.True(t, cfg.Scheduler.RunOnStart)
	assert.Equal(t, "builtin", cfg.Supporters.Source)
	assert.Equal(t, 8, cfg.Reconcile.VerifyConcurrency)
	assert.Equal(t, 86400, cfg.Redis.IdempotencyTTLSeconds)
	assert.False(t, cfg.Storage.Enabled)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("PATREON_CAMPAIGN_ID", "camp")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("STORAGE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "camp", cfg.Patreon.CampaignID)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.Storage.Enabled)
}

func TestLoadConfig_LegacyNames(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PATREON_WEBHOOK_SECRET", "hook")
	t.Setenv("CREATOR_TOKEN", "tok")
	t.Setenv("CREATOR_CAMPAIGN", "123")
	t.Setenv("DRAGONITE_API_URL", "http://dragonite:7272")
	t.Setenv("DRAGONITE_API_SECRET", "cookie")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "hook", cfg.Server.WebhookSecret)
	assert.Equal(t, "tok", cfg.Patreon.Token)
	assert.Equal(t, "123", cfg.Patreon.CampaignID)
	assert.Equal(t, "http://dragonite:7272", cfg.Dragonite.BaseURL)
	assert.Equal(t, "cookie", cfg.Dragonite.Secret)
}

func TestLoadConfig_CanonicalWins(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SERVER_PORT", "7000")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}
