package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnvDefaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.APIURL)
	assert.Equal(t, 30, cfg.LLM.Timeout)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.True(t, cfg.Store.Seed)
	assert.Equal(t, TranslateBackendLLM, cfg.Translate.Backend)
	assert.Equal(t, 30, cfg.Translate.CacheTTLDays)
	assert.Equal(t, 1000, cfg.Translate.CacheMax)
	assert.Equal(t, 500, cfg.Translate.CacheTrimTo)
	assert.Equal(t, "0 * * * *", cfg.Maint.CacheSweepCron)
	assert.Equal(t, "0 0 * * 1", cfg.Maint.WeeklyResetCron)
}

func TestNewFromEnvOverrides(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9090")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("STORE_SQLITE_PATH", "/tmp/ga.db")
	t.Setenv("STORE_SEED", "false")
	t.Setenv("TRANSLATE_CACHE_TTL_DAYS", "7")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/ga.db", cfg.Store.SQLitePath)
	assert.False(t, cfg.Store.Seed)
	assert.Equal(t, 7, cfg.Translate.CacheTTLDays)
}

func TestNewFromEnvRequiresAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")

	_, err := NewFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_API_KEY")
}

func TestNewFromEnvRejectsUnknownDriver(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := NewFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestNewFromEnvRejectsUnknownBackend(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("TRANSLATE_BACKEND", "google")

	_, err := NewFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRANSLATE_BACKEND")
}

func TestOptionsApplyAfterEnv(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")

	cfg, err := NewFromEnv(func(c *Config) {
		c.HTTP.Addr = ":0"
	})
	require.NoError(t, err)
	assert.Equal(t, ":0", cfg.HTTP.Addr)
}

func TestInvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("LLM_MAX_TOKENS", "not-a-number")
	t.Setenv("STORE_SEED", "not-a-bool")

	cfg, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.LLM.MaxTokens)
	assert.True(t, cfg.Store.Seed)
}
