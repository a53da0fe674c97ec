package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults apply without environment", func(t *testing.T) {
		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "en", cfg.Language)
		assert.Equal(t, 15*time.Second, cfg.GitHub.RequestTimeout)
		assert.Equal(t, 2, cfg.GitHub.MaxRetries)
		assert.Equal(t, "gemini-2.5-flash", cfg.AI.Backends["gemini"].Model)
		assert.Equal(t, "llama-3.3-70b-versatile", cfg.AI.Backends["groq"].Model)
		assert.Equal(t, 8*time.Second, cfg.AI.Backends["gemini"].Timeout)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("CODULA_USER", "user-1")
		t.Setenv("CODULA_LANGUAGE", "es")
		t.Setenv("DATABASE_URL", "postgres://localhost/codula")
		t.Setenv("GITHUB_TOKEN", "ghp_secret")
		t.Setenv("GEMINI_API_KEY", "gm_key")
		t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
		t.Setenv("GROQ_API_KEY", "gsk_key")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "user-1", cfg.UserID)
		assert.Equal(t, "es", cfg.Language)
		assert.Equal(t, "postgres://localhost/codula", cfg.DatabaseURL)
		assert.Equal(t, "ghp_secret", cfg.GitHub.Token)
		assert.Equal(t, "gm_key", cfg.AI.Backends["gemini"].APIKey)
		assert.Equal(t, "gemini-2.5-pro", cfg.AI.Backends["gemini"].Model)
		assert.Equal(t, "gsk_key", cfg.AI.Backends["groq"].APIKey)
	})

	t.Run("backend order is fixed", func(t *testing.T) {
		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, []string{"gemini", "groq"}, cfg.AI.Order)
	})
}
