package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "hackokai.db", cfg.DatabasePath)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "", cfg.AIProvider)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BASE_URL", "https://hackokai.example.com/")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://hackokai.example.com", cfg.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.Equal(t, "openai", cfg.AIProvider, "credential presence selects the provider")
}

func TestLoadExplicitProviderWins(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AI_PROVIDER", "gemini")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.AIProvider)
}
