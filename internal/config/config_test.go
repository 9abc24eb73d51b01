package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"viewer-token"}, cfg.ViewerTokens)
	assert.Equal(t, []string{"editor-token"}, cfg.EditorTokens)
}

func TestLoadYAMLFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "port: \"9000\"\ndatabase_url: postgres://file/db\neditor_tokens:\n  - alice\n  - bob\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7777")

	cfg, err := Load()
	require.NoError(t, err)

	// Окружение перекрывает файл, файл перекрывает значения по умолчанию
	assert.Equal(t, "7777", cfg.Port)
	assert.Equal(t, "postgres://file/db", cfg.DatabaseURL)
	assert.Equal(t, []string{"alice", "bob"}, cfg.EditorTokens)
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitTokens("a, b,"))
	assert.Empty(t, splitTokens(" ,, "))
}
