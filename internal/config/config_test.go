package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"port": 9090,
		"api_key": "test-key",
		"database_url": "postgres://localhost/intel",
		"llm_timeout_seconds": 5,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "postgres://localhost/intel", cfg.DatabaseURL)
	assert.Equal(t, 5, cfg.LLMTimeoutSeconds)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Port: 8080, RequestsPerMin: 60}
	assert.NoError(t, valid.Validate())

	badPort := Config{Port: 70000}
	assert.Error(t, badPort.Validate())

	negativeRate := Config{RequestsPerMin: -1}
	assert.Error(t, negativeRate.Validate())

	negativeTimeout := Config{LLMTimeoutSeconds: -5}
	assert.Error(t, negativeTimeout.Validate())
}

func TestConfig_MergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "from-file"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "from-file", merged.APIKey)
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, 60, merged.RequestsPerMin)
	assert.Equal(t, 8, merged.LLMTimeoutSeconds)
}

func TestConfig_MergeWithDefaults_ExplicitValuesWin(t *testing.T) {
	cfg := Config{Port: 3000, LLMTimeoutSeconds: 20}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 3000, merged.Port)
	assert.Equal(t, 20, merged.LLMTimeoutSeconds)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("PORT", "7070")

	cfg := FromEnv()
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, 7070, cfg.Port)
}
