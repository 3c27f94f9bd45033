package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv снимает переменную окружения на время теста,
// восстанавливая исходное значение через t.Setenv
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

// TestLoad_Defaults проверяет значения по умолчанию при пустом окружении
func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "SERVER_HOST", "API_URL", "BACKEND_TIMEOUT_SECONDS", "STORAGE_PATH",
	} {
		unsetenv(t, key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "https://api.agentbox.lingyiwanwu.com", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.GetTimeout())
	assert.Empty(t, cfg.Storage.Path)
}

// TestLoad_Overrides проверяет чтение значений из переменных окружения
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("API_URL", "http://backend.local")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "5")
	t.Setenv("STORAGE_PATH", "/tmp/gateway.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "http://backend.local", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.GetTimeout())
	assert.Equal(t, "/tmp/gateway.json", cfg.Storage.Path)
}
