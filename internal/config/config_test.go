package config

import (
	"os"
	"path/filepath"
	"testing"

	"simpleclaw-keeper/internal/env"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "keeper.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

/**
 * Test defaults are applied for keys absent from the file
 * @param {testing.T} t - Testing object
 * @description
 * - Only server.mode is set in the file
 * - Every other key falls back to its default
 */
func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "server:\n  mode: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "127.0.0.1:18790", cfg.Server.Address)
	assert.Equal(t, env.GetSocketPath(), cfg.Server.Socket)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, env.GetInstallDir(), cfg.Install.Dir)
	assert.Equal(t, 10, cfg.Deploy.SettleSeconds)
	assert.Equal(t, "https://install-openclow.ru/api", cfg.Remote.BackendURL)
	assert.Equal(t, "https://api.telegram.org", cfg.Remote.TelegramAPI)
	assert.Equal(t, "docker", cfg.Docker.Binary)
}

func TestLoadConfigFileValues(t *testing.T) {
	file := writeConfig(t, `install:
  dir: /srv/openclaw
deploy:
  settle_seconds: -5
remote:
  backend_url: http://localhost:8000/api/
docker:
  binary: podman
`)
	cfg, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, "/srv/openclaw", cfg.Install.Dir)
	assert.Equal(t, 0, cfg.Deploy.SettleSeconds, "negative delay is clamped")
	assert.Equal(t, "http://localhost:8000/api", cfg.Remote.BackendURL)
	assert.Equal(t, "podman", cfg.Docker.Binary)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SIMPLECLAW_DEPLOY_SETTLE_SECONDS", "3")
	t.Setenv("SIMPLECLAW_INSTALL_DIR", "/tmp/claw")

	cfg, err := LoadConfig(writeConfig(t, "deploy:\n  settle_seconds: 20\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Deploy.SettleSeconds)
	assert.Equal(t, "/tmp/claw", cfg.Install.Dir)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "server: [unclosed\n"))
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	require.NoError(t, Init(writeConfig(t, "log:\n  level: debug\n")))
	assert.Equal(t, "debug", App().Log.Level)
}
