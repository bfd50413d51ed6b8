package services

import (
	"context"
	"errors"
	"testing"

	"simpleclaw-keeper/internal/runtime"
	"simpleclaw-keeper/internal/runtime/runtimetest"

	"github.com/stretchr/testify/assert"
)

func TestDockerProbeHealthy(t *testing.T) {
	rec := runtimetest.NewRecorder()
	rec.On(&runtime.Result{Stdout: []byte("Docker version 27.3.1, build ce12230\n")}, "--version")
	rec.On(&runtime.Result{Stdout: []byte("Docker Compose version v2.29.7-desktop.1\n")}, "compose", "version")

	status := NewDockerProbe(testConfig(), rec).Check(context.Background())
	assert.True(t, status.Installed)
	assert.Equal(t, "Docker version 27.3.1, build ce12230", status.Version)
	assert.True(t, status.Compose)
	assert.Equal(t, "2.29.7", status.ComposeVersion)
	assert.True(t, status.Running)
	assert.Equal(t, InstallURL(), status.InstallURL)

	assert.Equal(t, []string{"--version", "compose version", "info"}, rec.Lines())
}

func TestDockerProbeNotInstalled(t *testing.T) {
	rec := runtimetest.NewRecorder()
	rec.StartFailed = errors.New(`exec: "docker": executable file not found in $PATH`)

	status := NewDockerProbe(testConfig(), rec).Check(context.Background())
	assert.False(t, status.Installed)
	assert.False(t, status.Compose)
	assert.False(t, status.Running)
	assert.Empty(t, status.Version)
	assert.Len(t, rec.Calls(), 1, "nothing else is probed")
}

func TestDockerProbeDaemonDown(t *testing.T) {
	rec := runtimetest.NewRecorder()
	rec.On(&runtime.Result{Stdout: []byte("Docker version 24.0.7\n")}, "--version")
	rec.Fail("Cannot connect to the Docker daemon at unix:///var/run/docker.sock", "info")
	rec.Fail("docker: 'compose' is not a docker command.", "compose", "version")

	status := NewDockerProbe(testConfig(), rec).Check(context.Background())
	assert.True(t, status.Installed)
	assert.False(t, status.Compose)
	assert.Empty(t, status.ComposeVersion)
	assert.False(t, status.Running)
}

func TestInstallURL(t *testing.T) {
	assert.Equal(t, "https://docs.docker.com/desktop/setup/install/mac-install/", installURLFor("darwin"))
	assert.Equal(t, "https://docs.docker.com/desktop/setup/install/windows-install/", installURLFor("windows"))
	assert.Equal(t, "https://docs.docker.com/engine/install/", installURLFor("linux"))
	assert.Equal(t, "https://docs.docker.com/engine/install/", installURLFor("freebsd"))
}
