package services

import (
	"context"
	goruntime "runtime"
	"strings"

	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/internal/runtime"
	"simpleclaw-keeper/internal/utils"
)

var installURLs = map[string]string{
	"darwin":  "https://docs.docker.com/desktop/setup/install/mac-install/",
	"windows": "https://docs.docker.com/desktop/setup/install/windows-install/",
	"linux":   "https://docs.docker.com/engine/install/",
}

// InstallURL returns the Docker installation guide for the current OS
func InstallURL() string {
	return installURLFor(goruntime.GOOS)
}

func installURLFor(goos string) string {
	if u, ok := installURLs[goos]; ok {
		return u
	}
	return installURLs["linux"]
}

// IsLinux reports whether the keeper runs on Linux
func IsLinux() bool {
	return goruntime.GOOS == "linux"
}

// DockerProbe checks that the container runtime is usable
type DockerProbe struct {
	stackCommand
}

func NewDockerProbe(cfg *config.AppConfig, runner runtime.Runner) *DockerProbe {
	return &DockerProbe{stackCommand: newStackCommand(cfg, runner)}
}

/**
 * Probe docker, docker compose and the docker daemon
 * @param {context.Context} ctx - Passed to every process call
 * @returns {models.DockerStatus} Never fails; problems show up as false flags
 * @description
 * - When `docker --version` fails nothing else is probed
 * - `docker info` succeeding means the daemon is reachable
 */
func (p *DockerProbe) Check(ctx context.Context) models.DockerStatus {
	status := models.DockerStatus{InstallURL: InstallURL()}

	res, err := p.run(ctx, OpDockerVersion, commandData{})
	if err != nil || !res.Success() {
		return status
	}
	status.Installed = true
	status.Version = strings.TrimSpace(res.StdoutText())

	if res, err := p.run(ctx, OpComposeVersion, commandData{}); err == nil && res.Success() {
		status.Compose = true
		if v := utils.ExtractVersionNumber(res.StdoutText()); v != nil {
			status.ComposeVersion = v.String()
		}
	}
	if res, err := p.run(ctx, OpDockerInfo, commandData{}); err == nil && res.Success() {
		status.Running = true
	}
	return status
}
