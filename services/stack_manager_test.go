package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"simpleclaw-keeper/internal/artifact"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/internal/runtime"
	"simpleclaw-keeper/internal/runtime/runtimetest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInstallDir = "/opt/simpleclaw/openclaw"

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Install: config.InstallConfig{Dir: testInstallDir},
		Deploy:  config.DeployConfig{SettleSeconds: 10},
		Docker:  config.DockerConfig{Binary: "docker"},
	}
}

func newTestStack() (*StackManager, *runtimetest.Recorder, *[]time.Duration) {
	rec := runtimetest.NewRecorder()
	m := NewStackManager(testConfig(), rec)
	slept := &[]time.Duration{}
	m.sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return m, rec, slept
}

func manifestArg() string {
	return filepath.Join(testInstallDir, artifact.ManifestFile)
}

const cliPrefix = "exec openclaw node /app/openclaw.mjs "

func TestDeployCallSequence(t *testing.T) {
	m, rec, slept := newTestStack()

	result, err := m.Deploy(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, MsgDeployed, result.Message)
	assert.Len(t, result.Steps, len(DeployDirectives))
	assert.Zero(t, result.FailedSteps())
	assert.Equal(t, []time.Duration{10 * time.Second}, *slept)

	assert.Equal(t, []string{
		"compose -f " + manifestArg() + " up -d --build",
		"exec -u root openclaw chown -R node:node /home/node/.openclaw",
		cliPrefix + "browser create-profile --name headless --color #00FF00 --driver openclaw",
		cliPrefix + "config set browser.defaultProfile headless",
		cliPrefix + "config set browser.noSandbox true",
		cliPrefix + "config set browser.headless true",
		cliPrefix + "doctor --fix",
		cliPrefix + "config set gateway.mode local",
	}, rec.Lines())
	for _, c := range rec.Calls() {
		assert.Equal(t, "docker", c.Name)
	}
}

func TestDeployFailsOnlyWhenUpFails(t *testing.T) {
	m, rec, slept := newTestStack()
	rec.Fail("pull access denied for openclaw", "up")

	result, err := m.Deploy(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "Docker compose failed: pull access denied for openclaw", err.Error())

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 1, cmdErr.ExitCode)

	assert.Len(t, rec.Calls(), 1, "nothing may run after a failed up")
	assert.Empty(t, *slept)
}

func TestDeployDockerMissing(t *testing.T) {
	m, rec, _ := newTestStack()
	rec.Unstartable(errors.New(`exec: "docker": executable file not found in $PATH`), "up")

	_, err := m.Deploy(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to start Docker: "))
}

func TestDeployToleratesPostStartFailures(t *testing.T) {
	m, rec, _ := newTestStack()
	rec.Fail("Error: container openclaw is restarting", "chown")
	rec.Fail("gateway not ready", "doctor")

	result, err := m.Deploy(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.FailedSteps())

	require.Len(t, result.Steps, 7)
	assert.Equal(t, models.StepOutcome{Name: "fix permissions", OK: false, Error: "Error: container openclaw is restarting"}, result.Steps[0])
	assert.True(t, result.Steps[1].OK)
	assert.Equal(t, "doctor", result.Steps[5].Name)
	assert.False(t, result.Steps[5].OK)
	assert.True(t, result.Steps[6].OK)

	assert.Len(t, rec.Calls(), 8, "every post-start step is attempted")
}

func TestDeployToleratesUnstartableSteps(t *testing.T) {
	m, rec, _ := newTestStack()
	rec.Unstartable(errors.New("exec failed"), "exec")

	result, err := m.Deploy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(DeployDirectives), result.FailedSteps())
}

func TestOptimizeNoShortCircuit(t *testing.T) {
	m, rec, _ := newTestStack()
	rec.Fail("unknown key", "agents.defaults.heartbeat")
	rec.Fail("unknown key", "web.enabled")
	rec.Fail("fallbacks locked", "fallbacks", "clear")

	result, err := m.Optimize(context.Background(), "claude-sonnet-4")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, MsgOptimized, result.Message)
	assert.Equal(t, 3, result.FailedSteps())

	lines := rec.Lines()
	require.Len(t, lines, len(optimizeSettings)+1+2+1+1)
	assert.Equal(t, cliPrefix+`config set agents.defaults.heartbeat {"every": "0m"}`, lines[0])
	assert.Equal(t, cliPrefix+`config set agents.defaults.subagents {"model": "openrouter/google/gemini-3-flash-preview", "maxConcurrent": 2, "archiveAfterMinutes": 60}`, lines[1])
	assert.Equal(t, cliPrefix+"config set agents.defaults.memorySearch "+`{"enabled": true, "provider": "local", "store": {"path": "/home/node/.openclaw/memory.db"}}`, lines[11])
	assert.Equal(t, cliPrefix+"models fallbacks clear", lines[12])
	assert.Equal(t, cliPrefix+"models fallbacks add openrouter/google/gemini-2.5-flash", lines[13])
	assert.Equal(t, cliPrefix+"models fallbacks add openrouter/anthropic/claude-haiku-4.5", lines[14])
	assert.Equal(t, cliPrefix+"browser start --browser-profile headless", lines[16])
}

func TestOptimizeAliases(t *testing.T) {
	m, rec, _ := newTestStack()

	_, err := m.Optimize(context.Background(), "gpt-4o")
	require.NoError(t, err)

	var aliasCall *runtimetest.Invocation
	for _, c := range rec.Calls() {
		c := c
		if len(c.Args) > 1 && c.Args[len(c.Args)-2] == "agents.defaults.models" {
			aliasCall = &c
		}
	}
	require.NotNil(t, aliasCall)
	assert.Equal(t,
		`{"openrouter/anthropic/claude-opus-4.5":{"alias":"opus"},"openrouter/anthropic/claude-sonnet-4":{"alias":"sonnet"},"openrouter/anthropic/claude-haiku-4.5":{"alias":"haiku"},"openrouter/google/gemini-2.5-flash":{"alias":"flash"},"openrouter/deepseek/deepseek-reasoner":{"alias":"deepseek"},"openrouter/google/gemini-3-flash-preview":{"alias":"gemini3"}}`,
		aliasCall.Args[len(aliasCall.Args)-1])
}

func TestOptimizeFallbacksByFamily(t *testing.T) {
	tests := []struct {
		model      string
		fallback   string
		recognized bool
	}{
		{"claude-sonnet-4", "openrouter/anthropic/claude-haiku-4.5", true},
		{"gpt-4o", "openrouter/openai/gpt-4o-mini", true},
		{"gemini-3-flash", "openrouter/anthropic/claude-haiku-4.5", true},
		{"llama-70b", "openrouter/anthropic/claude-haiku-4.5", false},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			m, rec, _ := newTestStack()
			result, err := m.Optimize(context.Background(), tt.model)
			require.NoError(t, err)
			assert.True(t, result.Success)
			assert.Contains(t, rec.Lines(), cliPrefix+"models fallbacks add "+tt.fallback)
			if tt.recognized {
				assert.Equal(t, MsgOptimized, result.Message)
			} else {
				assert.Contains(t, result.Message, "unknown model 'llama-70b'")
			}
		})
	}
}

func TestStrictOperations(t *testing.T) {
	ops := []struct {
		name   string
		match  string
		run    func(*StackManager) error
		prefix string
	}{
		{"start", "start", func(m *StackManager) error { return m.Start(context.Background()) }, ""},
		{"stop", "stop", func(m *StackManager) error { return m.Stop(context.Background()) }, ""},
		{"restart", "restart", func(m *StackManager) error { return m.Restart(context.Background()) }, ""},
		{"teardown", "down", func(m *StackManager) error { return m.Teardown(context.Background()) }, "Teardown failed: "},
	}
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			stderr := "no such service: openclaw\n"
			m, rec, _ := newTestStack()
			rec.Fail(stderr, op.match)
			err := op.run(m)
			require.Error(t, err)
			assert.Equal(t, op.prefix+stderr, err.Error())

			m, rec, _ = newTestStack()
			rec.On(&runtime.Result{Stdout: []byte("Error: looks bad but exit is 0"), Stderr: []byte("warning")}, op.match)
			assert.NoError(t, op.run(m))
			require.Len(t, rec.Calls(), 1)
			assert.Equal(t, "compose", rec.Calls()[0].Args[0])
			assert.Equal(t, manifestArg(), rec.Calls()[0].Args[2])
		})
	}
}

func TestTeardownRemovesVolumes(t *testing.T) {
	m, rec, _ := newTestStack()
	require.NoError(t, m.Teardown(context.Background()))
	assert.Equal(t, []string{"compose -f " + manifestArg() + " down -v"}, rec.Lines())
}

func TestStrictOperationUnstartable(t *testing.T) {
	m, rec, _ := newTestStack()
	rec.StartFailed = errors.New("docker not found")
	err := m.Stop(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to stop: docker not found", err.Error())
}

func TestSetupGeneratesArtifacts(t *testing.T) {
	m, rec, _ := newTestStack()
	fs := afero.NewMemMapFs()
	m.generator.Fs = fs

	result, err := m.Setup(models.SetupSpecification{
		OpenRouterKey: "sk-or-1",
		BotToken:      "123:abc",
		GatewayToken:  "gw",
		ModelSlug:     "gpt-4o",
	})
	require.NoError(t, err)
	assert.Equal(t, &models.SetupResult{Success: true, Message: MsgConfigGenerated}, result)

	ok, err := afero.Exists(fs, manifestArg())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, rec.Calls(), "setup never runs processes")
}

func TestSetupWriteFailure(t *testing.T) {
	m, _, _ := newTestStack()
	m.generator.Fs = afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := m.Setup(models.SetupSpecification{OpenRouterKey: "k", BotToken: "b", GatewayToken: "g"})
	require.Error(t, err)
}
