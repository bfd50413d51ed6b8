package services

import (
	"context"
	"errors"
	"testing"

	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/internal/runtime"
	"simpleclaw-keeper/internal/runtime/runtimetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReporter() (*StatusReporter, *runtimetest.Recorder) {
	rec := runtimetest.NewRecorder()
	return NewStatusReporter(testConfig(), rec), rec
}

func TestParseStatusTableSkipsMalformedRows(t *testing.T) {
	output := "openclaw\trunning\tUp 3 minutes\n" +
		"searxng\trunning\tUp 3 minutes\n" +
		"broken-row\trunning\n" +
		"searxng-redis\trunning\tUp 3 minutes (healthy)\r\n" +
		"\n"

	rows := ParseStatusTable(output)
	assert.Equal(t, []models.ServiceStatus{
		{Name: "openclaw", State: "running", Status: "Up 3 minutes"},
		{Name: "searxng", State: "running", Status: "Up 3 minutes"},
		{Name: "searxng-redis", State: "running", Status: "Up 3 minutes (healthy)"},
	}, rows)

	assert.Empty(t, ParseStatusTable(""))
	assert.NotNil(t, ParseStatusTable(""), "an empty table encodes as [] not null")
}

func TestIsStackRunningOnlyLooksAtPrimary(t *testing.T) {
	primaryOnly := []models.ServiceStatus{
		{Name: "openclaw", State: "running", Status: "Up 1 minute"},
		{Name: "searxng", State: "exited", Status: "Exited (1) 5 seconds ago"},
		{Name: "searxng-adapter", State: "exited", Status: "Exited (137)"},
		{Name: "searxng-redis", State: "exited", Status: "Exited (0)"},
	}
	assert.True(t, IsStackRunning(primaryOnly))

	withoutPrimary := []models.ServiceStatus{
		{Name: "searxng", State: "running", Status: "Up"},
		{Name: "searxng-adapter", State: "running", Status: "Up"},
		{Name: "searxng-redis", State: "running", Status: "Up"},
	}
	assert.False(t, IsStackRunning(withoutPrimary))

	assert.False(t, IsStackRunning([]models.ServiceStatus{{Name: "openclaw", State: "restarting", Status: "Restarting"}}))
	assert.False(t, IsStackRunning(nil))
}

func TestStatusQuery(t *testing.T) {
	r, rec := newTestReporter()
	rec.On(&runtime.Result{Stdout: []byte("openclaw\trunning\tUp 2 hours\nsearxng\texited\tExited (1)\n")}, "ps")

	status, err := r.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Running)
	assert.Len(t, status.Containers, 2)

	require.Len(t, rec.Calls(), 1)
	assert.Equal(t, []string{"compose", "-f", manifestArg(), "ps", "--format", "{{.Name}}\t{{.State}}\t{{.Status}}"}, rec.Calls()[0].Args)
}

func TestStatusToleratesNonZeroExit(t *testing.T) {
	r, rec := newTestReporter()
	rec.On(&runtime.Result{
		Stdout:   []byte("openclaw\texited\tExited (1) 1 minute ago\n"),
		Stderr:   []byte("no configuration file provided: not found"),
		ExitCode: 1,
	}, "ps")

	status, err := r.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.Len(t, status.Containers, 1)

	rec.Fail("no such file", "ps")
	status, err = r.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, status.Containers)
}

func TestStatusFailsWhenProcessCannotStart(t *testing.T) {
	r, rec := newTestReporter()
	rec.StartFailed = errors.New("docker: not found")

	status, err := r.Status(context.Background())
	assert.Nil(t, status)
	require.Error(t, err)
	assert.Equal(t, "Failed to check status: docker: not found", err.Error())
}

func TestLogsConcatenatesStreams(t *testing.T) {
	r, rec := newTestReporter()
	rec.On(&runtime.Result{Stdout: []byte("openclaw  | gateway listening\n"), Stderr: []byte("openclaw  | warn: slow start\n")}, "logs")

	logs, err := r.Logs(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, "openclaw  | gateway listening\nopenclaw  | warn: slow start\n", logs)
	assert.Equal(t, []string{"compose -f " + manifestArg() + " logs --tail=50 openclaw"}, rec.Lines())
}

func TestLogsDefaultsAndErrors(t *testing.T) {
	r, rec := newTestReporter()
	_, err := r.Logs(context.Background(), 0)
	require.NoError(t, err)
	assert.Contains(t, rec.Lines()[0], "--tail=100")

	rec.StartFailed = errors.New("boom")
	_, err = r.Logs(context.Background(), 10)
	assert.EqualError(t, err, "Failed to get logs: boom")
}
