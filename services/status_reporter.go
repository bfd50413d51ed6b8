package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"simpleclaw-keeper/internal/artifact"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/logger"
	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/internal/runtime"
)

// RunningState is the state token compose reports for a running container
const RunningState = "running"

// DefaultLogLines is used when a log request gives no line count
const DefaultLogLines = 100

// ErrInvalidLines rejects an explicit line count below one
var ErrInvalidLines = errors.New("lines must be a positive integer")

// StatusReporter queries the stack; every call goes to the container runtime
type StatusReporter struct {
	stackCommand
}

func NewStatusReporter(cfg *config.AppConfig, runner runtime.Runner) *StatusReporter {
	return &StatusReporter{stackCommand: newStackCommand(cfg, runner)}
}

/**
 * Query the status of every service in the manifest
 * @param {context.Context} ctx - Passed to the process call
 * @returns {(*models.StackStatus, error)} Parsed rows and the aggregate running flag
 * @description
 * - A non-zero exit of `compose ps` is tolerated, whatever was printed is parsed
 * - Fails only when the process cannot be started
 */
func (r *StatusReporter) Status(ctx context.Context) (*models.StackStatus, error) {
	res, err := r.run(ctx, OpStatus, r.data())
	if err != nil {
		return nil, fmt.Errorf("Failed to check status: %w", err)
	}
	if !res.Success() {
		logger.Debugf("compose ps exited with %d: %s", res.ExitCode, strings.TrimSpace(res.StderrText()))
	}
	containers := ParseStatusTable(res.StdoutText())
	return &models.StackStatus{
		Running:    IsStackRunning(containers),
		Containers: containers,
	}, nil
}

/**
 * Fetch the last lines of the primary service output
 * @param {context.Context} ctx - Passed to the process call
 * @param {int} lines - Number of lines, DefaultLogLines when not positive
 * @returns {(string, error)} stdout followed by stderr
 */
func (r *StatusReporter) Logs(ctx context.Context, lines int) (string, error) {
	if lines <= 0 {
		lines = DefaultLogLines
	}
	data := r.data()
	data.Lines = lines
	res, err := r.run(ctx, OpLogs, data)
	if err != nil {
		return "", fmt.Errorf("Failed to get logs: %w", err)
	}
	return res.StdoutText() + res.StderrText(), nil
}

/**
 * Parse tab separated name/state/status rows
 * @param {string} output - Output of `compose ps --format`
 * @returns {[]models.ServiceStatus} Well-formed rows in input order
 * @description
 * - Rows with fewer than three fields are skipped, blank lines included
 */
func ParseStatusTable(output string) []models.ServiceStatus {
	containers := []models.ServiceStatus{}
	for _, line := range strings.Split(output, "\n") {
		parts := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if len(parts) < 3 {
			continue
		}
		containers = append(containers, models.ServiceStatus{
			Name:   parts[0],
			State:  parts[1],
			Status: parts[2],
		})
	}
	return containers
}

// IsStackRunning is true iff the primary service row is in the running state.
// Auxiliary services are not considered.
func IsStackRunning(containers []models.ServiceStatus) bool {
	for _, c := range containers {
		if c.Name == artifact.PrimaryService && c.State == RunningState {
			return true
		}
	}
	return false
}
