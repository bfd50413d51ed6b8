package services

import (
	"time"

	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/env"
	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/internal/runtime"
)

// Server groups everything the HTTP API needs
type Server struct {
	cfg       *config.AppConfig
	stack     *StackManager
	status    *StatusReporter
	docker    *DockerProbe
	startTime time.Time
}

/**
 * Create new server instance with all managers
 * @param {*config.AppConfig} cfg - Application configuration
 * @param {runtime.Runner} runner - Process runtime shared by all managers, nil uses os/exec
 * @returns {*Server} Returns new server instance
 * @description
 * - Stack manager, status reporter and docker probe share the runner
 * - Remote clients are created per request since they carry the caller's token
 */
func NewServer(cfg *config.AppConfig, runner runtime.Runner) *Server {
	if runner == nil {
		runner = runtime.NewRunner()
	}
	return &Server{
		cfg:       cfg,
		stack:     NewStackManager(cfg, runner),
		status:    NewStatusReporter(cfg, runner),
		docker:    NewDockerProbe(cfg, runner),
		startTime: time.Now(),
	}
}

func (s *Server) Stack() *StackManager {
	return s.stack
}

func (s *Server) Status() *StatusReporter {
	return s.status
}

func (s *Server) Docker() *DockerProbe {
	return s.docker
}

// Backend returns a backend client acting with authToken
func (s *Server) Backend(authToken string) *BackendClient {
	return NewBackendClient(s.cfg.Remote.BackendURL, authToken)
}

func (s *Server) Telegram() *TelegramClient {
	return NewTelegramClient(s.cfg.Remote.TelegramAPI)
}

/**
* Get health check response for the server
* @returns {models.HealthResponse} Returns health check response with server status and metrics
* @description
* - Calculates server uptime from start time
* - Reports request and phase counters
* - Does not query docker, use the status endpoint for the stack
 */
func (s *Server) GetHealthz() models.HealthResponse {
	return models.HealthResponse{
		Version:   env.Version,
		StartTime: s.startTime.Format(time.RFC3339),
		Status:    "UP",
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Metrics: models.Metrics{
			TotalRequests: GetTotalRequestCount(),
			ErrorRequests: GetTotalErrorCount(),
			PhaseRuns:     GetTotalPhaseRuns(),
			PhaseFailures: GetTotalPhaseFailures(),
		},
	}
}
