package services

import (
	"context"
	"fmt"
	"time"

	"simpleclaw-keeper/internal/artifact"
	"simpleclaw-keeper/internal/batch"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/logger"
	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/internal/runtime"
)

// CommandError is a container runtime command that exited non-zero
type CommandError struct {
	Label    string
	Stderr   string
	ExitCode int
}

func (e *CommandError) Error() string {
	if e.Label != "" {
		return e.Label + ": " + e.Stderr
	}
	if e.Stderr == "" {
		return fmt.Sprintf("exit status %d", e.ExitCode)
	}
	return e.Stderr
}

// Phase names used in logs and metrics
const (
	PhaseSetup    = "setup"
	PhaseDeploy   = "deploy"
	PhaseOptimize = "optimize"
	PhaseStart    = "start"
	PhaseStop     = "stop"
	PhaseRestart  = "restart"
	PhaseTeardown = "teardown"
)

// Messages returned on success
const (
	MsgConfigGenerated = "Configuration generated"
	MsgDeployed        = "Docker containers started"
	MsgOptimized       = "Optimizations applied"
	MsgStarted         = "Started"
	MsgStopped         = "Stopped"
	MsgRestarted       = "Restarted"
	MsgTornDown        = "Containers stopped and removed"
)

// StackManager drives the lifecycle phases of the local stack.
// It keeps no state between calls; the container runtime is the only source of truth.
type StackManager struct {
	stackCommand
	generator *artifact.Generator
	settle    time.Duration
	sleep     func(time.Duration)
}

/**
 * Create stack manager for the configured installation directory
 * @param {*config.AppConfig} cfg - Application configuration
 * @param {runtime.Runner} runner - Process runtime, nil uses os/exec
 * @returns {*StackManager} New stack manager
 */
func NewStackManager(cfg *config.AppConfig, runner runtime.Runner) *StackManager {
	cmd := newStackCommand(cfg, runner)
	return &StackManager{
		stackCommand: cmd,
		generator:    artifact.NewGenerator(cmd.dir),
		settle:       time.Duration(cfg.Deploy.SettleSeconds) * time.Second,
		sleep:        time.Sleep,
	}
}

// Dir returns the installation directory
func (m *StackManager) Dir() string {
	return m.dir
}

func (m *StackManager) runPhase(phase string, fn func() error) error {
	start := time.Now()
	logger.Infof("[%s] started, installation: %s", phase, m.dir)
	err := fn()
	RecordPhase(phase, time.Since(start).Seconds(), err)
	if err != nil {
		logger.Errorf("[%s] failed: %v", phase, err)
		return err
	}
	logger.Infof("[%s] finished in %s", phase, time.Since(start).Round(time.Millisecond))
	return nil
}

/**
 * Generate the artifact set into the installation directory
 * @param {models.SetupSpecification} spec - Secrets and model selector
 * @returns {(*models.SetupResult, error)} artifact.WriteError names the failed file
 */
func (m *StackManager) Setup(spec models.SetupSpecification) (*models.SetupResult, error) {
	err := m.runPhase(PhaseSetup, func() error {
		return m.generator.Generate(spec)
	})
	if err != nil {
		return nil, err
	}
	return &models.SetupResult{Success: true, Message: MsgConfigGenerated}, nil
}

/**
 * Bring the stack up and configure the primary service
 * @param {context.Context} ctx - Passed to every process call
 * @returns {(*models.PhaseResult, error)} Error only when `compose up` fails
 * @description
 * - compose up -d --build is the only fatal step
 * - Waits the settling delay before issuing post-start directives
 * - Post-start directives are best-effort, failures are listed in the result
 */
func (m *StackManager) Deploy(ctx context.Context) (*models.PhaseResult, error) {
	var result *models.PhaseResult
	err := m.runPhase(PhaseDeploy, func() error {
		res, err := m.run(ctx, OpUp, m.data())
		if err != nil {
			return fmt.Errorf("Failed to start Docker: %w", err)
		}
		if !res.Success() {
			return &CommandError{Label: "Docker compose failed", Stderr: res.StderrText(), ExitCode: res.ExitCode}
		}

		logger.Infof("[%s] waiting %s for %s to initialize", PhaseDeploy, m.settle, artifact.PrimaryService)
		m.sleep(m.settle)

		report := batch.Run(ctx, m.directiveSteps(DeployDirectives), m.observe(PhaseDeploy))
		result = phaseResult(MsgDeployed, report)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

/**
 * Apply the optimization batch to the running primary service
 * @param {context.Context} ctx - Passed to every process call
 * @param {string} model - Model selector used to choose fallbacks
 * @returns {(*models.PhaseResult, error)} Always successful once the batch is built
 * @description
 * - Every directive is attempted, a failure never stops the sequence
 * - An unrecognized model falls back to the default list with a warning
 */
func (m *StackManager) Optimize(ctx context.Context, model string) (*models.PhaseResult, error) {
	var result *models.PhaseResult
	err := m.runPhase(PhaseOptimize, func() error {
		optimization := NewOptimizationBatch(model)
		if !optimization.Recognized {
			logger.Warnf("[%s] model '%s' matches no known family, using default fallbacks", PhaseOptimize, model)
		}
		directives, err := optimization.Directives()
		if err != nil {
			return err
		}
		report := batch.Run(ctx, m.directiveSteps(directives), m.observe(PhaseOptimize))
		result = phaseResult(MsgOptimized, report)
		if !optimization.Recognized {
			result.Message = fmt.Sprintf("%s (unknown model '%s', default fallbacks used)", MsgOptimized, model)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Start starts the stopped services; stderr is returned verbatim on failure
func (m *StackManager) Start(ctx context.Context) error {
	return m.strict(ctx, PhaseStart, OpStart, "Failed to start", "")
}

// Stop stops the running services; stderr is returned verbatim on failure
func (m *StackManager) Stop(ctx context.Context) error {
	return m.strict(ctx, PhaseStop, OpStop, "Failed to stop", "")
}

// Restart restarts all services; stderr is returned verbatim on failure
func (m *StackManager) Restart(ctx context.Context) error {
	return m.strict(ctx, PhaseRestart, OpRestart, "Failed to restart", "")
}

// Teardown removes the containers and their volumes; the installation directory is kept
func (m *StackManager) Teardown(ctx context.Context) error {
	return m.strict(ctx, PhaseTeardown, OpTeardown, "Failed to teardown", "Teardown failed")
}

func (m *StackManager) strict(ctx context.Context, phase, op, startLabel, failLabel string) error {
	return m.runPhase(phase, func() error {
		res, err := m.run(ctx, op, m.data())
		if err != nil {
			return fmt.Errorf("%s: %w", startLabel, err)
		}
		if !res.Success() {
			return &CommandError{Label: failLabel, Stderr: res.StderrText(), ExitCode: res.ExitCode}
		}
		return nil
	})
}

func (m *StackManager) directiveSteps(directives []Directive) []batch.Step {
	steps := make([]batch.Step, 0, len(directives))
	for _, d := range directives {
		d := d
		steps = append(steps, batch.Step{
			Name: d.Name,
			Run: func(ctx context.Context) error {
				return m.exec(ctx, d)
			},
		})
	}
	return steps
}

// observe logs tolerated failures at debug level and counts them
func (m *StackManager) observe(phase string) func(batch.Outcome) {
	return func(o batch.Outcome) {
		if o.OK() {
			return
		}
		logger.Debugf("[%s] step '%s' failed (tolerated): %v", phase, o.Name, o.Err)
		RecordStepFailure(phase, o.Name)
	}
}

func phaseResult(message string, report batch.Report) *models.PhaseResult {
	result := &models.PhaseResult{Success: true, Message: message}
	for _, o := range report.Outcomes {
		step := models.StepOutcome{Name: o.Name, OK: o.OK()}
		if o.Err != nil {
			step.Error = o.Err.Error()
		}
		result.Steps = append(result.Steps, step)
	}
	return result
}
