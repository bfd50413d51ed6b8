package models

// ServiceStatus is one row of the stack status table
type ServiceStatus struct {
	Name   string `json:"name" yaml:"name"`
	State  string `json:"state" yaml:"state"`
	Status string `json:"status" yaml:"status"`
}

// StackStatus is recomputed from the container runtime on every query
type StackStatus struct {
	Running    bool            `json:"running" yaml:"running"`
	Containers []ServiceStatus `json:"containers" yaml:"containers"`
}

// StepOutcome reports one best-effort step of a phase
type StepOutcome struct {
	Name  string `json:"name" yaml:"name"`
	OK    bool   `json:"ok" yaml:"ok"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// PhaseResult is returned by the deploy and optimize phases.
// Success only reflects the phase's fatal condition; tolerated step
// failures are listed in Steps.
type PhaseResult struct {
	Success bool          `json:"success" yaml:"success"`
	Message string        `json:"message" yaml:"message"`
	Steps   []StepOutcome `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// FailedSteps counts the tolerated failures
func (p *PhaseResult) FailedSteps() int {
	n := 0
	for _, s := range p.Steps {
		if !s.OK {
			n++
		}
	}
	return n
}

// OptimizeRequest selects the model family used for the fallback list
type OptimizeRequest struct {
	Model string `json:"model"`
}

// LogsResponse carries the tail of the primary service output
type LogsResponse struct {
	Lines int    `json:"lines"`
	Logs  string `json:"logs"`
}

// DockerStatus is the result of probing the local container runtime
type DockerStatus struct {
	Installed      bool   `json:"installed" yaml:"installed"`
	Version        string `json:"version" yaml:"version"`
	Compose        bool   `json:"compose" yaml:"compose"`
	ComposeVersion string `json:"compose_version,omitempty" yaml:"compose_version,omitempty"`
	Running        bool   `json:"running" yaml:"running"`
	InstallURL     string `json:"install_url" yaml:"install_url"`
}
