package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"simpleclaw-keeper/internal/artifact"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/env"
	"simpleclaw-keeper/internal/logger"
	"simpleclaw-keeper/internal/runtime"
	"simpleclaw-keeper/internal/utils"

	"github.com/iancoleman/orderedmap"
)

// Operation names of the container runtime command table
const (
	OpDockerVersion  = "docker.version"
	OpComposeVersion = "docker.compose-version"
	OpDockerInfo     = "docker.info"
	OpUp             = "stack.up"
	OpStatus         = "stack.ps"
	OpLogs           = "stack.logs"
	OpStart          = "stack.start"
	OpStop           = "stack.stop"
	OpRestart        = "stack.restart"
	OpTeardown       = "stack.down"
)

// StatusFormat asks compose for name, state and status separated by tabs
const StatusFormat = "{{.Name}}\t{{.State}}\t{{.Status}}"

// commandTable maps an operation to the arguments passed to the docker binary
var commandTable = map[string][]string{
	OpDockerVersion:  {"--version"},
	OpComposeVersion: {"compose", "version"},
	OpDockerInfo:     {"info"},
	OpUp:             {"compose", "-f", "{{.Manifest}}", "up", "-d", "--build"},
	OpStatus:         {"compose", "-f", "{{.Manifest}}", "ps", "--format", "{{.Format}}"},
	OpLogs:           {"compose", "-f", "{{.Manifest}}", "logs", "--tail={{.Lines}}", "{{.Service}}"},
	OpStart:          {"compose", "-f", "{{.Manifest}}", "start"},
	OpStop:           {"compose", "-f", "{{.Manifest}}", "stop"},
	OpRestart:        {"compose", "-f", "{{.Manifest}}", "restart"},
	OpTeardown:       {"compose", "-f", "{{.Manifest}}", "down", "-v"},
}

// commandData is the template data of commandTable entries
type commandData struct {
	Manifest string
	Service  string
	Lines    int
	Format   string
}

/**
 * Build the argument list of a table operation
 * @param {string} binary - Docker binary
 * @param {string} op - Operation name, one of the Op constants
 * @param {commandData} data - Template data
 * @returns {([]string, error)} Rendered arguments
 */
func commandArgs(binary, op string, data commandData) ([]string, error) {
	args, ok := commandTable[op]
	if !ok {
		return nil, fmt.Errorf("unknown operation '%s'", op)
	}
	_, rendered, err := utils.GetCommandLine(binary, args, data)
	if err != nil {
		return nil, err
	}
	return rendered, nil
}

// agentCLI is how commands reach the agent runtime inside the primary container
var agentCLI = []string{"node", "/app/openclaw.mjs"}

// Directive is one command executed inside the primary container
type Directive struct {
	Name string
	// User overrides the container user, e.g. "root"
	User string
	// Direct runs Args as-is instead of through the agent CLI
	Direct bool
	Args   []string
}

// ExecArgs returns the docker arguments of the directive
func (d Directive) ExecArgs(service string) []string {
	args := []string{"exec"}
	if d.User != "" {
		args = append(args, "-u", d.User)
	}
	args = append(args, service)
	if !d.Direct {
		args = append(args, agentCLI...)
	}
	return append(args, d.Args...)
}

func cli(name string, args ...string) Directive {
	return Directive{Name: name, Args: args}
}

func configSet(key, value string) Directive {
	return Directive{Name: "config set " + key, Args: []string{"config", "set", key, value}}
}

// DeployDirectives run after the stack is up, in this order
var DeployDirectives = []Directive{
	{Name: "fix permissions", User: "root", Direct: true, Args: []string{"chown", "-R", "node:node", "/home/node/.openclaw"}},
	cli("browser create-profile", "browser", "create-profile", "--name", "headless", "--color", "#00FF00", "--driver", "openclaw"),
	configSet("browser.defaultProfile", "headless"),
	configSet("browser.noSandbox", "true"),
	configSet("browser.headless", "true"),
	cli("doctor", "doctor", "--fix"),
	configSet("gateway.mode", "local"),
}

// Setting is one config set directive of the optimize phase
type Setting struct {
	Key   string
	Value string
}

var optimizeSettings = []Setting{
	{"agents.defaults.heartbeat", `{"every": "0m"}`},
	{"agents.defaults.subagents", `{"model": "openrouter/google/gemini-3-flash-preview", "maxConcurrent": 2, "archiveAfterMinutes": 60}`},
	{"agents.defaults.imageModel", `{"primary": "openrouter/google/gemini-2.5-flash", "fallbacks": ["openrouter/openai/gpt-4o-mini"]}`},
	{"agents.defaults.compaction", `{"mode": "default", "memoryFlush": {"enabled": true, "softThresholdTokens": 30000}}`},
	{"agents.defaults.contextPruning", `{"mode": "cache-ttl", "ttl": "1h", "keepLastAssistants": 3}`},
	{"agents.defaults.maxConcurrent", "2"},
	{"web.enabled", "true"},
	{"tools.web.search.provider", "brave"},
	{"tools.web.search.enabled", "true"},
	{"agents.defaults.bootstrapMaxChars", "20000"},
	{"agents.defaults.contextTokens", "100000"},
	{"agents.defaults.memorySearch", `{"enabled": true, "provider": "local", "store": {"path": "/home/node/.openclaw/memory.db"}}`},
}

// Model families used to choose the fallback list
const (
	FamilyClaude  = "claude"
	FamilyGPT     = "gpt"
	FamilyDefault = "default"
)

var familyFallbacks = map[string][]string{
	FamilyClaude:  {"openrouter/google/gemini-2.5-flash", "openrouter/anthropic/claude-haiku-4.5"},
	FamilyGPT:     {"openrouter/google/gemini-2.5-flash", "openrouter/openai/gpt-4o-mini"},
	FamilyDefault: {"openrouter/google/gemini-2.5-flash", "openrouter/anthropic/claude-haiku-4.5"},
}

var modelAliases = []struct {
	model string
	alias string
}{
	{"anthropic/claude-opus-4.5", "opus"},
	{"anthropic/claude-sonnet-4", "sonnet"},
	{"anthropic/claude-haiku-4.5", "haiku"},
	{"google/gemini-2.5-flash", "flash"},
	{"deepseek/deepseek-reasoner", "deepseek"},
	{"google/gemini-3-flash-preview", "gemini3"},
}

// ModelFamily classifies a model selector by substring
func ModelFamily(model string) string {
	switch {
	case strings.Contains(model, FamilyClaude):
		return FamilyClaude
	case strings.Contains(model, FamilyGPT):
		return FamilyGPT
	default:
		return FamilyDefault
	}
}

// OptimizationBatch is the content of one optimize phase
type OptimizationBatch struct {
	Model  string
	Family string
	// Recognized is false when the model matched no family and is not a known selector
	Recognized bool
	Settings   []Setting
	Fallbacks  []string
	Aliases    *orderedmap.OrderedMap
}

/**
 * Build the optimization batch for a model selector
 * @param {string} model - Model selector chosen at setup
 * @returns {*OptimizationBatch} Settings, fallbacks and aliases to apply
 * @description
 * - "claude" and "gpt" substrings select their own fallback lists
 * - Everything else uses the default list
 * - Known selectors without a family (e.g. gemini) count as recognized
 */
func NewOptimizationBatch(model string) *OptimizationBatch {
	family := ModelFamily(model)
	aliases := orderedmap.New()
	for _, a := range modelAliases {
		entry := orderedmap.New()
		entry.Set("alias", a.alias)
		aliases.Set(artifact.ProviderNamespace+"/"+a.model, entry)
	}
	return &OptimizationBatch{
		Model:      model,
		Family:     family,
		Recognized: family != FamilyDefault || artifact.IsKnownSelector(model),
		Settings:   append([]Setting(nil), optimizeSettings...),
		Fallbacks:  append([]string(nil), familyFallbacks[family]...),
		Aliases:    aliases,
	}
}

/**
 * Expand the batch into directives, in execution order
 * @returns {([]Directive, error)} Directives, error only if aliases cannot be encoded
 */
func (b *OptimizationBatch) Directives() ([]Directive, error) {
	var directives []Directive
	for _, s := range b.Settings {
		directives = append(directives, configSet(s.Key, s.Value))
	}
	directives = append(directives, cli("models fallbacks clear", "models", "fallbacks", "clear"))
	for _, m := range b.Fallbacks {
		directives = append(directives, cli("models fallbacks add "+m, "models", "fallbacks", "add", m))
	}
	aliases, err := json.Marshal(b.Aliases)
	if err != nil {
		return nil, fmt.Errorf("failed to encode model aliases: %w", err)
	}
	directives = append(directives, configSet("agents.defaults.models", string(aliases)))
	directives = append(directives, cli("browser start", "browser", "start", "--browser-profile", "headless"))
	return directives, nil
}

// stackCommand runs table operations against one installation directory
type stackCommand struct {
	runner runtime.Runner
	binary string
	dir    string
}

func newStackCommand(cfg *config.AppConfig, runner runtime.Runner) stackCommand {
	if runner == nil {
		runner = runtime.NewRunner()
	}
	c := stackCommand{runner: runner, binary: cfg.Docker.Binary, dir: cfg.Install.Dir}
	if c.binary == "" {
		c.binary = "docker"
	}
	if c.dir == "" {
		c.dir = env.GetInstallDir()
	}
	return c
}

// ManifestPath returns the compose manifest the commands operate on
func (c *stackCommand) ManifestPath() string {
	return filepath.Join(c.dir, artifact.ManifestFile)
}

func (c *stackCommand) data() commandData {
	return commandData{Manifest: c.ManifestPath(), Service: artifact.PrimaryService, Format: StatusFormat}
}

func (c *stackCommand) run(ctx context.Context, op string, data commandData) (*runtime.Result, error) {
	args, err := commandArgs(c.binary, op, data)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Executing: %s", runtime.CommandLine(c.binary, args))
	return c.runner.Run(ctx, c.binary, args...)
}

func (c *stackCommand) exec(ctx context.Context, d Directive) error {
	args := d.ExecArgs(artifact.PrimaryService)
	logger.Debugf("Executing: %s", runtime.CommandLine(c.binary, args))
	res, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return err
	}
	if !res.Success() {
		return &CommandError{Stderr: strings.TrimSpace(res.StderrText()), ExitCode: res.ExitCode}
	}
	return nil
}
