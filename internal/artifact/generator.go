// Package artifact renders the configuration files of the local stack into
// the installation directory.
package artifact

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"

	"simpleclaw-keeper/internal/models"

	"github.com/spf13/afero"
)

// File names relative to the installation directory.
const (
	Dockerfile          = "Dockerfile"
	ManifestFile        = "docker-compose.yml"
	EnvFile             = ".env"
	AgentConfigFile     = "openclaw-config.yaml"
	SearxngDir          = "searxng"
	SearxngSettingsFile = "searxng/settings.yml"
	AdapterFile         = "searxng-adapter.js"
	DataDir             = "data"
)

// PrimaryService is the compose service running the agent runtime.
const PrimaryService = "openclaw"

const secretKeyBytes = 32

// WriteError identifies the artifact that could not be written.
type WriteError struct {
	File string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("Failed to write %s: %v", e.File, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Generator writes the artifact set of one installation directory.
type Generator struct {
	Dir string
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// Random supplies the search engine secret, crypto/rand when nil.
	Random io.Reader
}

func NewGenerator(dir string) *Generator {
	return &Generator{Dir: dir, Fs: afero.NewOsFs(), Random: rand.Reader}
}

// ManifestPath returns the absolute path of the compose manifest.
func (g *Generator) ManifestPath() string {
	return filepath.Join(g.Dir, ManifestFile)
}

/**
 * Render and write every artifact of the installation directory
 * @param {models.SetupSpecification} spec - User-supplied secrets and model selector
 * @returns {error} *WriteError naming the failed file, or nil
 * @description
 * - Creates the searxng/ and data/ subdirectories
 * - Overwrites all six files; nothing is merged with previous content
 * - A failure stops the sequence; files written before it stay on disk
 */
func (g *Generator) Generate(spec models.SetupSpecification) error {
	fs := g.fs()

	if err := fs.MkdirAll(filepath.Join(g.Dir, SearxngDir), 0755); err != nil {
		return fmt.Errorf("Failed to create config dir: %w", err)
	}
	if err := fs.MkdirAll(filepath.Join(g.Dir, DataDir), 0755); err != nil {
		return fmt.Errorf("Failed to create data dir: %w", err)
	}

	secret, err := g.secretKey()
	if err != nil {
		return fmt.Errorf("Failed to generate secret key: %w", err)
	}
	data := renderData{
		OpenRouterKey: spec.OpenRouterKey,
		BotToken:      spec.BotToken,
		GatewayToken:  spec.GatewayToken,
		Model:         ResolveModel(spec.ModelSlug),
		SecretKey:     secret,
	}

	files := []struct {
		name    string
		content func() ([]byte, error)
	}{
		{Dockerfile, static(dockerfileContent)},
		{ManifestFile, static(composeContent)},
		{EnvFile, func() ([]byte, error) { return render(envTmpl, data) }},
		{AgentConfigFile, func() ([]byte, error) { return render(agentConfigTmpl, data) }},
		{SearxngSettingsFile, func() ([]byte, error) { return render(searxngTmpl, data) }},
		{AdapterFile, static(searxngAdapterContent)},
	}
	for _, f := range files {
		content, err := f.content()
		if err != nil {
			return &WriteError{File: f.name, Err: err}
		}
		if err := afero.WriteFile(fs, filepath.Join(g.Dir, f.name), content, 0644); err != nil {
			return &WriteError{File: f.name, Err: err}
		}
	}
	return nil
}

func (g *Generator) fs() afero.Fs {
	if g.Fs == nil {
		return afero.NewOsFs()
	}
	return g.Fs
}

// secretKey returns 32 random bytes, hex encoded
func (g *Generator) secretKey() (string, error) {
	r := g.Random
	if r == nil {
		r = rand.Reader
	}
	buf := make([]byte, secretKeyBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func static(content string) func() ([]byte, error) {
	return func() ([]byte, error) {
		return []byte(content), nil
	}
}
