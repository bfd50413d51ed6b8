package artifact

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/compose-spec/compose-go/v2/cli"
	composetypes "github.com/compose-spec/compose-go/v2/types"
)

// ProjectName is the compose project name used when loading the manifest.
const ProjectName = "openclaw"

// ManifestService summarizes one service of the loaded manifest.
type ManifestService struct {
	Name          string
	ContainerName string
	Image         string
	DependsOn     []string
}

/**
 * Load the generated manifest with the compose loader
 * @param {context.Context} ctx - Context for the loader
 * @param {string} dir - Installation directory
 * @returns {(*composetypes.Project, error)} Parsed and validated compose project
 * @description
 * - Uses the .env file of the installation directory
 * - Interpolation is disabled so secrets are never expanded into the result
 */
func LoadManifest(ctx context.Context, dir string) (*composetypes.Project, error) {
	opts, err := cli.NewProjectOptions(
		[]string{filepath.Join(dir, ManifestFile)},
		cli.WithWorkingDirectory(dir),
		cli.WithName(ProjectName),
		cli.WithDotEnv,
		cli.WithInterpolation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("project options: %w", err)
	}
	project, err := cli.ProjectFromOptions(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ManifestFile, err)
	}
	return project, nil
}

// StartOrder returns the services of project in dependency order; services
// without ordering constraints between them are sorted by name.
func StartOrder(project *composetypes.Project) ([]ManifestService, error) {
	pending := map[string][]string{}
	for name, svc := range project.Services {
		var deps []string
		for dep := range svc.DependsOn {
			deps = append(deps, dep)
		}
		sort.Strings(deps)
		pending[name] = deps
	}

	var ordered []ManifestService
	started := map[string]bool{}
	for len(pending) > 0 {
		var ready []string
		for name, deps := range pending {
			if allStarted(deps, started) {
				ready = append(ready, name)
			}
		}
		if len(ready) == 0 {
			return nil, fmt.Errorf("dependency cycle among services %v", sortedKeys(pending))
		}
		sort.Strings(ready)
		for _, name := range ready {
			svc := project.Services[name]
			ordered = append(ordered, ManifestService{
				Name:          name,
				ContainerName: svc.ContainerName,
				Image:         svc.Image,
				DependsOn:     pending[name],
			})
			started[name] = true
			delete(pending, name)
		}
	}
	return ordered, nil
}

func allStarted(deps []string, started map[string]bool) bool {
	for _, d := range deps {
		if !started[d] {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
