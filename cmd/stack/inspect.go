package stack

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"simpleclaw-keeper/internal/artifact"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/utils"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the generated compose manifest and print the start order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateManifest(context.Background(), config.App().Install.Dir)
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the generated environment with secrets masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showEnv(config.App().Install.Dir)
	},
}

/**
 * Load the manifest and print services in dependency order
 * @param {context.Context} ctx - Context for manifest loading
 * @param {string} dir - Installation directory
 * @returns {error} Load, validation or dependency cycle errors
 */
func validateManifest(ctx context.Context, dir string) error {
	project, err := artifact.LoadManifest(ctx, dir)
	if err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}
	order, err := artifact.StartOrder(project)
	if err != nil {
		return err
	}
	var dataList []*orderedmap.OrderedMap
	for i, svc := range order {
		row := orderedmap.New()
		row.Set("order", i+1)
		row.Set("service", svc.Name)
		row.Set("container", svc.ContainerName)
		row.Set("depends_on", strings.Join(svc.DependsOn, ", "))
		dataList = append(dataList, row)
	}
	utils.PrintFormat(dataList)
	fmt.Printf("Manifest %s is valid (%d services)\n", artifact.ManifestFile, len(order))
	return nil
}

func showEnv(dir string) error {
	values, err := artifact.ReadEnvFile(afero.NewOsFs(), dir)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%s\n", k, artifact.MaskSecret(values[k]))
	}
	return nil
}

func init() {
	stackCmd.AddCommand(validateCmd)
	stackCmd.AddCommand(showCmd)
}
