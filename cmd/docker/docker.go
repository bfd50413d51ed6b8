package docker

import (
	"context"
	"fmt"

	"simpleclaw-keeper/cmd/root"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/utils"
	"simpleclaw-keeper/services"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var dockerCmd = &cobra.Command{
	Use:   "docker",
	Short: "Docker engine checks",
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that docker and docker compose are installed and running",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		checkDocker(context.Background())
	},
}

/**
 * Probe the local docker installation and print the result
 * @param {context.Context} ctx - Context passed to docker calls
 * @description
 * - Prints the probe result as YAML
 * - Points to the platform install page when docker is missing
 */
func checkDocker(ctx context.Context) {
	status := services.NewDockerProbe(config.App(), nil).Check(ctx)
	utils.PrintYaml(status)
	switch {
	case !status.Installed:
		fmt.Printf("%s docker is not installed, see %s\n", color.RedString("x"), status.InstallURL)
	case !status.Running:
		fmt.Printf("%s docker is installed but the engine is not running\n", color.YellowString("!"))
	case !status.Compose:
		fmt.Printf("%s docker compose plugin is missing, see %s\n", color.YellowString("!"), status.InstallURL)
	default:
		fmt.Printf("%s docker is ready\n", color.GreenString("✓"))
	}
}

func init() {
	root.RootCmd.AddCommand(dockerCmd)
	dockerCmd.AddCommand(checkCmd)
}
