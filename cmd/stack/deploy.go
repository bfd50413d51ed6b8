package stack

import (
	"context"
	"fmt"

	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/services"

	"github.com/spf13/cobra"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Build and start the stack, then configure the agent runtime",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return deployStack(context.Background())
	},
}

var optimizeModel string

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Apply token and model optimizations to the running stack",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return optimizeStack(context.Background(), optimizeModel)
	},
}

/**
 * Deploy the stack from the installation directory
 * @param {context.Context} ctx - Context passed to docker calls
 * @returns {error} Only compose up failures are returned
 */
func deployStack(ctx context.Context) error {
	manager := services.NewStackManager(config.App(), nil)
	fmt.Printf("Deploying %s, this may take several minutes...\n", manager.ManifestPath())
	result, err := manager.Deploy(ctx)
	if err != nil {
		return err
	}
	printPhase(result)
	return nil
}

func optimizeStack(ctx context.Context, model string) error {
	result, err := services.NewStackManager(config.App(), nil).Optimize(ctx, model)
	if err != nil {
		return err
	}
	printPhase(result)
	return nil
}

func init() {
	stackCmd.AddCommand(deployCmd)
	stackCmd.AddCommand(optimizeCmd)
	optimizeCmd.Flags().StringVarP(&optimizeModel, "model", "m", "gemini-3-flash", "Model selector used at setup")
}
