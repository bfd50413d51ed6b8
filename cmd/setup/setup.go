package setup

import (
	"fmt"

	"simpleclaw-keeper/cmd/root"
	"simpleclaw-keeper/internal/artifact"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/services"

	"github.com/spf13/cobra"
)

var spec models.SetupSpecification

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Generate the stack configuration files",
	Long:  `Render the Dockerfile, compose manifest, .env, agent config and search engine files into the installation directory. Existing files are overwritten.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(spec)
	},
}

/**
 * Generate artifacts from the setup flags
 * @param {models.SetupSpecification} spec - Secrets and model selector
 * @returns {error} Write errors name the file that failed
 */
func runSetup(spec models.SetupSpecification) error {
	manager := services.NewStackManager(config.App(), nil)
	result, err := manager.Setup(spec)
	if err != nil {
		return err
	}
	fmt.Printf("%s in %s (model %s)\n", result.Message, manager.Dir(), artifact.ResolveModel(spec.ModelSlug))
	return nil
}

func init() {
	root.RootCmd.AddCommand(setupCmd)
	setupCmd.Flags().SortFlags = false
	setupCmd.Flags().StringVar(&spec.OpenRouterKey, "openrouter-key", "", "OpenRouter API key")
	setupCmd.Flags().StringVar(&spec.BotToken, "bot-token", "", "Telegram bot token")
	setupCmd.Flags().StringVar(&spec.GatewayToken, "gateway-token", "", "Gateway authentication token")
	setupCmd.Flags().StringVarP(&spec.ModelSlug, "model", "m", "gemini-3-flash", fmt.Sprintf("Model selector %v", artifact.ModelSelectors()))
	setupCmd.MarkFlagRequired("openrouter-key")
	setupCmd.MarkFlagRequired("bot-token")
	setupCmd.MarkFlagRequired("gateway-token")

	setupCmd.Example = `  simpleclaw-keeper setup --openrouter-key sk-or-... --bot-token 123:ABC --gateway-token $(openssl rand -hex 16) -m claude-sonnet-4`
}
