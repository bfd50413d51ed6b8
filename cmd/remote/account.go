package remote

import (
	"fmt"

	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/internal/utils"
	"simpleclaw-keeper/services"

	"github.com/spf13/cobra"
)

var (
	registerBotToken string
	registerModel    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register this installation and receive its credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := services.NewBackendClient(config.App().Remote.BackendURL, "")
		resp, err := client.Register(registerBotToken, registerModel)
		if err != nil {
			return err
		}
		utils.PrintYaml(resp)
		return nil
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show token usage of the current billing period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(b *services.BackendClient) (interface{}, error) {
			return b.Usage()
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show subscription and provider key status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(b *services.BackendClient) (interface{}, error) {
			return b.Status()
		})
	},
}

var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "Create a subscription payment and print its confirmation URL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(b *services.BackendClient) (interface{}, error) {
			return b.CreatePayment()
		})
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the account profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(b *services.BackendClient) (interface{}, error) {
			return b.GetProfile()
		})
	},
}

var (
	profileModel       string
	profileClawdmatrix bool
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change the selected model or the clawdmatrix switch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var update models.ProfileUpdate
		if cmd.Flags().Changed("model") {
			update.SelectedModel = &profileModel
		}
		if cmd.Flags().Changed("clawdmatrix") {
			update.ClawdmatrixEnabled = &profileClawdmatrix
		}
		if update.SelectedModel == nil && update.ClawdmatrixEnabled == nil {
			return fmt.Errorf("nothing to update, pass --model or --clawdmatrix")
		}
		return withBackend(func(b *services.BackendClient) (interface{}, error) {
			return b.UpdateProfile(update)
		})
	},
}

// withBackend runs fn with an authenticated client and prints its result
func withBackend(fn func(*services.BackendClient) (interface{}, error)) error {
	b, err := backend()
	if err != nil {
		return err
	}
	out, err := fn(b)
	if err != nil {
		return err
	}
	utils.PrintYaml(out)
	return nil
}

func init() {
	remoteCmd.AddCommand(registerCmd, usageCmd, statusCmd, payCmd, profileCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	registerCmd.Flags().StringVar(&registerBotToken, "bot-token", "", "Telegram bot token")
	registerCmd.Flags().StringVarP(&registerModel, "model", "m", "gemini-3-flash", "Selected model")
	registerCmd.MarkFlagRequired("bot-token")

	profileUpdateCmd.Flags().StringVarP(&profileModel, "model", "m", "", "Selected model")
	profileUpdateCmd.Flags().BoolVar(&profileClawdmatrix, "clawdmatrix", false, "Enable clawdmatrix")
}
