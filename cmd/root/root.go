package root

import (
	"fmt"

	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/logger"

	"github.com/spf13/cobra"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "simpleclaw-keeper",
	Short: "Local OpenClaw stack keeper",
	Long:  `simpleclaw-keeper generates the OpenClaw docker stack, deploys it and manages its lifecycle for the SimpleClaw desktop app`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger.InitLoggerWithMode(&config.App().Log, cmd.Name() == "server")
		return nil
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.simpleclaw-desktop/keeper.yaml)")
}
