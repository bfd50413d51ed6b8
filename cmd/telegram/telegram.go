package telegram

import (
	"fmt"

	"simpleclaw-keeper/cmd/root"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/utils"
	"simpleclaw-keeper/services"

	"github.com/spf13/cobra"
)

var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Telegram bot helpers",
}

var verifyCmd = &cobra.Command{
	Use:   "verify <bot-token>",
	Short: "Check a bot token against the Telegram Bot API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := services.NewTelegramClient(config.App().Remote.TelegramAPI).ValidateBotToken(args[0])
		if err != nil {
			return err
		}
		utils.PrintYaml(info)
		if !info.Valid {
			return fmt.Errorf("bot token rejected by Telegram")
		}
		return nil
	},
}

func init() {
	root.RootCmd.AddCommand(telegramCmd)
	telegramCmd.AddCommand(verifyCmd)
}
