package remote

import (
	"errors"
	"os"

	"simpleclaw-keeper/cmd/root"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/services"

	"github.com/spf13/cobra"
)

var authToken string

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Account backend operations (register/usage/status/pay/profile)",
}

// backend builds a client for commands that need the auth token
func backend() (*services.BackendClient, error) {
	token := authToken
	if token == "" {
		token = os.Getenv("SIMPLECLAW_AUTH_TOKEN")
	}
	if token == "" {
		return nil, errors.New("auth token required, pass --token or set SIMPLECLAW_AUTH_TOKEN")
	}
	return services.NewBackendClient(config.App().Remote.BackendURL, token), nil
}

func init() {
	root.RootCmd.AddCommand(remoteCmd)
	remoteCmd.PersistentFlags().StringVar(&authToken, "token", "", "Auth token issued at registration")
}
