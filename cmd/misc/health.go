package misc

import (
	"fmt"

	"simpleclaw-keeper/cmd/root"
	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/internal/rpc"
	"simpleclaw-keeper/internal/utils"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Query the health of the running keeper server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return queryHealth()
	},
}

/**
 * Query health of keeper server via RPC connection
 * @returns {error} Returns error if the server is unreachable or unhealthy
 * @description
 * - Calls GET /healthz over the unix socket, or TCP when no socket exists
 * - Prints version, uptime and request/phase counters
 */
func queryHealth() error {
	rpcClient := rpc.NewHTTPClient(nil)
	defer rpcClient.Close()

	resp, err := rpcClient.Get("/healthz", nil)
	if err != nil {
		return fmt.Errorf("keeper server is not running: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("keeper server returned error(%d): %s", resp.StatusCode, resp.Error)
	}
	var health models.HealthResponse
	if err := resp.Decode(&health); err != nil {
		return err
	}
	utils.PrintYaml(health)
	return nil
}

func init() {
	root.RootCmd.AddCommand(healthCmd)
}
