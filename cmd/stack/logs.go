package stack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"simpleclaw-keeper/cmd/root"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/services"

	"github.com/spf13/cobra"
)

var logLines int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the last lines of the agent runtime output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if logLines <= 0 {
			return services.ErrInvalidLines
		}
		logs, err := fetchLogs(context.Background(), logLines)
		if err != nil {
			return err
		}
		fmt.Print(logs)
		return nil
	},
}

func fetchLogs(ctx context.Context, lines int) (string, error) {
	var resp models.LogsResponse
	handled, err := root.CallKeeper(http.MethodGet, "/api/v1/stack/logs", map[string]interface{}{"lines": lines}, 30*time.Second, &resp)
	if handled {
		return resp.Logs, err
	}
	return services.NewStatusReporter(config.App(), nil).Logs(ctx, lines)
}

func init() {
	stackCmd.AddCommand(logsCmd)
	logsCmd.Flags().IntVarP(&logLines, "lines", "n", services.DefaultLogLines, "Number of lines")
}
