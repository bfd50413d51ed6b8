package stack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"simpleclaw-keeper/cmd/root"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/internal/utils"
	"simpleclaw-keeper/services"

	"github.com/fatih/color"
	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"
)

var statusYaml bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of every container of the stack",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := queryStatus(context.Background())
		if err != nil {
			return err
		}
		if statusYaml {
			utils.PrintYaml(status)
			return nil
		}
		printStatus(status)
		return nil
	},
}

/**
 * Query stack status from the keeper server, falling back to docker
 * @param {context.Context} ctx - Context passed to docker calls
 * @returns {(*models.StackStatus, error)} Current status
 */
func queryStatus(ctx context.Context) (*models.StackStatus, error) {
	var status models.StackStatus
	handled, err := root.CallKeeper(http.MethodGet, "/api/v1/stack/status", nil, 30*time.Second, &status)
	if handled {
		if err != nil {
			return nil, err
		}
		return &status, nil
	}
	return services.NewStatusReporter(config.App(), nil).Status(ctx)
}

func colorState(state string) string {
	switch state {
	case services.RunningState:
		return color.GreenString(state)
	case "exited", "dead":
		return color.RedString(state)
	default:
		return color.YellowString(state)
	}
}

func printStatus(status *models.StackStatus) {
	if status.Running {
		fmt.Println("Stack:", color.GreenString("running"))
	} else {
		fmt.Println("Stack:", color.RedString("not running"))
	}
	if len(status.Containers) == 0 {
		fmt.Println("No containers found")
		return
	}
	var dataList []*orderedmap.OrderedMap
	for _, c := range status.Containers {
		row, err := utils.StructToOrderedMap(c)
		if err != nil {
			continue
		}
		row.Set("state", colorState(c.State))
		dataList = append(dataList, row)
	}
	utils.PrintFormat(dataList)
}

func init() {
	stackCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusYaml, "yaml", false, "Print as YAML")
}
