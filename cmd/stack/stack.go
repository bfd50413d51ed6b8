package stack

import (
	"fmt"

	"simpleclaw-keeper/cmd/root"
	"simpleclaw-keeper/internal/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var stackCmd = &cobra.Command{
	Use:   "stack",
	Short: "Stack operations (deploy/optimize/start/stop/status etc.)",
	Long:  `Stack operations (deploy/optimize/start/stop/restart/teardown/status/logs/validate/show)`,
}

const stackExample = `  # bring the stack up after setup
  simpleclaw-keeper stack deploy
  # tune the agent runtime for the selected model
  simpleclaw-keeper stack optimize -m claude-sonnet-4
  # check which containers run
  simpleclaw-keeper stack status`

// printPhase prints a phase result with one line per tolerated failure
func printPhase(result *models.PhaseResult) {
	fmt.Println(result.Message)
	failed := result.FailedSteps()
	if failed == 0 {
		return
	}
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("%s %d of %d steps failed and were skipped:\n", yellow("!"), failed, len(result.Steps))
	for _, s := range result.Steps {
		if !s.OK {
			fmt.Printf("  - %s: %s\n", s.Name, s.Error)
		}
	}
}

func init() {
	root.RootCmd.AddCommand(stackCmd)
	stackCmd.Example = stackExample
}
