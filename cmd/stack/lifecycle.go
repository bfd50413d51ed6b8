package stack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"simpleclaw-keeper/cmd/root"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/services"

	"github.com/spf13/cobra"
)

const lifecycleTimeout = 2 * time.Minute

type lifecycleOp struct {
	use     string
	short   string
	message string
	local   func(*services.StackManager, context.Context) error
}

var lifecycleOps = []lifecycleOp{
	{"start", "Start the stopped stack", services.MsgStarted, (*services.StackManager).Start},
	{"stop", "Stop the running stack", services.MsgStopped, (*services.StackManager).Stop},
	{"restart", "Restart every service of the stack", services.MsgRestarted, (*services.StackManager).Restart},
	{"teardown", "Remove containers and volumes, keeping the configuration", services.MsgTornDown, (*services.StackManager).Teardown},
}

/**
 * Run a lifecycle operation through the keeper server, or locally without one
 * @param {context.Context} ctx - Context passed to docker calls
 * @param {lifecycleOp} op - Operation to run
 * @returns {error} docker's stderr on failure
 */
func runLifecycle(ctx context.Context, op lifecycleOp) error {
	handled, err := root.CallKeeper(http.MethodPost, "/api/v1/stack/"+op.use, nil, lifecycleTimeout, nil)
	if handled {
		if err != nil {
			return err
		}
		fmt.Printf("%s via keeper server\n", op.message)
		return nil
	}

	manager := services.NewStackManager(config.App(), nil)
	if err := op.local(manager, ctx); err != nil {
		return err
	}
	fmt.Println(op.message)
	return nil
}

func init() {
	for _, op := range lifecycleOps {
		op := op
		stackCmd.AddCommand(&cobra.Command{
			Use:   op.use,
			Short: op.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runLifecycle(context.Background(), op)
			},
		})
	}
}
