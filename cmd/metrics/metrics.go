package metrics

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"time"

	"simpleclaw-keeper/cmd/root"
	"simpleclaw-keeper/internal/rpc"

	"github.com/spf13/cobra"
)

var (
	showAll bool
	timeout time.Duration
)

func init() {
	root.RootCmd.AddCommand(Cmd)
	Cmd.Flags().SortFlags = false
	Cmd.Flags().BoolVarP(&showAll, "all", "a", false, "包含Go运行时与进程指标")
	Cmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "指标采集超时时间")
}

var Cmd = &cobra.Command{
	Use:   "metrics",
	Short: "显示keeper服务的Prometheus指标",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := rpc.DefaultHTTPConfig()
		cfg.Timeout = timeout
		client := rpc.NewHTTPClient(cfg)
		defer client.Close()

		resp, err := client.Get("/metrics", nil)
		if err != nil {
			return fmt.Errorf("keeper server is not running: %w", err)
		}
		if !resp.OK() {
			return fmt.Errorf("metrics request failed(%d): %s", resp.StatusCode, resp.Error)
		}
		fmt.Print(filterMetrics(resp.Body, showAll))
		return nil
	},
}

// filterMetrics keeps keeper_ series and their HELP/TYPE lines unless all is set
func filterMetrics(body []byte, all bool) string {
	if all {
		return string(body)
	}
	var sb strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		name := strings.TrimPrefix(strings.TrimPrefix(line, "# HELP "), "# TYPE ")
		if strings.HasPrefix(name, "keeper_") {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
