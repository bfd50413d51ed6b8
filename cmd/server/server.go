package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simpleclaw-keeper/cmd/root"
	"simpleclaw-keeper/controllers"
	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/logger"
	"simpleclaw-keeper/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动HTTP服务",
	Long:  `Serve the keeper API to the desktop shell on TCP and a unix socket`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return startServer(ctx, config.App())
	},
}

/**
 * Run the keeper HTTP server until ctx is cancelled
 * @param {context.Context} ctx - Cancelled on SIGINT/SIGTERM
 * @param {*config.AppConfig} cfg - Application configuration
 * @returns {error} Listener or serve errors
 * @description
 * - Refuses to start when the TCP address already answers
 * - Listens on TCP and, when supported, on the unix socket, or not at all
 * - Shuts down gracefully, in-flight phases get 30 seconds
 */
func startServer(ctx context.Context, cfg *config.AppConfig) error {
	gin.SetMode(cfg.Server.Mode)

	addrs, err := keeperAddrs(cfg)
	if err != nil {
		return err
	}
	listeners, err := CreateListeners(addrs)
	if err != nil {
		return err
	}

	server := services.NewServer(cfg, nil)
	httpServer := &http.Server{Handler: controllers.NewRouter(server)}

	errCh := make(chan error, len(listeners))
	for _, l := range listeners {
		logger.Infof("Keeper API listening on %s://%s", l.Addr().Network(), l.Addr().String())
		go func(l net.Listener) {
			if err := httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(l)
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutting down keeper API")
	case err := <-errCh:
		logger.Errorf("Keeper API stopped: %v", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if cfg.Server.Socket != "" {
		os.Remove(cfg.Server.Socket)
	}
	return nil
}

func init() {
	root.RootCmd.AddCommand(serverCmd)

	serverCmd.Example = `  simpleclaw-keeper server
  SIMPLECLAW_SERVER_ADDRESS=127.0.0.1:18800 simpleclaw-keeper server`
}
