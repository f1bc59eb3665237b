package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"evalgo.org/pvegraph/internal/api"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the HTTP API server with Echo framework.

Without valid Proxmox credentials the server still starts; the topology and
pass-through routes then answer "Proxmox client not configured".`,
	RunE: runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	// a nil *proxmox.Client must not end up inside the interface
	var cluster api.Cluster
	if client := newProxmoxClient(cfg.Proxmox, logger); client != nil {
		cluster = client
	}

	server := api.New(cfg, cluster, logger)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return nil

	case err := <-errChan:
		_ = server.Shutdown(context.Background())
		return fmt.Errorf("server error: %w", err)
	}
}
