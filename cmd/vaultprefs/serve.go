package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CreativeUnicorns/vaultprefs/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the preferences HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr, _ := cmd.Flags().GetString("listen-addr")

		b, err := openBackends(cmd)
		if err != nil {
			return err
		}
		defer b.Close()

		srv, err := api.NewServer(api.Config{
			ListenAddress: listenAddr,
			Options:       b.options,
			Logger:        b.logger,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		b.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("listen-addr", ":8080", "HTTP listen address")
}
