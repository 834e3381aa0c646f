package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/solace/pkg/api"
	"github.com/unowned-ai/solace/pkg/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve the solace JSON API, its OpenAPI document (/openapi.json, /docs)
and Prometheus metrics (/metrics) until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sess, path, closeFn, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		logger.Info("database opened", "path", path, "wal", cfg.WAL, "sync", cfg.Sync)
		return api.NewServer(sess, logger).ListenAndServe(ctx, cfg.HTTPAddr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Address to listen on")
	_ = v.BindPFlag(config.KeyHTTPAddr, serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}
