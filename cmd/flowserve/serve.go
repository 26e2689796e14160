package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/flowserve"
	"github.com/aretw0/flowserve/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the workflow HTTP server",
	Long: `Starts the flowserve engine in server mode. Every method and path is routed to the
workflow; the response node's payload becomes the HTTP response.

With --watch and a Redis source, published workflows are swapped in without restarting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, src, err := setup(cmd)
		if err != nil {
			return err
		}
		defer src.Close()

		var serveCfg cli.ServeConfig
		serveCfg.Addr, _ = cmd.Flags().GetString("addr")
		serveCfg.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		serveCfg.MaxBodyBytes, _ = cmd.Flags().GetInt64("max-body-bytes")
		serveCfg.ShutdownTimeout, _ = cmd.Flags().GetDuration("shutdown-timeout")
		serveCfg.Watch, _ = cmd.Flags().GetBool("watch")
		serveCfg.CORS, _ = cmd.Flags().GetBool("cors")

		// Create a context that cancels on interrupt signal
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := cli.NewServer(ctx, serveCfg, src, logger, flowserve.WithMaxWaves(cfg.MaxWaves))
		if err != nil {
			return err
		}
		logger.Info("Serving workflow", "graph", src.Name, "nodes", srv.Reloader().Graph().Len())
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("metrics-addr", "", "Address of the Prometheus /metrics listener (disabled when empty)")
	serveCmd.Flags().Int64("max-body-bytes", 1<<20, "Maximum request body size (0 disables the limit)")
	serveCmd.Flags().Duration("shutdown-timeout", cli.DefaultShutdownTimeout, "Graceful shutdown deadline")
	serveCmd.Flags().Bool("watch", false, "Reload the workflow when the source announces a change")
	serveCmd.Flags().Bool("cors", false, "Add permissive CORS headers and answer preflight requests")
}
