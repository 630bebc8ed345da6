package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/worklog/internal/logger"
	"github.com/emiliopalmerini/worklog/internal/metrics"
	"github.com/emiliopalmerini/worklog/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the web dashboard server.

The KPI snapshot is pushed to the OTEL collector every metrics interval
when WORKLOG_OTEL_ENABLED is set. Request metrics are served on /metrics.

Examples:
  worklog serve                # Listen on WORKLOG_ADDR (default :8080)
  worklog serve --addr :3000   # Listen on port 3000`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Address to listen on (overrides WORKLOG_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadConfig(false)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	app, err := NewAppContext(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	server := web.NewServer(cfg.Server.Addr, app.Logs, app.Insights,
		web.WithMetrics(metrics.New()),
		web.WithLogger(log.With(logger.String("component", "web"))),
		web.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	g.Go(func() error {
		return app.Logs.RunPublisher(gctx, cfg.Server.MetricsInterval)
	})

	err = g.Wait()
	log.Info("shut down")
	return err
}
