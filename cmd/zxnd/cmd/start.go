package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filecoin-project/go-clock"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zxnprotocol/zxn/app"
	"github.com/zxnprotocol/zxn/app/metrics"
)

// startCmd returns the start command that keeps the engine open, serves its
// metrics and reports the protocol statistics until interrupted.
func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the engine and serve its metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			interval, err := cmd.Flags().GetDuration(FlagStatsInterval)
			if err != nil {
				return err
			}
			return withSession(cmd, func(s *session) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return runEngine(ctx, s.app, clock.New(), interval)
			})
		},
	}

	cmd.Flags().Duration(FlagStatsInterval, time.Minute, "how often to log the protocol statistics")
	return cmd
}

// runEngine blocks until ctx is done or a background task fails.
func runEngine(ctx context.Context, engine *app.App, clk clock.Clock, statsInterval time.Duration) error {
	cfg := engine.Config()
	logger := engine.Logger()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Telemetry.Enabled {
		tel, err := metrics.New(metrics.Config{
			ServiceName:          cfg.Telemetry.ServiceName,
			Retention:            time.Duration(cfg.Telemetry.RetentionSeconds) * time.Second,
			EnableRuntimeMetrics: cfg.Telemetry.EnableRuntimeMetrics,
		}, logger)
		if err != nil {
			return err
		}
		defer tel.Shutdown()

		if cfg.Telemetry.DiskSpaceIntervalSeconds > 0 {
			interval := time.Duration(cfg.Telemetry.DiskSpaceIntervalSeconds) * time.Second
			disk, err := metrics.NewDiskSpaceCollector(tel.Registry(), cfg.DBDir(), interval, clk, logger)
			if err != nil {
				return err
			}
			g.Go(func() error {
				disk.Run(ctx)
				return nil
			})
		}
		if cfg.Telemetry.ListenAddress != "" {
			g.Go(func() error { return tel.Serve(ctx, cfg.Telemetry.ListenAddress) })
		}
	}

	if statsInterval > 0 {
		g.Go(func() error { return reportStatistics(ctx, engine, clk, statsInterval) })
	}

	logger.Info("engine started", "home", cfg.Home, "chain_id", cfg.ChainID)
	err := g.Wait()
	logger.Info("engine stopped")
	return err
}

// reportStatistics logs the protocol statistics every interval and notes
// each new cycle.
func reportStatistics(ctx context.Context, engine *app.App, clk clock.Clock, interval time.Duration) error {
	ticker := clk.Ticker(interval)
	defer ticker.Stop()

	lastCycle := uint64(0)
	for {
		stats, err := engine.ProtocolStatistics()
		if err != nil {
			return err
		}
		if stats.CurrentCycle != lastCycle {
			engine.Logger().Info("cycle advanced", "cycle", stats.CurrentCycle, "previous", lastCycle)
			lastCycle = stats.CurrentCycle
		}
		engine.Logger().Info("protocol statistics",
			"cycle", stats.CurrentCycle,
			"active_cycles", stats.ActiveCycleCount,
			"cycles_remaining", stats.CyclesRemaining,
			"total_emitted", stats.TotalEmitted,
			"secondary_pool", stats.TotalSecondaryCollected.Sub(stats.TotalSecondaryClaimed),
		)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
