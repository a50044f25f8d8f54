// cmd/panel/run.go
package main

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/ky028-panel/internal/clock"
	"github.com/tamzrod/ky028-panel/internal/config"
	"github.com/tamzrod/ky028-panel/internal/display"
	"github.com/tamzrod/ky028-panel/internal/logging"
	"github.com/tamzrod/ky028-panel/internal/scheduler"
	"github.com/tamzrod/ky028-panel/internal/status"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the panel",
	Long: `Load the config, open the sensor and the display, draw the static
layout and run ACQUIRE -> RENDER -> IDLE until SIGINT or SIGTERM.

The term display draws on stdout; logs go to stderr.

Example:
  panel run -c panel.yaml
  panel run -c panel.yaml --snapshot last.png   # framebuffer driver`,
	RunE: runPanel,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	runCmd.Flags().String("snapshot", "", "write the framebuffer as PNG on exit")
	_ = runCmd.MarkFlagRequired("config")
}

func runPanel(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	snapshot, _ := cmd.Flags().GetString("snapshot")

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	logger.Info("config loaded",
		"sensor", cfg.Sensor.Driver,
		"display", cfg.Display.Driver,
		"interval_ms", cfg.Panel.IntervalMs,
		"tick_ms", cfg.Panel.TickMs,
	)

	s, closeDevices, err := scheduler.Build(cfg, cmd.OutOrStdout(), logger)
	if err != nil {
		return fmt.Errorf("panel build failed: %w", err)
	}
	defer func() {
		if err := closeDevices(); err != nil {
			logger.Warn("device close failed", "err", err)
		}
	}()

	if snapshot != "" && display.Framebuffer(s.Display()) == nil {
		return fmt.Errorf("--snapshot needs display.driver %q", config.DisplayFramebuffer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	board := status.NewBoard(logger)

	tick := time.Duration(cfg.Panel.TickMs) * time.Millisecond
	if err := s.Run(ctx, clock.NewSystem(), tick, board.Observe); err != nil {
		return err
	}

	st := s.Stats()
	logger.Info("shutdown complete",
		"cycles", st.Cycles,
		"sensor_faults", st.SensorFaults,
		"display_faults", st.DisplayFaults,
		"sensor_health", board.Sensor.Snapshot().Health.String(),
		"display_health", board.Display.Snapshot().Health.String(),
	)

	if snapshot != "" {
		return writeSnapshot(snapshot, s.Display(), logger)
	}
	return nil
}

func writeSnapshot(path string, d scheduler.Display, logger *slog.Logger) error {
	fb := display.Framebuffer(d)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, fb.Image()); err != nil {
		_ = f.Close()
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	logger.Info("snapshot written", "path", path, "flushes", fb.Flushes())
	return nil
}
