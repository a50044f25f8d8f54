// internal/scheduler/builder.go

//go:build !tinygo

package scheduler

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/tamzrod/ky028-panel/internal/config"
	"github.com/tamzrod/ky028-panel/internal/display"
	"github.com/tamzrod/ky028-panel/internal/sensor"
)

// Build opens the configured sensor and display and wires a Scheduler.
// out is the terminal for the term display.
// The returned closer releases both devices; call it once on shutdown.
// Expects a validated, normalized config. Device open failures are
// fatal here: the panel is useless without either end.
func Build(cfg *config.Config, out io.Writer, logger *slog.Logger) (*Scheduler, func() error, error) {
	if cfg == nil {
		return nil, nil, errors.New("scheduler: config required")
	}

	sn, err := sensor.Open(cfg.Sensor)
	if err != nil {
		return nil, nil, err
	}

	dp, err := display.Open(cfg.Display, out)
	if err != nil {
		_ = sn.Close()
		return nil, nil, err
	}

	closer := func() error {
		return errors.Join(dp.Close(), sn.Close())
	}

	s, err := New(
		Config{Interval: time.Duration(cfg.Panel.IntervalMs) * time.Millisecond},
		sn,
		dp,
		logger,
	)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}

	return s, closer, nil
}
