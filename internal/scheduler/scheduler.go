// internal/scheduler/scheduler.go
package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/tamzrod/ky028-panel/internal/clock"
)

// DefaultInterval is the IDLE gate used when Config.Interval is zero.
const DefaultInterval = 1000 * time.Millisecond

// Config is the immutable scheduler config.
type Config struct {
	Interval time.Duration
}

// Scheduler is the ACQUIRE -> RENDER -> IDLE state machine.
//
// Tick does one phase of work and returns. It never sleeps and never
// waits on the clock; IDLE is a comparison against the deadline basis.
// A Scheduler is owned by a single driving loop and is not safe for
// concurrent use.
type Scheduler struct {
	interval uint32 // ms
	sensor   Sensor
	display  Display
	logger   *slog.Logger

	state   State
	reading Reading
	basis   clock.Millis
	started bool
	stats   Stats
}

// New creates a scheduler in ACQUIRE.
func New(cfg Config, sensor Sensor, display Display, logger *slog.Logger) (*Scheduler, error) {
	if sensor == nil {
		return nil, errors.New("scheduler: sensor required")
	}
	if display == nil {
		return nil, errors.New("scheduler: display required")
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Interval < 0 {
		return nil, errors.New("scheduler: interval must be > 0")
	}
	ms := cfg.Interval.Milliseconds()
	if ms <= 0 || ms > math.MaxUint32/2 {
		return nil, fmt.Errorf("scheduler: interval %s out of range", cfg.Interval)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		interval: uint32(ms),
		sensor:   sensor,
		display:  display,
		logger:   logger,
		state:    Acquire,
	}, nil
}

// Start draws the static layout. Only the first call reaches the display,
// whether or not it succeeds; a failure counts as a display fault.
func (s *Scheduler) Start() error {
	if s.started {
		return nil
	}
	s.started = true

	if err := s.guard("render static", s.display.RenderStatic); err != nil {
		s.stats.DisplayFaults++
		s.logger.Warn("static layout failed", "error", err)
		return fmt.Errorf("scheduler: static layout: %w", err)
	}
	return nil
}

// Tick performs exactly one state's work.
func (s *Scheduler) Tick(now clock.Millis) Step {
	step := Step{From: s.state, At: now}

	switch s.state {
	case Acquire:
		step.Acquired = true
		step.Err = s.acquire()
		s.state = Render

	case Render:
		step.Rendered = true
		step.Err = s.render()
		s.stats.Cycles++
		s.basis = now
		s.state = Idle

	case Idle:
		if now.Since(s.basis) >= s.interval {
			s.state = Acquire
		}

	default:
		s.state = Acquire
	}

	step.To = s.state
	step.Reading = s.reading
	return step
}

// State returns the current phase.
func (s *Scheduler) State() State { return s.state }

// Reading returns the most recent reading.
func (s *Scheduler) Reading() Reading { return s.reading }

// Display returns the sink the scheduler renders to.
func (s *Scheduler) Display() Display { return s.display }

// Stats returns a copy of the counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// Interval returns the IDLE gate.
func (s *Scheduler) Interval() time.Duration {
	return time.Duration(s.interval) * time.Millisecond
}

// ---- phases ----

func (s *Scheduler) acquire() error {
	var r Reading
	var errs []error

	if err := s.guard("read analog", func() error {
		v, err := s.sensor.ReadAnalog()
		if err == nil {
			r.Analog = v
		}
		return err
	}); err != nil {
		errs = append(errs, fmt.Errorf("analog: %w", err))
	}

	if err := s.guard("read digital", func() error {
		v, err := s.sensor.ReadDigital()
		if err == nil {
			r.Digital = v
		}
		return err
	}); err != nil {
		errs = append(errs, fmt.Errorf("digital: %w", err))
	}

	r.Err = errors.Join(errs...)
	s.reading = r

	// one record per ACQUIRE; a fault raises its level
	attrs := []any{"analog", r.Analog, "digital", LevelName(r.Digital)}
	if r.Err != nil {
		s.stats.SensorFaults++
		s.logger.Warn("reading", append(attrs, "error", r.Err)...)
	} else {
		s.logger.Info("reading", attrs...)
	}

	return r.Err
}

func (s *Scheduler) render() error {
	r := s.reading
	err := s.guard("render values", func() error {
		return s.display.RenderValues(r.Analog, r.Digital)
	})
	if err != nil {
		s.stats.DisplayFaults++
		s.logger.Warn("display update failed", "error", err)
	}
	return err
}

// guard runs a collaborator call, converting a panic into an error.
// The stack goes to the log under a correlation id; the error carries the id.
func (s *Scheduler) guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			s.logger.Error("collaborator panic",
				"op", op,
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("%s panic (correlation_id: %s)", op, correlationID)
		}
	}()
	return fn()
}

// LevelName renders a digital level the way the panel shows it.
func LevelName(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}
