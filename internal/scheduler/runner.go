// internal/scheduler/runner.go
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/tamzrod/ky028-panel/internal/clock"
)

// DefaultTickEvery is the driving loop granularity.
const DefaultTickEvery = 10 * time.Millisecond

// Run draws the static layout, then ticks the scheduler until ctx is done.
// One Tick per ticker fire. No overlap, no catch-up bursts.
// onStep may be nil.
func (s *Scheduler) Run(ctx context.Context, clk clock.Clock, every time.Duration, onStep func(Step)) error {
	if clk == nil {
		return errors.New("scheduler: clock required")
	}
	if every <= 0 {
		every = DefaultTickEvery
	}

	// reported by Start; values still render over a broken layout
	_ = s.Start()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			step := s.Tick(clk.Now())
			if onStep != nil {
				onStep(step)
			}
		}
	}
}
