// internal/clock/clock.go
package clock

import (
	"sync"
	"time"
)

// Millis is a free-running 32-bit millisecond counter.
// It wraps after ~49.7 days; compare with Since, never with < or >.
type Millis uint32

// Since returns the elapsed milliseconds from basis to m.
// Unsigned subtraction keeps the result correct across one wraparound.
func (m Millis) Since(basis Millis) uint32 {
	return uint32(m - basis)
}

// Clock is the monotonic time source the scheduler is driven by.
type Clock interface {
	Now() Millis
}

// System derives Millis from Go's monotonic clock.
type System struct {
	start time.Time
}

// NewSystem starts a system clock at zero.
func NewSystem() *System {
	return &System{start: time.Now()}
}

func (s *System) Now() Millis {
	return Millis(uint32(time.Since(s.start).Milliseconds()))
}

// Manual is a hand-driven clock for tests and replay.
type Manual struct {
	mu  sync.Mutex
	now Millis
}

// NewManual starts a manual clock at the given value.
func NewManual(start Millis) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() Millis {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set jumps the clock to an absolute value.
func (m *Manual) Set(v Millis) {
	m.mu.Lock()
	m.now = v
	m.mu.Unlock()
}

// Advance moves the clock forward by d milliseconds (wrapping).
func (m *Manual) Advance(d uint32) Millis {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += Millis(d)
	return m.now
}
