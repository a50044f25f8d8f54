// internal/scheduler/types.go
package scheduler

import "github.com/tamzrod/ky028-panel/internal/clock"

// State is one of the three scheduler phases.
type State uint8

const (
	Acquire State = iota
	Render
	Idle
)

func (s State) String() string {
	switch s {
	case Acquire:
		return "ACQUIRE"
	case Render:
		return "RENDER"
	case Idle:
		return "IDLE"
	default:
		return "UNKNOWN"
	}
}

// Reading is the analog/digital pair captured by one ACQUIRE.
// Err is non-nil when either read failed; the failed field is zero.
type Reading struct {
	Analog  int
	Digital bool
	Err     error
}

// Step describes what one Tick did.
type Step struct {
	From State
	To   State
	At   clock.Millis

	// Reading is the current reading after the tick.
	Reading Reading

	// Acquired / Rendered report which collaborator was invoked.
	Acquired bool
	Rendered bool

	// Err carries collaborator failures from this tick. Never fatal.
	Err error
}

// Stats are running counters. No history beyond counts.
type Stats struct {
	Cycles        uint64 // completed ACQUIRE+RENDER pairs
	SensorFaults  uint64
	DisplayFaults uint64
}

// Sensor is the read side the scheduler depends on.
type Sensor interface {
	ReadAnalog() (int, error)
	ReadDigital() (bool, error)
}

// Display is the render side the scheduler depends on.
type Display interface {
	RenderStatic() error
	RenderValues(analog int, digital bool) error
}
