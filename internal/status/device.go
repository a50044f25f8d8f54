// internal/status/device.go
package status

import (
	"log/slog"

	"github.com/tamzrod/ky028-panel/internal/clock"
	"github.com/tamzrod/ky028-panel/internal/scheduler"
)

// Device tracks the health of one collaborator and logs transitions.
// Owned by the driving loop; not safe for concurrent use.
type Device struct {
	name   string
	logger *slog.Logger
	snap   Snapshot
}

func NewDevice(name string, logger *slog.Logger) *Device {
	if logger == nil {
		logger = slog.Default()
	}
	return &Device{name: name, logger: logger}
}

// Update applies one observation. changed reports a health or code change;
// the error duration alone does not count.
func (d *Device) Update(at clock.Millis, err error) (snap Snapshot, changed bool) {
	if err == nil {
		if d.snap.Health != HealthOK {
			if d.snap.Health == HealthError {
				d.logger.Info("device recovered",
					"device", d.name,
					"in_error_ms", at.Since(d.snap.ErrorSince),
				)
			}
			d.snap = Snapshot{Health: HealthOK}
			changed = true
		}
		return d.snap, changed
	}

	code := ErrorCode(err)
	if d.snap.Health != HealthError {
		d.snap.Health = HealthError
		d.snap.ErrorSince = at
		changed = true
	}
	if d.snap.LastErrorCode != code {
		d.snap.LastErrorCode = code
		changed = true
	}
	d.snap.InErrorMs = at.Since(d.snap.ErrorSince)

	if changed {
		d.logger.Warn("device fault",
			"device", d.name,
			"code", code,
			"error", err,
		)
	}
	return d.snap, changed
}

// Snapshot returns the state as of the last update.
func (d *Device) Snapshot() Snapshot { return d.snap }

// Board tracks sensor and display health from scheduler steps.
type Board struct {
	Sensor  *Device
	Display *Device
}

func NewBoard(logger *slog.Logger) *Board {
	return &Board{
		Sensor:  NewDevice("sensor", logger),
		Display: NewDevice("display", logger),
	}
}

// Observe feeds one step. IDLE steps carry no observation.
func (b *Board) Observe(st scheduler.Step) {
	switch {
	case st.Acquired:
		b.Sensor.Update(st.At, st.Reading.Err)
	case st.Rendered:
		b.Display.Update(st.At, st.Err)
	}
}
