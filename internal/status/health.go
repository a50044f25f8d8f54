// internal/status/health.go
package status

import "github.com/tamzrod/ky028-panel/internal/clock"

// Health is the coarse state of one device.
type Health uint16

// ---- HEALTH CODES ----

const (
	HealthUnknown Health = 0 // boot, nothing observed yet
	HealthOK      Health = 1
	HealthError   Health = 2
)

func (h Health) String() string {
	switch h {
	case HealthUnknown:
		return "UNKNOWN"
	case HealthOK:
		return "OK"
	case HealthError:
		return "ERROR"
	}
	return "INVALID"
}

// Snapshot is the current health of one device.
// No memory of the past beyond the current error run.
type Snapshot struct {
	Health        Health
	LastErrorCode uint16       // 0 while healthy
	ErrorSince    clock.Millis // valid while Health == HealthError
	InErrorMs     uint32       // as of the last update
}
