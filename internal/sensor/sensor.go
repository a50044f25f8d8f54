// internal/sensor/sensor.go
package sensor

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/ky028-panel/internal/config"
	"github.com/tamzrod/ky028-panel/internal/sensor/modbus"
	"github.com/tamzrod/ky028-panel/internal/sensor/periph"
	"github.com/tamzrod/ky028-panel/internal/sensor/sim"
)

// ErrUnknownDriver is returned for an unsupported sensor.driver.
var ErrUnknownDriver = errors.New("sensor: unknown driver")

// Sensor is a KY-028 style module: raw A0 count plus D0 comparator level.
// Reads sample at call time. No buffering, no calibration.
type Sensor interface {
	ReadAnalog() (int, error)
	ReadDigital() (bool, error)
	Close() error
}

// Open builds the configured adapter.
// Expects a validated, normalized config.
func Open(c config.SensorConfig) (Sensor, error) {
	switch c.Driver {
	case config.SensorSim:
		return sim.New(sim.Config{
			Base:      derefOr(c.Sim.Base, config.DefaultSimBase),
			Amplitude: c.Sim.Amplitude,
			Period:    time.Duration(c.Sim.PeriodMs) * time.Millisecond,
			Jitter:    c.Sim.Jitter,
			Seed:      c.Sim.Seed,
			Threshold: derefOr(c.Sim.Threshold, config.DefaultSimThreshold),
			Inverted:  c.Sim.Inverted,
		})

	case config.SensorPeriph:
		return periph.New(periph.Config{
			I2CBus:        c.Periph.I2CBus,
			ADCAddress:    c.Periph.ADCAddress,
			ADCChannel:    c.Periph.ADCChannel,
			MaxMillivolts: c.Periph.MaxMillivolts,
			DigitalPin:    c.Periph.DigitalPin,
		})

	case config.SensorModbus:
		return modbus.New(modbus.Config{
			Transport:      c.Modbus.Transport,
			Endpoint:       c.Modbus.Endpoint,
			BaudRate:       c.Modbus.BaudRate,
			UnitID:         c.Modbus.UnitID,
			Timeout:        time.Duration(c.Modbus.TimeoutMs) * time.Millisecond,
			AnalogRegister: c.Modbus.AnalogRegister,
			DigitalInput:   c.Modbus.DigitalInput,
		})

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
}

func derefOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
