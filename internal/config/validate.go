// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

// TitleMaxChars is the width of the header rule on the panel.
const TitleMaxChars = 27

// maxIntervalMs keeps the IDLE gate well inside the 32-bit millisecond counter.
const maxIntervalMs = 24 * 60 * 60 * 1000

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values are legal and mean "default" (see Normalize).
// MaxDisplaySide bounds framebuffer width and height. Pixel coordinates
// are int16 on the drawing path.
const MaxDisplaySide = 4096

func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// PANEL CADENCE
	// ------------------------------------------------------------

	p := cfg.Panel
	if p.IntervalMs < 0 || p.IntervalMs > maxIntervalMs {
		return fmt.Errorf("panel.interval_ms %d out of range (0..%d)", p.IntervalMs, maxIntervalMs)
	}
	if p.TickMs < 0 {
		return fmt.Errorf("panel.tick_ms must be >= 0, got %d", p.TickMs)
	}

	interval := orDefault(p.IntervalMs, DefaultIntervalMs)
	tick := orDefault(p.TickMs, DefaultTickMs)
	if tick > interval {
		return fmt.Errorf("panel.tick_ms %d exceeds interval_ms %d", tick, interval)
	}

	// ------------------------------------------------------------
	// SENSOR
	// ------------------------------------------------------------

	s := cfg.Sensor
	switch strings.ToLower(s.Driver) {
	case "", SensorSim:
		if err := validateSim(s.Sim); err != nil {
			return err
		}
	case SensorPeriph:
		if err := validatePeriph(s.Periph); err != nil {
			return err
		}
	case SensorModbus:
		if err := validateModbus(s.Modbus); err != nil {
			return err
		}
	default:
		return fmt.Errorf("sensor.driver %q unknown (want sim, periph or modbus)", s.Driver)
	}

	// ------------------------------------------------------------
	// DISPLAY
	// ------------------------------------------------------------

	d := cfg.Display
	switch strings.ToLower(d.Driver) {
	case "", DisplayTerm, DisplayFramebuffer, DisplayNone:
	default:
		return fmt.Errorf("display.driver %q unknown (want term, framebuffer or none)", d.Driver)
	}

	// title sanity (printable ASCII only, fits the header rule)
	for i := 0; i < len(d.Title); i++ {
		if d.Title[i] < 0x20 || d.Title[i] > 0x7E {
			return fmt.Errorf("display.title must contain printable ASCII characters only")
		}
	}
	if len(d.Title) > TitleMaxChars {
		return fmt.Errorf("display.title longer than %d characters", TitleMaxChars)
	}

	if d.Width < 0 || d.Height < 0 || d.Width > MaxDisplaySide || d.Height > MaxDisplaySide {
		return fmt.Errorf("display size %dx%d out of range (0..%d per side)", d.Width, d.Height, MaxDisplaySide)
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	switch strings.ToLower(cfg.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q unknown", cfg.Log.Level)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q unknown", cfg.Log.Format)
	}

	return nil
}

func validatePeriph(p PeriphConfig) error {
	if p.ADCChannel < 0 || p.ADCChannel > 3 {
		return fmt.Errorf("sensor.periph.adc_channel %d out of range (0..3)", p.ADCChannel)
	}
	if p.ADCAddress != 0 && (p.ADCAddress < 0x48 || p.ADCAddress > 0x4B) {
		return fmt.Errorf("sensor.periph.adc_address 0x%02x is not an ADS1115 address", p.ADCAddress)
	}
	if p.MaxMillivolts < 0 || p.MaxMillivolts > 6144 {
		return fmt.Errorf("sensor.periph.max_millivolts %d out of range (0..6144)", p.MaxMillivolts)
	}
	if strings.ContainsAny(p.DigitalPin, " \t") {
		return fmt.Errorf("sensor.periph.digital_pin %q contains whitespace", p.DigitalPin)
	}
	return nil
}

func validateModbus(m ModbusConfig) error {
	switch strings.ToLower(m.Transport) {
	case "", "rtu", "tcp":
	default:
		return fmt.Errorf("sensor.modbus.transport %q unknown (want rtu or tcp)", m.Transport)
	}
	if m.Endpoint == "" {
		return fmt.Errorf("sensor.modbus.endpoint required")
	}
	if m.BaudRate < 0 {
		return fmt.Errorf("sensor.modbus.baud_rate must be >= 0, got %d", m.BaudRate)
	}
	if m.UnitID > 247 {
		return fmt.Errorf("sensor.modbus.unit_id %d out of range (1..247)", m.UnitID)
	}
	if m.TimeoutMs < 0 {
		return fmt.Errorf("sensor.modbus.timeout_ms must be >= 0, got %d", m.TimeoutMs)
	}
	return nil
}

func validateSim(s SimConfig) error {
	if s.PeriodMs < 0 {
		return fmt.Errorf("sensor.sim.period_ms must be >= 0, got %d", s.PeriodMs)
	}
	if s.Amplitude < 0 || s.Jitter < 0 {
		return fmt.Errorf("sensor.sim amplitude/jitter must be >= 0")
	}
	return nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
