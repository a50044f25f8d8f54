// internal/config/normalize.go
package config

import "strings"

// Defaults. Zero values in the file mean "use the default".
const (
	DefaultIntervalMs    = 1000
	DefaultTickMs        = 10
	DefaultTitle         = "KY028 Thermistor Module"
	DefaultADCAddress    = 0x48
	DefaultMaxMillivolts = 3300
	DefaultDigitalPin    = "GPIO2"
	DefaultBaudRate      = 9600
	DefaultModbusTimeout = 500
	DefaultSimBase       = 2048
	DefaultSimAmplitude  = 600
	DefaultSimPeriodMs   = 30000
	DefaultSimThreshold  = 2300
	DefaultWidth         = 170
	DefaultHeight        = 320
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ---- panel ----
	if cfg.Panel.IntervalMs == 0 {
		cfg.Panel.IntervalMs = DefaultIntervalMs
	}
	if cfg.Panel.TickMs == 0 {
		cfg.Panel.TickMs = DefaultTickMs
	}

	// ---- sensor ----
	s := &cfg.Sensor
	s.Driver = strings.ToLower(s.Driver)
	if s.Driver == "" {
		s.Driver = SensorSim
	}

	if s.Periph.ADCAddress == 0 {
		s.Periph.ADCAddress = DefaultADCAddress
	}
	if s.Periph.MaxMillivolts == 0 {
		s.Periph.MaxMillivolts = DefaultMaxMillivolts
	}
	if s.Periph.DigitalPin == "" {
		s.Periph.DigitalPin = DefaultDigitalPin
	}

	s.Modbus.Transport = strings.ToLower(s.Modbus.Transport)
	if s.Modbus.Transport == "" {
		s.Modbus.Transport = "rtu"
	}
	if s.Modbus.BaudRate == 0 {
		s.Modbus.BaudRate = DefaultBaudRate
	}
	if s.Modbus.UnitID == 0 {
		s.Modbus.UnitID = 1
	}
	if s.Modbus.TimeoutMs == 0 {
		s.Modbus.TimeoutMs = DefaultModbusTimeout
	}

	if s.Sim.Base == nil {
		s.Sim.Base = intPtr(DefaultSimBase)
	}
	if s.Sim.Amplitude == 0 {
		s.Sim.Amplitude = DefaultSimAmplitude
	}
	if s.Sim.PeriodMs == 0 {
		s.Sim.PeriodMs = DefaultSimPeriodMs
	}
	if s.Sim.Threshold == nil {
		s.Sim.Threshold = intPtr(DefaultSimThreshold)
	}

	// ---- display ----
	d := &cfg.Display
	d.Driver = strings.ToLower(d.Driver)
	if d.Driver == "" {
		d.Driver = DisplayTerm
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if d.Width == 0 {
		d.Width = DefaultWidth
	}
	if d.Height == 0 {
		d.Height = DefaultHeight
	}

	// ---- log ----
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func intPtr(v int) *int { return &v }
