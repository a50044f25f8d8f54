// internal/config/config.go
package config

type Config struct {
	Panel   PanelConfig   `yaml:"panel"`
	Sensor  SensorConfig  `yaml:"sensor"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

// ---- PANEL (scheduler cadence) ----

type PanelConfig struct {
	IntervalMs int `yaml:"interval_ms"` // IDLE gate
	TickMs     int `yaml:"tick_ms"`     // driving loop granularity
}

// ---- SENSOR ----

const (
	SensorSim    = "sim"
	SensorPeriph = "periph"
	SensorModbus = "modbus"
)

type SensorConfig struct {
	Driver string       `yaml:"driver"`
	Periph PeriphConfig `yaml:"periph"`
	Modbus ModbusConfig `yaml:"modbus"`
	Sim    SimConfig    `yaml:"sim"`
}

// PeriphConfig wires a KY-028 to a Linux SBC: D0 on a GPIO pin,
// A0 through an ADS1115 on I2C.
type PeriphConfig struct {
	I2CBus        string `yaml:"i2c_bus"` // "" = first available
	ADCAddress    uint16 `yaml:"adc_address"`
	ADCChannel    int    `yaml:"adc_channel"`
	MaxMillivolts int    `yaml:"max_millivolts"`
	DigitalPin    string `yaml:"digital_pin"`
}

// ModbusConfig reads the module through a Modbus I/O adapter.
type ModbusConfig struct {
	Transport      string `yaml:"transport"` // rtu | tcp
	Endpoint       string `yaml:"endpoint"`  // serial device or host:port
	BaudRate       int    `yaml:"baud_rate"`
	UnitID         uint8  `yaml:"unit_id"`
	TimeoutMs      int    `yaml:"timeout_ms"`
	AnalogRegister uint16 `yaml:"analog_register"` // FC 4
	DigitalInput   uint16 `yaml:"digital_input"`   // FC 2
}

// SimConfig drives the bench simulator.
type SimConfig struct {
	Base      *int  `yaml:"base"` // nil = default; 0 is a valid baseline
	Amplitude int   `yaml:"amplitude"`
	PeriodMs  int   `yaml:"period_ms"`
	Jitter    int   `yaml:"jitter"`
	Seed      int64 `yaml:"seed"`
	Threshold *int  `yaml:"threshold"` // nil = default; 0 keeps D0 tripped
	Inverted  bool  `yaml:"inverted"`
}

// ---- DISPLAY ----

const (
	DisplayTerm        = "term"
	DisplayFramebuffer = "framebuffer"
	DisplayNone        = "none"
)

type DisplayConfig struct {
	Driver string `yaml:"driver"`
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`  // framebuffer only
	Height int    `yaml:"height"` // framebuffer only
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}
