// internal/sensor/periph/periph.go
package periph

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"
)

// sampleRate is the ADS1115 data rate. The fastest rate keeps a
// single-shot conversion near one millisecond.
const sampleRate = 860 * physic.Hertz

// Config wires A0 to an ADS1115 channel and D0 to a GPIO pin.
type Config struct {
	I2CBus        string // "" = first available
	ADCAddress    uint16
	ADCChannel    int // 0..3, single-ended
	MaxMillivolts int
	DigitalPin    string // e.g. GPIO2
}

type adcPin interface {
	Read() (analog.Sample, error)
	Halt() error
}

type levelPin interface {
	Read() gpio.Level
}

// Sensor reads a KY-028 on a Linux SBC.
type Sensor struct {
	adc adcPin
	pin levelPin
	bus i2c.BusCloser
}

// HostInit loads periph.io host drivers. Must run before New.
func HostInit() error {
	_, err := host.Init()
	return err
}

// New opens the I2C bus, the ADC channel and the digital pin.
func New(cfg Config) (*Sensor, error) {
	if err := HostInit(); err != nil {
		return nil, fmt.Errorf("sensor periph: host init: %w", err)
	}

	// get pin
	p := gpioreg.ByName(cfg.DigitalPin)
	if p == nil {
		return nil, fmt.Errorf("sensor periph: pin %q not found", cfg.DigitalPin)
	}
	if err := p.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("sensor periph: pin %s in: %w", cfg.DigitalPin, err)
	}

	ch, err := channel(cfg.ADCChannel)
	if err != nil {
		return nil, err
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("sensor periph: i2c open %q: %w", cfg.I2CBus, err)
	}

	dev, err := ads1x15.NewADS1115(bus, &ads1x15.Opts{I2cAddress: cfg.ADCAddress})
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("sensor periph: ads1115 at 0x%02x: %w", cfg.ADCAddress, err)
	}

	maxV := physic.ElectricPotential(cfg.MaxMillivolts) * physic.MilliVolt
	adc, err := dev.PinForChannel(ch, maxV, sampleRate, ads1x15.SaveEnergy)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("sensor periph: adc channel %d: %w", cfg.ADCChannel, err)
	}

	return &Sensor{adc: adc, pin: p, bus: bus}, nil
}

// ReadAnalog returns the raw ADC count for A0.
func (s *Sensor) ReadAnalog() (int, error) {
	sample, err := s.adc.Read()
	if err != nil {
		return 0, fmt.Errorf("sensor periph: adc read: %w", err)
	}
	return int(sample.Raw), nil
}

// ReadDigital returns true when D0 is HIGH.
func (s *Sensor) ReadDigital() (bool, error) {
	return s.pin.Read() == gpio.High, nil
}

// Close halts the ADC pin and releases the bus.
func (s *Sensor) Close() error {
	var errs []error
	if s.adc != nil {
		if err := s.adc.Halt(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.bus != nil {
		if err := s.bus.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func channel(n int) (ads1x15.Channel, error) {
	switch n {
	case 0:
		return ads1x15.Channel0, nil
	case 1:
		return ads1x15.Channel1, nil
	case 2:
		return ads1x15.Channel2, nil
	case 3:
		return ads1x15.Channel3, nil
	default:
		return 0, fmt.Errorf("sensor periph: adc channel %d out of range (0..3)", n)
	}
}
