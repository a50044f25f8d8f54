// internal/sensor/modbus/client.go
package modbus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// reader is the subset of modbus.Client the sensor needs.
type reader interface {
	ReadDiscreteInputs(address, quantity uint16) ([]byte, error) // FC 2
	ReadInputRegisters(address, quantity uint16) ([]byte, error) // FC 4
}

// Config is minimal transport + geometry config.
type Config struct {
	Transport string // rtu | tcp
	Endpoint  string // serial device or host:port
	BaudRate  int
	UnitID    uint8
	Timeout   time.Duration

	AnalogRegister uint16 // input register holding the raw A0 count
	DigitalInput   uint16 // discrete input mirroring D0
}

// Sensor reads a KY-028 through a Modbus I/O adapter.
// One register read for A0, one discrete input read for D0.
// It serializes requests because both share one handler.
type Sensor struct {
	mu     sync.Mutex
	closer io.Closer
	client reader
	cfg    Config
}

// New connects the handler. Fail fast at startup.
func New(cfg Config) (*Sensor, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("sensor modbus: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 500 * time.Millisecond
	}

	switch strings.ToLower(cfg.Transport) {
	case "tcp":
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID

		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("sensor modbus: connect %s: %w", cfg.Endpoint, err)
		}
		return newSensor(cfg, modbus.NewClient(h), h), nil

	case "", "rtu":
		h := modbus.NewRTUClientHandler(cfg.Endpoint)
		h.BaudRate = cfg.BaudRate
		h.DataBits = 8
		h.Parity = "N"
		h.StopBits = 1
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID

		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("sensor modbus: open %s: %w", cfg.Endpoint, err)
		}
		return newSensor(cfg, modbus.NewClient(h), h), nil

	default:
		return nil, fmt.Errorf("sensor modbus: unknown transport %q", cfg.Transport)
	}
}

func newSensor(cfg Config, client reader, closer io.Closer) *Sensor {
	return &Sensor{cfg: cfg, client: client, closer: closer}
}

// ReadAnalog reads one input register (FC 4).
func (s *Sensor) ReadAnalog() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.client.ReadInputRegisters(s.cfg.AnalogRegister, 1)
	if err != nil {
		return 0, fmt.Errorf("sensor modbus: fc=4 addr=%d: %w", s.cfg.AnalogRegister, err)
	}
	if len(b) < 2 {
		return 0, fmt.Errorf("sensor modbus: fc=4 addr=%d: short payload (%d bytes)", s.cfg.AnalogRegister, len(b))
	}
	return int(binary.BigEndian.Uint16(b[:2])), nil
}

// ReadDigital reads one discrete input (FC 2).
func (s *Sensor) ReadDigital() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.client.ReadDiscreteInputs(s.cfg.DigitalInput, 1)
	if err != nil {
		return false, fmt.Errorf("sensor modbus: fc=2 addr=%d: %w", s.cfg.DigitalInput, err)
	}
	if len(b) < 1 {
		return false, fmt.Errorf("sensor modbus: fc=2 addr=%d: empty payload", s.cfg.DigitalInput)
	}
	return b[0]&0x01 != 0, nil
}

// Close releases the transport.
func (s *Sensor) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
