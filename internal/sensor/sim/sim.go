// internal/sensor/sim/sim.go
package sim

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"
)

// MaxRaw is the top of the simulated 12-bit ADC.
const MaxRaw = 4095

// Config shapes the simulated thermistor curve.
type Config struct {
	Base      int           // mid-scale raw value
	Amplitude int           // peak deviation from Base
	Period    time.Duration // one full warm/cool cycle
	Jitter    int           // +/- uniform noise per sample
	Seed      int64
	Threshold int  // comparator trip point (raw)
	Inverted  bool // D0 pulled LOW when tripped
}

// Sensor is a deterministic KY-028 stand-in.
// The analog curve is a sine over elapsed time; D0 is a comparator on
// the last analog sample, like the module's LM393.
type Sensor struct {
	cfg     Config
	elapsed func() time.Duration

	mu   sync.Mutex
	rnd  *rand.Rand
	last int
	have bool
}

// New builds a simulator against wall time.
func New(cfg Config) (*Sensor, error) {
	start := time.Now()
	return NewWithElapsed(cfg, func() time.Duration { return time.Since(start) })
}

// NewWithElapsed builds a simulator against an injected time source.
func NewWithElapsed(cfg Config, elapsed func() time.Duration) (*Sensor, error) {
	if elapsed == nil {
		return nil, errors.New("sim: elapsed func required")
	}
	if cfg.Period <= 0 {
		return nil, errors.New("sim: period must be > 0")
	}
	if cfg.Amplitude < 0 || cfg.Jitter < 0 {
		return nil, errors.New("sim: amplitude and jitter must be >= 0")
	}
	return &Sensor{
		cfg:     cfg,
		elapsed: elapsed,
		rnd:     rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

func (s *Sensor) ReadAnalog() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = s.sample()
	s.have = true
	return s.last, nil
}

func (s *Sensor) ReadDigital() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.have {
		s.last = s.sample()
		s.have = true
	}

	tripped := s.last >= s.cfg.Threshold
	if s.cfg.Inverted {
		return !tripped, nil
	}
	return tripped, nil
}

func (s *Sensor) Close() error { return nil }

func (s *Sensor) sample() int {
	phase := 2 * math.Pi * float64(s.elapsed()%s.cfg.Period) / float64(s.cfg.Period)
	v := s.cfg.Base + int(math.Round(float64(s.cfg.Amplitude)*math.Sin(phase)))

	if s.cfg.Jitter > 0 {
		v += s.rnd.Intn(2*s.cfg.Jitter+1) - s.cfg.Jitter
	}

	if v < 0 {
		return 0
	}
	if v > MaxRaw {
		return MaxRaw
	}
	return v
}
