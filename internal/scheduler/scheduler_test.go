// internal/scheduler/scheduler_test.go
package scheduler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/tamzrod/ky028-panel/internal/clock"
)

// ---- fakes ----

type fakeSensor struct {
	analog     int
	digital    bool
	analogErr  error
	digitalErr error
	panicOn    string
	reads      int
}

func (f *fakeSensor) ReadAnalog() (int, error) {
	f.reads++
	if f.panicOn == "analog" {
		panic("adc gone")
	}
	if f.analogErr != nil {
		return 4095, f.analogErr
	}
	return f.analog, nil
}

func (f *fakeSensor) ReadDigital() (bool, error) {
	if f.digitalErr != nil {
		return true, f.digitalErr
	}
	return f.digital, nil
}

type renderCall struct {
	analog  int
	digital bool
}

type fakeDisplay struct {
	statics   int
	staticErr error
	renders   []renderCall
	err       error
	panics    bool
}

func (f *fakeDisplay) RenderStatic() error {
	f.statics++
	return f.staticErr
}

func (f *fakeDisplay) RenderValues(analog int, digital bool) error {
	if f.panics {
		panic("spi bus fault")
	}
	f.renders = append(f.renders, renderCall{analog: analog, digital: digital})
	return f.err
}

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTest(t *testing.T, s *fakeSensor, d *fakeDisplay) *Scheduler {
	t.Helper()
	sch, err := New(Config{Interval: time.Second}, s, d, testLogger())
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	return sch
}

// ---- construction ----

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{}, nil, &fakeDisplay{}, nil); err == nil {
		t.Fatalf("expected error for nil sensor")
	}
	if _, err := New(Config{}, &fakeSensor{}, nil, nil); err == nil {
		t.Fatalf("expected error for nil display")
	}
	if _, err := New(Config{Interval: -time.Second}, &fakeSensor{}, &fakeDisplay{}, nil); err == nil {
		t.Fatalf("expected error for negative interval")
	}
	if _, err := New(Config{Interval: time.Microsecond}, &fakeSensor{}, &fakeDisplay{}, nil); err == nil {
		t.Fatalf("expected error for sub-millisecond interval")
	}
}

func TestNew_DefaultInterval(t *testing.T) {
	s, err := New(Config{}, &fakeSensor{}, &fakeDisplay{}, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	if s.Interval() != DefaultInterval {
		t.Fatalf("interval=%s want %s", s.Interval(), DefaultInterval)
	}
	if s.State() != Acquire {
		t.Fatalf("initial state=%s want ACQUIRE", s.State())
	}
}

// ---- state order ----

func TestTick_CyclicOrder(t *testing.T) {
	sch := newTest(t, &fakeSensor{}, &fakeDisplay{})

	want := []State{Render, Idle, Acquire, Render, Idle, Acquire}
	now := clock.Millis(0)

	for i, w := range want {
		step := sch.Tick(now)
		if step.To != w {
			t.Fatalf("tick %d: to=%s want %s", i, step.To, w)
		}
		// idle stays until the gate opens; jump straight past it
		if step.To == Idle {
			now += 1000
		}
	}
}

func TestTick_IdleGateBoundary(t *testing.T) {
	sch := newTest(t, &fakeSensor{}, &fakeDisplay{})

	sch.Tick(0)   // ACQUIRE -> RENDER
	sch.Tick(100) // RENDER -> IDLE, basis=100

	if step := sch.Tick(100 + 999); step.To != Idle {
		t.Fatalf("elapsed=interval-1: to=%s want IDLE", step.To)
	}
	if step := sch.Tick(100 + 1000); step.To != Acquire {
		t.Fatalf("elapsed=interval: to=%s want ACQUIRE", step.To)
	}
}

func TestTick_IdleHasNoSideEffects(t *testing.T) {
	s := &fakeSensor{analog: 1}
	d := &fakeDisplay{}
	sch := newTest(t, s, d)

	sch.Tick(0)
	sch.Tick(0)
	reads, renders := s.reads, len(d.renders)

	for now := clock.Millis(1); now < 1000; now += 7 {
		step := sch.Tick(now)
		if step.Acquired || step.Rendered {
			t.Fatalf("idle tick at %d touched a collaborator", now)
		}
	}
	if s.reads != reads || len(d.renders) != renders {
		t.Fatalf("idle ticks read or rendered: reads=%d renders=%d", s.reads, len(d.renders))
	}
}

func TestTick_IdleAcrossClockWrap(t *testing.T) {
	sch := newTest(t, &fakeSensor{}, &fakeDisplay{})

	start := clock.Millis(0xFFFFFF00)
	sch.Tick(start)
	sch.Tick(start) // basis just before wrap

	if step := sch.Tick(start + 999); step.To != Idle {
		t.Fatalf("wrapped elapsed=999: to=%s want IDLE", step.To)
	}
	if step := sch.Tick(start + 1000); step.To != Acquire {
		t.Fatalf("wrapped elapsed=1000: to=%s want ACQUIRE", step.To)
	}
}

// ---- render semantics ----

func TestTick_RenderReflectsPrecedingAcquire(t *testing.T) {
	s := &fakeSensor{analog: 512, digital: false}
	d := &fakeDisplay{}
	sch := newTest(t, s, d)

	sch.Tick(0) // ACQUIRE
	sch.Tick(0) // RENDER

	if len(d.renders) != 1 {
		t.Fatalf("expected 1 render, got %d", len(d.renders))
	}
	if d.renders[0] != (renderCall{analog: 512, digital: false}) {
		t.Fatalf("render=%+v want {512 false}", d.renders[0])
	}

	// sensor changes while idle; the display must not see it until the next cycle
	s.analog, s.digital = 3000, true
	for now := clock.Millis(1); now < 1000; now += 100 {
		sch.Tick(now)
	}
	if len(d.renders) != 1 {
		t.Fatalf("render before next ACQUIRE: %d renders", len(d.renders))
	}

	sch.Tick(1000) // IDLE -> ACQUIRE
	sch.Tick(1000) // ACQUIRE
	sch.Tick(1000) // RENDER

	if got := d.renders[len(d.renders)-1]; got != (renderCall{analog: 3000, digital: true}) {
		t.Fatalf("second render=%+v want {3000 true}", got)
	}
}

func TestTick_NoSuppressionOfIdenticalReadings(t *testing.T) {
	d := &fakeDisplay{}
	sch := newTest(t, &fakeSensor{analog: 700, digital: true}, d)

	now := clock.Millis(0)
	for cycle := 0; cycle < 2; cycle++ {
		sch.Tick(now) // ACQUIRE
		sch.Tick(now) // RENDER
		now += 1000
		sch.Tick(now) // IDLE -> ACQUIRE
	}

	if len(d.renders) != 2 {
		t.Fatalf("expected 2 renders for identical readings, got %d", len(d.renders))
	}
	if sch.Stats().Cycles != 2 {
		t.Fatalf("cycles=%d want 2", sch.Stats().Cycles)
	}
}

func TestStart_StaticOnce(t *testing.T) {
	d := &fakeDisplay{}
	sch := newTest(t, &fakeSensor{}, d)

	for i := 0; i < 3; i++ {
		if err := sch.Start(); err != nil {
			t.Fatalf("Start() err=%v", err)
		}
	}
	if d.statics != 1 {
		t.Fatalf("RenderStatic called %d times, want 1", d.statics)
	}
}

// ---- faults ----

func TestTick_SensorErrorIsReportedNotFatal(t *testing.T) {
	s := &fakeSensor{analog: 10, digital: true, analogErr: errors.New("adc timeout")}
	d := &fakeDisplay{}
	sch := newTest(t, s, d)

	step := sch.Tick(0)
	if step.Err == nil || !strings.Contains(step.Err.Error(), "adc timeout") {
		t.Fatalf("expected analog error, got %v", step.Err)
	}
	if step.Reading.Analog != 0 {
		t.Fatalf("failed analog field=%d want 0", step.Reading.Analog)
	}
	if !step.Reading.Digital {
		t.Fatalf("digital should still be read")
	}

	step = sch.Tick(0)
	if !step.Rendered || step.To != Idle {
		t.Fatalf("render should proceed after sensor fault: %+v", step)
	}
	if sch.Stats().SensorFaults != 1 {
		t.Fatalf("sensor faults=%d want 1", sch.Stats().SensorFaults)
	}
}

func TestTick_DisplayErrorStillAdvances(t *testing.T) {
	d := &fakeDisplay{err: errors.New("bus nack")}
	sch := newTest(t, &fakeSensor{}, d)

	sch.Tick(0)
	step := sch.Tick(0)

	if step.To != Idle {
		t.Fatalf("to=%s want IDLE", step.To)
	}
	if step.Err == nil {
		t.Fatalf("expected display error on step")
	}
	if sch.Stats().DisplayFaults != 1 {
		t.Fatalf("display faults=%d want 1", sch.Stats().DisplayFaults)
	}
}

func TestTick_PanicsAreRecovered(t *testing.T) {
	sch := newTest(t, &fakeSensor{panicOn: "analog"}, &fakeDisplay{panics: true})

	step := sch.Tick(0)
	if step.Err == nil || !strings.Contains(step.Err.Error(), "correlation_id") {
		t.Fatalf("expected recovered sensor panic, got %v", step.Err)
	}

	step = sch.Tick(0)
	if step.Err == nil || step.To != Idle {
		t.Fatalf("expected recovered display panic and IDLE, got %+v", step)
	}
}

func TestLevelName(t *testing.T) {
	if LevelName(true) != "HIGH" || LevelName(false) != "LOW" {
		t.Fatalf("unexpected level names")
	}
}

func TestStart_FailureIsReportedOnce(t *testing.T) {
	d := &fakeDisplay{staticErr: errors.New("spi busy")}
	sch := newTest(t, &fakeSensor{}, d)

	if err := sch.Start(); err == nil {
		t.Fatalf("expected static layout error")
	}
	if err := sch.Start(); err != nil {
		t.Fatalf("second Start() err=%v", err)
	}
	if d.statics != 1 {
		t.Fatalf("RenderStatic called %d times, want 1", d.statics)
	}
	if sch.Stats().DisplayFaults != 1 {
		t.Fatalf("display faults=%d want 1", sch.Stats().DisplayFaults)
	}
}

func TestTick_AcquireLogsOneRecord(t *testing.T) {
	for _, tc := range []struct {
		name  string
		s     *fakeSensor
		level string
	}{
		{"ok", &fakeSensor{analog: 512}, "level=INFO"},
		{"fault", &fakeSensor{analog: 10, analogErr: errors.New("adc timeout")}, "level=WARN"},
	} {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		sch, err := New(Config{Interval: time.Second}, tc.s, &fakeDisplay{}, logger)
		if err != nil {
			t.Fatalf("%s: New() err=%v", tc.name, err)
		}

		sch.Tick(0)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("%s: %d log records, want 1:\n%s", tc.name, len(lines), buf.String())
		}
		if !strings.Contains(lines[0], "msg=reading") || !strings.Contains(lines[0], tc.level) {
			t.Fatalf("%s: record=%q", tc.name, lines[0])
		}
		if tc.name == "fault" && !strings.Contains(lines[0], "adc timeout") {
			t.Fatalf("fault record lacks error: %q", lines[0])
		}
	}
}
