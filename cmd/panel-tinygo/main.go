// cmd/panel-tinygo/main.go

//go:build tinygo

// Firmware build for a Raspberry Pi Pico with a 170x320 ST7789 panel.
//
//	tinygo flash -target=pico ./cmd/panel-tinygo
//
// KY-028 wiring: A0 -> GP26 (ADC0), D0 -> GP2.
package main

import (
	"log/slog"
	"machine"
	"time"

	"tinygo.org/x/drivers/st7789"

	"github.com/tamzrod/ky028-panel/internal/clock"
	"github.com/tamzrod/ky028-panel/internal/display/layout"
	"github.com/tamzrod/ky028-panel/internal/display/tft"
	"github.com/tamzrod/ky028-panel/internal/scheduler"
)

const (
	title    = "KY028 Thermistor Module"
	interval = time.Second
)

// ky028 reads A0 through the on-chip ADC and D0 as a plain input.
type ky028 struct {
	a0 machine.ADC
	d0 machine.Pin
}

// ReadAnalog scales the 16-bit machine.ADC value back to 12 bits.
func (k ky028) ReadAnalog() (int, error) { return int(k.a0.Get() >> 4), nil }

func (k ky028) ReadDigital() (bool, error) { return k.d0.Get(), nil }

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, nil))

	machine.InitADC()
	sn := ky028{
		a0: machine.ADC{Pin: machine.ADC0},
		d0: machine.GP2,
	}
	sn.a0.Configure(machine.ADCConfig{})
	sn.d0.Configure(machine.PinConfig{Mode: machine.PinInput})

	machine.SPI1.Configure(machine.SPIConfig{
		Frequency: 62_500_000,
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		Mode:      0,
	})
	// the panel needs a moment after a cold boot
	time.Sleep(100 * time.Millisecond)

	panel := st7789.New(machine.SPI1,
		machine.GP12, // RST
		machine.GP8,  // DC
		machine.GP9,  // CS
		machine.GP13) // BL
	panel.Configure(st7789.Config{
		Width:        170,
		Height:       320,
		Rotation:     st7789.NO_ROTATION,
		ColumnOffset: 35,
	})

	sink, err := tft.New(&panel, tft.Config{Layout: layout.Default(title)})
	if err != nil {
		logger.Error("display init failed", "err", err)
		halt()
	}

	sch, err := scheduler.New(scheduler.Config{Interval: interval}, sn, sink, logger)
	if err != nil {
		logger.Error("scheduler init failed", "err", err)
		halt()
	}
	if err := sch.Start(); err != nil {
		logger.Error("static layout failed", "err", err)
	}

	clk := clock.NewSystem()
	for {
		sch.Tick(clk.Now())
	}
}

func halt() {
	for {
		time.Sleep(time.Hour)
	}
}
