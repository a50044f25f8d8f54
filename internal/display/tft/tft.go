// internal/display/tft/tft.go
package tft

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/tamzrod/ky028-panel/internal/display/layout"
)

var (
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.RGBA{A: 255}
)

// filler is implemented by controllers with a hardware rectangle fill
// (st7789, ili9341) and by Framebuffer.
type filler interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Config selects font and colours. Zero values mean proggy, white on black.
type Config struct {
	Layout     layout.Layout
	Font       *tinyfont.Font
	Foreground color.RGBA
	Background color.RGBA
}

// Sink draws the panel on a pixel display with tinyfont.
type Sink struct {
	d      drivers.Displayer
	layout layout.Layout
	font   *tinyfont.Font
	fg, bg color.RGBA
	lineH  int16
	fieldW int16
}

// New creates a pixel sink over d.
func New(d drivers.Displayer, cfg Config) (*Sink, error) {
	if d == nil {
		return nil, errors.New("tft: displayer required")
	}
	if cfg.Font == nil {
		cfg.Font = &proggy.TinySZ8pt7b
	}
	if cfg.Foreground == (color.RGBA{}) {
		cfg.Foreground = White
	}
	if cfg.Background == (color.RGBA{}) {
		cfg.Background = Black
	}

	lineH := int16(cfg.Font.YAdvance)
	if lineH <= 0 {
		lineH = 10
	}

	// widest glyph run the field can hold
	_, outbox := tinyfont.LineWidth(cfg.Font, strings.Repeat("W", layout.FieldChars))

	return &Sink{
		d:      d,
		layout: cfg.Layout,
		font:   cfg.Font,
		fg:     cfg.Foreground,
		bg:     cfg.Background,
		lineH:  lineH,
		fieldW: int16(outbox),
	}, nil
}

// RenderStatic clears the surface, then draws header and labels.
func (s *Sink) RenderStatic() error {
	w, h := s.d.Size()
	if err := s.fill(0, 0, w, h); err != nil {
		return err
	}

	for i, line := range s.layout.Header() {
		tinyfont.WriteLine(s.d, s.font, 0, s.lineH*int16(i+1), line, s.fg)
	}

	for _, f := range []layout.Field{s.layout.Analog, s.layout.Digital} {
		tinyfont.WriteLine(s.d, s.font, f.LabelX, f.Y, f.Label, s.fg)
	}

	if err := s.d.Display(); err != nil {
		return fmt.Errorf("tft: display: %w", err)
	}
	return nil
}

// RenderValues blanks each field rectangle and writes the new value.
// Only the two field rectangles change; the rest of the surface is untouched.
func (s *Sink) RenderValues(analog int, digital bool) error {
	if err := s.writeField(s.layout.Analog, s.layout.AnalogText(analog)); err != nil {
		return err
	}
	if err := s.writeField(s.layout.Digital, s.layout.DigitalText(digital)); err != nil {
		return err
	}

	if err := s.d.Display(); err != nil {
		return fmt.Errorf("tft: display: %w", err)
	}
	return nil
}

func (s *Sink) writeField(f layout.Field, text string) error {
	// f.Y is the text baseline; cover ascenders and descenders
	if err := s.fill(f.X, f.Y-s.lineH, s.fieldW, s.lineH+s.lineH/2); err != nil {
		return err
	}
	tinyfont.WriteLine(s.d, s.font, f.X, f.Y, text, s.fg)
	return nil
}

func (s *Sink) fill(x, y, w, h int16) error {
	if fl, ok := s.d.(filler); ok {
		if err := fl.FillRectangle(x, y, w, h, s.bg); err != nil {
			return fmt.Errorf("tft: fill: %w", err)
		}
		return nil
	}
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			s.d.SetPixel(px, py, s.bg)
		}
	}
	return nil
}
