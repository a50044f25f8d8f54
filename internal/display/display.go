// internal/display/display.go
package display

import (
	"errors"
	"fmt"
	"io"

	"github.com/tamzrod/ky028-panel/internal/config"
	"github.com/tamzrod/ky028-panel/internal/display/layout"
	"github.com/tamzrod/ky028-panel/internal/display/term"
	"github.com/tamzrod/ky028-panel/internal/display/tft"
)

// ErrUnknownDriver is returned for an unsupported display.driver.
var ErrUnknownDriver = errors.New("display: unknown driver")

// Sink draws the panel. RenderStatic once, RenderValues every cycle.
type Sink interface {
	RenderStatic() error
	RenderValues(analog int, digital bool) error
	Close() error
}

// Discard accepts every render and draws nothing.
type Discard struct{}

func (Discard) RenderStatic() error          { return nil }
func (Discard) RenderValues(int, bool) error { return nil }
func (Discard) Close() error                 { return nil }

// framebufferSink keeps the in-memory target reachable for callers
// that want to snapshot the panel.
type framebufferSink struct {
	*tft.Sink
	fb *tft.Framebuffer
}

func (s *framebufferSink) Close() error { return nil }

// Framebuffer returns the backing image if d was opened with the
// framebuffer driver, or nil.
func Framebuffer(d any) *tft.Framebuffer {
	if f, ok := d.(*framebufferSink); ok {
		return f.fb
	}
	return nil
}

// Open builds the configured sink. w is the terminal for the term driver.
// Expects a validated, normalized config.
func Open(c config.DisplayConfig, w io.Writer) (Sink, error) {
	l := layout.Default(c.Title)

	switch c.Driver {
	case config.DisplayTerm:
		s, err := term.New(w, l)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.DisplayFramebuffer:
		fb := tft.NewFramebuffer(c.Width, c.Height)
		s, err := tft.New(fb, tft.Config{Layout: l})
		if err != nil {
			return nil, err
		}
		return &framebufferSink{Sink: s, fb: fb}, nil

	case config.DisplayNone:
		return Discard{}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
}
