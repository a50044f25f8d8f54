// internal/display/term/term.go
package term

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/tamzrod/ky028-panel/internal/display/layout"
)

// ANSI control sequences.
const (
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Sink draws the panel on an ANSI terminal.
// Each render is assembled first and flushed with a single Write so the
// terminal never shows half a frame.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	layout layout.Layout
}

// New creates a terminal sink over w.
func New(w io.Writer, l layout.Layout) (*Sink, error) {
	if w == nil {
		return nil, errors.New("term: writer required")
	}
	return &Sink{w: w, layout: l}, nil
}

// RenderStatic clears the screen and draws header and labels.
func (s *Sink) RenderStatic() error {
	var b strings.Builder

	b.WriteString(hideCursor)
	b.WriteString(clearScreen)
	for i, line := range s.layout.Header() {
		moveTo(&b, i+1, 1)
		b.WriteString(line)
	}

	for _, f := range []layout.Field{s.layout.Analog, s.layout.Digital} {
		moveTo(&b, f.Row, 1)
		b.WriteString(f.Label)
	}

	return s.flush(b.String())
}

// RenderValues blanks each field in place and writes the new value.
func (s *Sink) RenderValues(analog int, digital bool) error {
	var b strings.Builder

	writeField(&b, s.layout.Analog, s.layout.AnalogText(analog))
	writeField(&b, s.layout.Digital, s.layout.DigitalText(digital))

	return s.flush(b.String())
}

// Close restores the cursor.
func (s *Sink) Close() error {
	return s.flush(showCursor + "\r\n")
}

func (s *Sink) flush(frame string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := io.WriteString(s.w, frame); err != nil {
		return fmt.Errorf("term: write: %w", err)
	}
	return nil
}

// writeField: move, pad, move back, value.
func writeField(b *strings.Builder, f layout.Field, text string) {
	moveTo(b, f.Row, f.Col)
	b.WriteString(layout.Blank(f.Width))
	moveTo(b, f.Row, f.Col)
	b.WriteString(text)
}

func moveTo(b *strings.Builder, row, col int) {
	fmt.Fprintf(b, "\x1b[%d;%dH", row, col)
}
