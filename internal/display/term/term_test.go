// internal/display/term/term_test.go
package term

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tamzrod/ky028-panel/internal/display/layout"
)

// countingWriter exposes only Write, so io.WriteString cannot bypass the count.
type countingWriter struct {
	buf    bytes.Buffer
	writes int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.writes++
	return c.buf.Write(p)
}

func (c *countingWriter) String() string { return c.buf.String() }

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("tty gone") }

func TestRenderStatic_HeaderAndLabels(t *testing.T) {
	var buf bytes.Buffer
	s, err := New(&buf, layout.Default("KY028 Thermistor Module"))
	if err != nil {
		t.Fatalf("New err=%v", err)
	}

	if err := s.RenderStatic(); err != nil {
		t.Fatalf("RenderStatic err=%v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"\x1b[2J",
		"\x1b[1;1H---------------------------",
		"\x1b[2;1HKY028 Thermistor Module",
		"\x1b[5;1HAnalog Value: ",
		"\x1b[6;1HDigital State: ",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("static output missing %q:\n%q", want, out)
		}
	}
}

func TestRenderStatic_Idempotent(t *testing.T) {
	var a, b bytes.Buffer
	sa, _ := New(&a, layout.Default("T"))
	sb, _ := New(&b, layout.Default("T"))

	_ = sa.RenderStatic()
	_ = sb.RenderStatic()
	_ = sb.RenderStatic()

	if b.String() != a.String()+a.String() {
		t.Fatalf("repeated RenderStatic produced different frames")
	}
}

func TestRenderValues_PadAndRewrite(t *testing.T) {
	var buf bytes.Buffer
	s, _ := New(&buf, layout.Default("T"))

	if err := s.RenderValues(512, false); err != nil {
		t.Fatalf("RenderValues err=%v", err)
	}

	want := "\x1b[5;16H     \x1b[5;16H512" +
		"\x1b[6;16H     \x1b[6;16HLOW"
	if buf.String() != want {
		t.Fatalf("frame=%q want %q", buf.String(), want)
	}
	if strings.Contains(buf.String(), "\x1b[2J") {
		t.Fatalf("values render must not clear the screen")
	}
}

func TestRenderValues_SingleWritePerFrame(t *testing.T) {
	w := &countingWriter{}
	s, _ := New(w, layout.Default("T"))

	_ = s.RenderValues(4095, true)
	_ = s.RenderValues(4095, true)

	if w.writes != 2 {
		t.Fatalf("writes=%d want 2", w.writes)
	}
	if !strings.HasSuffix(w.String(), "HIGH") {
		t.Fatalf("frame should end with HIGH: %q", w.String())
	}
}

func TestRenderValues_WriteError(t *testing.T) {
	s, _ := New(failingWriter{}, layout.Default("T"))

	if err := s.RenderValues(1, true); err == nil {
		t.Fatalf("expected write error, got nil")
	}
}

func TestNew_NilWriter(t *testing.T) {
	if _, err := New(nil, layout.Default("T")); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
