// internal/logging/logging_test.go
package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/tamzrod/ky028-panel/internal/config"
)

func TestNew_JSONCarriesRunID(t *testing.T) {
	c := qt.New(t)
	var buf bytes.Buffer

	l, err := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	c.Assert(err, qt.IsNil)
	l.Info("reading", "analog", 512, "digital", "LOW")

	var rec map[string]any
	c.Assert(json.Unmarshal(buf.Bytes(), &rec), qt.IsNil)
	c.Assert(rec["msg"], qt.Equals, "reading")
	c.Assert(rec["analog"], qt.Equals, float64(512))
	c.Assert(rec["digital"], qt.Equals, "LOW")
	c.Assert(rec["run_id"], qt.Not(qt.Equals), "")
}

func TestNew_TextFiltersBelowLevel(t *testing.T) {
	c := qt.New(t)
	var buf bytes.Buffer

	l, err := New(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	c.Assert(err, qt.IsNil)
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	c.Assert(strings.Contains(out, "hidden"), qt.IsFalse)
	c.Assert(strings.Contains(out, "msg=shown"), qt.IsTrue)
}

func TestNew_RunIDDiffersPerLogger(t *testing.T) {
	c := qt.New(t)
	var a, b bytes.Buffer

	la, err := New(config.LogConfig{Format: "json"}, &a)
	c.Assert(err, qt.IsNil)
	lb, err := New(config.LogConfig{Format: "json"}, &b)
	c.Assert(err, qt.IsNil)
	la.Info("x")
	lb.Info("x")

	var ra, rb map[string]any
	c.Assert(json.Unmarshal(a.Bytes(), &ra), qt.IsNil)
	c.Assert(json.Unmarshal(b.Bytes(), &rb), qt.IsNil)
	c.Assert(ra["run_id"], qt.Not(qt.Equals), rb["run_id"])
}

func TestNew_Errors(t *testing.T) {
	c := qt.New(t)

	_, err := New(config.LogConfig{Format: "xml"}, &bytes.Buffer{})
	c.Assert(err, qt.ErrorMatches, `logging: unknown format "xml"`)

	_, err = New(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	c.Assert(err, qt.ErrorMatches, `logging: unknown level "loud"`)

	_, err = New(config.LogConfig{}, nil)
	c.Assert(err, qt.IsNotNil)
}

func TestParseLevel(t *testing.T) {
	c := qt.New(t)
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, want, qt.Commentf("level %q", in))
	}
}
