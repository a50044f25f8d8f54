// cmd/panel/validate_test.go
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args and returns captured stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panel.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRunValidate_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
panel:
  interval_ms: 500
sensor:
  driver: modbus
  modbus:
    transport: tcp
    endpoint: 127.0.0.1:502
    unit_id: 3
display:
  driver: none
`)

	output, err := execute(t, "validate", "-c", path)
	if err != nil {
		t.Fatalf("validate err=%v", err)
	}

	for _, phrase := range []string{
		"Config is valid!",
		"Interval: 500ms (tick 10ms)",
		"modbus tcp 127.0.0.1:502 unit 3",
		`none "KY028 Thermistor Module"`,
		"info/text",
	} {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `
sensor:
  driver: spi
`)

	if _, err := execute(t, "validate", "-c", path); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := execute(t, "validate", "-c", missing); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestVersion(t *testing.T) {
	output, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version err=%v", err)
	}
	if !strings.HasPrefix(output, "panel dev\n") {
		t.Fatalf("output=%q", output)
	}
}
