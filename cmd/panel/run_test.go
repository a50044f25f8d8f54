// cmd/panel/run_test.go
package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRunPanel_SnapshotNeedsFramebuffer(t *testing.T) {
	path := writeConfig(t, `
sensor:
  driver: sim
display:
  driver: none
log:
  level: error
`)
	out := filepath.Join(t.TempDir(), "panel.png")

	_, err := execute(t, "run", "-c", path, "--snapshot", out)
	if err == nil || !strings.Contains(err.Error(), "framebuffer") {
		t.Fatalf("err=%v want framebuffer hint", err)
	}
}

func TestRunPanel_BadConfig(t *testing.T) {
	path := writeConfig(t, `
panel:
  interval_ms: -1
`)
	_, err := execute(t, "run", "-c", path)
	if err == nil || !strings.Contains(err.Error(), "config load failed") {
		t.Fatalf("err=%v", err)
	}
}
