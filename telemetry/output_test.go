package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/pixeltank/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("", "metrics.prom")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("nil manager WriteTelemetry: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager Close: %v", err)
	}
}

func TestOutputManagerWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir, "pixeltank.prom")
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: int64(i + 1), FishCount: i}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{}, 3); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}

	m := NewMetrics()
	m.ObserveWindow(WindowStats{FishCount: 4, Goldfish: 4, Catches: 2})
	if err := om.WriteMetrics(m); err != nil {
		t.Fatalf("WriteMetrics: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("header = %q", lines[0])
	}

	prom, err := os.ReadFile(filepath.Join(dir, "pixeltank.prom"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(prom), "pixeltank_fish 4") {
		t.Errorf("metrics textfile missing fish gauge:\n%s", prom)
	}
	if !strings.Contains(string(prom), `pixeltank_fishing_sessions_total{outcome="caught"} 2`) {
		t.Errorf("metrics textfile missing catch counter:\n%s", prom)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml: %v", err)
	}
}
