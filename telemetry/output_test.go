package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputManagerAppendsWithSingleHeader(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager() error = %v", err)
	}

	rounds := []RoundRecord{
		{Round: 1, Winner: "paper", DurationSec: 12.5, EndTick: 1500, PerKind: 10, IconSize: 48},
		{Round: 2, Winner: "rock", DurationSec: 30.25, EndTick: 5130, PerKind: 10, IconSize: 48},
	}
	for _, rec := range rounds {
		if err := om.WriteRound(rec); err != nil {
			t.Fatalf("WriteRound() error = %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "rounds.csv"))
	if err != nil {
		t.Fatalf("reading rounds.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("rounds.csv has %d lines, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "round,winner") {
		t.Errorf("header = %q, want it to start with round,winner", lines[0])
	}
	if !strings.Contains(lines[2], "rock") {
		t.Errorf("second row = %q, want the rock round", lines[2])
	}
}

func TestOutputManagerCreatesAllStreams(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager() error = %v", err)
	}
	defer om.Close()

	for _, name := range []string{"windows.csv", "rounds.csv", "perf.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if om.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", om.Dir(), dir)
	}
}

func TestNilOutputManagerDiscards(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager(\"\") error = %v", err)
	}
	if om != nil {
		t.Fatal("NewOutputManager(\"\") should return a nil manager")
	}

	if err := om.WriteWindow(WindowStats{}); err != nil {
		t.Errorf("WriteWindow() on nil manager error = %v", err)
	}
	if err := om.WriteRound(RoundRecord{}); err != nil {
		t.Errorf("WriteRound() on nil manager error = %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Errorf("WritePerf() on nil manager error = %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close() on nil manager error = %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir() on nil manager = %q, want empty", om.Dir())
	}
}
