package sim

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"droneinspect-sim/internal/telemetry"
)

func sampleTelemetryRow(tick int) telemetry.TelemetryRow {
	return telemetry.TelemetryRow{
		MissionID:     "mission-test",
		DroneID:       "inspector-1",
		X:             float64(tick) * 10,
		Battery:       100 - float64(tick),
		Status:        "active",
		WaypointIndex: 0,
		Tick:          tick,
		Timestamp:     time.Unix(1700000000+int64(tick), 0).UTC(),
	}
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	return n
}

func TestFileWriter_WritesJSONL(t *testing.T) {
	dir := t.TempDir()
	telePath := filepath.Join(dir, "telemetry.jsonl")
	anomPath := filepath.Join(dir, "anomalies.jsonl")
	alertPath := filepath.Join(dir, "alerts.jsonl")

	fw, err := NewFileWriter(telePath, anomPath, alertPath)
	if err != nil {
		t.Fatalf("NewFileWriter() returned error: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := fw.Write(sampleTelemetryRow(i)); err != nil {
			t.Fatalf("Write() returned error: %v", err)
		}
	}
	anomalies := []telemetry.AnomalyRow{
		{MissionID: "mission-test", AnomalyID: "a-1", Type: "crack", Severity: "high", Tick: 2},
		{MissionID: "mission-test", AnomalyID: "a-2", Type: "rust", Severity: "low", Tick: 3},
	}
	if err := fw.WriteAnomalies(anomalies); err != nil {
		t.Fatalf("WriteAnomalies() returned error: %v", err)
	}
	if err := fw.WriteAlert(telemetry.AlertRow{MissionID: "mission-test", AnomalyID: "a-1", Type: "crack", Severity: "critical"}); err != nil {
		t.Fatalf("WriteAlert() returned error: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close() returned error: %v", err)
	}

	if got := countLines(t, telePath); got != 3 {
		t.Errorf("telemetry lines=%d, want 3", got)
	}
	if got := countLines(t, anomPath); got != 2 {
		t.Errorf("anomaly lines=%d, want 2", got)
	}
	if got := countLines(t, alertPath); got != 1 {
		t.Errorf("alert lines=%d, want 1", got)
	}

	// Each line must decode back to the row that was written.
	f, err := os.Open(telePath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var first telemetry.TelemetryRow
	if err := json.NewDecoder(f).Decode(&first); err != nil {
		t.Fatalf("decode first telemetry line: %v", err)
	}
	if first.Tick != 1 || first.MissionID != "mission-test" {
		t.Errorf("unexpected first row: %+v", first)
	}
}

func TestFileWriter_OptionalPaths(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(filepath.Join(dir, "telemetry.jsonl"), "", "")
	if err != nil {
		t.Fatalf("NewFileWriter() returned error: %v", err)
	}
	defer fw.Close()

	// Disabled logs are silently dropped, not errors.
	if err := fw.WriteAnomaly(telemetry.AnomalyRow{AnomalyID: "a-1"}); err != nil {
		t.Errorf("WriteAnomaly() with disabled log returned error: %v", err)
	}
	if err := fw.WriteAlert(telemetry.AlertRow{AnomalyID: "a-1"}); err != nil {
		t.Errorf("WriteAlert() with disabled log returned error: %v", err)
	}
}

func TestFileWriter_BadPath(t *testing.T) {
	if _, err := NewFileWriter(filepath.Join(t.TempDir(), "missing", "telemetry.jsonl"), "", ""); err == nil {
		t.Fatal("expected error for unwritable telemetry path")
	}
}
