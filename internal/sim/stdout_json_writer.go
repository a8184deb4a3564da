package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"droneinspect-sim/internal/telemetry"
)

// JSONStdoutWriter prints telemetry, anomalies, and alerts as JSON to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// Write outputs a telemetry row in JSON format.
func (w *JSONStdoutWriter) Write(row telemetry.TelemetryRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteAnomaly outputs an anomaly detection row in JSON format.
func (w *JSONStdoutWriter) WriteAnomaly(row telemetry.AnomalyRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteAnomalies outputs multiple anomaly rows in JSON format.
func (w *JSONStdoutWriter) WriteAnomalies(rows []telemetry.AnomalyRow) error {
	for _, r := range rows {
		_ = w.WriteAnomaly(r)
	}
	return nil
}

// WriteAlert outputs an alert row in JSON format.
func (w *JSONStdoutWriter) WriteAlert(row telemetry.AlertRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}
