package sim

import (
	"encoding/json"
	"os"

	"droneinspect-sim/internal/telemetry"
)

// FileWriter writes telemetry, anomaly, and alert rows to JSONL files.
type FileWriter struct {
	teleFile  *os.File
	anomFile  *os.File
	alertFile *os.File
	teleEnc   *json.Encoder
	anomEnc   *json.Encoder
	alertEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. anomalyPath or alertPath may be
// empty to skip those logs.
func NewFileWriter(telemetryPath, anomalyPath, alertPath string) (*FileWriter, error) {
	tf, err := os.Create(telemetryPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{teleFile: tf, teleEnc: json.NewEncoder(tf)}
	if anomalyPath != "" {
		af, err := os.Create(anomalyPath)
		if err != nil {
			tf.Close()
			return nil, err
		}
		fw.anomFile = af
		fw.anomEnc = json.NewEncoder(af)
	}
	if alertPath != "" {
		alf, err := os.Create(alertPath)
		if err != nil {
			if fw.anomFile != nil {
				fw.anomFile.Close()
			}
			tf.Close()
			return nil, err
		}
		fw.alertFile = alf
		fw.alertEnc = json.NewEncoder(alf)
	}
	return fw, nil
}

// Write logs a single telemetry row.
func (f *FileWriter) Write(row telemetry.TelemetryRow) error {
	return f.teleEnc.Encode(row)
}

// WriteAnomaly logs a single anomaly row, if enabled.
func (f *FileWriter) WriteAnomaly(row telemetry.AnomalyRow) error {
	if f.anomEnc == nil {
		return nil
	}
	return f.anomEnc.Encode(row)
}

// WriteAnomalies logs multiple anomaly rows.
func (f *FileWriter) WriteAnomalies(rows []telemetry.AnomalyRow) error {
	for _, r := range rows {
		if err := f.WriteAnomaly(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteAlert logs a single alert row, if enabled.
func (f *FileWriter) WriteAlert(row telemetry.AlertRow) error {
	if f.alertEnc == nil {
		return nil
	}
	return f.alertEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.teleFile != nil {
		if e := f.teleFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.anomFile != nil {
		if e := f.anomFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.alertFile != nil {
		if e := f.alertFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
