package sim

import "droneinspect-sim/internal/telemetry"

// MultiWriter fans out telemetry, anomaly, and alert rows to multiple writers.
type MultiWriter struct {
	telewriters  []TelemetryWriter
	anomwriters  []AnomalyWriter
	alertwriters []AlertWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(tws []TelemetryWriter, aws []AnomalyWriter, alws []AlertWriter) *MultiWriter {
	return &MultiWriter{telewriters: tws, anomwriters: aws, alertwriters: alws}
}

// Write sends a telemetry row to all writers.
func (mw *MultiWriter) Write(row telemetry.TelemetryRow) error {
	for _, w := range mw.telewriters {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteAnomaly sends an anomaly row to all anomaly writers.
func (mw *MultiWriter) WriteAnomaly(row telemetry.AnomalyRow) error {
	for _, w := range mw.anomwriters {
		if err := w.WriteAnomaly(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteAnomalies sends multiple anomaly rows to all anomaly writers,
// using batch mode where supported.
func (mw *MultiWriter) WriteAnomalies(rows []telemetry.AnomalyRow) error {
	for _, w := range mw.anomwriters {
		if bw, ok := w.(batchAnomalyWriter); ok {
			if err := bw.WriteAnomalies(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteAnomaly(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteAlert sends an alert row to all alert writers.
func (mw *MultiWriter) WriteAlert(row telemetry.AlertRow) error {
	for _, w := range mw.alertwriters {
		if err := w.WriteAlert(row); err != nil {
			return err
		}
	}
	return nil
}
