package sim

import "droneinspect-sim/internal/telemetry"

// TelemetryWriter is an interface to support different output writers.
type TelemetryWriter interface {
	Write(telemetry.TelemetryRow) error
}

// AnomalyWriter handles anomaly detection rows.
type AnomalyWriter interface {
	WriteAnomaly(telemetry.AnomalyRow) error
}

// Optional: anomaly writers may support batch mode.
type batchAnomalyWriter interface {
	WriteAnomalies([]telemetry.AnomalyRow) error
}

// AlertWriter handles critical-severity alert rows.
type AlertWriter interface {
	WriteAlert(telemetry.AlertRow) error
}
