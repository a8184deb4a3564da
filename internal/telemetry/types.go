// Wire rows for telemetry sinks, with greptime tags
package telemetry

import (
	"os"
	"time"
)

// TelemetryRow is one per-tick drone state record.
type TelemetryRow struct {
	MissionID     string    `json:"mission_id"`     // TAG
	DroneID       string    `json:"drone_id"`       // TAG
	X             float64   `json:"x"`              // FIELD
	Y             float64   `json:"y"`              // FIELD
	Z             float64   `json:"z"`              // FIELD
	Battery       float64   `json:"battery"`        // FIELD
	Status        string    `json:"status"`         // FIELD
	WaypointIndex int       `json:"waypoint_index"` // FIELD
	Tick          int       `json:"tick"`           // FIELD
	Timestamp     time.Time `json:"ts"`             // TIME INDEX
}

// AnomalyRow is one detection record ready for DB write.
type AnomalyRow struct {
	MissionID  string    `json:"mission_id"` // TAG
	DroneID    string    `json:"drone_id"`   // TAG
	AnomalyID  string    `json:"anomaly_id"`
	Type       string    `json:"type"`
	Confidence float64   `json:"confidence"`
	Severity   string    `json:"severity"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Z          float64   `json:"z"`
	Tick       int       `json:"tick"`
	Timestamp  time.Time `json:"ts"` // TIME INDEX
}

// AlertRow is one critical-severity alert event.
type AlertRow struct {
	MissionID     string    `json:"mission_id"` // TAG
	DroneID       string    `json:"drone_id"`   // TAG
	AnomalyID     string    `json:"anomaly_id"`
	Type          string    `json:"type"`
	Severity      string    `json:"severity"`
	WaypointIndex int       `json:"waypoint_index"`
	Tick          int       `json:"tick"`
	Timestamp     time.Time `json:"ts"` // TIME INDEX
}

// Table names used when writing to GreptimeDB, overridable via env.
var (
	TelemetryTableName = tableNameFromEnv("GREPTIMEDB_TABLE", "inspection_telemetry")
	AnomalyTableName   = tableNameFromEnv("ANOMALY_TABLE", "inspection_anomalies")
	AlertTableName     = tableNameFromEnv("ALERT_TABLE", "inspection_alerts")
)

func tableNameFromEnv(key, fallback string) string {
	if env := os.Getenv(key); env != "" {
		return env
	}
	return fallback
}

func (TelemetryRow) TableName() string { return TelemetryTableName }
func (AnomalyRow) TableName() string   { return AnomalyTableName }
func (AlertRow) TableName() string     { return AlertTableName }
