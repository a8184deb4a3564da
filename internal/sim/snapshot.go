package sim

import (
	"droneinspect-sim/internal/detect"
	"droneinspect-sim/internal/drone"
	"droneinspect-sim/internal/mission"
)

// Alert marks the first critical-severity detection of a condition.
type Alert struct {
	AnomalyID     string          `json:"anomaly_id"`
	Type          detect.Type     `json:"type"`
	Severity      detect.Severity `json:"severity"`
	WaypointIndex int             `json:"waypoint_index"`
	Tick          int             `json:"tick"`
}

// MissionStats aggregates the running mission state.
type MissionStats struct {
	ByType          map[detect.Type]int     `json:"by_type"`
	BySeverity      map[detect.Severity]int `json:"by_severity"`
	BatteryHistory  []float64               `json:"battery_history"`
	Alerts          []Alert                 `json:"alerts"`
	FramesSkipped   int                     `json:"frames_skipped"`
	Ticks           int                     `json:"ticks"`
	MissionComplete bool                    `json:"mission_complete"`
}

func newMissionStats() MissionStats {
	return MissionStats{
		ByType:     make(map[detect.Type]int),
		BySeverity: make(map[detect.Severity]int),
	}
}

func (s MissionStats) clone() MissionStats {
	cp := s
	cp.ByType = make(map[detect.Type]int, len(s.ByType))
	for k, v := range s.ByType {
		cp.ByType[k] = v
	}
	cp.BySeverity = make(map[detect.Severity]int, len(s.BySeverity))
	for k, v := range s.BySeverity {
		cp.BySeverity[k] = v
	}
	cp.BatteryHistory = append([]float64(nil), s.BatteryHistory...)
	cp.Alerts = append([]Alert(nil), s.Alerts...)
	return cp
}

// Snapshot is an immutable point-in-time copy of mission state. Later
// ticks never mutate a published snapshot.
type Snapshot struct {
	MissionID  string             `json:"mission_id"`
	DroneID    string             `json:"drone_id"`
	Drone      drone.State        `json:"drone"`
	Route      []mission.Waypoint `json:"route"`
	FlightPath []mission.Vec3     `json:"flight_path"`
	Anomalies  []detect.Anomaly   `json:"anomalies"`
	Stats      MissionStats       `json:"stats"`
}

func (s Snapshot) clone() Snapshot {
	cp := s
	cp.Route = append([]mission.Waypoint(nil), s.Route...)
	cp.FlightPath = append([]mission.Vec3(nil), s.FlightPath...)
	cp.Anomalies = append([]detect.Anomaly(nil), s.Anomalies...)
	cp.Stats = s.Stats.clone()
	return cp
}
