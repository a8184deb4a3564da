// Mission report generation and JSON export
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"droneinspect-sim/internal/detect"
	"droneinspect-sim/internal/drone"
	"droneinspect-sim/internal/mission"
	"droneinspect-sim/internal/sim"
)

// Report is the exportable end-of-mission summary.
type Report struct {
	MissionID        string             `json:"mission_id"`
	DroneID          string             `json:"drone_id"`
	GeneratedAt      time.Time          `json:"generated_at"`
	Route            []mission.Waypoint `json:"route"`
	FlightPath       []mission.Vec3     `json:"flight_path"`
	Anomalies        []detect.Anomaly   `json:"anomalies"`
	Stats            sim.MissionStats   `json:"stats"`
	MissionComplete  bool               `json:"mission_complete"`
	FinalStatus      drone.Status       `json:"final_status"`
	BatteryUsed      float64            `json:"battery_used"`
	FlightPathLength float64            `json:"flight_path_length"`
}

// Generator builds reports from mission snapshots.
type Generator struct {
	Now func() time.Time
}

// NewGenerator returns a Generator using wall-clock time.
func NewGenerator() *Generator {
	return &Generator{Now: time.Now}
}

// Generate builds a report from a snapshot. Anomalies are ordered by
// severity descending, then by detection tick ascending, so the most
// urgent findings lead the report.
func (g *Generator) Generate(snap sim.Snapshot) Report {
	anomalies := append([]detect.Anomaly(nil), snap.Anomalies...)
	sort.SliceStable(anomalies, func(i, j int) bool {
		ri, rj := anomalies[i].Severity.Rank(), anomalies[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return anomalies[i].Tick < anomalies[j].Tick
	})

	return Report{
		MissionID:        snap.MissionID,
		DroneID:          snap.DroneID,
		GeneratedAt:      g.Now().UTC(),
		Route:            snap.Route,
		FlightPath:       snap.FlightPath,
		Anomalies:        anomalies,
		Stats:            snap.Stats,
		MissionComplete:  snap.Stats.MissionComplete,
		FinalStatus:      snap.Drone.Status,
		BatteryUsed:      100 - snap.Drone.Battery,
		FlightPathLength: pathLength(snap.FlightPath),
	}
}

func pathLength(path []mission.Vec3) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += path[i-1].DistanceTo(path[i])
	}
	return total
}

// Encode writes the report as indented JSON.
func (r Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteFile exports the report to a JSON file.
func (r Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding report: %w", err)
	}
	return f.Close()
}

// Load reads a previously exported report.
func Load(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("decoding report %s: %w", path, err)
	}
	return r, nil
}
