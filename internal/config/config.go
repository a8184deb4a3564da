// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"droneinspect-sim/internal/detect"
	"droneinspect-sim/internal/drone"
	"droneinspect-sim/internal/mission"
)

// WaypointSpec is one navigation target in the configured route.
type WaypointSpec struct {
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	Z              float64 `yaml:"z"`
	InspectionType string  `yaml:"inspection_type"`
}

// TypeProfile configures one anomaly type: firing probability,
// confidence range, and severity bucket edges. Probability and
// severity_cuts are distinct axes.
type TypeProfile struct {
	Probability   float64   `yaml:"probability"`
	ConfidenceMin float64   `yaml:"confidence_min"`
	ConfidenceMax float64   `yaml:"confidence_max"`
	SeverityCuts  []float64 `yaml:"severity_cuts"`
}

// Config is the root configuration for one inspection mission.
type Config struct {
	MissionID        string                 `yaml:"mission_id"`
	MissionName      string                 `yaml:"mission_name"`
	Route            []WaypointSpec         `yaml:"route"`
	MaxSpeed         float64                `yaml:"max_speed"`
	BatteryDrainRate float64                `yaml:"battery_drain_rate"`
	Detection        map[string]TypeProfile `yaml:"detection"`
	FrameDropout     float64                `yaml:"frame_dropout"`
	UpdateIntervalMS int                    `yaml:"update_interval_ms"`
	RNGSeed          int64                  `yaml:"rng_seed"`
}

// Load validates the YAML file against the CUE schema, unmarshals it,
// and applies defaults.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MissionID == "" {
		c.MissionID = "mission-01"
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = 10
	}
	if c.BatteryDrainRate <= 0 {
		c.BatteryDrainRate = 0.05
	}
	if c.UpdateIntervalMS <= 0 {
		c.UpdateIntervalMS = 100
	}
	if c.RNGSeed == 0 {
		c.RNGSeed = 1
	}
}

// Waypoints converts the configured route into mission waypoints.
func (c *Config) Waypoints() []mission.Waypoint {
	wps := make([]mission.Waypoint, len(c.Route))
	for i, w := range c.Route {
		wps[i] = mission.Waypoint{
			X:              w.X,
			Y:              w.Y,
			Z:              w.Z,
			InspectionType: mission.InspectionType(w.InspectionType),
		}
	}
	return wps
}

// DroneConfig returns the flight parameters.
func (c *Config) DroneConfig() drone.Config {
	return drone.Config{MaxSpeed: c.MaxSpeed, BatteryDrainRate: c.BatteryDrainRate}
}

// DetectorConfig returns the detection profiles, falling back to the
// reference defaults when the section is absent. Configured profiles
// replace the default profile for their type wholesale.
func (c *Config) DetectorConfig() (detect.Config, error) {
	cfg := detect.DefaultConfig()
	for name, p := range c.Detection {
		typ := detect.Type(name)
		if _, ok := cfg.Profiles[typ]; !ok {
			return detect.Config{}, fmt.Errorf("unknown anomaly type %q in detection config", name)
		}
		prof := cfg.Profiles[typ]
		prof.Probability = p.Probability
		prof.ConfidenceMin = p.ConfidenceMin
		prof.ConfidenceMax = p.ConfidenceMax
		if len(p.SeverityCuts) == 3 {
			prof.SeverityCuts = detect.SeverityCuts{p.SeverityCuts[0], p.SeverityCuts[1], p.SeverityCuts[2]}
		}
		cfg.Profiles[typ] = prof
	}
	return cfg, nil
}
