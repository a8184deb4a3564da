// Drone flight state machine and waypoint-chasing kinematics.
package drone

import (
	"fmt"

	"droneinspect-sim/internal/mission"
)

// Status is the drone's flight state.
type Status string

// Flight states. Spellings are part of the export contract.
const (
	StatusIdle      Status = "idle"
	StatusActive    Status = "active"
	StatusLanded    Status = "landed"
	StatusEmergency Status = "emergency"
)

// Terminal reports whether no further mission activity is possible.
func (s Status) Terminal() bool {
	return s == StatusLanded || s == StatusEmergency
}

// arrivalEpsilon is the distance in meters at which a waypoint counts
// as reached.
const arrivalEpsilon = 1.0

// Config holds the drone's flight parameters.
type Config struct {
	MaxSpeed         float64 // meters per second
	BatteryDrainRate float64 // percent per meter traveled
}

// State is a value view of the drone at one instant. The flight path is
// exposed separately to keep State cheap to copy per tick.
type State struct {
	Position      mission.Vec3 `json:"position"`
	Battery       float64      `json:"battery"`
	Status        Status       `json:"status"`
	WaypointIndex int          `json:"waypoint_index"`
}

// Simulator owns the drone state and advances it toward the active
// waypoint. It is not safe for concurrent use; the mission controller
// serializes access.
type Simulator struct {
	cfg           Config
	route         mission.Route
	position      mission.Vec3
	battery       float64
	status        Status
	waypointIndex int
	flightPath    []mission.Vec3
}

// NewSimulator creates an idle drone at the origin.
func NewSimulator(cfg Config) *Simulator {
	return &Simulator{cfg: cfg, status: StatusIdle}
}

// Start validates the route and arms the drone for flight. The mission
// never begins on an invalid route.
func (s *Simulator) Start(waypoints []mission.Waypoint) error {
	route, err := mission.NewRoute(waypoints)
	if err != nil {
		return fmt.Errorf("invalid route: %w", err)
	}
	s.route = route
	s.status = StatusActive
	s.waypointIndex = 0
	s.battery = 100
	s.flightPath = nil
	return nil
}

// Advance moves the drone toward the active waypoint for dt seconds and
// applies the state transitions. Calling Advance in a terminal state is
// a no-op reporting that state.
func (s *Simulator) Advance(dt float64) State {
	if s.status != StatusActive {
		return s.State()
	}

	target := s.route.At(s.waypointIndex).Position()
	toTarget := target.Sub(s.position)
	distance := toTarget.Norm()

	step := s.cfg.MaxSpeed * dt
	if step > distance {
		step = distance
	}
	if distance > 0 {
		s.position = s.position.Add(toTarget.Scale(step / distance))
	}
	s.flightPath = append(s.flightPath, s.position)

	s.battery -= step * s.cfg.BatteryDrainRate
	if s.battery < 0 {
		s.battery = 0
	}

	if s.position.DistanceTo(target) < arrivalEpsilon {
		s.waypointIndex++
	}

	// Transition priority: battery exhaustion forces an emergency
	// landing before route completion is considered.
	switch {
	case s.battery <= 0:
		s.status = StatusEmergency
	case s.waypointIndex >= s.route.Len():
		s.status = StatusLanded
	}

	return s.State()
}

// State returns the current drone state as a value.
func (s *Simulator) State() State {
	return State{
		Position:      s.position,
		Battery:       s.battery,
		Status:        s.status,
		WaypointIndex: s.waypointIndex,
	}
}

// FlightPath returns a copy of the positions recorded so far.
func (s *Simulator) FlightPath() []mission.Vec3 {
	cp := make([]mission.Vec3, len(s.flightPath))
	copy(cp, s.flightPath)
	return cp
}

// Route returns the active route.
func (s *Simulator) Route() mission.Route {
	return s.route
}
