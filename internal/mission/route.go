package mission

import (
	"errors"
	"fmt"
)

// ErrEmptyRoute is returned when a route has no waypoints.
var ErrEmptyRoute = errors.New("route has no waypoints")

// Route is an ordered, immutable sequence of waypoints.
type Route struct {
	waypoints []Waypoint
}

// NewRoute validates waypoints and builds an immutable route.
// Every coordinate must be finite and every inspection type recognized.
func NewRoute(waypoints []Waypoint) (Route, error) {
	if len(waypoints) == 0 {
		return Route{}, ErrEmptyRoute
	}
	for i, wp := range waypoints {
		if !wp.Position().finite() {
			return Route{}, fmt.Errorf("waypoint %d: non-finite coordinates (%v, %v, %v)", i, wp.X, wp.Y, wp.Z)
		}
		if !wp.InspectionType.Valid() {
			return Route{}, fmt.Errorf("waypoint %d: unknown inspection type %q", i, wp.InspectionType)
		}
	}
	cp := make([]Waypoint, len(waypoints))
	copy(cp, waypoints)
	return Route{waypoints: cp}, nil
}

// Len returns the number of waypoints.
func (r Route) Len() int {
	return len(r.waypoints)
}

// At returns the waypoint at index i.
func (r Route) At(i int) Waypoint {
	return r.waypoints[i]
}

// Waypoints returns a copy of the route's waypoints.
func (r Route) Waypoints() []Waypoint {
	cp := make([]Waypoint, len(r.waypoints))
	copy(cp, r.waypoints)
	return cp
}

// TotalLength returns the summed leg distances of the route, starting
// from the origin.
func (r Route) TotalLength() float64 {
	var total float64
	prev := Vec3{}
	for _, wp := range r.waypoints {
		total += prev.DistanceTo(wp.Position())
		prev = wp.Position()
	}
	return total
}
