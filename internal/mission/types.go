// Mission value types: waypoints, routes, and 3-D positions.
package mission

import "math"

// Vec3 is a cartesian position in meters.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v scaled by f.
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// Norm returns the euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// DistanceTo returns the euclidean distance between v and o.
func (v Vec3) DistanceTo(o Vec3) float64 {
	return v.Sub(o).Norm()
}

func (v Vec3) finite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// InspectionType tags a waypoint with the inspection mode flown there.
type InspectionType string

// Recognized inspection modes. Spellings are part of the export contract.
const (
	InspectionStart      InspectionType = "start"
	InspectionDetailed   InspectionType = "detailed"
	InspectionOverview   InspectionType = "overview"
	InspectionCompletion InspectionType = "completion"
)

// Valid reports whether t is a recognized inspection mode.
func (t InspectionType) Valid() bool {
	switch t {
	case InspectionStart, InspectionDetailed, InspectionOverview, InspectionCompletion:
		return true
	}
	return false
}

// Waypoint is a navigation target with an inspection mode tag.
type Waypoint struct {
	X              float64        `json:"x"`
	Y              float64        `json:"y"`
	Z              float64        `json:"z"`
	InspectionType InspectionType `json:"inspection_type"`
}

// Position returns the waypoint's coordinates as a Vec3.
func (w Waypoint) Position() Vec3 {
	return Vec3{X: w.X, Y: w.Y, Z: w.Z}
}
