package mission

import (
	"errors"
	"math"
	"testing"
)

func validWaypoints() []Waypoint {
	return []Waypoint{
		{X: 0, Y: 0, Z: 50, InspectionType: InspectionStart},
		{X: 100, Y: 50, Z: 30, InspectionType: InspectionDetailed},
		{X: 200, Y: 0, Z: 40, InspectionType: InspectionOverview},
	}
}

func TestNewRoute_Empty(t *testing.T) {
	if _, err := NewRoute(nil); !errors.Is(err, ErrEmptyRoute) {
		t.Fatalf("expected ErrEmptyRoute, got %v", err)
	}
}

func TestNewRoute_NonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		wps := validWaypoints()
		wps[1].Y = bad
		if _, err := NewRoute(wps); err == nil {
			t.Errorf("expected error for coordinate %v", bad)
		}
	}
}

func TestNewRoute_UnknownInspectionType(t *testing.T) {
	wps := validWaypoints()
	wps[0].InspectionType = "orbit"
	if _, err := NewRoute(wps); err == nil {
		t.Fatal("expected error for unknown inspection type")
	}
}

func TestRoute_Immutable(t *testing.T) {
	wps := validWaypoints()
	route, err := NewRoute(wps)
	if err != nil {
		t.Fatalf("NewRoute() returned error: %v", err)
	}

	// Mutating the input slice must not affect the route.
	wps[0].X = 999
	if route.At(0).X != 0 {
		t.Errorf("route mutated through input slice: %+v", route.At(0))
	}

	// Mutating the returned copy must not affect the route either.
	out := route.Waypoints()
	out[1].Z = -1
	if route.At(1).Z != 30 {
		t.Errorf("route mutated through Waypoints() copy: %+v", route.At(1))
	}
}

func TestRoute_TotalLength(t *testing.T) {
	route, err := NewRoute([]Waypoint{
		{X: 0, Y: 0, Z: 0, InspectionType: InspectionStart},
		{X: 3, Y: 4, Z: 0, InspectionType: InspectionCompletion},
	})
	if err != nil {
		t.Fatalf("NewRoute() returned error: %v", err)
	}
	if got := route.TotalLength(); got != 5 {
		t.Errorf("TotalLength()=%f, want 5", got)
	}
}
