package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"droneinspect-sim/internal/config"
	"droneinspect-sim/internal/observability"
	"droneinspect-sim/internal/report"
	"droneinspect-sim/internal/sim"
	"droneinspect-sim/internal/telemetry"
)

// sinkWriter discards telemetry rows.
type sinkWriter struct{}

func (sinkWriter) Write(row telemetry.TelemetryRow) error { return nil }

func newTestServer(t *testing.T) (*Server, *sim.Controller) {
	t.Helper()
	cfg := &config.Config{
		MissionID: "mission-admin",
		Route: []config.WaypointSpec{
			{X: 0, Y: 0, Z: 50, InspectionType: "start"},
			{X: 100, Y: 0, Z: 50, InspectionType: "completion"},
		},
		MaxSpeed:         10,
		BatteryDrainRate: 0.05,
		RNGSeed:          7,
	}
	ctrl, err := sim.NewController(cfg, sinkWriter{}, nil, nil, nil, time.Second, 1.0)
	if err != nil {
		t.Fatalf("NewController() returned error: %v", err)
	}
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMissionCollector(reg)
	if err != nil {
		t.Fatalf("NewMissionCollector() returned error: %v", err)
	}
	return NewServer(ctrl, metrics), ctrl
}

func TestHandleHealth(t *testing.T) {
	server, ctrl := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	server.handleHealth(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["status"] != "ok" || body["mission_id"] != ctrl.MissionID() {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestHandleSnapshot(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/snapshot", nil)
	w := httptest.NewRecorder()
	server.handleSnapshot(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var snap sim.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if snap.MissionID != "mission-admin" {
		t.Errorf("snapshot mission_id=%s", snap.MissionID)
	}
	if len(snap.Route) != 2 {
		t.Errorf("snapshot route has %d waypoints, want 2", len(snap.Route))
	}
}

func TestHandleReport(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	w := httptest.NewRecorder()
	server.handleReport(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var rep report.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if rep.MissionID != "mission-admin" {
		t.Errorf("report mission_id=%s", rep.MissionID)
	}
	if rep.GeneratedAt.IsZero() {
		t.Error("report missing generated_at")
	}
}

func TestMetricsRoute(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	server.routes().ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	body := w.Body.String()
	if !strings.Contains(body, "mission_ticks_total") {
		t.Error("metrics output missing mission_ticks_total")
	}
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	server, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start() returned error on graceful shutdown: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return after context cancel")
	}
}
