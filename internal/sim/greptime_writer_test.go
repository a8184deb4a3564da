package sim

import (
	"context"
	"testing"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"

	"droneinspect-sim/internal/telemetry"
)

type mockGreptimeClient struct {
	tables []*table.Table
}

func (m *mockGreptimeClient) Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error) {
	m.tables = append(m.tables, tables...)
	return &gpb.GreptimeResponse{}, nil
}

func TestGreptimeWriterTelemetrySchema(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, teleTable: "inspection_telemetry"}

	if err := w.Write(sampleTelemetryRow(3)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(m.tables) != 1 {
		t.Fatalf("expected 1 table write, got %d", len(m.tables))
	}

	schema := m.tables[0].GetRows().Schema
	if len(schema) != 10 {
		t.Fatalf("unexpected schema length: %d", len(schema))
	}
	if schema[0].ColumnName != "mission_id" || schema[0].SemanticType != gpb.SemanticType_TAG {
		t.Fatalf("mission_id schema = %v", schema[0])
	}
	if schema[5].ColumnName != "battery" || schema[5].Datatype != gpb.ColumnDataType_FLOAT64 {
		t.Fatalf("battery schema = %v", schema[5])
	}
	if schema[9].ColumnName != "ts" || schema[9].SemanticType != gpb.SemanticType_TIMESTAMP {
		t.Fatalf("ts schema = %v", schema[9])
	}

	values := m.tables[0].GetRows().Rows[0].Values
	if got := values[0].GetStringValue(); got != "mission-test" {
		t.Fatalf("mission_id = %s, want mission-test", got)
	}
	if got := values[6].GetStringValue(); got != "active" {
		t.Fatalf("status = %s, want active", got)
	}
}

func TestGreptimeWriterAnomalyBatch(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, anomTable: "inspection_anomalies"}

	ts := time.Unix(0, 0).UTC()
	rows := []telemetry.AnomalyRow{
		{MissionID: "m1", DroneID: "d1", AnomalyID: "a-1", Type: "crack", Confidence: 0.9, Severity: "critical", Tick: 4, Timestamp: ts},
		{MissionID: "m1", DroneID: "d1", AnomalyID: "a-2", Type: "rust", Confidence: 0.6, Severity: "low", Tick: 5, Timestamp: ts},
	}
	if err := w.WriteAnomalies(rows); err != nil {
		t.Fatalf("WriteAnomalies: %v", err)
	}
	if len(m.tables) != 1 {
		t.Fatalf("expected one batched table write, got %d", len(m.tables))
	}

	got := m.tables[0].GetRows().Rows
	if len(got) != 2 {
		t.Fatalf("expected 2 rows in batch, got %d", len(got))
	}
	if id := got[0].Values[2].GetStringValue(); id != "a-1" {
		t.Fatalf("anomaly_id = %s, want a-1", id)
	}
	if sev := got[1].Values[5].GetStringValue(); sev != "low" {
		t.Fatalf("severity = %s, want low", sev)
	}
}

func TestGreptimeWriterAlertSchema(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, alertTable: "inspection_alerts"}

	row := telemetry.AlertRow{
		MissionID: "m1", DroneID: "d1", AnomalyID: "a-1",
		Type: "crack", Severity: "critical", WaypointIndex: 2, Tick: 7,
		Timestamp: time.Unix(0, 0).UTC(),
	}
	if err := w.WriteAlert(row); err != nil {
		t.Fatalf("WriteAlert: %v", err)
	}

	schema := m.tables[0].GetRows().Schema
	if len(schema) != 8 {
		t.Fatalf("unexpected schema length: %d", len(schema))
	}
	values := m.tables[0].GetRows().Rows[0].Values
	if got := values[2].GetStringValue(); got != "a-1" {
		t.Fatalf("anomaly_id = %s, want a-1", got)
	}
	if got := values[5].GetI64Value(); got != 2 {
		t.Fatalf("waypoint_index = %d, want 2", got)
	}
}
