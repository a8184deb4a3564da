package sim

import (
	"context"
	"fmt"
	"net"
	"strconv"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"droneinspect-sim/internal/telemetry"
)

// greptimeClient abstracts the ingester client for tests.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// column is one declared table column. Tag columns index the series;
// declaration order is the AddRow value order.
type column struct {
	name string
	typ  types.ColumnType
	tag  bool
}

var (
	telemetryColumns = []column{
		{"mission_id", types.STRING, true},
		{"drone_id", types.STRING, true},
		{"x", types.FLOAT64, false},
		{"y", types.FLOAT64, false},
		{"z", types.FLOAT64, false},
		{"battery", types.FLOAT64, false},
		{"status", types.STRING, false},
		{"waypoint_index", types.INT64, false},
		{"tick", types.INT64, false},
	}
	anomalyColumns = []column{
		{"mission_id", types.STRING, true},
		{"drone_id", types.STRING, true},
		{"anomaly_id", types.STRING, false},
		{"type", types.STRING, false},
		{"confidence", types.FLOAT64, false},
		{"severity", types.STRING, false},
		{"x", types.FLOAT64, false},
		{"y", types.FLOAT64, false},
		{"z", types.FLOAT64, false},
		{"tick", types.INT64, false},
	}
	alertColumns = []column{
		{"mission_id", types.STRING, true},
		{"drone_id", types.STRING, true},
		{"anomaly_id", types.STRING, false},
		{"type", types.STRING, false},
		{"severity", types.STRING, false},
		{"waypoint_index", types.INT64, false},
		{"tick", types.INT64, false},
	}
)

// newRowTable declares a table schema with "ts" as millisecond time index.
func newRowTable(name string, cols []column) (*table.Table, error) {
	tbl, err := table.New(name)
	if err != nil {
		return nil, err
	}
	for _, c := range cols {
		if c.tag {
			err = tbl.AddTagColumn(c.name, c.typ)
		} else {
			err = tbl.AddFieldColumn(c.name, c.typ)
		}
		if err != nil {
			return nil, fmt.Errorf("declaring column %s: %w", c.name, err)
		}
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return nil, err
	}
	return tbl, nil
}

// GreptimeDBWriter writes mission rows to GreptimeDB via the ingester
// client. The server auto-creates tables from the row schema on first
// write.
type GreptimeDBWriter struct {
	client     greptimeClient
	teleTable  string
	anomTable  string
	alertTable string
}

// NewGreptimeDBWriter connects to GreptimeDB. endpoint is "host" or
// "host:port".
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	host := endpoint
	port := 0
	if h, p, err := net.SplitHostPort(endpoint); err == nil {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid port in endpoint %q: %w", endpoint, err)
		}
		host, port = h, n
	}

	cfg := greptime.NewConfig(host).WithDatabase(database)
	if port > 0 {
		cfg = cfg.WithPort(port)
	}
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{
		client:     client,
		teleTable:  telemetry.TelemetryTableName,
		anomTable:  telemetry.AnomalyTableName,
		alertTable: telemetry.AlertTableName,
	}, nil
}

// Write inserts a single telemetry row.
func (w *GreptimeDBWriter) Write(row telemetry.TelemetryRow) error {
	tbl, err := newRowTable(w.teleTable, telemetryColumns)
	if err != nil {
		return err
	}
	if err := tbl.AddRow(row.MissionID, row.DroneID,
		row.X, row.Y, row.Z, row.Battery, row.Status,
		int64(row.WaypointIndex), int64(row.Tick), row.Timestamp); err != nil {
		return err
	}
	_, err = w.client.Write(context.Background(), tbl)
	return err
}

// WriteAnomaly inserts a single anomaly row.
func (w *GreptimeDBWriter) WriteAnomaly(row telemetry.AnomalyRow) error {
	return w.WriteAnomalies([]telemetry.AnomalyRow{row})
}

// WriteAnomalies inserts multiple anomaly rows in one call.
func (w *GreptimeDBWriter) WriteAnomalies(rows []telemetry.AnomalyRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := newRowTable(w.anomTable, anomalyColumns)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := tbl.AddRow(r.MissionID, r.DroneID, r.AnomalyID, r.Type,
			r.Confidence, r.Severity, r.X, r.Y, r.Z,
			int64(r.Tick), r.Timestamp); err != nil {
			return err
		}
	}
	_, err = w.client.Write(context.Background(), tbl)
	return err
}

// WriteAlert inserts a single alert row.
func (w *GreptimeDBWriter) WriteAlert(row telemetry.AlertRow) error {
	tbl, err := newRowTable(w.alertTable, alertColumns)
	if err != nil {
		return err
	}
	if err := tbl.AddRow(row.MissionID, row.DroneID, row.AnomalyID,
		row.Type, row.Severity, int64(row.WaypointIndex),
		int64(row.Tick), row.Timestamp); err != nil {
		return err
	}
	_, err = w.client.Write(context.Background(), tbl)
	return err
}
