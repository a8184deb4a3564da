package report

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := OpenArchive(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("OpenArchive() returned error: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestArchive_SaveAndGet(t *testing.T) {
	a := openTestArchive(t)
	r := fixedGenerator().Generate(testSnapshot())

	if err := a.Save(r); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	got, err := a.Get("mission-test")
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if got.MissionID != r.MissionID || len(got.Anomalies) != len(r.Anomalies) {
		t.Errorf("archived report lost data: %+v", got)
	}
	if got.Anomalies[0].ID != r.Anomalies[0].ID {
		t.Error("anomaly ordering lost in archive round trip")
	}
	if got.BatteryUsed != r.BatteryUsed {
		t.Errorf("battery_used=%f, want %f", got.BatteryUsed, r.BatteryUsed)
	}
}

func TestArchive_SaveReplaces(t *testing.T) {
	a := openTestArchive(t)
	g := fixedGenerator()
	snap := testSnapshot()

	if err := a.Save(g.Generate(snap)); err != nil {
		t.Fatal(err)
	}

	// A second run of the same mission overwrites the archived report.
	snap.Anomalies = snap.Anomalies[:1]
	snap.Stats.Ticks = 99
	if err := a.Save(g.Generate(snap)); err != nil {
		t.Fatal(err)
	}

	got, err := a.Get("mission-test")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Anomalies) != 1 || got.Stats.Ticks != 99 {
		t.Errorf("Save did not replace: %d anomalies, %d ticks", len(got.Anomalies), got.Stats.Ticks)
	}

	entries, err := a.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("List() returned %d entries, want 1", len(entries))
	}
}

func TestArchive_GetMissing(t *testing.T) {
	a := openTestArchive(t)
	if _, err := a.Get("no-such-mission"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestArchive_ListOrdering(t *testing.T) {
	a := openTestArchive(t)
	snap := testSnapshot()

	older := Generator{Now: func() time.Time { return time.Unix(1700000000, 0) }}
	newer := Generator{Now: func() time.Time { return time.Unix(1700009999, 0) }}

	snap.MissionID = "mission-old"
	if err := a.Save(older.Generate(snap)); err != nil {
		t.Fatal(err)
	}
	snap.MissionID = "mission-new"
	if err := a.Save(newer.Generate(snap)); err != nil {
		t.Fatal(err)
	}

	entries, err := a.List()
	if err != nil {
		t.Fatalf("List() returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(entries))
	}
	if entries[0].MissionID != "mission-new" || entries[1].MissionID != "mission-old" {
		t.Errorf("entries not ordered most recent first: %s, %s",
			entries[0].MissionID, entries[1].MissionID)
	}
	if entries[0].Anomalies != 4 || !entries[0].Complete {
		t.Errorf("entry summary wrong: %+v", entries[0])
	}
}
