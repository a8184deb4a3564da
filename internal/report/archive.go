package report

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a mission has no archived report.
var ErrNotFound = errors.New("report not found")

// ArchiveEntry is one row of the archive listing.
type ArchiveEntry struct {
	MissionID   string    `json:"mission_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Anomalies   int       `json:"anomalies"`
	Complete    bool      `json:"mission_complete"`
}

// Archive persists mission reports in a local SQLite database. Reports
// are stored as JSON payloads keyed by mission; saving again replaces
// the previous report for that mission.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (or creates) the archive database at path.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configuring archive: %w", err)
		}
	}
	a := &Archive{db: db}
	if err := a.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func (a *Archive) initSchema() error {
	_, err := a.db.Exec(`
CREATE TABLE IF NOT EXISTS mission_reports (
  mission_id   TEXT PRIMARY KEY,
  generated_at TIMESTAMP NOT NULL,
  anomalies    INTEGER NOT NULL,
  complete     INTEGER NOT NULL,
  payload      TEXT NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("creating archive schema: %w", err)
	}
	return nil
}

// Save stores a report, replacing any previous report for the mission.
func (a *Archive) Save(r Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report payload: %w", err)
	}
	_, err = a.db.Exec(`
INSERT INTO mission_reports (mission_id, generated_at, anomalies, complete, payload)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(mission_id) DO UPDATE SET
  generated_at = excluded.generated_at,
  anomalies    = excluded.anomalies,
  complete     = excluded.complete,
  payload      = excluded.payload`,
		r.MissionID, r.GeneratedAt, len(r.Anomalies), r.MissionComplete, string(payload))
	if err != nil {
		return fmt.Errorf("saving report for %s: %w", r.MissionID, err)
	}
	return nil
}

// Get loads the archived report for a mission.
func (a *Archive) Get(missionID string) (Report, error) {
	var payload string
	err := a.db.QueryRow(
		`SELECT payload FROM mission_reports WHERE mission_id = ?`, missionID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, fmt.Errorf("mission %s: %w", missionID, ErrNotFound)
	}
	if err != nil {
		return Report{}, fmt.Errorf("loading report for %s: %w", missionID, err)
	}
	var r Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return Report{}, fmt.Errorf("decoding report for %s: %w", missionID, err)
	}
	return r, nil
}

// List returns summaries of all archived reports, most recent first.
func (a *Archive) List() ([]ArchiveEntry, error) {
	rows, err := a.db.Query(`
SELECT mission_id, generated_at, anomalies, complete
FROM mission_reports
ORDER BY generated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var entries []ArchiveEntry
	for rows.Next() {
		var e ArchiveEntry
		if err := rows.Scan(&e.MissionID, &e.GeneratedAt, &e.Anomalies, &e.Complete); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}
