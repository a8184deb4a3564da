package sim

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"droneinspect-sim/internal/telemetry"
)

// pacer reproduces the recorded cadence of a mission log. A speed >1
// accelerates playback; speed <= 0 disables pacing entirely.
type pacer struct {
	speed float64
	prev  time.Time
}

func (p *pacer) wait(ts time.Time) {
	if !p.prev.IsZero() && p.speed > 0 {
		diff := ts.Sub(p.prev)
		if p.speed != 1 {
			diff = time.Duration(float64(diff) / p.speed)
		}
		if diff > 0 {
			time.Sleep(diff)
		}
	}
	p.prev = ts
}

// ReplayLog replays recorded telemetry rows from r to writer at the
// recorded cadence scaled by speed.
func ReplayLog(r io.Reader, writer TelemetryWriter, speed float64) error {
	dec := json.NewDecoder(r)
	p := pacer{speed: speed}
	for {
		var row telemetry.TelemetryRow
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		p.wait(row.Timestamp)
		if err := writer.Write(row); err != nil {
			return err
		}
	}
}

// ReplayAnomalyLog re-feeds a recorded detection log into an anomaly
// sink, preserving detection order and cadence.
func ReplayAnomalyLog(r io.Reader, writer AnomalyWriter, speed float64) error {
	dec := json.NewDecoder(r)
	p := pacer{speed: speed}
	for {
		var row telemetry.AnomalyRow
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		p.wait(row.Timestamp)
		if err := writer.WriteAnomaly(row); err != nil {
			return err
		}
	}
}

// ReplayLogFile opens a telemetry log file and replays its rows.
func ReplayLogFile(path string, writer TelemetryWriter, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayLog(f, writer, speed)
}

// ReplayAnomalyLogFile opens an anomaly log file and replays its rows.
func ReplayAnomalyLogFile(path string, writer AnomalyWriter, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayAnomalyLog(f, writer, speed)
}
