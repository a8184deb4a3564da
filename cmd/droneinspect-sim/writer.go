package main

import (
	"os"

	"golang.org/x/term"

	"droneinspect-sim/internal/sim"
)

// newWriters sets up telemetry, anomaly, and alert writers based on
// flags and env vars. It returns the writers and a cleanup function to
// close any resources.
func newWriters(missionID string, printOnly bool, logFile string) (sim.TelemetryWriter, sim.AnomalyWriter, sim.AlertWriter, func(), error) {
	cleanup := func() {}

	writer, closeBase, err := baseWriter(missionID, printOnly)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	anomWriter, _ := writer.(sim.AnomalyWriter)
	alertWriter, _ := writer.(sim.AlertWriter)

	if logFile == "" {
		return writer, anomWriter, alertWriter, closeBase, nil
	}

	fw, err := sim.NewFileWriter(logFile, logFile+".anomalies", logFile+".alerts")
	if err != nil {
		closeBase()
		return nil, nil, nil, nil, err
	}
	cleanup = func() {
		fw.Close()
		closeBase()
	}

	aws := []sim.AnomalyWriter{fw}
	if anomWriter != nil {
		aws = append(aws, anomWriter)
	}
	alws := []sim.AlertWriter{fw}
	if alertWriter != nil {
		alws = append(alws, alertWriter)
	}
	mw := sim.NewMultiWriter([]sim.TelemetryWriter{writer, fw}, aws, alws)
	return mw, mw, mw, cleanup, nil
}

// baseWriter chooses the underlying writer: GreptimeDB when configured,
// an interactive TUI on a terminal, JSON on STDOUT otherwise.
func baseWriter(missionID string, printOnly bool) (sim.TelemetryWriter, func(), error) {
	if !printOnly {
		if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" {
			db := os.Getenv("GREPTIMEDB_DATABASE")
			if db == "" {
				db = "public"
			}
			w, err := sim.NewGreptimeDBWriter(endpoint, db)
			if err != nil {
				return nil, nil, err
			}
			return w, func() {}, nil
		}
		if term.IsTerminal(int(os.Stdout.Fd())) {
			w := sim.NewTUIWriter(missionID)
			return w, w.Close, nil
		}
	}
	return sim.NewJSONStdoutWriter(), func() {}, nil
}
