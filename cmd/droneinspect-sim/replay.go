package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"droneinspect-sim/internal/sim"
)

var (
	replayInput        string
	replayAnomalyInput string
	replaySpeed        float64
	replayPrintOnly    bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay recorded mission logs",
	Long:  "replay feeds telemetry rows, and optionally the matching anomaly log, from JSONL files back into GreptimeDB or STDOUT, preserving the recorded pacing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		writer, anomWriter, _, cleanup, err := newWriters("replay", replayPrintOnly, "")
		if err != nil {
			return err
		}
		defer cleanup()

		if err := sim.ReplayLogFile(replayInput, writer, replaySpeed); err != nil {
			return err
		}
		if replayAnomalyInput == "" {
			return nil
		}
		if anomWriter == nil {
			return fmt.Errorf("selected writer cannot replay anomaly logs")
		}
		return sim.ReplayAnomalyLogFile(replayAnomalyInput, anomWriter, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to telemetry log file")
	replayCmd.Flags().StringVar(&replayAnomalyInput, "anomaly-input", "", "Path to anomaly log file to replay after the telemetry log")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print rows to STDOUT instead of writing to DB")
	replayCmd.MarkFlagRequired("input")
}
