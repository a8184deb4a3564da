package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"droneinspect-sim/internal/admin"
	"droneinspect-sim/internal/config"
	"droneinspect-sim/internal/logging"
	"droneinspect-sim/internal/observability"
	"droneinspect-sim/internal/report"
	"droneinspect-sim/internal/sim"
)

var (
	inspectPrintOnly  bool
	inspectConfigPath string
	inspectSchemaPath string
	inspectTick       time.Duration
	inspectLogFile    string
	inspectAdminAddr  string
	inspectArchive    string
	inspectReportOut  string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Run an inspection mission",
	Long:  "inspect flies the configured route, detects anomalies on synthetic camera frames, and generates a mission report when the drone lands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New()
		ctx := logging.NewContext(context.Background(), log)
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load(inspectConfigPath, inspectSchemaPath)
		if err != nil {
			return err
		}

		tickInterval := inspectTick
		if tickInterval <= 0 {
			tickInterval = time.Duration(cfg.UpdateIntervalMS) * time.Millisecond
		}

		writer, anomWriter, alertWriter, cleanup, err := newWriters(cfg.MissionID, inspectPrintOnly, inspectLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		metrics, err := observability.NewMissionCollector(nil)
		if err != nil {
			return err
		}

		ctrl, err := sim.NewController(cfg, writer, anomWriter, alertWriter, metrics, tickInterval, tickInterval.Seconds())
		if err != nil {
			return err
		}

		if inspectAdminAddr != "" {
			srv := admin.NewServer(ctrl, metrics)
			go func() {
				if err := srv.Start(ctx, inspectAdminAddr); err != nil && err != http.ErrServerClosed {
					log.Error("admin server failed", "err", err)
				}
			}()
		}

		ctrl.Run(ctx)

		rep := report.NewGenerator().Generate(ctrl.Snapshot())
		if inspectReportOut != "" {
			if err := rep.WriteFile(inspectReportOut); err != nil {
				return err
			}
			log.Info("report exported", "path", inspectReportOut, "anomalies", len(rep.Anomalies))
		}
		if inspectArchive != "" {
			arch, err := report.OpenArchive(inspectArchive)
			if err != nil {
				return err
			}
			defer arch.Close()
			if err := arch.Save(rep); err != nil {
				return err
			}
			log.Info("report archived", "path", inspectArchive, "mission_id", rep.MissionID)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectPrintOnly, "print-only", false, "Print rows to STDOUT instead of writing to DB or TUI")
	inspectCmd.Flags().StringVar(&inspectConfigPath, "config", "config/inspection.yaml", "Path to mission configuration YAML")
	inspectCmd.Flags().StringVar(&inspectSchemaPath, "schema", "schemas/inspection.cue", "Path to CUE schema file")
	inspectCmd.Flags().DurationVar(&inspectTick, "tick", 0, "Tick interval override (e.g. 500ms, 2s); defaults to update_interval_ms from config")
	inspectCmd.Flags().StringVar(&inspectLogFile, "log-file", "", "Path to export telemetry/anomaly/alert logs (JSONL)")
	inspectCmd.Flags().StringVar(&inspectAdminAddr, "admin-addr", ":8080", "Admin server listen address (empty to disable)")
	inspectCmd.Flags().StringVar(&inspectArchive, "archive", "", "Path to a SQLite report archive to store the mission report")
	inspectCmd.Flags().StringVar(&inspectReportOut, "report-out", "", "Path to export the mission report JSON")
}
