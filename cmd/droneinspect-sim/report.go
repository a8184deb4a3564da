package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"droneinspect-sim/internal/report"
)

var (
	reportArchivePath string
	reportMissionID   string
	reportOutPath     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "List or export archived mission reports",
	Long:  "report lists the missions stored in a report archive, or exports one mission's report as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		arch, err := report.OpenArchive(reportArchivePath)
		if err != nil {
			return err
		}
		defer arch.Close()

		if reportMissionID == "" {
			entries, err := arch.List()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		rep, err := arch.Get(reportMissionID)
		if err != nil {
			return err
		}
		if reportOutPath != "" {
			return rep.WriteFile(reportOutPath)
		}
		return rep.Encode(os.Stdout)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportArchivePath, "archive", "reports.db", "Path to the SQLite report archive")
	reportCmd.Flags().StringVar(&reportMissionID, "mission", "", "Mission ID to export (lists all missions when empty)")
	reportCmd.Flags().StringVar(&reportOutPath, "out", "", "Path to write the exported report JSON (STDOUT when empty)")
}
