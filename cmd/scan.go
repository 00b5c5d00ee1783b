package cmd

import (
	"encoding/json"

	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/operations"
	"github.com/joshyorko/sbomdesk/pretty"
	"github.com/joshyorko/sbomdesk/wizard"
	"github.com/joshyorko/sbomdesk/xviper"
	"github.com/spf13/cobra"
)

var (
	scanDirectory string
	scanProject   string
	noFetchFlag   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Ask the scan service to scan a directory, then show the result.",
	Long: `Ask the scan service to scan a directory, then show the result.

The directory must exist; it is sent to the service as an absolute path.
Without --dir the directory and project name are asked for interactively.

Examples:
  sbomdesk scan --dir ./my-app --project my-app
  sbomdesk scan --dir /src/service --no-fetch
  sbomdesk scan --dir . --json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if common.DebugFlag() {
			defer common.Stopwatch("Scan command lasted").Report()
		}

		directory, project := scanDirectory, scanProject
		if len(directory) == 0 {
			var err error
			directory, project, err = wizard.AskScanTarget(xviper.LastDirectory(), project)
			pretty.Guard(err == nil, 1, "%v Use --dir to name the directory.", err)
		}

		service, err := operations.ConfiguredService()
		pretty.Guard(err == nil, 2, "%v", err)

		ctx, cancel := interruptible()
		defer cancel()

		common.Log("Scanning %s using %s ...", directory, service.Endpoint())
		outcome, err := service.Scan(ctx, operations.ScanRequest{Directory: directory, ProjectName: project})
		pretty.Guard(err == nil, 3, "%v", err)

		xviper.RememberScan(directory, project)
		xviper.AddRecent(outcome.Project)
		common.Log("%s", outcome.Message)

		if noFetchFlag {
			if jsonFlag {
				nice, err := json.MarshalIndent(map[string]string{"message": outcome.Message, "project": outcome.Project}, "", "  ")
				pretty.Guard(err == nil, 5, "%v", err)
				common.Stdout("%s\n", nice)
			}
			pretty.Ok()
			return
		}

		records, err := service.Records(ctx, outcome.Project)
		pretty.Guard(err == nil, 4, "%v", err)
		showRecords(records, false, false)
		pretty.Ok()
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanDirectory, "dir", "d", "", "Directory to scan")
	scanCmd.Flags().StringVarP(&scanProject, "project", "p", "", "Project name to store the scan under")
	scanCmd.Flags().BoolVar(&noFetchFlag, "no-fetch", false, "Only trigger the scan, do not retrieve the result")
	scanCmd.Flags().BoolVarP(&jsonFlag, "json", "j", false, "Output in JSON format")
}
