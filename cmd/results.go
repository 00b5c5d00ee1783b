package cmd

import (
	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/operations"
	"github.com/joshyorko/sbomdesk/pretty"
	"github.com/joshyorko/sbomdesk/xviper"
	"github.com/spf13/cobra"
)

var (
	allFlag      bool
	treeOnlyFlag bool
	fromResource string
)

var resultsCmd = &cobra.Command{
	Use:     "results <project>",
	Aliases: []string{"show", "get"},
	Short:   "Show the latest stored scan of a project.",
	Long: `Show the latest stored scan of a project: header, components table,
dependencies table, and dependency tree.

The latest record is the one with the most recent timestamp. With --from the
records are read from a saved JSON array (file or URL) instead of the service.

Examples:
  sbomdesk results my-app
  sbomdesk results my-app --all
  sbomdesk results my-app --tree-only --json
  sbomdesk results --from saved-scans.json`,
	Args: cobra.RangeArgs(0, 1),
	Run: func(cmd *cobra.Command, args []string) {
		if common.DebugFlag() {
			defer common.Stopwatch("Results command lasted").Report()
		}
		project := ""
		if len(args) > 0 {
			project = args[0]
		}
		pretty.Guard(len(project) > 0 || len(fromResource) > 0, 1, "Give a project name, or --from with saved records.")

		service, err := operations.ConfiguredService()
		pretty.Guard(err == nil, 2, "%v", err)

		ctx, cancel := interruptible()
		defer cancel()

		records, err := loadRecords(ctx, service, project, fromResource)
		pretty.Guard(err == nil, 3, "%v", err)
		if len(project) > 0 && len(fromResource) == 0 {
			xviper.AddRecent(project)
		}
		showRecords(records, allFlag, treeOnlyFlag)
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.Flags().BoolVarP(&allFlag, "all", "a", false, "Show every stored record, not only the latest")
	resultsCmd.Flags().BoolVarP(&treeOnlyFlag, "tree-only", "t", false, "Show only the dependency tree")
	resultsCmd.Flags().StringVar(&fromResource, "from", "", "Read records from a saved JSON file or URL")
	resultsCmd.Flags().BoolVarP(&jsonFlag, "json", "j", false, "Output in JSON format")
}
