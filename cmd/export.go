package cmd

import (
	"errors"

	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/operations"
	"github.com/joshyorko/sbomdesk/pretty"
	"github.com/joshyorko/sbomdesk/wizard"
	"github.com/joshyorko/sbomdesk/xviper"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportTree   bool
	yesFlag      bool
)

var exportCmd = &cobra.Command{
	Use:   "export <project>",
	Short: "Write the SBOM of the latest scan of a project as JSON.",
	Long: `Write the SBOM of the latest scan of a project as JSON, indented with two
spaces. The default file name is <project_name>.json, or sbom.json when the
record has no project name. Use "-o -" to write to stdout.

With --tree the dependency tree is written instead of the SBOM.

Examples:
  sbomdesk export my-app
  sbomdesk export my-app -o out/my-app.sbom.json --yes
  sbomdesk export my-app --tree -o -`,
	Args: cobra.RangeArgs(0, 1),
	Run: func(cmd *cobra.Command, args []string) {
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
		record, err := operations.Latest(records)
		pretty.Guard(err == nil, 4, "%v", err)

		export := operations.ExportSBOM
		if exportTree {
			export = operations.ExportTree
		}
		location, err := export(record, exportOutput, yesFlag)
		if errors.Is(err, operations.ErrExportCancelled) {
			pretty.Note("%v", err)
			return
		}
		pretty.Guard(!errors.Is(err, wizard.ErrConfirmationRequired), 5, "%v", err)
		pretty.Guard(err == nil, 6, "%v", err)

		if len(project) > 0 && len(fromResource) == 0 {
			xviper.AddRecent(project)
		}
		if location != operations.StdoutTarget {
			common.Log("Exported to %s.", location)
			pretty.Ok()
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file; - means stdout")
	exportCmd.Flags().BoolVar(&exportTree, "tree", false, "Export the dependency tree instead of the SBOM")
	exportCmd.Flags().StringVar(&fromResource, "from", "", "Read records from a saved JSON file or URL")
	wizard.AddYesFlag(exportCmd, &yesFlag)
}
