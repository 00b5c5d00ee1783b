package cmd

import (
	"github.com/joshyorko/sbomdesk/interactive"
	"github.com/joshyorko/sbomdesk/logbuf"
	"github.com/joshyorko/sbomdesk/operations"
	"github.com/joshyorko/sbomdesk/pretty"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:     "ui [project]",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Views:
  1          Scan: directory and project inputs, recent projects
  2          Results: latest record, components, dependencies and tree
  3          Logs

Navigation:
  tab        Next field or tab
  j/k        Navigate up/down
  l/h        Expand/collapse tree rows
  e          Export the shown SBOM
  :          Command line (scan, open, export, recent, quit)
  ?          Help
  q          Quit

Example:
  sbomdesk ui
  sbomdesk ui my-app`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !pretty.Interactive {
			pretty.Exit(1, "The UI requires an interactive terminal (TTY)")
		}
		service, err := operations.ConfiguredService()
		pretty.Guard(err == nil, 2, "%v", err)

		interactive.Iconic = pretty.Iconic
		logbuf.Iconic = pretty.Iconic

		options := interactive.Options{Backend: service}
		if len(args) > 0 {
			options.Project = args[0]
		}
		err = interactive.Run(options)
		pretty.Guard(err == nil, 1, "UI error: %v", err)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
