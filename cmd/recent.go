package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/pretty"
	"github.com/joshyorko/sbomdesk/xviper"
	"github.com/spf13/cobra"
)

var clearFlag bool

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently scanned or opened projects, newest first.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if clearFlag {
			xviper.ClearRecent()
			common.Log("Recent projects cleared.")
			pretty.Ok()
			return
		}
		recent := xviper.Recent()
		if jsonFlag {
			if recent == nil {
				recent = []string{}
			}
			nice, err := json.MarshalIndent(recent, "", "  ")
			pretty.Guard(err == nil, 1, "%v", err)
			common.Stdout("%s\n", nice)
			return
		}
		if len(recent) == 0 {
			common.Log("No recent projects.")
			return
		}
		rows := make([][]string, 0, len(recent))
		for at, project := range recent {
			rows = append(rows, []string{fmt.Sprintf("%d", at+1), project})
		}
		common.Stdout("%s\n", pretty.Table([]string{"#", "Project"}, rows))
		if directory := xviper.LastDirectory(); len(directory) > 0 {
			common.Log("Last scanned directory: %s", directory)
		}
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
	recentCmd.Flags().BoolVar(&clearFlag, "clear", false, "Forget all recent projects")
	recentCmd.Flags().BoolVarP(&jsonFlag, "json", "j", false, "Output in JSON format")
}
