package cmd

import (
	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/pretty"
	"github.com/joshyorko/sbomdesk/settings"
	"github.com/joshyorko/sbomdesk/xviper"
	"github.com/spf13/cobra"
)

var layersFlag bool

var layerNames = []string{"defaults", "settings file", "environment", "flags"}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective settings as YAML.",
	Long: `Show the effective settings as YAML, and where they came from.

With --layers every layer is shown separately, lowest precedence first.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config, err := settings.SummonSettings()
		pretty.Guard(err == nil, 2, "%v", err)

		common.Log("Settings file: %s", settings.SettingsFileLocation())
		common.Log("State file:    %s", xviper.ConfigFileUsed())

		if layersFlag {
			for at, layer := range settings.Layers() {
				if layer == nil {
					common.Stdout("# %s: not present\n", layerNames[at])
					continue
				}
				blob, err := layer.AsYaml()
				pretty.Guard(err == nil, 3, "%v", err)
				common.Stdout("# %s\n%s\n", layerNames[at], blob)
			}
			return
		}
		blob, err := config.AsYaml()
		pretty.Guard(err == nil, 3, "%v", err)
		common.Stdout("%s", blob)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&layersFlag, "layers", false, "Show each settings layer separately")
}
