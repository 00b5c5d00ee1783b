package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/pretty"
	"github.com/joshyorko/sbomdesk/settings"
	"github.com/spf13/cobra"
)

var (
	jsonFlag   bool
	silentFlag bool
	debugFlag  bool
	traceFlag  bool
	configFile string
	overrides  settings.Overrides
)

var rootCmd = &cobra.Command{
	Use:   "sbomdesk",
	Short: "Trigger SBOM scans of project directories and browse the results.",
	Long: `sbomdesk talks to an SBOM scan service. It asks the service to scan a
project directory, retrieves the stored scan records of a project, and shows
the latest one as tables and as a dependency tree. Records can be exported
as JSON.

Settings come from flags, SBOMDESK_* environment variables, a .env file in
the working directory, $SBOMDESK_HOME/settings.yaml, and built in defaults,
in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

// Execute runs the command line; failures end in a common.ExitCode panic.
func Execute() {
	rootCmd.SetArgs(os.Args[1:])
	err := rootCmd.Execute()
	pretty.Guard(err == nil, 1, "Error: %v", err)
}

func initConfig() {
	common.DefineVerbosity(silentFlag, debugFlag, traceFlag)
	pretty.Setup()
	if len(configFile) > 0 {
		settings.UseConfigFile(configFile)
	}
	settings.Override(overrides)
	_, err := settings.SummonSettings()
	pretty.Guard(err == nil, 2, "%v", err)
	common.Trace("Using scan service at %s.", settings.Global.ServiceEndpoint())
}

// interruptible is the context of one command; Ctrl-C cancels it.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&overrides.Endpoint, "endpoint", "", "Scan service address, like http://localhost:8080")
	flags.StringVar(&overrides.Timeout, "timeout", "", "Request timeout, like 30s or 2m")
	flags.StringVar(&configFile, "config", "", "Settings file to use instead of $SBOMDESK_HOME/settings.yaml")
	flags.BoolVar(&silentFlag, "silent", false, "Be less verbose on output.")
	flags.BoolVar(&debugFlag, "debug", false, "Turn on debugging output.")
	flags.BoolVar(&traceFlag, "trace", false, "Turn on tracing output.")
	flags.BoolVar(&common.NoCache, "no-cache", false, "Do not reuse records retrieved earlier in the same session.")
}
