package wizard

import (
	"errors"

	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/pretty"
	"github.com/spf13/cobra"
)

var (
	// ErrConfirmationRequired is returned when confirmation is needed but not available
	ErrConfirmationRequired = errors.New("confirmation required: use --yes flag in non-interactive mode")
	ErrNotInteractive       = errors.New("no terminal to ask from; give the value as a flag")
)

// Confirm displays a yes/no confirmation prompt and returns the user's choice.
// If force is true, automatically returns true without prompting.
// In non-interactive mode without force, returns ErrConfirmationRequired.
// Accepts y/Y for yes, n/N for no. Defaults to no if user presses Enter.
func Confirm(question string, force bool) (bool, error) {
	if force {
		return true, nil
	}

	if !pretty.Interactive {
		return false, ErrConfirmationRequired
	}

	validator := memberValidation([]string{"y", "Y", "n", "N"}, "Please answer 'y' or 'n'.")

	response, err := ask(question, "n", validator)
	if err != nil {
		return false, err
	}

	confirmed := response == "y" || response == "Y"
	if !confirmed {
		common.Stdout("%sOperation cancelled.%s\n", pretty.Grey, pretty.Reset)
	}

	return confirmed, nil
}

// AskScanTarget asks for the directory to scan and the project name to store
// the results under, with the given values as defaults.
func AskScanTarget(directory, project string) (string, string, error) {
	if !pretty.Interactive {
		return "", "", ErrNotInteractive
	}
	directory, err := ask("Directory to scan", directory, directoryValidation("Not an existing directory."))
	if err != nil {
		return "", "", err
	}
	project, err = ask("Project name", project, anything)
	if err != nil {
		return "", "", err
	}
	return common.ExpandPath(directory), project, nil
}

// AddYesFlag adds a --yes/-y flag to the given command that can be used to skip confirmation prompts.
func AddYesFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVarP(target, "yes", "y", false, "Skip confirmation prompt")
}
