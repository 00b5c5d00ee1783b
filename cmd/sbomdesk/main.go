package main

import (
	"os"

	"github.com/joshyorko/sbomdesk/cmd"
	"github.com/joshyorko/sbomdesk/common"
)

// ExitProtection turns a common.ExitCode panic into a process exit status.
func ExitProtection() {
	status := recover()
	if status != nil {
		exit, ok := status.(common.ExitCode)
		if ok {
			exit.ShowMessage()
			common.WaitLogs()
			os.Exit(exit.Code)
		}
		common.WaitLogs()
		panic(status)
	}
	common.WaitLogs()
}

func main() {
	defer ExitProtection()

	cmd.Execute()
}
