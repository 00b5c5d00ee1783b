package common

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	defaultDeskLocation = "$HOME/.sbomdesk"
)

func ExpandPath(entry string) string {
	intermediate := os.ExpandEnv(entry)
	result, err := filepath.Abs(intermediate)
	if err != nil {
		return intermediate
	}
	return result
}

func Platform() string {
	return fmt.Sprintf("%s_%s", runtime.GOOS, runtime.GOARCH)
}
