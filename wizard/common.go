package wizard

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/pretty"
)

const (
	newline         = '\n'
	UNIX_NEWLINE    = "\n"
	WINDOWS_NEWLINE = "\r\n"
)

var (
	input *bufio.Reader = bufio.NewReader(os.Stdin)
)

type Validator func(string) bool

// UseInput replaces the reader answers are taken from.
func UseInput(source io.Reader) {
	input = bufio.NewReader(source)
}

func memberValidation(members []string, erratic string) Validator {
	return func(input string) bool {
		for _, member := range members {
			if input == member {
				return true
			}
		}
		common.Stdout("%s%s%s\n\n", pretty.Red, erratic, pretty.Reset)
		return false
	}
}

func directoryValidation(erratic string) Validator {
	return func(input string) bool {
		info, err := os.Stat(common.ExpandPath(input))
		if err != nil || !info.IsDir() {
			common.Stdout("%s%s%s\n\n", pretty.Red, erratic, pretty.Reset)
			return false
		}
		return true
	}
}

func anything(string) bool {
	return true
}

func ask(question, defaults string, validator Validator) (string, error) {
	for {
		common.Stdout("%s? %s%s %s[%s]:%s ", pretty.Green, pretty.White, question, pretty.Grey, defaults, pretty.Reset)
		reply, err := input.ReadString(newline)
		common.Stdout("\n")
		if err != nil && len(reply) == 0 {
			return "", err
		}
		if reply == UNIX_NEWLINE || reply == WINDOWS_NEWLINE {
			reply = defaults
		}
		reply = strings.TrimSpace(reply)
		if !validator(reply) {
			if err != nil {
				return "", err
			}
			continue
		}
		return reply, nil
	}
}
