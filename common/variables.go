package common

import (
	"fmt"
	"os"
	"time"
)

const (
	Version = `v0.4.2`
)

var (
	Silenced       bool
	DebugFlag_     bool
	TraceFlag_     bool
	LogLinenumbers bool
	NoCache        bool
	LogHides       []string
	When           int64
	Product        ProductStrategy
	Identities     chan uint64
)

func init() {
	When = time.Now().Unix()
	Product = DeskMode()
	Identities = make(chan uint64, 3)
	go identityGenerator(Identities)
}

func identityGenerator(sink chan uint64) {
	counter := uint64(0)
	for {
		counter += 1
		sink <- counter
	}
}

func DefineVerbosity(silent, debug, trace bool) {
	Silenced = silent
	DebugFlag_ = debug
	TraceFlag_ = trace
}

func Silent() bool {
	return Silenced
}

func DebugFlag() bool {
	return DebugFlag_ || TraceFlag_
}

func TraceFlag() bool {
	return TraceFlag_
}

func UserAgent() string {
	return fmt.Sprintf("sbomdesk/%s (%s %s)", Version, Platform(), Product.Name())
}

type ExitCode struct {
	Code    int
	Message string
}

func (it ExitCode) ShowMessage() {
	if len(it.Message) > 0 {
		fmt.Fprintln(os.Stderr, it.Message)
	}
}
