package pretty

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/sbomdesk/common"
	"github.com/stretchr/testify/assert"
)

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name      string
		noColor   string
		colorterm string
		term      string
		expected  ColorMode
	}{
		{name: "NO_COLOR set disables colors", noColor: "1", term: "xterm-256color", expected: ColorModeNone},
		{name: "COLORTERM=truecolor enables TrueColor", colorterm: "truecolor", term: "xterm-256color", expected: ColorModeTrueColor},
		{name: "COLORTERM=24bit enables TrueColor", colorterm: "24bit", term: "xterm", expected: ColorModeTrueColor},
		{name: "TERM=xterm-256color enables 256 colors", term: "xterm-256color", expected: ColorMode256},
		{name: "TERM=dumb disables colors", term: "dumb", expected: ColorModeNone},
		{name: "Empty TERM disables colors", term: "", expected: ColorModeNone},
		{name: "Plain xterm is basic", term: "xterm", expected: ColorModeBasic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("COLORTERM", tt.colorterm)
			t.Setenv("TERM", tt.term)
			colorModeDetected = false
			defer func() { colorModeDetected = false }()

			assert.Equal(t, tt.expected, DetectColorMode())
		})
	}
}

func TestStatusColorRespectsColorless(t *testing.T) {
	originalColorless, originalGreen := Colorless, Green
	defer func() { Colorless, Green = originalColorless, originalGreen }()

	Green = csi("92m")
	Colorless = false
	assert.Equal(t, Green, StatusColor("Done"))
	assert.Equal(t, "", StatusColor("unknown"))

	Colorless = true
	assert.Equal(t, "", StatusColor("done"))
}

func TestExitPanicsWithExitCode(t *testing.T) {
	defer func() {
		status := recover()
		exit, ok := status.(common.ExitCode)
		assert.True(t, ok)
		assert.Equal(t, 3, exit.Code)
		assert.Contains(t, exit.Message, "broken 7")
	}()
	Guard(false, 3, "broken %d", 7)
}

func TestGuardPassesOnTruth(t *testing.T) {
	assert.NotPanics(t, func() { Guard(true, 1, "never") })
}

func TestTableContainsCells(t *testing.T) {
	output := TableWidth(60, []string{"Name", "Version"}, [][]string{{"express", "4.19.2"}, {"left-pad", "N/A"}})

	assert.Contains(t, output, "Name")
	assert.Contains(t, output, "express")
	assert.Contains(t, output, "N/A")
	for _, line := range strings.Split(output, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 60)
	}
}
