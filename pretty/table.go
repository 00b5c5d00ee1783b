package pretty

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joshyorko/sbomdesk/common"
	"golang.org/x/term"
)

const (
	fallbackWidth = 100
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TerminalWidth returns the stdout width in columns, or a fallback when
// stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		common.Trace("Failed to get terminal width, using fallback: %v", err)
		return fallbackWidth
	}
	return width
}

// Table renders rows under the given headers, squeezed to the terminal width.
func Table(headers []string, rows [][]string) string {
	return TableWidth(TerminalWidth(), headers, rows)
}

func TableWidth(width int, headers []string, rows [][]string) string {
	result := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if width > 0 {
		result = result.Width(width)
	}
	return result.Render()
}
