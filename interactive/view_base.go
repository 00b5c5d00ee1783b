package interactive

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyHint represents a keyboard shortcut hint
type KeyHint struct {
	Key  string
	Desc string
}

// RenderHints renders key hints in one line, as in the menu bar.
func RenderHints(styles *Styles, hints []KeyHint) string {
	parts := make([]string, 0, len(hints))
	for _, hint := range hints {
		parts = append(parts, styles.MenuKey.Render("<"+hint.Key+">")+styles.MenuDesc.Render(hint.Desc))
	}
	return strings.Join(parts, " ")
}

// RenderSection renders a titled block, with a placeholder when it is empty.
func RenderSection(styles *Styles, title, body, empty string) string {
	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render(title))
	b.WriteString("\n")
	if len(strings.TrimSpace(body)) == 0 {
		b.WriteString(styles.Empty.Render(empty))
	} else {
		b.WriteString(body)
	}
	return b.String()
}

// RenderField renders a label and value pair of a header block.
func RenderField(styles *Styles, label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, styles.Label.Render(label), styles.Highlight.Render(value))
}

func clamp(value, low, high int) int {
	if high < low {
		return low
	}
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
