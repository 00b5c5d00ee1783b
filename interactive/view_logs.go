package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/logbuf"
)

const logCapacity = 500

// CaptureLogs routes common logger output into buffer until the returned
// function is called.
func CaptureLogs(buffer *logbuf.LogBuffer) func() {
	common.SetLogInterceptor(func(message string) bool {
		for _, line := range strings.Split(message, "\n") {
			buffer.AddLine(line)
		}
		return true
	})
	return common.ClearLogInterceptor
}

// LogsView shows what the logger produced while the UI was running.
type LogsView struct {
	styles *Styles
	logs   *logbuf.LogBuffer
	width  int
	height int
	// back is how many lines the view is scrolled up from the newest one.
	back int
}

func NewLogsView(styles *Styles, logs *logbuf.LogBuffer) *LogsView {
	return &LogsView{
		styles: styles,
		logs:   logs,
		width:  120,
		height: 30,
	}
}

func (v *LogsView) Init() tea.Cmd {
	return nil
}

func (v *LogsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			v.back += 1
		case key.Matches(msg, keys.Down):
			v.back -= 1
		case key.Matches(msg, keys.Top):
			v.back = v.logs.Len()
		case key.Matches(msg, keys.Bottom):
			v.back = 0
		case key.Matches(msg, keys.Clear):
			v.logs.Clear()
			v.back = 0
		}
		v.back = clamp(v.back, 0, v.logs.Len()-1)
	}
	return v, nil
}

func (v *LogsView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.PanelTitle.Render("Activity"))
	b.WriteString("  ")
	b.WriteString(v.statsLine())
	b.WriteString("\n")
	b.WriteString(v.styles.Divider.Render(strings.Repeat("─", clamp(v.width-4, 10, v.width))))
	b.WriteString("\n")

	visible := clamp(v.height-10, 3, v.height)
	entries := v.logs.Recent(visible + v.back)
	if len(entries) == 0 {
		b.WriteString(v.styles.Empty.Render("No log lines yet"))
		return b.String()
	}
	if v.back > 0 && len(entries) > v.back {
		entries = entries[:len(entries)-v.back]
	}
	if len(entries) > visible {
		entries = entries[len(entries)-visible:]
	}
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, v.formatEntry(entry))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func (v *LogsView) statsLine() string {
	stats := v.logs.Stats()
	if stats.Total == 0 {
		return v.styles.Subtle.Render("empty")
	}
	parts := []string{v.styles.Info.Render(fmt.Sprintf("%d lines", stats.Total))}
	if stats.Errors > 0 {
		parts = append(parts, v.styles.Error.Render(fmt.Sprintf("%d errors", stats.Errors)))
	}
	if stats.Warns > 0 {
		parts = append(parts, v.styles.Warning.Render(fmt.Sprintf("%d warnings", stats.Warns)))
	}
	if v.back > 0 {
		parts = append(parts, v.styles.Subtle.Render(fmt.Sprintf("-%d", v.back)))
	}
	return strings.Join(parts, v.styles.Divider.Render(" │ "))
}

func (v *LogsView) formatEntry(entry logbuf.LogEntry) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtle.Render(entry.Time.Format("15:04:05")))
	b.WriteString(" ")
	b.WriteString(v.levelStyle(entry.Level).Render(entry.Level.Icon()))
	b.WriteString(" ")
	if entry.Source != "" {
		b.WriteString(v.styles.Highlight.Render("[" + entry.Source + "]"))
		b.WriteString(" ")
	}
	message := entry.Message
	if entry.Level == logbuf.LogError {
		message = v.styles.Error.Render(message)
	}
	b.WriteString(message)
	return b.String()
}

func (v *LogsView) levelStyle(level logbuf.LogLevel) lipgloss.Style {
	switch level {
	case logbuf.LogWarn:
		return v.styles.Warning
	case logbuf.LogError:
		return v.styles.Error
	case logbuf.LogInfo:
		return v.styles.Info
	default:
		return v.styles.Subtle
	}
}

func (v *LogsView) Name() string {
	return "Logs"
}

func (v *LogsView) ShortHelp() string {
	return "j/k:scroll g/G:oldest/newest c:clear"
}

func (v *LogsView) Hints() []KeyHint {
	return []KeyHint{{"j/k", "Scroll"}, {"g/G", "Old/New"}, {"c", "Clear"}}
}
