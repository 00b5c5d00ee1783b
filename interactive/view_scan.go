package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshyorko/sbomdesk/operations"
)

const (
	focusDirectory = iota
	focusProject
	focusRecent
	focusCount
)

// ScanView collects the scan inputs and lists recently used projects.
type ScanView struct {
	styles    *Styles
	recents   Recents
	directory textinput.Model
	project   textinput.Model
	focus     int
	recent    []string
	cursor    int
	busy      bool
	width     int
	height    int
}

func NewScanView(styles *Styles, recents Recents) *ScanView {
	directory := textinput.New()
	directory.Placeholder = "/path/to/project"
	directory.Prompt = "› "
	directory.CharLimit = 4096
	directory.SetValue(recents.LastDirectory())

	project := textinput.New()
	project.Placeholder = "optional project name"
	project.Prompt = "› "
	project.CharLimit = 200

	view := &ScanView{
		styles:    styles,
		recents:   recents,
		directory: directory,
		project:   project,
		recent:    recents.Recent(),
		width:     120,
		height:    30,
	}
	view.setFocus(focusDirectory)
	return view
}

func (v *ScanView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *ScanView) setFocus(focus int) {
	v.focus = (focus + focusCount) % focusCount
	v.directory.Blur()
	v.project.Blur()
	switch v.focus {
	case focusDirectory:
		v.directory.Focus()
	case focusProject:
		v.project.Focus()
	}
}

// Capturing reports whether keystrokes go to a text input.
func (v *ScanView) Capturing() bool {
	return v.focus != focusRecent
}

func (v *ScanView) submit() tea.Cmd {
	directory := strings.TrimSpace(v.directory.Value())
	if len(directory) == 0 {
		return ShowErrorToast(operations.ErrInvalidDirectory.Error())
	}
	return requestScan(operations.ScanRequest{
		Directory:   directory,
		ProjectName: strings.TrimSpace(v.project.Value()),
	})
}

func (v *ScanView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.directory.Width = clamp(msg.Width-24, 20, 120)
		v.project.Width = clamp(msg.Width-24, 20, 60)
		return v, nil

	case recordsLoadedMsg:
		v.recent = v.recents.Recent()
		v.cursor = clamp(v.cursor, 0, len(v.recent)-1)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Tab):
			v.setFocus(v.focus + 1)
			return v, nil
		case key.Matches(msg, keys.ShiftTab):
			v.setFocus(v.focus - 1)
			return v, nil
		case key.Matches(msg, keys.Cancel) && v.Capturing():
			v.setFocus(focusRecent)
			return v, nil
		}
		if v.focus == focusRecent {
			return v, v.updateRecent(msg)
		}
		if key.Matches(msg, keys.Submit) {
			if v.busy {
				return v, ShowInfoToast("A request is already running")
			}
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	switch v.focus {
	case focusDirectory:
		v.directory, cmd = v.directory.Update(msg)
	case focusProject:
		v.project, cmd = v.project.Update(msg)
	}
	return v, cmd
}

func (v *ScanView) updateRecent(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		v.cursor = clamp(v.cursor-1, 0, len(v.recent)-1)
	case key.Matches(msg, keys.Down):
		v.cursor = clamp(v.cursor+1, 0, len(v.recent)-1)
	case key.Matches(msg, keys.Top):
		v.cursor = 0
	case key.Matches(msg, keys.Bottom):
		v.cursor = clamp(len(v.recent)-1, 0, len(v.recent)-1)
	case key.Matches(msg, keys.Submit):
		if v.cursor < len(v.recent) {
			return requestOpen(v.recent[v.cursor])
		}
	}
	return nil
}

func (v *ScanView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.PanelTitle.Render("Scan a directory"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Label.Render("Directory"))
	b.WriteString(v.directory.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Project"))
	b.WriteString(v.project.View())
	b.WriteString("\n\n")
	if v.busy {
		b.WriteString(v.styles.Subtle.Render("Scanning..."))
	} else {
		b.WriteString(RenderHints(v.styles, []KeyHint{{"enter", "Scan"}, {"tab", "Next field"}}))
	}
	b.WriteString("\n\n")
	b.WriteString(RenderSection(v.styles, fmt.Sprintf("Recent projects (%d)", len(v.recent)), v.recentList(), "No recent projects"))
	return b.String()
}

func (v *ScanView) recentList() string {
	if len(v.recent) == 0 {
		return ""
	}
	visible := clamp(v.height-18, 3, len(v.recent))
	start := 0
	if v.cursor >= visible {
		start = v.cursor - visible + 1
	}
	end := clamp(start+visible, 0, len(v.recent))
	lines := make([]string, 0, end-start)
	for index := start; index < end; index++ {
		if v.focus == focusRecent && index == v.cursor {
			lines = append(lines, v.styles.ListItemSelected.Render(v.recent[index]))
		} else {
			lines = append(lines, v.styles.ListItem.Render(v.recent[index]))
		}
	}
	return strings.Join(lines, "\n")
}

func (v *ScanView) Name() string {
	return "Scan"
}

func (v *ScanView) ShortHelp() string {
	return "tab:next field enter:scan/open"
}

func (v *ScanView) Hints() []KeyHint {
	if v.focus == focusRecent {
		return []KeyHint{{"j/k", "Nav"}, {"enter", "Open"}, {"tab", "Switch"}}
	}
	return []KeyHint{{"enter", "Scan"}, {"tab", "Switch"}}
}
