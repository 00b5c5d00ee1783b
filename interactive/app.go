package interactive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/logbuf"
	"github.com/joshyorko/sbomdesk/operations"
)

// ViewType represents the different views available in the TUI
type ViewType int

const (
	ViewScan ViewType = iota
	ViewResults
	ViewLogs
)

var errStdoutExport = errors.New("Exporting to stdout is not possible inside the UI.")

// View interface that all views must implement
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	Name() string
	ShortHelp() string
	Hints() []KeyHint
}

// capturer is a view that sometimes wants every keystroke for a text input.
type capturer interface {
	Capturing() bool
}

// Options configure a UI session.
type Options struct {
	Backend Backend
	Recents Recents
	Logs    *logbuf.LogBuffer
	// Project is opened right away when set.
	Project string
}

// App is the main application model for the interactive TUI
type App struct {
	backend     Backend
	recents     Recents
	generations *operations.Generations
	root        context.Context
	initial     string

	activeView ViewType
	views      []View
	scan       *ScanView
	results    *ResultsView

	width     int
	height    int
	styles    *Styles
	quitting  bool
	showHelp  bool
	busy      bool
	spinner   spinner.Model
	startTime time.Time
	toasts    toasts

	commandLine textinput.Model
	commanding  bool
	// overwrite is the export target waiting for confirmation.
	overwrite string
}

func NewApp(options Options) *App {
	styles := NewStyles()
	if options.Recents == nil {
		options.Recents = viperRecents{}
	}
	if options.Logs == nil {
		options.Logs = logbuf.NewLogBuffer(logCapacity)
	}

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	if !Iconic {
		s.Spinner = spinner.Line
	}
	s.Style = styles.Spinner

	commandLine := textinput.New()
	commandLine.Prompt = ":"
	commandLine.Placeholder = "scan <dir> [project] | open <project> | export [path] | recent | quit"

	app := &App{
		backend:     options.Backend,
		recents:     options.Recents,
		generations: &operations.Generations{},
		root:        context.Background(),
		initial:     strings.TrimSpace(options.Project),
		activeView:  ViewScan,
		styles:      styles,
		width:       120,
		height:      30,
		spinner:     s,
		startTime:   time.Now(),
		commandLine: commandLine,
	}
	app.scan = NewScanView(styles, options.Recents)
	app.results = NewResultsView(styles)
	app.views = []View{
		app.scan,
		app.results,
		NewLogsView(styles, options.Logs),
	}
	return app
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, a.spinner.Tick)
	for _, v := range a.views {
		if cmd := v.Init(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(a.initial) > 0 {
		cmds = append(cmds, requestOpen(a.initial))
	}
	return tea.Batch(cmds...)
}

func (a *App) setBusy(busy bool) {
	a.busy = busy
	a.scan.busy = busy
}

func (a *App) capturing() bool {
	if it, ok := a.views[a.activeView].(capturer); ok {
		return it.Capturing()
	}
	return false
}

func (a *App) switchView(to ViewType) {
	if int(to) >= 0 && int(to) < len(a.views) {
		a.activeView = to
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, a.quit()
		}
		if len(a.overwrite) > 0 {
			return a, a.confirmOverwrite(msg)
		}
		if a.commanding {
			return a, a.updateCommandLine(msg)
		}
		if !a.capturing() {
			switch {
			case key.Matches(msg, keys.Quit):
				return a, a.quit()
			case key.Matches(msg, keys.Help):
				a.showHelp = !a.showHelp
				return a, nil
			case key.Matches(msg, keys.Command):
				a.commanding = true
				a.commandLine.SetValue("")
				return a, a.commandLine.Focus()
			case key.Matches(msg, keys.ViewScan):
				a.switchView(ViewScan)
				return a, nil
			case key.Matches(msg, keys.ViewResults):
				a.switchView(ViewResults)
				return a, nil
			case key.Matches(msg, keys.ViewLogs):
				a.switchView(ViewLogs)
				return a, nil
			case key.Matches(msg, keys.Cancel) && a.showHelp:
				a.showHelp = false
				return a, nil
			}
		}
		// Key messages only go to the active view.
		updated, cmd := a.views[a.activeView].Update(msg)
		a.views[a.activeView] = updated
		return a, cmd

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.commandLine.Width = clamp(msg.Width-4, 10, msg.Width)
		return a, a.broadcast(tea.WindowSizeMsg{Width: msg.Width - 2, Height: msg.Height})

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case ToastMsg:
		return a, a.toasts.push(msg)

	case ToastTimeoutMsg:
		a.toasts.expire(msg.ID)
		return a, nil

	case switchViewMsg:
		a.switchView(msg.to)
		return a, nil

	case scanRequestMsg:
		return a, a.startScan(msg.request)

	case openRequestMsg:
		return a, a.startOpen(msg.project, msg.fresh)

	case exportRequestMsg:
		return a, a.startExport(msg.path, msg.force)

	case exportedMsg:
		if errors.Is(msg.err, operations.ErrExportCancelled) {
			return a, ShowInfoToast(msg.err.Error())
		}
		if msg.err != nil {
			common.Error("export", msg.err)
			return a, ShowErrorToast(msg.err.Error())
		}
		common.Log("Exported SBOM to %s.", msg.location)
		return a, ShowSuccessToast(fmt.Sprintf("Exported to %s", msg.location))

	case recordsLoadedMsg:
		if !a.generations.IsCurrent(msg.ticket) {
			common.Debug("Dropped a stale result for %q.", msg.project)
			return a, nil
		}
		a.generations.Done(msg.ticket)
		return a, tea.Batch(a.finishLoad(msg), a.broadcast(msg))
	}

	return a, a.broadcast(msg)
}

// broadcast sends a non-key message to every view.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for index := range a.views {
		updated, cmd := a.views[index].Update(msg)
		a.views[index] = updated
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) quit() tea.Cmd {
	a.generations.Abandon()
	a.quitting = true
	return tea.Quit
}

func (a *App) updateCommandLine(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Cancel):
		a.commanding = false
		a.commandLine.Blur()
		return nil
	case key.Matches(msg, keys.Submit):
		a.commanding = false
		a.commandLine.Blur()
		cmd, err := parseCommandLine(a.commandLine.Value())
		if err != nil {
			return ShowErrorToast(err.Error())
		}
		return cmd
	}
	var cmd tea.Cmd
	a.commandLine, cmd = a.commandLine.Update(msg)
	return cmd
}

func (a *App) startScan(request operations.ScanRequest) tea.Cmd {
	if a.backend == nil {
		return ShowErrorToast(operations.ErrUnreachable.Error())
	}
	ctx, ticket := a.generations.Begin(a.root)
	a.recents.RememberScan(request.Directory, request.ProjectName)
	a.setBusy(true)
	a.results.Loading(request.ProjectName)
	a.switchView(ViewResults)
	common.Log("Scanning %s at %s.", request.Directory, a.backend.Endpoint())
	return scanCommand(ctx, a.backend, ticket, request)
}

func (a *App) startOpen(project string, fresh bool) tea.Cmd {
	project = strings.TrimSpace(project)
	if len(project) == 0 {
		return ShowErrorToast("No project given")
	}
	if a.backend == nil {
		return ShowErrorToast(operations.ErrUnreachable.Error())
	}
	if fresh {
		a.backend.Forget(project)
	}
	ctx, ticket := a.generations.Begin(a.root)
	a.setBusy(true)
	a.results.Loading(project)
	a.switchView(ViewResults)
	common.Debug("Retrieving scans of %q.", project)
	return openCommand(ctx, a.backend, ticket, project)
}

func (a *App) finishLoad(msg recordsLoadedMsg) tea.Cmd {
	a.setBusy(false)
	if msg.err == nil || len(msg.message) > 0 {
		a.recents.AddRecent(msg.project)
	}
	if msg.err != nil {
		common.Error(msg.project, msg.err)
		a.results.Fail(msg.project, msg.err)
		return ShowErrorToast(msg.err.Error())
	}
	a.results.Show(msg.project, msg.records)
	if msg.scanned {
		common.Log("Scan of %q: %s", msg.project, msg.message)
		return ShowSuccessToast(msg.message)
	}
	if len(msg.records) == 0 {
		return ShowInfoToast(operations.ErrNoResults.Error())
	}
	return nil
}

func (a *App) startExport(path string, force bool) tea.Cmd {
	record := a.results.Record()
	if record == nil {
		return ShowErrorToast(operations.ErrNoResults.Error())
	}
	target := operations.ExportTarget(record, path)
	if target == operations.StdoutTarget {
		return ShowErrorToast(errStdoutExport.Error())
	}
	if _, err := os.Stat(target); err == nil && !force {
		a.overwrite = target
		return nil
	}
	return exportCommand(record, target, true)
}

func (a *App) confirmOverwrite(msg tea.KeyMsg) tea.Cmd {
	target := a.overwrite
	switch msg.String() {
	case "y", "Y":
		a.overwrite = ""
		return exportCommand(a.results.Record(), target, true)
	case "n", "N", "enter", "esc", "q":
		a.overwrite = ""
		return ShowInfoToast(operations.ErrExportCancelled.Error())
	}
	return nil
}

// View implements tea.Model
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	header := a.renderHeader()
	menu := a.renderMenu()
	notes := a.toasts.render(a.styles)
	toastBlock := ""
	if len(notes) > 0 {
		toastBlock = lipgloss.PlaceHorizontal(a.width, lipgloss.Right, lipgloss.JoinVertical(lipgloss.Right, notes...))
	}
	height := a.height - lipgloss.Height(header) - lipgloss.Height(menu)
	if len(toastBlock) > 0 {
		height -= lipgloss.Height(toastBlock)
	}
	height = clamp(height, 1, a.height)

	var content string
	switch {
	case len(a.overwrite) > 0:
		content = a.renderConfirm(height)
	case a.showHelp:
		content = a.renderHelp(height)
	default:
		content = a.frame(height).Render(a.views[a.activeView].View())
	}

	sections := []string{header, content}
	if len(toastBlock) > 0 {
		sections = append(sections, toastBlock)
	}
	return lipgloss.JoinVertical(lipgloss.Left, append(sections, menu)...)
}

func (a *App) frame(height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		MaxHeight(height).
		PaddingLeft(1).
		PaddingRight(1)
}

func (a *App) renderHeader() string {
	logo := lipgloss.JoinHorizontal(lipgloss.Center,
		a.spinnerGlyph(),
		a.styles.LogoText.Render(" sbomdesk "),
		a.styles.LogoSubtle.Render("SBOM scans"),
	)
	status := a.renderStatus()
	gap := a.width - lipgloss.Width(logo) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logo, strings.Repeat(" ", gap), status)

	crumbs := a.styles.CrumbInactive.Render(" <sbomdesk> ") +
		a.styles.CrumbActive.Render(fmt.Sprintf(" <%s> ", strings.ToLower(a.views[a.activeView].Name())))
	divider := a.styles.Divider.Render(strings.Repeat("─", a.width))

	return lipgloss.JoinVertical(lipgloss.Left, topRow, crumbs, divider)
}

func (a *App) spinnerGlyph() string {
	if a.busy {
		return a.spinner.View()
	}
	return " "
}

func (a *App) renderStatus() string {
	endpoint := "offline"
	if a.backend != nil {
		endpoint = a.backend.Endpoint()
	}
	elapsed := time.Since(a.startTime).Round(time.Second)
	return a.styles.StatusKey.Render("api:") + a.styles.StatusValue.Render(endpoint) +
		a.styles.StatusKey.Render(" ver:") + a.styles.StatusValue.Render(common.Version) +
		a.styles.StatusKey.Render(" up:") + a.styles.StatusValue.Render(elapsed.String()) + " "
}

func (a *App) renderConfirm(height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(a.styles.PanelTitle.Render("Confirm"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Warning.Render(fmt.Sprintf("File %q exists. Overwrite?", a.overwrite)))
	b.WriteString("\n\n")
	b.WriteString(RenderHints(a.styles, []KeyHint{{"y", "Yes"}, {"n/enter", "No"}}))
	return a.frame(height).Render(b.String())
}

func (a *App) renderHelp(height int) string {
	sections := []struct {
		title string
		hints []KeyHint
	}{
		{"Views", []KeyHint{
			{"1", "Scan - trigger a scan, reopen recent projects"},
			{"2", "Results - latest record of the project"},
			{"3", "Logs - what happened so far"},
		}},
		{"Movement", []KeyHint{
			{"j/↓ k/↑", "Move"},
			{"g G", "Top and bottom"},
			{"tab", "Next field or tab"},
			{"l/→ h/←", "Expand and collapse tree rows"},
			{"enter", "Submit, or toggle a tree row"},
		}},
		{"Actions", []KeyHint{
			{"e", "Export the shown SBOM"},
			{"R", "Refresh the shown project"},
			{":", "Command line: " + a.commandLine.Placeholder},
		}},
		{"Global", []KeyHint{
			{"?", "Toggle this help"},
			{"esc", "Leave an input"},
			{"q", "Quit"},
		}},
	}
	var b strings.Builder
	for _, section := range sections {
		b.WriteString(a.styles.PanelTitle.Render(section.title))
		b.WriteString("\n")
		for _, hint := range section.hints {
			b.WriteString("  " + a.styles.HelpKey.Render(fmt.Sprintf("%-9s", hint.Key)) + " " + a.styles.HelpDesc.Render(hint.Desc) + "\n")
		}
		b.WriteString("\n")
	}
	return a.frame(height).Render(b.String())
}

func (a *App) renderMenu() string {
	divider := a.styles.Divider.Render(strings.Repeat("─", a.width))
	if a.commanding {
		return lipgloss.JoinVertical(lipgloss.Left, divider, a.commandLine.View())
	}
	global := []KeyHint{{"1", "Scan"}, {"2", "Results"}, {"3", "Logs"}, {":", "Cmd"}, {"?", "Help"}, {"q", "Quit"}}
	line := RenderHints(a.styles, a.views[a.activeView].Hints()) +
		a.styles.MenuSeparator.Render(" │ ") +
		RenderHints(a.styles, global)
	return lipgloss.JoinVertical(lipgloss.Left, divider, line)
}

// Run starts the interactive application and blocks until it quits.
func Run(options Options) error {
	if options.Logs == nil {
		options.Logs = logbuf.NewLogBuffer(logCapacity)
	}
	release := CaptureLogs(options.Logs)
	defer release()

	program := tea.NewProgram(NewApp(options), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
