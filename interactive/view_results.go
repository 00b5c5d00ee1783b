package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/sbomdesk/operations"
	"github.com/joshyorko/sbomdesk/sbom"
)

const (
	tabComponents = iota
	tabDependencies
	tabTree
	tabCount
)

var tabNames = []string{"Components", "Dependencies", "Tree"}

const (
	noComponents   = "No components data available"
	noDependencies = "No dependencies data available"
	noTree         = "No dependencies tree available"
)

// ResultsView shows the latest record of one project.
type ResultsView struct {
	styles      *Styles
	project     string
	record      *sbom.Record
	total       int
	fingerprint string
	problem     string
	loading     bool

	tab          int
	components   table.Model
	dependencies table.Model
	tree         *treeState

	prompt    textinput.Model
	prompting bool

	width  int
	height int
}

func NewResultsView(styles *Styles) *ResultsView {
	prompt := textinput.New()
	prompt.Prompt = "Export to: "
	prompt.CharLimit = 4096

	view := &ResultsView{
		styles:  styles,
		problem: operations.ErrNoResults.Error(),
		prompt:  prompt,
		tree:    newTreeState(nil),
		width:   120,
		height:  30,
	}
	view.components = view.newTable(view.componentColumns())
	view.dependencies = view.newTable(view.dependencyColumns())
	return view
}

func (v *ResultsView) newTable(columns []table.Column) table.Model {
	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(v.bodyHeight()),
		table.WithStyles(v.styles.Table),
	)
}

func (v *ResultsView) bodyHeight() int {
	return clamp(v.height-16, 3, v.height)
}

func (v *ResultsView) componentColumns() []table.Column {
	share := clamp(v.width-12, 30, v.width) / 4
	return []table.Column{
		{Title: "Name", Width: share * 2},
		{Title: "Version", Width: share},
		{Title: "Type", Width: share},
	}
}

func (v *ResultsView) dependencyColumns() []table.Column {
	share := clamp(v.width-10, 30, v.width) / 5
	return []table.Column{
		{Title: "Reference", Width: share * 2},
		{Title: "Depends On", Width: share * 3},
	}
}

// Loading marks a request for project as in flight.
func (v *ResultsView) Loading(project string) {
	v.loading = true
	if len(project) > 0 {
		v.project = project
	}
}

// Show displays the latest of records; an empty list shows the no results state.
func (v *ResultsView) Show(project string, records []sbom.Record) {
	v.loading = false
	v.project = project
	v.total = len(records)
	record, err := operations.Latest(records)
	if err != nil {
		v.clear(err.Error())
		return
	}
	v.record = record
	v.problem = ""
	v.fingerprint = sbom.Fingerprint(record.SBOM)

	rows := make([]table.Row, 0, len(record.SBOM.Components))
	for _, component := range record.SBOM.Components {
		rows = append(rows, component.Cells())
	}
	v.components.SetRows(rows)
	v.components.GotoTop()

	rows = make([]table.Row, 0, len(record.SBOM.Dependencies))
	for _, edge := range record.SBOM.Dependencies {
		rows = append(rows, edge.Cells())
	}
	v.dependencies.SetRows(rows)
	v.dependencies.GotoTop()

	v.tree = newTreeState(sbom.BuildForest(record.SBOM.Dependencies))
}

// Fail replaces whatever was shown with the error.
func (v *ResultsView) Fail(project string, err error) {
	v.loading = false
	if len(project) > 0 {
		v.project = project
	}
	v.total = 0
	v.clear(err.Error())
}

func (v *ResultsView) clear(problem string) {
	v.record = nil
	v.problem = problem
	v.fingerprint = ""
	v.components.SetRows(nil)
	v.dependencies.SetRows(nil)
	v.tree = newTreeState(nil)
	v.prompting = false
}

// Record is the record on display, if any.
func (v *ResultsView) Record() *sbom.Record {
	return v.record
}

func (v *ResultsView) Capturing() bool {
	return v.prompting
}

func (v *ResultsView) Init() tea.Cmd {
	return nil
}

func (v *ResultsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.components.SetColumns(v.componentColumns())
		v.components.SetHeight(v.bodyHeight())
		v.dependencies.SetColumns(v.dependencyColumns())
		v.dependencies.SetHeight(v.bodyHeight())
		v.prompt.Width = clamp(msg.Width-20, 20, 120)
		return v, nil
	case tea.KeyMsg:
		if v.prompting {
			return v, v.updatePrompt(msg)
		}
		return v, v.updateKeys(msg)
	}
	return v, nil
}

func (v *ResultsView) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Cancel):
		v.prompting = false
		v.prompt.Blur()
		return nil
	case key.Matches(msg, keys.Submit):
		v.prompting = false
		v.prompt.Blur()
		return requestExport(strings.TrimSpace(v.prompt.Value()), false)
	}
	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return cmd
}

func (v *ResultsView) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Tab):
		v.tab = (v.tab + 1) % tabCount
		return nil
	case key.Matches(msg, keys.ShiftTab):
		v.tab = (v.tab + tabCount - 1) % tabCount
		return nil
	case key.Matches(msg, keys.Refresh):
		if len(v.project) == 0 {
			return nil
		}
		project := v.project
		return func() tea.Msg { return openRequestMsg{project: project, fresh: true} }
	case key.Matches(msg, keys.Export):
		if v.record == nil {
			return ShowErrorToast(operations.ErrNoResults.Error())
		}
		v.prompting = true
		v.prompt.SetValue(v.record.ExportName())
		v.prompt.CursorEnd()
		return v.prompt.Focus()
	}

	var cmd tea.Cmd
	switch v.tab {
	case tabComponents:
		v.components, cmd = v.components.Update(msg)
	case tabDependencies:
		v.dependencies, cmd = v.dependencies.Update(msg)
	case tabTree:
		v.updateTree(msg)
	}
	return cmd
}

func (v *ResultsView) updateTree(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Up):
		v.tree.moveBy(-1)
	case key.Matches(msg, keys.Down):
		v.tree.moveBy(1)
	case key.Matches(msg, keys.Top):
		v.tree.top()
	case key.Matches(msg, keys.Bottom):
		v.tree.bottom()
	case key.Matches(msg, keys.Submit):
		v.tree.toggle()
	case key.Matches(msg, keys.Expand):
		v.tree.expand()
	case key.Matches(msg, keys.Collapse):
		v.tree.collapse()
	}
}

func (v *ResultsView) View() string {
	if v.record == nil {
		var b strings.Builder
		if len(v.project) > 0 {
			b.WriteString(RenderField(v.styles, "Project", v.project))
			b.WriteString("\n\n")
		}
		if v.loading {
			b.WriteString(v.styles.Subtle.Render("Loading..."))
		} else if v.problem == operations.ErrNoResults.Error() {
			b.WriteString(v.styles.Empty.Render(v.problem))
		} else {
			b.WriteString(v.styles.Error.Render(v.problem))
		}
		return b.String()
	}

	sections := []string{v.header(), "", v.tabBar(), v.body()}
	if v.prompting {
		sections = append(sections, "", v.prompt.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *ResultsView) header() string {
	fields := []string{
		RenderField(v.styles, "Project", v.record.DisplayName()),
		RenderField(v.styles, "Scan ID", v.record.DisplayScanID()),
		RenderField(v.styles, "Scanned", v.record.Timestamp.Local()),
		RenderField(v.styles, "Fingerprint", v.fingerprint),
	}
	if v.total > 1 {
		fields = append(fields, RenderField(v.styles, "Records", fmt.Sprintf("%d, showing latest", v.total)))
	}
	if v.loading {
		fields = append(fields, v.styles.Subtle.Render("Refreshing..."))
	}
	return strings.Join(fields, "\n")
}

func (v *ResultsView) tabBar() string {
	document := v.record.SBOM
	counts := []int{len(document.Components), len(document.Dependencies), len(v.tree.roots)}
	parts := make([]string, 0, tabCount)
	for index, name := range tabNames {
		label := fmt.Sprintf("%s (%d)", name, counts[index])
		if index == v.tab {
			parts = append(parts, v.styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, v.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (v *ResultsView) body() string {
	switch v.tab {
	case tabComponents:
		if len(v.record.SBOM.Components) == 0 {
			return v.styles.Empty.Render(noComponents)
		}
		return v.components.View()
	case tabDependencies:
		if len(v.record.SBOM.Dependencies) == 0 {
			return v.styles.Empty.Render(noDependencies)
		}
		return v.dependencies.View()
	default:
		if len(v.tree.rows) == 0 {
			return v.styles.Empty.Render(noTree)
		}
		return v.tree.render(v.styles, v.bodyHeight())
	}
}

func (v *ResultsView) Name() string {
	return "Results"
}

func (v *ResultsView) ShortHelp() string {
	return "tab:switch e:export R:refresh"
}

func (v *ResultsView) Hints() []KeyHint {
	if v.prompting {
		return []KeyHint{{"enter", "Write"}, {"esc", "Cancel"}}
	}
	hints := []KeyHint{{"tab", "Switch"}, {"j/k", "Nav"}}
	if v.tab == tabTree {
		hints = append(hints, KeyHint{"l/h", "Expand"})
	}
	return append(hints, KeyHint{"e", "Export"}, KeyHint{"R", "Refresh"})
}
