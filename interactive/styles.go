package interactive

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the interactive TUI.
type Styles struct {
	theme Theme

	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Empty     lipgloss.Style

	Divider lipgloss.Style

	LogoText   lipgloss.Style
	LogoSubtle lipgloss.Style

	CrumbActive   lipgloss.Style
	CrumbInactive lipgloss.Style

	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style

	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	MenuKey       lipgloss.Style
	MenuDesc      lipgloss.Style
	MenuSeparator lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style

	TreeBranch lipgloss.Style
	TreeLeaf   lipgloss.Style
	TreeCycle  lipgloss.Style

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Label      lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Spinner lipgloss.Style

	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	Table table.Styles
}

func NewStyles() *Styles {
	return NewStylesWithTheme(DefaultTheme())
}

func NewStylesWithTheme(theme Theme) *Styles {
	toast := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(40)

	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.BorderDim).
		BorderBottom(true).
		Bold(true).
		Foreground(theme.Secondary)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(theme.TextBright).
		Background(theme.Highlight).
		Bold(false)

	return &Styles{
		theme: theme,

		Title:     lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtle:    lipgloss.NewStyle().Foreground(theme.TextMuted),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
		Success:   lipgloss.NewStyle().Foreground(theme.Success),
		Warning:   lipgloss.NewStyle().Foreground(theme.Warning),
		Info:      lipgloss.NewStyle().Foreground(theme.Info),
		Empty:     lipgloss.NewStyle().Italic(true).Foreground(theme.TextMuted),

		Divider: lipgloss.NewStyle().Foreground(theme.BorderDim),

		LogoText:   lipgloss.NewStyle().Bold(true).Foreground(theme.TextBright).Background(theme.Primary),
		LogoSubtle: lipgloss.NewStyle().Foreground(theme.TextMuted).PaddingLeft(1),

		CrumbActive:   lipgloss.NewStyle().Bold(true).Foreground(theme.TextBright).Background(theme.Secondary),
		CrumbInactive: lipgloss.NewStyle().Foreground(theme.TextMuted).Background(theme.Surface),

		StatusKey:   lipgloss.NewStyle().Foreground(theme.TextMuted),
		StatusValue: lipgloss.NewStyle().Foreground(theme.Accent),

		Tab:       lipgloss.NewStyle().Padding(0, 2).Foreground(theme.TextMuted),
		ActiveTab: lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(theme.Primary).Background(theme.Highlight),

		MenuKey:       lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		MenuDesc:      lipgloss.NewStyle().Foreground(theme.Text),
		MenuSeparator: lipgloss.NewStyle().Foreground(theme.BorderDim),

		ListItem:         lipgloss.NewStyle().PaddingLeft(2).Foreground(theme.Text),
		ListItemSelected: lipgloss.NewStyle().PaddingLeft(2).Bold(true).Foreground(theme.TextBright).Background(theme.Highlight),

		TreeBranch: lipgloss.NewStyle().Foreground(theme.Border),
		TreeLeaf:   lipgloss.NewStyle().Foreground(theme.Accent),
		TreeCycle:  lipgloss.NewStyle().Italic(true).Foreground(theme.Warning),

		Panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Label:      lipgloss.NewStyle().Foreground(theme.TextDim).Width(14),

		HelpKey:  lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		HelpDesc: lipgloss.NewStyle().Foreground(theme.TextMuted),

		Spinner: lipgloss.NewStyle().Foreground(theme.Accent),

		ToastInfo:    toast.BorderForeground(theme.Info),
		ToastSuccess: toast.BorderForeground(theme.Success),
		ToastWarning: toast.BorderForeground(theme.Warning),
		ToastError:   toast.BorderForeground(theme.Error),

		Table: tableStyles,
	}
}
