package tui

import "github.com/charmbracelet/lipgloss"

var (
	Accent      = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#6b7280")
	Destructive = lipgloss.Color("#e53935")
	Info        = lipgloss.Color("#2196F3")
	Border      = lipgloss.Color("#2a3850")
)

type Styles struct {
	Sidebar  lipgloss.Style
	Thread   lipgloss.Style
	Header   lipgloss.Style
	Row      lipgloss.Style
	Cursor   lipgloss.Style
	Active   lipgloss.Style
	Unread   lipgloss.Style
	Mine     lipgloss.Style
	Theirs   lipgloss.Style
	Removed  lipgloss.Style
	Meta     lipgloss.Style
	Typing   lipgloss.Style
	Error    lipgloss.Style
	Notice   lipgloss.Style
	Composer lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Sidebar:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1),
		Thread:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Row:      lipgloss.NewStyle(),
		Cursor:   lipgloss.NewStyle().Reverse(true),
		Active:   lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Unread:   lipgloss.NewStyle().Bold(true).Foreground(Info),
		Mine:     lipgloss.NewStyle().Foreground(Accent),
		Theirs:   lipgloss.NewStyle(),
		Removed:  lipgloss.NewStyle().Italic(true).Foreground(Muted),
		Meta:     lipgloss.NewStyle().Foreground(Muted),
		Typing:   lipgloss.NewStyle().Italic(true).Foreground(Muted),
		Error:    lipgloss.NewStyle().Foreground(Destructive),
		Notice:   lipgloss.NewStyle().Foreground(Info),
		Composer: lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(Border),
	}
}
