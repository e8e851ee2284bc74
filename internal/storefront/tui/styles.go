package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary     = lipgloss.Color("#4F46E5") // indigo-600
	colorAccent      = lipgloss.Color("#0EA5E9") // sky-500
	colorMuted       = lipgloss.Color("#64748B") // slate-500
	colorBorder      = lipgloss.Color("#CBD5E1") // slate-300
	colorDestructive = lipgloss.Color("#DC2626")
	colorSuccess     = lipgloss.Color("#16A34A")
)

// Styles groups the lipgloss styles of the shop page.
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Header      lipgloss.Style
	Card        lipgloss.Style
	CardFocused lipgloss.Style
	Badge       lipgloss.Style
	OutOfStock  lipgloss.Style
	Price       lipgloss.Style
	Muted       lipgloss.Style
	Drawer      lipgloss.Style
	Dialog      lipgloss.Style
	Selected    lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
}

func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Subtitle:    lipgloss.NewStyle().Foreground(colorMuted),
		Header:      lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(colorBorder),
		Card:        card,
		CardFocused: card.BorderForeground(colorAccent),
		Badge:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorPrimary).Padding(0, 1),
		OutOfStock:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorDestructive).Padding(0, 1),
		Price:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(colorMuted),
		Drawer:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPrimary).Padding(0, 1),
		Dialog:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorAccent).Padding(1, 2),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Status:      lipgloss.NewStyle().Foreground(colorSuccess),
		Error:       lipgloss.NewStyle().Foreground(colorDestructive),
		Help:        lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	}
}
