package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kanban-board/kanban/internal/domain"
)

// Colors is the board palette.
var Colors = struct {
	Accent  lipgloss.Color // Focus, keys, headings
	Muted   lipgloss.Color
	Border  lipgloss.Color // Unfocused column border
	Error   lipgloss.Color
	Warning lipgloss.Color
	Done    lipgloss.Color // Completion column

	Text       lipgloss.Color
	TextBright lipgloss.Color // Selected card
	TextDim    lipgloss.Color
	TextSoft   lipgloss.Color // Meta of the selected card

	Priority map[domain.Priority]lipgloss.Color
}{
	Accent:  lipgloss.Color("#5E81AC"),
	Muted:   lipgloss.Color("#7B8394"),
	Border:  lipgloss.Color("#4C566A"),
	Error:   lipgloss.Color("#BF616A"),
	Warning: lipgloss.Color("#EBCB8B"),
	Done:    lipgloss.Color("#A3BE8C"),

	Text:       lipgloss.Color("#E5E9F0"),
	TextBright: lipgloss.Color("#88C0D0"),
	TextDim:    lipgloss.Color("#7B8394"),
	TextSoft:   lipgloss.Color("#D8DEE9"),

	Priority: map[domain.Priority]lipgloss.Color{
		domain.PriorityLow:      lipgloss.Color("#8FBCBB"),
		domain.PriorityMedium:   lipgloss.Color("#81A1C1"),
		domain.PriorityHigh:     lipgloss.Color("#D08770"),
		domain.PriorityCritical: lipgloss.Color("#BF616A"),
	},
}

// Styles holds the lipgloss styles of the board.
type Styles struct {
	App        lipgloss.Style
	Header     lipgloss.Style
	HeaderText lipgloss.Style

	Column            lipgloss.Style
	ColumnFocused     lipgloss.Style
	ColumnTitle       lipgloss.Style
	ColumnTitleDone   lipgloss.Style
	ColumnCount       lipgloss.Style
	ColumnEmpty       lipgloss.Style
	CardTitle         lipgloss.Style
	CardTitleSelected lipgloss.Style
	CardTitleDone     lipgloss.Style
	CardMeta          lipgloss.Style
	CardMetaSelected  lipgloss.Style
	CursorNormal      lipgloss.Style
	CursorSelected    lipgloss.Style
	Overdue           lipgloss.Style

	HelpKey   lipgloss.Style
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style

	ErrorMsg  lipgloss.Style
	StatusMsg lipgloss.Style

	DetailTitle lipgloss.Style
	DetailLabel lipgloss.Style
	DetailDesc  lipgloss.Style

	priority map[domain.Priority]lipgloss.Style
}

// DefaultStyles returns the board styles built from Colors.
func DefaultStyles() Styles {
	column := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())
	key := lipgloss.NewStyle().Foreground(Colors.Accent).Bold(true)
	muted := lipgloss.NewStyle().Foreground(Colors.Muted)

	s := Styles{
		App:        lipgloss.NewStyle().Padding(1, 2),
		Header:     lipgloss.NewStyle().Foreground(Colors.Accent).Bold(true).MarginBottom(1),
		HeaderText: lipgloss.NewStyle().Bold(true),

		Column:          column.BorderForeground(Colors.Border),
		ColumnFocused:   column.BorderForeground(Colors.Accent),
		ColumnTitle:     lipgloss.NewStyle().Foreground(Colors.TextBright).Bold(true),
		ColumnTitleDone: lipgloss.NewStyle().Foreground(Colors.Done).Bold(true),
		ColumnCount:     muted,
		ColumnEmpty:     muted.Italic(true),

		CardTitle:         lipgloss.NewStyle().Foreground(Colors.Text),
		CardTitleSelected: lipgloss.NewStyle().Foreground(Colors.TextBright).Bold(true),
		CardTitleDone:     lipgloss.NewStyle().Foreground(Colors.TextDim).Strikethrough(true),
		CardMeta:          lipgloss.NewStyle().Foreground(Colors.TextDim),
		CardMetaSelected:  lipgloss.NewStyle().Foreground(Colors.TextSoft),
		CursorNormal:      muted,
		CursorSelected:    lipgloss.NewStyle().Foreground(Colors.TextBright).Bold(true),
		Overdue:           lipgloss.NewStyle().Foreground(Colors.Error).Bold(true),

		HelpKey:   key,
		Footer:    muted,
		FooterKey: key,

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Accent),
		DialogTitle:  key,
		DialogPrompt: lipgloss.NewStyle(),

		ErrorMsg:  lipgloss.NewStyle().Foreground(Colors.Error).Bold(true),
		StatusMsg: lipgloss.NewStyle().Foreground(Colors.Done),

		DetailTitle: key.MarginBottom(1),
		DetailLabel: muted.Width(12),
		DetailDesc:  lipgloss.NewStyle().Foreground(Colors.TextSoft),

		priority: make(map[domain.Priority]lipgloss.Style, len(Colors.Priority)),
	}
	for p, c := range Colors.Priority {
		s.priority[p] = lipgloss.NewStyle().Foreground(c).Bold(p == domain.PriorityCritical)
	}
	return s
}

// PriorityStyle returns the badge style of a priority.
// Unknown priorities render like Medium.
func (s Styles) PriorityStyle(p domain.Priority) lipgloss.Style {
	if st, ok := s.priority[p]; ok {
		return st
	}
	return s.priority[domain.PriorityMedium]
}

// PriorityIcon returns a bar whose height grows with the priority.
func PriorityIcon(p domain.Priority) string {
	switch p {
	case domain.PriorityLow:
		return "▁"
	case domain.PriorityMedium:
		return "▃"
	case domain.PriorityHigh:
		return "▅"
	case domain.PriorityCritical:
		return "█"
	default:
		return "?"
	}
}
