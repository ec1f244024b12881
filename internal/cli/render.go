package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kanban-board/kanban/internal/domain"
)

// colors is the palette used by board rendering.
var colors = struct {
	Primary  lipgloss.Color
	Muted    lipgloss.Color
	Text     lipgloss.Color
	Error    lipgloss.Color
	Low      lipgloss.Color
	Medium   lipgloss.Color
	High     lipgloss.Color
	Critical lipgloss.Color
	Tag      lipgloss.Color
}{
	Primary:  lipgloss.Color("#6C5CE7"), // Purple
	Muted:    lipgloss.Color("#636E72"), // Gray
	Text:     lipgloss.Color("#DFE6E9"), // Light gray
	Error:    lipgloss.Color("#D63031"), // Red
	Low:      lipgloss.Color("#74B9FF"), // Light blue
	Medium:   lipgloss.Color("#00B894"), // Green
	High:     lipgloss.Color("#FDCB6E"), // Yellow
	Critical: lipgloss.Color("#D63031"), // Red
	Tag:      lipgloss.Color("#A29BFE"), // Lavender
}

// boardStyles contains the lipgloss styles for `kanban show`.
type boardStyles struct {
	Column       lipgloss.Style
	ColumnHeader lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	Muted        lipgloss.Style
	Overdue      lipgloss.Style
	Tag          lipgloss.Style
	Empty        lipgloss.Style
}

func defaultBoardStyles(width int) boardStyles {
	return boardStyles{
		Column: lipgloss.NewStyle().
			Width(width).
			MarginRight(1),

		ColumnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Primary).
			Width(width).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colors.Muted),

		// Border adds two columns of width.
		Card: lipgloss.NewStyle().
			Width(width-2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colors.Muted).
			Padding(0, 1),

		CardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Text),

		Muted: lipgloss.NewStyle().
			Foreground(colors.Muted),

		Overdue: lipgloss.NewStyle().
			Foreground(colors.Error).
			Bold(true),

		Tag: lipgloss.NewStyle().
			Foreground(colors.Tag),

		Empty: lipgloss.NewStyle().
			Foreground(colors.Muted).
			Italic(true),
	}
}

// priorityStyle returns the badge style for a priority.
func priorityStyle(p domain.Priority) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch p {
	case domain.PriorityLow:
		return style.Foreground(colors.Low)
	case domain.PriorityMedium:
		return style.Foreground(colors.Medium)
	case domain.PriorityHigh:
		return style.Foreground(colors.High)
	case domain.PriorityCritical:
		return style.Foreground(colors.Critical)
	default:
		return style.Foreground(colors.Muted)
	}
}

// shortID trims the "task-" prefix and keeps the first eight characters.
// Task commands accept this form as an ID prefix.
func shortID(id string) string {
	id = strings.TrimPrefix(id, domain.TaskIDPrefix)
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// renderBoard renders columns side by side. completionColumn tasks are never
// shown as overdue.
func renderBoard(board domain.Board, today domain.Date, completionColumn string, columnWidth int) string {
	s := defaultBoardStyles(columnWidth)
	columns := make([]string, 0, len(board))
	for _, col := range board {
		parts := []string{s.ColumnHeader.Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Tasks)))}
		if len(col.Tasks) == 0 {
			parts = append(parts, s.Empty.Render("no tasks"))
		}
		for _, t := range col.Tasks {
			parts = append(parts, renderCard(s, t, today, t.ColumnID != completionColumn))
		}
		columns = append(columns, s.Column.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func renderCard(s boardStyles, t domain.Task, today domain.Date, open bool) string {
	lines := []string{
		s.CardTitle.Render(t.Title),
		s.Muted.Render(shortID(t.ID)) + " " + priorityStyle(t.Priority).Render(string(t.Priority)),
	}
	if t.DueDate != nil {
		due := "due " + t.DueDate.String()
		if open && t.DueDate.Before(today) {
			lines = append(lines, s.Overdue.Render(due+" (overdue)"))
		} else {
			lines = append(lines, s.Muted.Render(due))
		}
	}
	if len(t.Subtasks) > 0 {
		lines = append(lines, s.Muted.Render(fmt.Sprintf("subtasks %d/%d", t.CompletedSubtasks(), len(t.Subtasks))))
	}
	if len(t.Tags) > 0 {
		tags := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			tags[i] = "#" + tag
		}
		lines = append(lines, s.Tag.Render(strings.Join(tags, " ")))
	}
	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
