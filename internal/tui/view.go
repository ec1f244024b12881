package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kanban-board/kanban/internal/domain"
	"github.com/mattn/go-runewidth"
)

const (
	minColumnWidth = 18
	cardHeight     = 2 // Title line plus meta line
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeDetail:
		content = m.viewDetail()
	case ModeNormal, ModeConfirm, ModeInput:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the board with any open dialog.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n\n")
	} else if m.status != "" {
		b.WriteString(m.styles.StatusMsg.Render(m.status) + "\n\n")
	}

	b.WriteString(m.viewBoard())

	switch m.mode {
	case ModeNormal, ModeHelp, ModeDetail:
		// No overlay for these modes
	case ModeConfirm:
		b.WriteString("\n")
		b.WriteString(m.viewConfirmDialog())
	case ModeInput:
		b.WriteString("\n")
		b.WriteString(m.viewInputDialog())
	}

	b.WriteString("\n")
	b.WriteString(NewStatusLine(m.width-4, &m.styles).Render(m.GetStatusInfo()))

	return b.String()
}

// viewHeader renders the header with the board title and task counts.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("Kanban")

	var countText string
	if m.state != nil {
		countText = fmt.Sprintf("%d tasks in %d columns, %d archived",
			m.state.Board.TaskCount(), len(m.state.Board), len(m.state.Archive))
	}
	rightText := lipgloss.NewStyle().Foreground(Colors.Muted).Render(countText)

	headerWidth := max(m.width-6, 40)
	spacing := max(headerWidth-lipgloss.Width(title)-lipgloss.Width(rightText), 1)

	return m.styles.Header.Render(title + strings.Repeat(" ", spacing) + rightText)
}

// viewBoard renders the columns side by side.
func (m *Model) viewBoard() string {
	if m.state == nil {
		return m.styles.ColumnEmpty.Render("Loading board...")
	}
	if len(m.state.Board) == 0 {
		return m.styles.ColumnEmpty.Render("No columns. Press c to add one.")
	}

	width := m.columnWidth()
	visible := m.visibleCards()
	cols := make([]string, 0, len(m.state.Board))
	for i := range m.state.Board {
		cols = append(cols, m.renderColumn(i, width, visible))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// columnWidth returns the width of each column, excluding its border.
func (m *Model) columnWidth() int {
	n := max(len(m.state.Board), 1)
	// Each column spends 4 cells on border and padding.
	return max((m.width-4)/n-4, minColumnWidth)
}

// visibleCards returns how many cards fit in a column.
func (m *Model) visibleCards() int {
	return max((m.height-12)/cardHeight, 3)
}

// renderColumn renders one column with a scroll window around the cursor.
func (m *Model) renderColumn(idx, width, visible int) string {
	col := m.state.Board[idx]
	focused := idx == m.col
	done := col.ID == m.completionColumn

	titleStyle := m.styles.ColumnTitle
	if done {
		titleStyle = m.styles.ColumnTitleDone
	}
	inner := width - 2 // Style width includes horizontal padding
	header := titleStyle.Render(truncate(col.Title, inner-6)) + " " +
		m.styles.ColumnCount.Render(fmt.Sprintf("(%d)", len(col.Tasks)))

	lines := []string{header, ""}
	if len(col.Tasks) == 0 {
		lines = append(lines, m.styles.ColumnEmpty.Render("empty"))
	}

	start := 0
	if focused && m.row >= visible {
		start = m.row - visible + 1
	}
	end := min(start+visible, len(col.Tasks))
	if start > 0 {
		lines = append(lines, m.styles.ColumnCount.Render(fmt.Sprintf("↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderCard(&col.Tasks[i], focused && i == m.row, done, inner))
	}
	if rest := len(col.Tasks) - end; rest > 0 {
		lines = append(lines, m.styles.ColumnCount.Render(fmt.Sprintf("↓ %d more", rest)))
	}

	style := m.styles.Column
	if focused {
		style = m.styles.ColumnFocused
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// renderCard renders a task as a title line and a meta line.
func (m *Model) renderCard(task *domain.Task, selected, done bool, width int) string {
	cursor := m.styles.CursorNormal.Render("  ")
	titleStyle := m.styles.CardTitle
	metaStyle := m.styles.CardMeta
	if selected {
		cursor = m.styles.CursorSelected.Render("> ")
		titleStyle = m.styles.CardTitleSelected
		metaStyle = m.styles.CardMetaSelected
	} else if done {
		titleStyle = m.styles.CardTitleDone
	}

	title := cursor + titleStyle.Render(truncate(task.Title, width-2))

	meta := []string{m.styles.PriorityStyle(task.Priority).Render(PriorityIcon(task.Priority))}
	if task.DueDate != nil {
		due := task.DueDate.String()
		if !done && task.DueDate.Before(m.today) {
			meta = append(meta, m.styles.Overdue.Render(due))
		} else {
			meta = append(meta, metaStyle.Render(due))
		}
	}
	if len(task.Subtasks) > 0 {
		meta = append(meta, metaStyle.Render(fmt.Sprintf("%d/%d", task.CompletedSubtasks(), len(task.Subtasks))))
	}
	if len(task.Tags) > 0 {
		meta = append(meta, metaStyle.Render(truncate("#"+strings.Join(task.Tags, " #"), width/2)))
	}

	return title + "\n  " + strings.Join(meta, " ")
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// viewConfirmDialog renders the confirmation dialog.
func (m *Model) viewConfirmDialog() string {
	var action, target string

	switch m.confirmAction {
	case ConfirmNone:
		return ""
	case ConfirmDeleteTask:
		action = "Delete"
		target = "task " + m.targetID
		if m.state != nil {
			if t := m.state.Board.Task(m.targetID); t != nil {
				target = fmt.Sprintf("task %q", t.Title)
			}
		}
	case ConfirmDeleteColumn:
		action = "Delete"
		target = "column " + m.targetID
		if m.state != nil {
			if c := m.state.Board.Column(m.targetID); c != nil {
				target = fmt.Sprintf("column %q", c.Title)
			}
		}
	}

	prompt := "This action cannot be undone."
	if m.confirmAction == ConfirmDeleteColumn {
		if dst := m.mergeTarget(m.targetID); dst != nil {
			prompt = fmt.Sprintf("Its tasks move to %q.", dst.Title)
		}
	}

	title := m.styles.DialogTitle.Foreground(Colors.Error).Render(fmt.Sprintf("%s %s?", action, target))
	yesBtn := m.styles.HelpKey.Render("[ y ] Confirm")
	noBtn := m.styles.Footer.Render("[ n ] Cancel")
	buttons := lipgloss.JoinHorizontal(lipgloss.Left, yesBtn, "  ", noBtn)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.styles.DialogPrompt.Render(prompt),
		"",
		buttons,
	)

	return m.styles.Dialog.BorderForeground(Colors.Error).Render(content)
}

// mergeTarget returns the column that receives the tasks of a deleted column.
func (m *Model) mergeTarget(columnID string) *domain.Column {
	if m.state == nil {
		return nil
	}
	for i := range m.state.Board {
		if m.state.Board[i].ID != columnID {
			return &m.state.Board[i]
		}
	}
	return nil
}

// viewInputDialog renders the text input dialog.
func (m *Model) viewInputDialog() string {
	title := m.styles.DialogTitle.Render("◆ " + m.inputAction.Prompt())
	input := m.input.View()
	hint := m.styles.FooterKey.Render("enter") + m.styles.Footer.Render(" save  ") +
		m.styles.FooterKey.Render("esc") + m.styles.Footer.Render(" cancel")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", input, "", hint)
	return m.styles.Dialog.Render(content)
}

// viewHelp renders the help view.
func (m *Model) viewHelp() string {
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")

	m.help.ShowAll = true
	content := m.help.View(m.keys)

	return m.styles.Dialog.
		BorderForeground(Colors.Accent).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", content, "", m.styles.Footer.Render("[esc] close")))
}

// viewDetail renders the task detail or project insight view.
func (m *Model) viewDetail() string {
	heading := "Task Details"
	if m.insight != "" {
		heading = "Project Insight"
	}

	var b strings.Builder
	b.WriteString(m.styles.DetailTitle.Render(heading))
	b.WriteString("\n")
	b.WriteString(m.detailViewport.View())
	b.WriteString("\n\n")
	b.WriteString(NewStatusLine(m.width-8, &m.styles).Render(m.GetStatusInfo()))

	return m.styles.Dialog.
		Width(m.width - 4).
		BorderForeground(Colors.Muted).
		Render(b.String())
}
