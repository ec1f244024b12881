package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kanban-board/kanban/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.mode == ModeDetail {
			m.initDetailViewport()
		}
		return m, nil

	case MsgBoardLoaded:
		m.state = msg.State
		m.completionColumn = msg.CompletionColumn
		m.today = msg.Today
		if m.focusTaskID != "" {
			m.focusTask(m.focusTaskID)
			m.focusTaskID = ""
		}
		m.clampCursor()
		if m.mode == ModeDetail {
			if m.insight == "" && m.SelectedTask() == nil {
				m.mode = ModeNormal
			} else {
				m.detailViewport.SetContent(m.detailContent(m.detailViewport.Width))
			}
		}
		return m, nil

	case MsgBoardChanged:
		m.closeDialog()
		m.status = msg.Status
		m.focusTaskID = msg.FocusTaskID
		return m, m.loadBoard()

	case MsgAssistDone:
		m.pending = max(m.pending-1, 0)
		m.status = fmt.Sprintf("Assistant updated %s of %s", msg.Op, msg.TaskID)
		return m, m.loadBoard()

	case MsgInsight:
		m.pending = max(m.pending-1, 0)
		m.insight = msg.Text
		m.closeDialog()
		m.mode = ModeDetail
		m.initDetailViewport()
		return m, nil

	case MsgError:
		m.err = msg.Err
		if msg.Assist {
			// Leave any open dialog alone; the request ran in the background.
			m.pending = max(m.pending-1, 0)
			return m, nil
		}
		m.closeDialog()
		return m, nil
	}

	return m, nil
}

// closeDialog returns to normal mode and resets dialog state.
func (m *Model) closeDialog() {
	if m.mode == ModeConfirm || m.mode == ModeInput {
		m.mode = ModeNormal
	}
	m.confirmAction = ConfirmNone
	m.inputAction = InputNone
	m.targetID = ""
	m.input.Reset()
	m.input.Blur()
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear error and status on any key press
	m.err = nil
	m.status = ""

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeInput:
		return m.handleInputMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeDetail:
		return m.handleDetailMode(msg)
	}

	return m, nil
}

// handleNormalMode handles keys in normal mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.row--
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.row++
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.col--
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.col++
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.MoveLeft):
		return m, m.moveAcross(-1)

	case key.Matches(msg, m.keys.MoveRight):
		return m, m.moveAcross(1)

	case key.Matches(msg, m.keys.MoveUp):
		return m, m.reorder(-1)

	case key.Matches(msg, m.keys.MoveDown):
		return m, m.reorder(1)

	case key.Matches(msg, m.keys.New):
		if col := m.SelectedColumn(); col != nil {
			m.openInput(InputNewTask, col.ID, "", "Task title")
		}
		return m, nil

	case key.Matches(msg, m.keys.Rename):
		if task := m.SelectedTask(); task != nil {
			m.openInput(InputRenameTask, task.ID, task.Title, "Task title")
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if task := m.SelectedTask(); task != nil {
			m.openConfirm(ConfirmDeleteTask, task.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Archive):
		if task := m.SelectedTask(); task != nil {
			return m, m.archiveTask(task.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Priority):
		if task := m.SelectedTask(); task != nil {
			p := nextPriority(task.Priority)
			return m, m.editTask(task.ID, fmt.Sprintf("Priority set to %s", p), domain.SetPriority{Priority: p})
		}
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		if m.SelectedTask() != nil {
			m.insight = ""
			m.mode = ModeDetail
			m.initDetailViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.NewColumn):
		m.openInput(InputNewColumn, "", "", "Column title")
		return m, nil

	case key.Matches(msg, m.keys.RenameColumn):
		if col := m.SelectedColumn(); col != nil {
			m.openInput(InputRenameColumn, col.ID, col.Title, "Column title")
		}
		return m, nil

	case key.Matches(msg, m.keys.DeleteColumn):
		if col := m.SelectedColumn(); col != nil {
			m.openConfirm(ConfirmDeleteColumn, col.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.ColumnLeft):
		return m, m.shiftColumn(-1)

	case key.Matches(msg, m.keys.ColumnRight):
		return m, m.shiftColumn(1)

	case key.Matches(msg, m.keys.Subtasks):
		return m, m.startAssist(opSubtasks)

	case key.Matches(msg, m.keys.Suggest):
		return m, m.startAssist(opPriority)

	case key.Matches(msg, m.keys.Describe):
		return m, m.startAssist(opDescription)

	case key.Matches(msg, m.keys.Tags):
		return m, m.startAssist(opTags)

	case key.Matches(msg, m.keys.Insight):
		m.pending++
		return m, m.projectInsight()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadBoard()

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil
	}

	return m, nil
}

// moveAcross moves the selected task to the top of the neighbouring column.
func (m *Model) moveAcross(delta int) tea.Cmd {
	task := m.SelectedTask()
	if task == nil {
		return nil
	}
	dst := m.col + delta
	if dst < 0 || dst >= len(m.state.Board) {
		return nil
	}
	return m.moveTask(task.ID, m.state.Board[dst].ID, 0)
}

// reorder moves the selected task one position within its column.
func (m *Model) reorder(delta int) tea.Cmd {
	task := m.SelectedTask()
	if task == nil {
		return nil
	}
	col := m.SelectedColumn()
	dst := m.row + delta
	if dst < 0 || dst >= len(col.Tasks) {
		return nil
	}
	return m.moveTask(task.ID, col.ID, dst)
}

// shiftColumn moves the current column one position left or right.
func (m *Model) shiftColumn(delta int) tea.Cmd {
	col := m.SelectedColumn()
	if col == nil {
		return nil
	}
	dst := m.col + delta
	if dst < 0 || dst >= len(m.state.Board) {
		return nil
	}
	m.col = dst
	return m.moveColumn(col.ID, dst)
}

// startAssist dispatches an assistant request for the selected task.
func (m *Model) startAssist(op string) tea.Cmd {
	task := m.SelectedTask()
	if task == nil {
		return nil
	}
	m.pending++
	return m.assist(op, task.ID)
}

// openInput switches to input mode for the given action.
func (m *Model) openInput(action InputAction, targetID, value, placeholder string) {
	m.mode = ModeInput
	m.inputAction = action
	m.targetID = targetID
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

// openConfirm switches to confirm mode for the given action.
func (m *Model) openConfirm(action ConfirmAction, targetID string) {
	m.mode = ModeConfirm
	m.confirmAction = action
	m.targetID = targetID
}

// handleConfirmMode handles keys in confirm mode.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N":
		m.closeDialog()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		switch m.confirmAction {
		case ConfirmNone:
			// Nothing to confirm
		case ConfirmDeleteTask:
			return m, m.deleteTask(m.targetID)
		case ConfirmDeleteColumn:
			return m, m.deleteColumn(m.targetID)
		}
	}

	return m, nil
}

// handleInputMode handles keys in text input mode.
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeDialog()
		return m, nil

	case msg.Type == tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			return m, nil
		}
		switch m.inputAction {
		case InputNone:
			m.closeDialog()
			return m, nil
		case InputNewTask:
			return m, m.createTask(m.targetID, value)
		case InputRenameTask:
			return m, m.editTask(m.targetID, "Renamed task", domain.SetTitle{Title: value})
		case InputNewColumn:
			return m, m.addColumn(value)
		case InputRenameColumn:
			return m, m.renameColumn(m.targetID, value)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleHelpMode handles keys in help mode.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		return m, nil
	}

	return m, nil
}

// handleDetailMode handles keys in the detail view.
func (m *Model) handleDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Detail), msg.String() == "q":
		m.mode = ModeNormal
		m.insight = ""
		return m, nil

	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case msg.String() == "j", msg.String() == "down":
		m.detailViewport.ScrollDown(1)
		return m, nil

	case msg.String() == "k", msg.String() == "up":
		m.detailViewport.ScrollUp(1)
		return m, nil

	case msg.String() == "g":
		m.detailViewport.GotoTop()
		return m, nil

	case msg.String() == "G":
		m.detailViewport.GotoBottom()
		return m, nil
	}

	// Forward other keys to viewport for page up/down
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}
