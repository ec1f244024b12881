package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kanban-board/kanban/internal/app"
	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/usecase"
)

// Assistant operation names, shown in the status line.
const (
	opSubtasks    = "subtasks"
	opPriority    = "priority"
	opDescription = "description"
	opTags        = "tags"
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	state     *domain.BoardState
	err       error

	// Components (structs with pointers)
	keys           KeyMap
	styles         Styles
	help           help.Model
	detailViewport viewport.Model
	input          textinput.Model
	today          domain.Date

	// Text state
	status           string
	insight          string
	completionColumn string
	focusTaskID      string
	targetID         string // Task or column the open dialog acts on

	// Numeric state (smaller types last)
	mode          Mode
	confirmAction ConfirmAction
	inputAction   InputAction
	width         int
	height        int
	col           int
	row           int
	pending       int // In-flight assistant requests
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.CharLimit = 200

	return &Model{
		container: c,
		mode:      ModeNormal,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		input:     ti,
	}
}

// Run starts the interactive board and blocks until the user quits.
func Run(c *app.Container) error {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadBoard()
}

// loadBoard returns a command that reads the board from the store.
func (m *Model) loadBoard() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowBoardUseCase().Execute(context.Background())
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardLoaded{
			State:            out.State,
			CompletionColumn: out.Options.CompletionColumn,
			Today:            domain.DateOf(m.container.Clock.Now()),
		}
	}
}

// SelectedColumn returns the column under the cursor, or nil if the board is empty.
func (m *Model) SelectedColumn() *domain.Column {
	if m.state == nil || m.col < 0 || m.col >= len(m.state.Board) {
		return nil
	}
	return &m.state.Board[m.col]
}

// SelectedTask returns the currently selected task, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	col := m.SelectedColumn()
	if col == nil || m.row < 0 || m.row >= len(col.Tasks) {
		return nil
	}
	return &col.Tasks[m.row]
}

// clampCursor keeps the cursor inside the board.
func (m *Model) clampCursor() {
	if m.state == nil || len(m.state.Board) == 0 {
		m.col, m.row = 0, 0
		return
	}
	m.col = max(0, min(m.col, len(m.state.Board)-1))
	m.row = max(0, min(m.row, len(m.state.Board[m.col].Tasks)-1))
}

// focusTask moves the cursor onto a task if it is on the board.
func (m *Model) focusTask(taskID string) {
	if m.state == nil {
		return
	}
	if ci, ti := m.state.Board.FindTask(taskID); ci >= 0 {
		m.col, m.row = ci, ti
	}
}

// createTask adds a task at the top of a column.
func (m *Model) createTask(columnID, title string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.AddTaskUseCase().Execute(context.Background(), usecase.AddTaskInput{
			Column: columnID,
			Title:  title,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardChanged{Status: fmt.Sprintf("Added %q", out.Task.Title), FocusTaskID: out.Task.ID}
	}
}

// editTask applies field updates to a task.
func (m *Model) editTask(taskID, status string, updates ...domain.FieldUpdate) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.EditTaskUseCase().Execute(context.Background(), usecase.EditTaskInput{
			TaskID:  taskID,
			Updates: updates,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardChanged{Status: status, FocusTaskID: taskID}
	}
}

// moveTask moves a task to a column position.
func (m *Model) moveTask(taskID, columnID string, index int) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.MoveTaskUseCase().Execute(context.Background(), usecase.MoveTaskInput{
			TaskID: taskID,
			Column: columnID,
			Index:  index,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardChanged{FocusTaskID: taskID}
	}
}

// deleteTask removes a task from the board.
func (m *Model) deleteTask(taskID string) tea.Cmd {
	return func() tea.Msg {
		err := m.container.DeleteTaskUseCase().Execute(context.Background(), usecase.DeleteTaskInput{TaskID: taskID})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardChanged{Status: "Deleted task"}
	}
}

// archiveTask moves a task into the archive.
func (m *Model) archiveTask(taskID string) tea.Cmd {
	return func() tea.Msg {
		err := m.container.ArchiveTaskUseCase().Execute(context.Background(), usecase.ArchiveTaskInput{TaskID: taskID})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardChanged{Status: "Archived task"}
	}
}

// addColumn appends a column to the board.
func (m *Model) addColumn(title string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.AddColumnUseCase().Execute(context.Background(), usecase.AddColumnInput{Title: title})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardChanged{Status: fmt.Sprintf("Added column %q", out.Column.Title)}
	}
}

// renameColumn changes a column title.
func (m *Model) renameColumn(columnID, title string) tea.Cmd {
	return func() tea.Msg {
		err := m.container.RenameColumnUseCase().Execute(context.Background(), usecase.RenameColumnInput{
			Column: columnID,
			Title:  title,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardChanged{Status: fmt.Sprintf("Renamed column to %q", strings.TrimSpace(title))}
	}
}

// deleteColumn removes a column and merges its tasks into the first column.
func (m *Model) deleteColumn(columnID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.DeleteColumnUseCase().Execute(context.Background(), usecase.DeleteColumnInput{Column: columnID})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardChanged{Status: fmt.Sprintf("Deleted column, %d task(s) moved to %s", out.Moved, out.MergedInto.Title)}
	}
}

// moveColumn reorders a column.
func (m *Model) moveColumn(columnID string, index int) tea.Cmd {
	return func() tea.Msg {
		err := m.container.MoveColumnUseCase().Execute(context.Background(), usecase.MoveColumnInput{
			Column: columnID,
			Index:  index,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardChanged{}
	}
}

// assist runs an assistant operation on a task in the background.
// The board stays interactive while the request is in flight.
func (m *Model) assist(op, taskID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		in := usecase.AssistTaskInput{TaskID: taskID}
		var err error
		switch op {
		case opSubtasks:
			_, err = m.container.GenerateSubtasksUseCase().Execute(ctx, in)
		case opPriority:
			_, err = m.container.SuggestPriorityUseCase().Execute(ctx, in)
		case opDescription:
			_, err = m.container.GenerateDescriptionUseCase().Execute(ctx, in)
		case opTags:
			_, err = m.container.SuggestTagsUseCase().Execute(ctx, in)
		default:
			err = fmt.Errorf("unknown assistant operation %q", op)
		}
		if err != nil {
			return MsgError{Err: err, Assist: true}
		}
		return MsgAssistDone{Op: op, TaskID: taskID}
	}
}

// projectInsight asks the assistant for advice on the whole board.
func (m *Model) projectInsight() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ProjectInsightUseCase().Execute(context.Background())
		if err != nil {
			return MsgError{Err: err, Assist: true}
		}
		return MsgInsight{Text: out.Insight}
	}
}

// nextPriority returns the priority after p, wrapping around.
func nextPriority(p domain.Priority) domain.Priority {
	all := domain.AllPriorities()
	i := slices.Index(all, p)
	return all[(i+1)%len(all)]
}

// initDetailViewport sizes the detail viewport and fills it.
func (m *Model) initDetailViewport() {
	width := max(m.width-8, 20)
	height := max(m.height-8, 5)
	m.detailViewport = viewport.New(width, height)
	m.detailViewport.SetContent(m.detailContent(width))
}

// detailContent renders the body of the detail view.
func (m *Model) detailContent(width int) string {
	if m.insight != "" {
		return m.styles.DetailDesc.Width(width).Render(m.insight)
	}
	task := m.SelectedTask()
	if task == nil {
		return "No task selected"
	}
	col := m.SelectedColumn()

	var b strings.Builder
	labelStyle := m.styles.DetailLabel

	b.WriteString(m.styles.CardTitleSelected.Render(task.Title))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("ID", task.ID)
	row("Column", col.Title)
	b.WriteString(labelStyle.Render("Priority"))
	b.WriteString(m.styles.PriorityStyle(task.Priority).Render(string(task.Priority)))
	b.WriteString("\n")
	if task.DueDate != nil {
		row("Due", task.DueDate.String())
	}
	if len(task.Tags) > 0 {
		row("Tags", strings.Join(task.Tags, ", "))
	}

	if task.Description != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Description"))
		b.WriteString("\n")
		b.WriteString(m.styles.DetailDesc.Width(width).Render(task.Description))
		b.WriteString("\n")
	}

	if len(task.Subtasks) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s%d/%d\n", labelStyle.Render("Subtasks"), task.CompletedSubtasks(), len(task.Subtasks))
		for _, st := range task.Subtasks {
			mark := "[ ]"
			if st.Completed {
				mark = "[x]"
			}
			fmt.Fprintf(&b, "  %s %s\n", mark, st.Text)
		}
	}

	if len(task.Activity) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Activity"))
		b.WriteString("\n")
		for _, e := range task.Activity {
			fmt.Fprintf(&b, "  %s  %s\n", m.styles.Footer.Render(e.Timestamp.Format("2006-01-02 15:04")), e.Message)
		}
	}

	return b.String()
}
