package tui

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kanban-board/kanban/internal/app"
	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/testutil"
	"github.com/kanban-board/kanban/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 10, 15, 10, 0, 0, 0, time.UTC)

// newTestContainer creates an app.Container with mock dependencies.
func newTestContainer(store *testutil.MockBoardStore) *app.Container {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return app.NewWithDeps(
		app.Config{ProjectRoot: "/work", KanbanDir: "/work/.kanban", StorePath: "/work/.kanban/board.json"},
		store,
		store,
		&testutil.MockClock{NowTime: testNow},
		testutil.NewSequentialIDs(),
		logger,
	)
}

// newTestModel creates a sized Model with the board already loaded.
func newTestModel(t *testing.T, store *testutil.MockBoardStore) (*Model, *app.Container) {
	t.Helper()
	c := newTestContainer(store)
	m := New(c)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	drain(m, m.Init())
	return m, c
}

// drain runs cmd and feeds the resulting messages back into the model
// until no command is left.
func drain(m *Model, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				drain(m, c)
			}
			return
		}
		if msg == nil {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends a key and runs every command it produces.
func press(m *Model, keys ...string) {
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		drain(m, cmd)
	}
}

// submit fills the open input dialog and presses enter.
func submit(m *Model, value string) {
	m.input.SetValue(value)
	press(m, "enter")
}

func selectedID(m *Model) string {
	if task := m.SelectedTask(); task != nil {
		return task.ID
	}
	return ""
}

func TestInit_LoadsBoard(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	require.NotNil(t, m.state)
	assert.Len(t, m.state.Board, 3)
	assert.Equal(t, "done", m.completionColumn)
	assert.Equal(t, domain.Date{Year: 2024, Month: time.October, Day: 15}, m.today)
	assert.Equal(t, "task-a", selectedID(m))
	assert.Equal(t, 0, store.SaveCount)
}

func TestInit_LoadError(t *testing.T) {
	store := &testutil.MockBoardStore{LoadErr: assert.AnError}
	m, _ := newTestModel(t, store)

	assert.ErrorIs(t, m.err, assert.AnError)
	assert.Nil(t, m.state)
	assert.Nil(t, m.SelectedTask())
}

func TestNavigation(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	tests := []struct {
		key     string
		wantID  string
		wantCol int
	}{
		{"j", "task-b", 0},
		{"j", "task-b", 0}, // Clamped at the bottom
		{"k", "task-a", 0},
		{"k", "task-a", 0}, // Clamped at the top
		{"l", "", 1},       // Empty column
		{"l", "task-c", 2},
		{"l", "task-c", 2}, // Clamped at the last column
		{"h", "", 1},
		{"h", "task-a", 0},
	}

	for i, tt := range tests {
		press(m, tt.key)
		assert.Equal(t, tt.wantCol, m.col, "step %d (%s)", i, tt.key)
		assert.Equal(t, tt.wantID, selectedID(m), "step %d (%s)", i, tt.key)
	}
}

func TestNewTask(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "n")
	assert.Equal(t, ModeInput, m.mode)
	assert.Equal(t, InputNewTask, m.inputAction)
	assert.Equal(t, "todo", m.targetID)

	submit(m, "Ship it")

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, InputNone, m.inputAction)
	todo := store.State.Board[0]
	require.Len(t, todo.Tasks, 3)
	assert.Equal(t, "Ship it", todo.Tasks[0].Title)
	assert.Equal(t, todo.Tasks[0].ID, selectedID(m))
	assert.Contains(t, m.status, "Ship it")
}

func TestNewTask_InNonFirstColumn(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "l", "n")
	submit(m, "Review PR")

	inprogress := store.State.Board[1]
	require.Len(t, inprogress.Tasks, 1)
	assert.Equal(t, "Review PR", inprogress.Tasks[0].Title)
	assert.Equal(t, 1, m.col)
}

func TestNewTask_BlankTitleKeepsDialogOpen(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "n")
	submit(m, "   ")

	assert.Equal(t, ModeInput, m.mode)
	assert.Equal(t, 0, store.SaveCount)
}

func TestInput_EscapeCancels(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "n")
	m.input.SetValue("Never saved")
	press(m, "esc")

	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, 0, store.SaveCount)
}

func TestRenameTask(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "j", "e")
	assert.Equal(t, "Fix login redirect", m.input.Value())

	submit(m, "Fix logout redirect")

	assert.Equal(t, "Fix logout redirect", store.State.Board.Task("task-b").Title)
	assert.Equal(t, "task-b", selectedID(m))
}

func TestDeleteTask(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "d")
	assert.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmDeleteTask, m.confirmAction)

	press(m, "n")
	assert.Equal(t, ModeNormal, m.mode)
	assert.NotNil(t, store.State.Board.Task("task-a"))

	press(m, "d", "y")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Nil(t, store.State.Board.Task("task-a"))
	assert.Equal(t, "task-b", selectedID(m))
	assert.Equal(t, "Deleted task", m.status)
}

func TestArchiveTask(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "a")

	require.Len(t, store.State.Archive, 1)
	assert.Equal(t, "task-a", store.State.Archive[0].ID)
	assert.Equal(t, `Archived task "Write release notes"`, store.State.Activity[0].Message)
	assert.Equal(t, "task-b", selectedID(m))
}

func TestCyclePriority(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "p")
	assert.Equal(t, domain.PriorityHigh, store.State.Board.Task("task-a").Priority)

	press(m, "p", "p")
	assert.Equal(t, domain.PriorityLow, store.State.Board.Task("task-a").Priority)
	assert.Equal(t, "Priority set to Low", m.status)
}

func TestNextPriority(t *testing.T) {
	tests := []struct {
		in   domain.Priority
		want domain.Priority
	}{
		{domain.PriorityLow, domain.PriorityMedium},
		{domain.PriorityMedium, domain.PriorityHigh},
		{domain.PriorityHigh, domain.PriorityCritical},
		{domain.PriorityCritical, domain.PriorityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nextPriority(tt.in), "after %s", tt.in)
	}
}

func TestMoveTaskAcrossColumns(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "L")

	inprogress := store.State.Board[1]
	require.Len(t, inprogress.Tasks, 1)
	assert.Equal(t, "task-a", inprogress.Tasks[0].ID)
	assert.Equal(t, "inprogress", inprogress.Tasks[0].ColumnID)
	assert.Equal(t, `Moved "Write release notes" from To Do to In Progress`, store.State.Activity[0].Message)
	assert.Equal(t, 1, m.col)
	assert.Equal(t, "task-a", selectedID(m))

	press(m, "L")
	done := store.State.Board[2]
	require.Len(t, done.Tasks, 2)
	assert.Equal(t, "task-a", done.Tasks[0].ID)

	saves := store.SaveCount
	press(m, "L") // Already in the last column
	assert.Equal(t, saves, store.SaveCount)

	press(m, "H")
	assert.Equal(t, "task-a", store.State.Board[1].Tasks[0].ID)
}

func TestMoveTaskAcrossColumns_FirstColumnIsNoop(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "H")

	assert.Equal(t, 0, store.SaveCount)
	assert.Equal(t, "task-a", selectedID(m))
}

func TestReorderTask(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "J")
	todo := store.State.Board[0]
	assert.Equal(t, []string{"task-b", "task-a"}, []string{todo.Tasks[0].ID, todo.Tasks[1].ID})
	assert.Equal(t, 1, m.row)
	assert.Equal(t, "task-a", selectedID(m))
	assert.Empty(t, store.State.Activity, "reordering within a column is not logged")

	saves := store.SaveCount
	press(m, "J") // Already at the bottom
	assert.Equal(t, saves, store.SaveCount)

	press(m, "K")
	todo = store.State.Board[0]
	assert.Equal(t, []string{"task-a", "task-b"}, []string{todo.Tasks[0].ID, todo.Tasks[1].ID})
	assert.Equal(t, 0, m.row)
}

func TestColumnOperations(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "c")
	assert.Equal(t, InputNewColumn, m.inputAction)
	submit(m, "Review")
	require.Len(t, store.State.Board, 4)
	assert.Equal(t, "Review", store.State.Board[3].Title)

	press(m, "R")
	assert.Equal(t, "To Do", m.input.Value())
	submit(m, "Backlog")
	assert.Equal(t, "Backlog", store.State.Board[0].Title)
	assert.Equal(t, `Renamed column "To Do" to "Backlog"`, store.State.Activity[0].Message)

	press(m, "l", "X")
	assert.Equal(t, ConfirmDeleteColumn, m.confirmAction)
	assert.Equal(t, "inprogress", m.targetID)
	press(m, "y")
	require.Len(t, store.State.Board, 3)
	assert.Nil(t, store.State.Board.Column("inprogress"))
	assert.Contains(t, m.status, "moved to Backlog")
}

func TestDeleteColumn_TasksMoveToFirstColumn(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "l", "l", "X", "y")

	todo := store.State.Board[0]
	require.Len(t, todo.Tasks, 3)
	assert.Equal(t, "task-c", todo.Tasks[2].ID)
	assert.Equal(t, "todo", todo.Tasks[2].ColumnID)
}

func TestDeleteColumn_LastColumnError(t *testing.T) {
	store := &testutil.MockBoardStore{State: &domain.BoardState{
		Board: domain.Board{{ID: "todo", Title: "To Do"}},
	}}
	m, _ := newTestModel(t, store)

	press(m, "X", "y")

	assert.ErrorIs(t, m.err, domain.ErrLastColumn)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, store.State.Board, 1)
}

func TestAssist_AppliesResult(t *testing.T) {
	tests := []struct {
		check func(t *testing.T, task *domain.Task)
		key   string
		op    string
	}{
		{
			key: "s",
			op:  "subtasks",
			check: func(t *testing.T, task *domain.Task) {
				require.Len(t, task.Subtasks, 2)
				assert.Equal(t, "Collect merged PRs", task.Subtasks[0].Text)
			},
		},
		{
			key: "P",
			op:  "priority",
			check: func(t *testing.T, task *domain.Task) {
				assert.Equal(t, domain.PriorityCritical, task.Priority)
			},
		},
		{
			key: "D",
			op:  "description",
			check: func(t *testing.T, task *domain.Task) {
				assert.Equal(t, "Summarize changes since the last release.", task.Description)
			},
		},
		{
			key: "t",
			op:  "tags",
			check: func(t *testing.T, task *domain.Task) {
				assert.Equal(t, []string{"docs", "release"}, task.Tags)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			store := &testutil.MockBoardStore{State: testutil.SampleState()}
			m, c := newTestModel(t, store)
			c.Assistant = &testutil.MockAssistant{
				Subtasks:    []string{"Collect merged PRs", "Draft notes"},
				Priority:    domain.PriorityCritical,
				Description: "Summarize changes since the last release.",
				Tags:        []string{"docs", "release"},
			}

			_, cmd := m.Update(keyMsg(tt.key))
			assert.Equal(t, 1, m.pending)
			require.NotNil(t, cmd)
			drain(m, cmd)

			assert.Equal(t, 0, m.pending)
			assert.NoError(t, m.err)
			assert.Contains(t, m.status, tt.op)
			tt.check(t, store.State.Board.Task("task-a"))
			tt.check(t, m.SelectedTask())
		})
	}
}

func TestAssist_NoAssistant(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "t")

	assert.ErrorIs(t, m.err, domain.ErrNoAssistant)
	assert.Equal(t, 0, m.pending)
	assert.Equal(t, 0, store.SaveCount)
}

func TestAssist_TaskDeletedWhileWaiting(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, c := newTestModel(t, store)
	c.Assistant = &testutil.MockAssistant{
		Description: "Too late",
		BeforeReturn: func() {
			err := c.DeleteTaskUseCase().Execute(context.Background(), usecase.DeleteTaskInput{TaskID: "task-a"})
			require.NoError(t, err)
		},
	}

	press(m, "D")

	assert.ErrorIs(t, m.err, domain.ErrStaleTask)
	assert.Nil(t, store.State.Board.Task("task-a"))
	assert.Equal(t, 0, m.pending)
}

func TestAssist_ErrorKeepsOpenDialog(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, c := newTestModel(t, store)
	c.Assistant = &testutil.MockAssistant{Err: &domain.AssistantError{Op: "suggest priority", Msg: "request failed"}}

	_, assistCmd := m.Update(keyMsg("P"))
	press(m, "n")
	require.Equal(t, ModeInput, m.mode)

	drain(m, assistCmd)

	var aerr *domain.AssistantError
	assert.ErrorAs(t, m.err, &aerr)
	assert.Equal(t, ModeInput, m.mode, "background failure must not close the dialog")
	assert.Equal(t, InputNewTask, m.inputAction)
	assert.Equal(t, 0, m.pending)
}

func TestAssist_NoTaskSelected(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, c := newTestModel(t, store)
	assistant := &testutil.MockAssistant{}
	c.Assistant = assistant

	_, cmd := m.Update(keyMsg("l"))
	drain(m, cmd)
	_, cmd = m.Update(keyMsg("s"))

	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.pending)
	assert.Empty(t, assistant.Calls)
}

func TestProjectInsight(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, c := newTestModel(t, store)
	assistant := &testutil.MockAssistant{Insight: "Finish the CI work first."}
	c.Assistant = assistant

	press(m, "i")

	assert.Equal(t, ModeDetail, m.mode)
	assert.Equal(t, "Finish the CI work first.", m.insight)
	assert.Equal(t, 3, assistant.LastSummary.TotalTasks)
	assert.Contains(t, m.View(), "Project Insight")
	assert.Contains(t, m.View(), "Finish the CI work first.")

	press(m, "esc")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.insight)
}

func TestDetailView(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "enter")
	require.Equal(t, ModeDetail, m.mode)
	view := m.View()
	assert.Contains(t, view, "Task Details")
	assert.Contains(t, view, "Write release notes")
	assert.Contains(t, view, "task-a")

	press(m, "j", "k", "g", "G")
	assert.Equal(t, ModeDetail, m.mode)

	press(m, "esc")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestDetailView_EmptyColumnIgnored(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "l", "enter")

	assert.Equal(t, ModeNormal, m.mode)
}

func TestHelpMode(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, "?")
	require.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")
	assert.Contains(t, m.View(), "new task")

	_, cmd := m.Update(keyMsg("q"))
	assert.Nil(t, cmd, "q closes help instead of quitting")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			store := &testutil.MockBoardStore{State: testutil.SampleState()}
			m, _ := newTestModel(t, store)

			_, cmd := m.Update(keyMsg(k))

			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestRefresh_PicksUpExternalChanges(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	store.State.Board[1].Tasks = []domain.Task{testutil.NewTask("task-x", "inprogress", "Added elsewhere")}
	press(m, "r")

	assert.NotNil(t, m.state.Board.Task("task-x"))
}

func TestKeyPress_ClearsErrorAndStatus(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)
	m.err = assert.AnError
	m.status = "Added"

	press(m, "j")

	assert.NoError(t, m.err)
	assert.Empty(t, m.status)
}

func TestBoardReload_ClampsCursor(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)
	press(m, "j")
	require.Equal(t, 1, m.row)

	store.State.Board[0].Tasks = store.State.Board[0].Tasks[:1]
	press(m, "r")

	assert.Equal(t, 0, m.row)
	assert.Equal(t, "task-a", selectedID(m))
}

func TestMoveColumn(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	m, _ := newTestModel(t, store)

	press(m, ">")

	ids := []string{store.State.Board[0].ID, store.State.Board[1].ID, store.State.Board[2].ID}
	assert.Equal(t, []string{"inprogress", "todo", "done"}, ids)
	assert.Equal(t, 1, m.col)
	assert.Equal(t, "task-a", selectedID(m))

	saves := store.SaveCount
	press(m, "<", "<")
	assert.Equal(t, "todo", store.State.Board[0].ID)
	assert.Equal(t, 0, m.col)
	assert.Equal(t, saves+1, store.SaveCount, "moving past the edge is a no-op")
}
