package cli

import (
	"testing"

	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAICommand_TaskOperations(t *testing.T) {
	tests := []struct {
		check   func(t *testing.T, task domain.Task)
		name    string
		wantOut string
		args    []string
	}{
		{
			name:    "subtasks",
			args:    []string{"subtasks", "a"},
			wantOut: "Subtasks of Write release notes:\n  - Collect merged PRs\n  - Draft notes\n",
			check: func(t *testing.T, task domain.Task) {
				require.Len(t, task.Subtasks, 2)
				assert.Equal(t, "Collect merged PRs", task.Subtasks[0].Text)
				assert.False(t, task.Subtasks[0].Completed)
			},
		},
		{
			name:    "priority",
			args:    []string{"priority", "task-a"},
			wantOut: "Priority of Write release notes set to Critical\n",
			check: func(t *testing.T, task domain.Task) {
				assert.Equal(t, domain.PriorityCritical, task.Priority)
			},
		},
		{
			name:    "description",
			args:    []string{"description", "a"},
			wantOut: "Description of Write release notes:\nSummarize changes since the last release.\n",
			check: func(t *testing.T, task domain.Task) {
				assert.Equal(t, "Summarize changes since the last release.", task.Description)
			},
		},
		{
			name:    "tags",
			args:    []string{"tags", "a"},
			wantOut: "Tags of Write release notes: docs, release\n",
			check: func(t *testing.T, task domain.Task) {
				assert.Equal(t, []string{"docs", "release"}, task.Tags)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &testutil.MockBoardStore{State: testutil.SampleState()}
			container := newTestContainer(store)
			container.Assistant = &testutil.MockAssistant{
				Subtasks:    []string{"Collect merged PRs", "Draft notes"},
				Priority:    domain.PriorityCritical,
				Description: "Summarize changes since the last release.",
				Tags:        []string{"docs", "release"},
			}

			out, err := runCommand(t, newAICommand(container), tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out)
			tt.check(t, findTask(t, store, "task-a"))
		})
	}
}

func TestAICommand_AssistantError(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	container := newTestContainer(store)
	container.Assistant = &testutil.MockAssistant{
		Err: &domain.AssistantError{Op: "suggest priority", Msg: "request failed"},
	}

	_, err := runCommand(t, newAICommand(container), "priority", "a")

	require.Error(t, err)
	var aerr *domain.AssistantError
	assert.ErrorAs(t, err, &aerr)
	assert.Equal(t, 0, store.SaveCount)
	assert.Equal(t, domain.PriorityMedium, findTask(t, store, "task-a").Priority)
}

func TestAICommand_NoAssistant(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	container := newTestContainer(store)

	_, err := runCommand(t, newAICommand(container), "tags", "a")

	assert.ErrorIs(t, err, domain.ErrNoAssistant)
}

func TestAICommand_TaskDeletedWhileWaiting(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	container := newTestContainer(store)
	container.Assistant = &testutil.MockAssistant{
		Description: "Too late",
		BeforeReturn: func() {
			_, err := runCommand(t, newTaskCommand(container), "delete", "task-a")
			require.NoError(t, err)
		},
	}

	_, err := runCommand(t, newAICommand(container), "description", "a")

	assert.ErrorIs(t, err, domain.ErrStaleTask)
	assert.Nil(t, store.State.Board.Task("task-a"))
}

func TestAIInsightCommand(t *testing.T) {
	store := &testutil.MockBoardStore{State: testutil.SampleState()}
	container := newTestContainer(store)
	assistant := &testutil.MockAssistant{Insight: "Finish the CI work before starting new tasks."}
	container.Assistant = assistant

	out, err := runCommand(t, newAICommand(container), "insight", "--summary")

	require.NoError(t, err)
	assert.Contains(t, out, "Project Status Summary:")
	assert.Contains(t, out, "Finish the CI work before starting new tasks.")
	assert.Equal(t, 3, assistant.LastSummary.TotalTasks)
	assert.Equal(t, 0, store.SaveCount)
}
