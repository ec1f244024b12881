package usecase

import (
	"context"
	"testing"

	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const draftFile = `---
title: Plan sprint
priority: High
tags: [planning]
due: 2024-10-20
---
Pick the stories for next sprint.

---
title: Ship release
column: Done
---
`

func TestCreateTasksFromFile_Execute(t *testing.T) {
	tb := newTestBoard(testutil.SampleState())

	out, err := NewCreateTasksFromFile(tb.deps).Execute(context.Background(), CreateTasksFromFileInput{
		Content: draftFile,
	})

	require.NoError(t, err)
	require.Len(t, out.Tasks, 2)

	plan := out.Tasks[0]
	assert.Equal(t, "Plan sprint", plan.Title)
	assert.Equal(t, "todo", plan.ColumnID)
	assert.Equal(t, domain.PriorityHigh, plan.Priority)
	assert.Equal(t, []string{"planning"}, plan.Tags)
	assert.Equal(t, "Pick the stories for next sprint.", plan.Description)
	require.NotNil(t, plan.DueDate)
	assert.Equal(t, "2024-10-20", plan.DueDate.String())

	ship := out.Tasks[1]
	assert.Equal(t, "done", ship.ColumnID)
	assert.Equal(t, domain.PriorityMedium, ship.Priority)

	assert.Equal(t, 1, tb.store.SaveCount)
	assert.Equal(t, plan, tb.task(t, plan.ID))
	assert.Equal(t, ship.ID, tb.store.State.Board[2].Tasks[0].ID)
}

func TestCreateTasksFromFile_Execute_DefaultColumn(t *testing.T) {
	tb := newTestBoard(testutil.SampleState())

	out, err := NewCreateTasksFromFile(tb.deps).Execute(context.Background(), CreateTasksFromFileInput{
		Content: draftFile,
		Column:  "inprogress",
	})

	require.NoError(t, err)
	assert.Equal(t, "inprogress", out.Tasks[0].ColumnID)
	assert.Equal(t, "done", out.Tasks[1].ColumnID, "explicit column wins")
}

func TestCreateTasksFromFile_Execute_DryRun(t *testing.T) {
	tb := newTestBoard(testutil.SampleState())

	out, err := NewCreateTasksFromFile(tb.deps).Execute(context.Background(), CreateTasksFromFileInput{
		Content: draftFile,
		DryRun:  true,
	})

	require.NoError(t, err)
	require.Len(t, out.Tasks, 2)
	assert.Equal(t, "#1", out.Tasks[0].ID)
	assert.Equal(t, domain.PriorityHigh, out.Tasks[0].Priority)
	assert.Equal(t, "done", out.Tasks[1].ColumnID)
	assert.Zero(t, tb.store.SaveCount)
}

func TestCreateTasksFromFile_Execute_AllOrNothing(t *testing.T) {
	content := `---
title: Fine
---

---
title: Lost
column: Backlog
---
`
	tb := newTestBoard(testutil.SampleState())

	_, err := NewCreateTasksFromFile(tb.deps).Execute(context.Background(), CreateTasksFromFileInput{Content: content})

	assert.ErrorIs(t, err, domain.ErrColumnNotFound)
	assert.Contains(t, err.Error(), "task 2")
	assert.Zero(t, tb.store.SaveCount)
}

func TestCreateTasksFromFile_Execute_ParseErrors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		content string
	}{
		{name: "empty", content: "  \n", wantErr: domain.ErrEmptyFile},
		{name: "missing title", content: "---\npriority: Low\n---\n", wantErr: domain.ErrEmptyTitle},
		{name: "bad priority", content: "---\ntitle: x\npriority: Urgent\n---\n", wantErr: domain.ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTestBoard(testutil.SampleState())

			_, err := NewCreateTasksFromFile(tb.deps).Execute(context.Background(), CreateTasksFromFileInput{Content: tt.content})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
