package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldUpdates_Apply(t *testing.T) {
	due := Date{Year: 2025, Month: 1, Day: 31}
	tests := []struct {
		update  FieldUpdate
		check   func(t *testing.T, task Task)
		wantErr error
		name    string
	}{
		{
			name:   "set title trims",
			update: SetTitle{Title: "  New title  "},
			check:  func(t *testing.T, task Task) { assert.Equal(t, "New title", task.Title) },
		},
		{
			name:    "set blank title",
			update:  SetTitle{Title: " "},
			wantErr: ErrEmptyTitle,
		},
		{
			name:   "set description",
			update: SetDescription{Description: "**bold**"},
			check:  func(t *testing.T, task Task) { assert.Equal(t, "**bold**", task.Description) },
		},
		{
			name:   "set priority",
			update: SetPriority{Priority: PriorityHigh},
			check:  func(t *testing.T, task Task) { assert.Equal(t, PriorityHigh, task.Priority) },
		},
		{
			name:    "set invalid priority",
			update:  SetPriority{Priority: "Urgent"},
			wantErr: ErrInvalidPriority,
		},
		{
			name:   "set due date",
			update: SetDueDate{Date: &due},
			check: func(t *testing.T, task Task) {
				require.NotNil(t, task.DueDate)
				assert.Equal(t, due, *task.DueDate)
			},
		},
		{
			name:   "clear due date",
			update: SetDueDate{},
			check:  func(t *testing.T, task Task) { assert.Nil(t, task.DueDate) },
		},
		{
			name:   "set cover image",
			update: SetCoverImage{URL: "https://example.com/c.png"},
			check:  func(t *testing.T, task Task) { assert.Equal(t, "https://example.com/c.png", task.CoverImage) },
		},
		{
			name:   "add tags dedupes",
			update: AddTags{Tags: []string{"UX", " Design ", "", "UX"}},
			check:  func(t *testing.T, task Task) { assert.Equal(t, []string{"UX", "Design"}, task.Tags) },
		},
		{
			name:   "remove tag",
			update: RemoveTag{Tag: "Backend"},
			check:  func(t *testing.T, task Task) { assert.Empty(t, task.Tags) },
		},
		{
			name:   "toggle subtask",
			update: ToggleSubtask{SubtaskID: "sub-1"},
			check:  func(t *testing.T, task Task) { assert.True(t, task.Subtasks[0].Completed) },
		},
		{
			name:    "toggle missing subtask",
			update:  ToggleSubtask{SubtaskID: "sub-9"},
			wantErr: ErrSubtaskNotFound,
		},
		{
			name:   "remove subtask",
			update: RemoveSubtask{SubtaskID: "sub-1"},
			check:  func(t *testing.T, task Task) { assert.Empty(t, task.Subtasks) },
		},
		{
			name:   "add subtasks appends",
			update: AddSubtasks{Subtasks: []Subtask{{ID: "sub-2", Text: "two"}}},
			check: func(t *testing.T, task Task) {
				require.Len(t, task.Subtasks, 2)
				assert.Equal(t, "sub-2", task.Subtasks[1].ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			task.Tags = []string{"Backend"}
			task.Subtasks = []Subtask{{ID: "sub-1", Text: "one"}}

			err := tt.update.Apply(&task)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, task)
		})
	}
}

func TestFieldUpdate_DoesNotAliasInput(t *testing.T) {
	task := validTask()
	task.Subtasks = []Subtask{{ID: "sub-1"}}
	shared := task.Subtasks

	require.NoError(t, ToggleSubtask{SubtaskID: "sub-1"}.Apply(&task))

	assert.False(t, shared[0].Completed, "original backing array must be untouched")
}
