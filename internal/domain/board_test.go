package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskIn(id, columnID string) Task {
	t := validTask()
	t.ID = id
	t.ColumnID = columnID
	return t
}

func TestBoard_Lookups(t *testing.T) {
	b := DefaultBoard()
	b[1].Tasks = []Task{taskIn("task-1", "inprogress"), taskIn("task-2", "inprogress")}

	assert.Equal(t, 2, b.ColumnIndex("done"))
	assert.Equal(t, -1, b.ColumnIndex("missing"))
	require.NotNil(t, b.Column("todo"))
	assert.Nil(t, b.Column("missing"))

	ci, ti := b.FindTask("task-2")
	assert.Equal(t, 1, ci)
	assert.Equal(t, 1, ti)

	ci, ti = b.FindTask("task-9")
	assert.Equal(t, -1, ci)
	assert.Equal(t, -1, ti)
	assert.Nil(t, b.Task("task-9"))
	assert.Equal(t, 2, b.TaskCount())
	assert.Len(t, b.AllTasks(), 2)
}

func TestBoard_CloneIsDeep(t *testing.T) {
	b := DefaultBoard()
	b[0].Tasks = []Task{taskIn("task-1", "todo")}

	c := b.Clone()
	c[0].Title = "Changed"
	c[0].Tasks[0].Title = "Changed"

	assert.Equal(t, "To Do", b[0].Title)
	assert.Equal(t, "Write design doc", b[0].Tasks[0].Title)
}

func TestValidateState(t *testing.T) {
	tests := []struct {
		name    string
		board   func() Board
		archive []Task
		wantErr bool
	}{
		{
			name:  "default board",
			board: DefaultBoard,
		},
		{
			name:    "empty board",
			board:   func() Board { return Board{} },
			wantErr: true,
		},
		{
			name: "duplicate column id",
			board: func() Board {
				b := DefaultBoard()
				b[1].ID = "todo"
				return b
			},
			wantErr: true,
		},
		{
			name: "columnId mismatch",
			board: func() Board {
				b := DefaultBoard()
				b[0].Tasks = []Task{taskIn("task-1", "done")}
				return b
			},
			wantErr: true,
		},
		{
			name: "duplicate task across columns",
			board: func() Board {
				b := DefaultBoard()
				b[0].Tasks = []Task{taskIn("task-1", "todo")}
				b[2].Tasks = []Task{taskIn("task-1", "done")}
				return b
			},
			wantErr: true,
		},
		{
			name: "task both on board and archived",
			board: func() Board {
				b := DefaultBoard()
				b[0].Tasks = []Task{taskIn("task-1", "todo")}
				return b
			},
			archive: []Task{taskIn("task-1", "todo")},
			wantErr: true,
		},
		{
			name:    "archived task keeps stale column id",
			board:   DefaultBoard,
			archive: []Task{taskIn("task-1", "deleted-column")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateState(tt.board(), tt.archive)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBoard)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBoardState_NormalizeAndClone(t *testing.T) {
	s := &BoardState{Board: Board{{ID: "a", Title: "A"}}}

	s.Normalize()

	assert.NotNil(t, s.Board[0].Tasks)
	assert.NotNil(t, s.Activity)
	assert.NotNil(t, s.Archive)

	s.Archive = []Task{taskIn("task-1", "a")}
	c := s.Clone()
	c.Archive[0].Title = "changed"
	assert.Equal(t, "Write design doc", s.Archive[0].Title)
	assert.NotNil(t, s.ArchivedTask("task-1"))
	assert.Nil(t, s.ArchivedTask("task-2"))
}
