package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskDrafts(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		content string
		want    []TaskDraft
	}{
		{
			name: "single task",
			content: `---
title: First Task
---
Task description here.`,
			want: []TaskDraft{
				{Title: "First Task", Description: "Task description here.", Tags: []string{}},
			},
		},
		{
			name: "all fields",
			content: `---
title: Launch campaign
column: inprogress
priority: high
tags: [Marketing, Q3 Launch, Marketing]
due: 2024-10-28
---
Plan it.`,
			want: []TaskDraft{
				{
					Title:       "Launch campaign",
					Column:      "inprogress",
					Priority:    PriorityHigh,
					Tags:        []string{"Marketing", "Q3 Launch"},
					DueDate:     &Date{Year: 2024, Month: 10, Day: 28},
					Description: "Plan it.",
				},
			},
		},
		{
			name: "multiple tasks and separator in body",
			content: `---
title: One
---
Above

---

Below
---
title: Two
---
`,
			want: []TaskDraft{
				{Title: "One", Description: "Above\n\n---\n\nBelow", Tags: []string{}},
				{Title: "Two", Tags: []string{}},
			},
		},
		{
			name:    "empty file",
			content: "  \n",
			wantErr: ErrEmptyFile,
		},
		{
			name:    "no frontmatter",
			content: "just text",
			wantErr: ErrNoTasksInFile,
		},
		{
			name: "missing title",
			content: `---
column: todo
---`,
			wantErr: ErrEmptyTitle,
		},
		{
			name: "bad priority",
			content: `---
title: x
priority: urgent
---`,
			wantErr: ErrInvalidPriority,
		},
		{
			name: "bad due date",
			content: `---
title: x
due: tomorrow
---`,
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskDrafts(tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskDraft_Updates(t *testing.T) {
	d := TaskDraft{Title: "x"}
	assert.Empty(t, d.Updates())

	due := Date{Year: 2025, Month: 2, Day: 1}
	d = TaskDraft{Title: "x", Description: "d", Priority: PriorityLow, Tags: []string{"a"}, DueDate: &due}
	assert.Len(t, d.Updates(), 4)
}
