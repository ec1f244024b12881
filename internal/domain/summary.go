package domain

import (
	"fmt"
	"slices"
	"strings"
)

// BoardSummary is a condensed view of the board used for reporting and
// as the input of project insights.
type BoardSummary struct {
	Columns        []ColumnCount
	Overdue        []Task            // Open tasks past their due date
	Upcoming       []Task            // Open tasks with a due date, soonest first
	OpenPriorities map[Priority]int  // Priority counts outside the completion column
	Priorities     map[Priority]int  // Priority counts over the whole board
	Tags           []string          // Every tag in use, sorted
	TotalTasks     int
	ArchivedTasks  int
}

// ColumnCount is the number of tasks in one column.
type ColumnCount struct {
	ID    string
	Title string
	Count int
}

// upcomingLimit is the number of upcoming deadlines reported.
const upcomingLimit = 5

// Summarize builds a BoardSummary. Tasks in completionColumn are considered
// finished and never count as overdue or upcoming.
func Summarize(state *BoardState, today Date, completionColumn string) BoardSummary {
	s := BoardSummary{
		OpenPriorities: make(map[Priority]int),
		Priorities:     make(map[Priority]int),
		ArchivedTasks:  len(state.Archive),
	}
	tags := make(map[string]bool)
	var dated []Task
	for _, col := range state.Board {
		s.Columns = append(s.Columns, ColumnCount{ID: col.ID, Title: col.Title, Count: len(col.Tasks)})
		for _, t := range col.Tasks {
			s.TotalTasks++
			s.Priorities[t.Priority]++
			for _, tag := range t.Tags {
				tags[tag] = true
			}
			if t.ColumnID == completionColumn {
				continue
			}
			s.OpenPriorities[t.Priority]++
			if t.DueDate == nil {
				continue
			}
			dated = append(dated, t)
			if t.DueDate.Before(today) {
				s.Overdue = append(s.Overdue, t)
			}
		}
	}
	slices.SortStableFunc(dated, func(a, b Task) int {
		switch {
		case a.DueDate.Before(*b.DueDate):
			return -1
		case b.DueDate.Before(*a.DueDate):
			return 1
		default:
			return 0
		}
	})
	if len(dated) > upcomingLimit {
		dated = dated[:upcomingLimit]
	}
	s.Upcoming = dated
	for tag := range tags {
		s.Tags = append(s.Tags, tag)
	}
	slices.Sort(s.Tags)
	return s
}

// String renders the summary as the plain-text status report sent to the assistant.
func (s BoardSummary) String() string {
	var b strings.Builder
	b.WriteString("Project Status Summary:\n")
	fmt.Fprintf(&b, "- Total Tasks: %d\n", s.TotalTasks)
	b.WriteString("- Columns:\n")
	for _, c := range s.Columns {
		fmt.Fprintf(&b, "  - %s: %d tasks\n", c.Title, c.Count)
	}
	b.WriteString("- Priorities:\n")
	fmt.Fprintf(&b, "  - Critical: %d\n", s.Priorities[PriorityCritical])
	fmt.Fprintf(&b, "  - High: %d\n", s.Priorities[PriorityHigh])
	fmt.Fprintf(&b, "- Overdue Tasks: %d\n", len(s.Overdue))
	return b.String()
}
