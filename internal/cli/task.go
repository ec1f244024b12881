package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kanban-board/kanban/internal/app"
	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newTaskCommand creates the task command group.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		Long: `Create, edit, move, archive and delete tasks.

Task IDs can be given in full or as a unique prefix, with or without
the "task-" part (the short IDs shown by 'kanban show').`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(
		newTaskAddCommand(c),
		newTaskEditCommand(c),
		newTaskMoveCommand(c),
		newTaskDeleteCommand(c),
		newTaskArchiveCommand(c),
		newTaskShowCommand(c),
	)

	return cmd
}

// taskFieldFlags holds the flags shared by task add and task edit.
type taskFieldFlags struct {
	Title          string
	Description    string
	Priority       string
	Due            string
	Cover          string
	Tags           []string
	AddTags        []string
	RemoveTags     []string
	Subtasks       []string
	ToggleSubtasks []string
	RemoveSubtasks []string
	ClearDue       bool
}

func (f *taskFieldFlags) register(flags *pflag.FlagSet, withTitle bool) {
	if withTitle {
		flags.StringVar(&f.Title, "title", "", "New title")
	}
	flags.StringVar(&f.Description, "desc", "", "Description (markdown)")
	flags.StringVarP(&f.Priority, "priority", "p", "", "Priority: Low, Medium, High or Critical")
	flags.StringVar(&f.Due, "due", "", "Due date (YYYY-MM-DD)")
	flags.BoolVar(&f.ClearDue, "clear-due", false, "Remove the due date")
	flags.StringVar(&f.Cover, "cover", "", "Cover image URL (empty string clears it)")
	flags.StringSliceVar(&f.Tags, "tags", nil, "Replace all tags (comma separated)")
	flags.StringArrayVar(&f.AddTags, "tag", nil, "Add a tag (can specify multiple)")
	flags.StringArrayVar(&f.RemoveTags, "untag", nil, "Remove a tag (can specify multiple)")
	flags.StringArrayVar(&f.Subtasks, "subtask", nil, "Append a subtask (can specify multiple)")
	flags.StringArrayVar(&f.ToggleSubtasks, "toggle-subtask", nil, "Toggle a subtask by ID (can specify multiple)")
	flags.StringArrayVar(&f.RemoveSubtasks, "remove-subtask", nil, "Remove a subtask by ID (can specify multiple)")
}

// updates converts the flags that were set into field updates, in a fixed order.
func (f *taskFieldFlags) updates(flags *pflag.FlagSet, ids domain.IDGenerator) ([]domain.FieldUpdate, error) {
	var updates []domain.FieldUpdate
	if flags.Changed("title") {
		updates = append(updates, domain.SetTitle{Title: f.Title})
	}
	if flags.Changed("desc") {
		updates = append(updates, domain.SetDescription{Description: f.Description})
	}
	if flags.Changed("priority") {
		p, err := domain.ParsePriority(f.Priority)
		if err != nil {
			return nil, err
		}
		updates = append(updates, domain.SetPriority{Priority: p})
	}
	if flags.Changed("due") && f.ClearDue {
		return nil, errors.New("--due and --clear-due cannot be used together")
	}
	if flags.Changed("due") {
		d, err := domain.ParseDate(f.Due)
		if err != nil {
			return nil, err
		}
		updates = append(updates, domain.SetDueDate{Date: &d})
	}
	if f.ClearDue {
		updates = append(updates, domain.SetDueDate{})
	}
	if flags.Changed("cover") {
		updates = append(updates, domain.SetCoverImage{URL: f.Cover})
	}
	if flags.Changed("tags") {
		updates = append(updates, domain.SetTags{Tags: f.Tags})
	}
	if len(f.AddTags) > 0 {
		updates = append(updates, domain.AddTags{Tags: f.AddTags})
	}
	for _, tag := range f.RemoveTags {
		updates = append(updates, domain.RemoveTag{Tag: tag})
	}
	if len(f.Subtasks) > 0 {
		subtasks := make([]domain.Subtask, 0, len(f.Subtasks))
		for _, text := range f.Subtasks {
			subtasks = append(subtasks, domain.Subtask{ID: ids.NewID(domain.SubtaskIDPrefix), Text: text})
		}
		updates = append(updates, domain.AddSubtasks{Subtasks: subtasks})
	}
	for _, id := range f.ToggleSubtasks {
		updates = append(updates, domain.ToggleSubtask{SubtaskID: id})
	}
	for _, id := range f.RemoveSubtasks {
		updates = append(updates, domain.RemoveSubtask{SubtaskID: id})
	}
	return updates, nil
}

// newTaskAddCommand creates the task add subcommand.
func newTaskAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Column string
		From   string
		DryRun bool
	}
	var fields taskFieldFlags

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a task",
		Long: `Create a task at the top of a column (the first column by default).

Examples:
  # Create a task in the first column
  kanban task add "Write release notes"

  # Create a task with details
  kanban task add "Fix login redirect" --column "In Progress" -p High \
    --due 2025-01-31 --tag backend --subtask "Reproduce" --subtask "Patch"

  # Create tasks from a file (multiple tasks supported)
  kanban task add --from tasks.md

  # Preview tasks from a file without creating
  kanban task add --from tasks.md --dry-run

File format for --from:
  ---
  title: Task 1
  column: inprogress
  priority: High
  tags: [backend]
  due: 2025-01-31
  ---
  Description here.

  ---
  title: Task 2
  ---`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.From != "" {
				if len(args) > 0 {
					return errors.New("a title cannot be combined with --from")
				}
				return createTasksFromFile(cmd, c, opts.From, opts.Column, opts.DryRun)
			}
			if opts.DryRun {
				return errors.New("--dry-run requires --from")
			}
			if len(args) == 0 {
				return errors.New("a task title is required (or use --from)")
			}

			updates, err := fields.updates(cmd.Flags(), c.IDs)
			if err != nil {
				return err
			}

			out, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{
				Column:  opts.Column,
				Title:   args[0],
				Updates: updates,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Column, "column", "c", "", "Column ID or title (default: first column)")
	cmd.Flags().StringVar(&opts.From, "from", "", "Create tasks from a Markdown file")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Preview tasks without creating (requires --from)")
	fields.register(cmd.Flags(), false)

	return cmd
}

// createTasksFromFile creates tasks from a Markdown file.
func createTasksFromFile(cmd *cobra.Command, c *app.Container, filePath, column string, dryRun bool) error {
	content, err := os.ReadFile(filePath) //nolint:gosec // Path is given by the user
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	out, err := c.CreateTasksFromFileUseCase().Execute(cmd.Context(), usecase.CreateTasksFromFileInput{
		Content: string(content),
		Column:  column,
		DryRun:  dryRun,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if dryRun {
		_, _ = fmt.Fprintln(w, "Dry run - tasks that would be created:")
		_, _ = fmt.Fprintln(w)
	}

	for i, task := range out.Tasks {
		if dryRun {
			_, _ = fmt.Fprintf(w, "Task %d:\n", i+1)
		} else {
			_, _ = fmt.Fprintf(w, "Created task %s:\n", task.ID)
		}
		_, _ = fmt.Fprintf(w, "  Title: %s\n", task.Title)
		_, _ = fmt.Fprintf(w, "  Column: %s\n", task.ColumnID)
		_, _ = fmt.Fprintf(w, "  Priority: %s\n", task.Priority)
		if task.DueDate != nil {
			_, _ = fmt.Fprintf(w, "  Due: %s\n", task.DueDate)
		}
		if len(task.Tags) > 0 {
			_, _ = fmt.Fprintf(w, "  Tags: [%s]\n", strings.Join(task.Tags, ", "))
		}
		if task.Description != "" {
			_, _ = fmt.Fprintf(w, "  Description: %s\n", previewLine(task.Description, 50))
		}
	}

	if !dryRun {
		_, _ = fmt.Fprintf(w, "\nCreated %d task(s)\n", len(out.Tasks))
	}
	return nil
}

// previewLine returns the first line of s, cut to limit runes.
func previewLine(s string, limit int) string {
	lines := strings.Split(s, "\n")
	preview := []rune(lines[0])
	suffix := ""
	if len(preview) > limit {
		preview = preview[:limit]
		suffix = "..."
	}
	if len(lines) > 1 {
		suffix += " ..."
	}
	return string(preview) + suffix
}

// newTaskEditCommand creates the task edit subcommand.
func newTaskEditCommand(c *app.Container) *cobra.Command {
	var fields taskFieldFlags
	var useEditor bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit task fields",
		Long: `Edit one or more fields of a task. All changes are applied
together; if one is invalid, nothing is changed.

Examples:
  kanban task edit 1f3e9a2c --title "New title" -p Critical
  kanban task edit 1f3e9a2c --due 2025-02-01 --tag urgent --untag later
  kanban task edit 1f3e9a2c --toggle-subtask sub-4b1c...
  kanban task edit 1f3e9a2c --editor     # edit the description in $EDITOR`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := fields.updates(cmd.Flags(), c.IDs)
			if err != nil {
				return err
			}

			if useEditor {
				if cmd.Flags().Changed("desc") {
					return errors.New("--editor and --desc cannot be used together")
				}
				current, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: args[0]})
				if err != nil {
					return err
				}
				desc, err := editText(current.Task.Description)
				if err != nil {
					return err
				}
				updates = append(updates, domain.SetDescription{Description: desc})
			}

			if len(updates) == 0 {
				return errors.New("nothing to change (see --help for the available flags)")
			}

			out, err := c.EditTaskUseCase().Execute(cmd.Context(), usecase.EditTaskInput{
				TaskID:  args[0],
				Updates: updates,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}

	fields.register(cmd.Flags(), true)
	cmd.Flags().BoolVarP(&useEditor, "editor", "e", false, "Edit the description in $EDITOR")

	return cmd
}

// newTaskMoveCommand creates the task move subcommand.
func newTaskMoveCommand(c *app.Container) *cobra.Command {
	var position int

	cmd := &cobra.Command{
		Use:   "move <id> <column>",
		Short: "Move a task to a column",
		Long: `Move a task to a column (by ID or title), or to another position
in its own column. The position is zero-based and clamped to the
column's length; the default puts the task on top.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.MoveTaskUseCase().Execute(cmd.Context(), usecase.MoveTaskInput{
				TaskID: args[0],
				Column: args[1],
				Index:  position,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved task %s to %s\n", out.Task.ID, out.Task.ColumnID)
			return nil
		},
	}

	cmd.Flags().IntVar(&position, "position", 0, "Position within the destination column")

	return cmd
}

// newTaskDeleteCommand creates the task delete subcommand.
func newTaskDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task permanently",
		Long: `Delete a task from the board permanently. Use 'kanban task archive'
to keep it in the archive instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
}

// newTaskArchiveCommand creates the task archive subcommand.
func newTaskArchiveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Move a task to the archive",
		Long: `Move a task off the board into the archive. Restore it with
'kanban archive restore'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.ArchiveTaskUseCase().Execute(cmd.Context(), usecase.ArchiveTaskInput{TaskID: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Archived task %s\n", args[0])
			return nil
		},
	}
}

// newTaskShowCommand creates the task show subcommand.
func newTaskShowCommand(c *app.Container) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Long:  `Show all fields of a task on the board or in the archive, with its history.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.Task)
			}
			printTaskDetails(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// printTaskDetails prints task details in a human-readable format.
func printTaskDetails(w io.Writer, out *usecase.ShowTaskOutput) {
	t := out.Task
	_, _ = fmt.Fprintf(w, "%s\n", t.Title)
	_, _ = fmt.Fprintf(w, "ID:       %s\n", t.ID)
	if out.Archived {
		_, _ = fmt.Fprintf(w, "Column:   (archived, last in %s)\n", t.ColumnID)
	} else {
		_, _ = fmt.Fprintf(w, "Column:   %s\n", out.Column.Title)
	}
	_, _ = fmt.Fprintf(w, "Priority: %s\n", t.Priority)
	if t.DueDate != nil {
		_, _ = fmt.Fprintf(w, "Due:      %s\n", t.DueDate)
	}
	if len(t.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "Tags:     %s\n", strings.Join(t.Tags, ", "))
	}
	if t.CoverImage != "" {
		_, _ = fmt.Fprintf(w, "Cover:    %s\n", t.CoverImage)
	}

	if t.Description != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, t.Description)
	}

	if len(t.Subtasks) > 0 {
		_, _ = fmt.Fprintf(w, "\nSubtasks (%d/%d):\n", t.CompletedSubtasks(), len(t.Subtasks))
		for _, s := range t.Subtasks {
			mark := " "
			if s.Completed {
				mark = "x"
			}
			_, _ = fmt.Fprintf(w, "  [%s] %s  (%s)\n", mark, s.Text, s.ID)
		}
	}

	if len(t.Activity) > 0 {
		_, _ = fmt.Fprintln(w, "\nHistory:")
		for _, e := range t.Activity {
			_, _ = fmt.Fprintf(w, "  %s  %s\n", e.Timestamp.Local().Format(timestampFormat), e.Message)
		}
	}
}
