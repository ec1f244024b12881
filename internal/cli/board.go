package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kanban-board/kanban/internal/app"
	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/usecase"
	"github.com/spf13/cobra"
)

const timestampFormat = "2006-01-02 15:04:05"

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the board",
		Long: `Display the board with its columns side by side.

Each card shows the task title, short ID, priority, due date, subtask
progress and tags. Overdue tasks outside the completion column are
highlighted. Short IDs can be passed to every task command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowBoardUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			today := domain.DateOf(c.Clock.Now())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderBoard(out.State.Board, today, out.Options.CompletionColumn, width))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 32, "Column width in characters")

	return cmd
}

// newStatsCommand creates the stats command.
func newStatsCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show board statistics",
		Long: `Show task counts per column and priority, overdue tasks,
upcoming deadlines and the tags in use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.BoardStatsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), out)
		},
	}
}

func printSummary(w io.Writer, out *usecase.BoardStatsOutput) error {
	s := out.Summary
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(tw, "Total tasks:\t%d\n", s.TotalTasks)
	_, _ = fmt.Fprintf(tw, "Archived:\t%d\n", s.ArchivedTasks)
	_, _ = fmt.Fprintln(tw)

	_, _ = fmt.Fprintln(tw, "Columns:")
	for _, col := range s.Columns {
		_, _ = fmt.Fprintf(tw, "  %s\t%d\n", col.Title, col.Count)
	}
	_, _ = fmt.Fprintln(tw)

	_, _ = fmt.Fprintln(tw, "Open tasks by priority:")
	priorities := domain.AllPriorities()
	for i := len(priorities) - 1; i >= 0; i-- {
		p := priorities[i]
		_, _ = fmt.Fprintf(tw, "  %s\t%d\n", p, s.OpenPriorities[p])
	}
	_, _ = fmt.Fprintln(tw)

	_, _ = fmt.Fprintf(tw, "Overdue (as of %s):\n", out.Today)
	if len(s.Overdue) == 0 {
		_, _ = fmt.Fprintln(tw, "  none")
	}
	for _, t := range s.Overdue {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\tdue %s\n", shortID(t.ID), t.Title, t.DueDate)
	}
	_, _ = fmt.Fprintln(tw)

	_, _ = fmt.Fprintln(tw, "Upcoming:")
	if len(s.Upcoming) == 0 {
		_, _ = fmt.Fprintln(tw, "  none")
	}
	for _, t := range s.Upcoming {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\tdue %s\n", shortID(t.ID), t.Title, t.DueDate)
	}

	if len(s.Tags) > 0 {
		_, _ = fmt.Fprintln(tw)
		_, _ = fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(s.Tags, ", "))
	}
	return tw.Flush()
}

// newLogCommand creates the log command.
func newLogCommand(c *app.Container) *cobra.Command {
	var opts struct {
		TaskID string
		Limit  int
	}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the activity log",
		Long: `Show the board activity log, newest first.

With --task, show the full history of one task instead. The board log
keeps only the most recent entries (board.activity_limit); task
histories are never trimmed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var entries []domain.ActivityLogEntry
			if opts.TaskID != "" {
				out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: opts.TaskID})
				if err != nil {
					return err
				}
				entries = out.Task.Activity
			} else {
				out, err := c.ShowBoardUseCase().Execute(cmd.Context())
				if err != nil {
					return err
				}
				entries = out.State.Activity
			}

			if opts.Limit > 0 && len(entries) > opts.Limit {
				entries = entries[:opts.Limit]
			}
			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(w, "No activity yet.")
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(w, "%s  %s\n", e.Timestamp.Local().Format(timestampFormat), e.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.TaskID, "task", "", "Show the history of one task")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum number of entries (0 = all)")

	return cmd
}

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board as JSON",
		Long: `Export the board as a JSON array of columns, each with its
id, title and tasks. The archive and the board activity log are not
included.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ExportBoardUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(out.JSON)
				return err
			}
			if err := os.WriteFile(output, out.JSON, 0o644); err != nil { //nolint:gosec // Exported file is meant to be shared
				return fmt.Errorf("write export: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported board to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
