package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/kanban-board/kanban/internal/app"
	"github.com/kanban-board/kanban/internal/usecase"
	"github.com/spf13/cobra"
)

// newArchiveCommand creates the archive command group.
func newArchiveCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage archived tasks",
		Long: `List, restore and permanently delete archived tasks.

Archive a task with 'kanban task archive <id>'.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(
		newArchiveListCommand(c),
		newArchiveRestoreCommand(c),
		newArchiveDeleteCommand(c),
	)

	return cmd
}

// newArchiveListCommand creates the archive list subcommand.
func newArchiveListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List archived tasks, most recent first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowBoardUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.State.Archive) == 0 {
				_, _ = fmt.Fprintln(w, "No archived tasks.")
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tTITLE\tPRIORITY\tLAST COLUMN")
			for _, t := range out.State.Archive {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", shortID(t.ID), t.Title, t.Priority, t.ColumnID)
			}
			return tw.Flush()
		},
	}
}

// newArchiveRestoreCommand creates the archive restore subcommand.
func newArchiveRestoreCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Put an archived task back on the board",
		Long: `Put an archived task back on top of the completion column
(board.completion_column, "done" by default). If that column no longer
exists, the task goes to the first column.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.RestoreTaskUseCase().Execute(cmd.Context(), usecase.ArchiveTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored task %s to %s\n", out.Task.ID, out.Task.ColumnID)
			return nil
		},
	}
}

// newArchiveDeleteCommand creates the archive delete subcommand.
func newArchiveDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an archived task permanently",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.PurgeArchivedTaskUseCase().Execute(cmd.Context(), usecase.ArchiveTaskInput{TaskID: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted archived task %s\n", args[0])
			return nil
		},
	}
}
