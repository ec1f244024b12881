package cli

import (
	"fmt"

	"github.com/kanban-board/kanban/internal/app"
	"github.com/kanban-board/kanban/internal/usecase"
	"github.com/spf13/cobra"
)

// newColumnCommand creates the column command group.
func newColumnCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "column",
		Aliases: []string{"col"},
		Short:   "Manage columns",
		Long: `Add, rename, reorder and delete board columns.

Columns are referenced by ID or by title (case-insensitive).`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(
		newColumnAddCommand(c),
		newColumnRenameCommand(c),
		newColumnDeleteCommand(c),
		newColumnMoveCommand(c),
	)

	return cmd
}

// newColumnAddCommand creates the column add subcommand.
func newColumnAddCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Append a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.AddColumnUseCase().Execute(cmd.Context(), usecase.AddColumnInput{Title: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added column %s (%s)\n", out.Column.Title, out.Column.ID)
			return nil
		},
	}
}

// newColumnRenameCommand creates the column rename subcommand.
func newColumnRenameCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <column> <title>",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.RenameColumnUseCase().Execute(cmd.Context(), usecase.RenameColumnInput{
				Column: args[0],
				Title:  args[1],
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed column %s to %s\n", args[0], args[1])
			return nil
		},
	}
}

// newColumnDeleteCommand creates the column delete subcommand.
func newColumnDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <column>",
		Aliases: []string{"rm"},
		Short:   "Delete a column",
		Long: `Delete a column. Its tasks are moved to the end of the first
remaining column. The last column cannot be deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteColumnUseCase().Execute(cmd.Context(), usecase.DeleteColumnInput{Column: args[0]})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Deleted column %s\n", args[0])
			if out.Moved > 0 {
				_, _ = fmt.Fprintf(w, "Moved %d task(s) to %s\n", out.Moved, out.MergedInto.Title)
			}
			return nil
		},
	}
}

// newColumnMoveCommand creates the column move subcommand.
func newColumnMoveCommand(c *app.Container) *cobra.Command {
	var position int

	cmd := &cobra.Command{
		Use:   "move <column>",
		Short: "Reorder a column",
		Long: `Move a column to a new zero-based position, counted from the
left. The position is clamped to the number of columns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.MoveColumnUseCase().Execute(cmd.Context(), usecase.MoveColumnInput{
				Column: args[0],
				Index:  position,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved column %s to position %d\n", args[0], position)
			return nil
		},
	}

	cmd.Flags().IntVar(&position, "position", 0, "New position (0 = leftmost)")
	_ = cmd.MarkFlagRequired("position")

	return cmd
}
