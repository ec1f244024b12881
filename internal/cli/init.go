package cli

import (
	"fmt"

	"github.com/kanban-board/kanban/internal/app"
	"github.com/spf13/cobra"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a board in the current directory",
		Long: `Create a kanban board in the current directory.

This command creates the .kanban/ directory with board.json holding the
default columns: To Do, In Progress and Done.

Running it again leaves an existing board untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitBoardUseCase()
			out, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}

			if out.Created {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized kanban board in %s\n", c.Config.KanbanDir)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Board already initialized in %s\n", c.Config.KanbanDir)
			}
			return nil
		},
	}
}
