package cli

import (
	"github.com/kanban-board/kanban/internal/app"
	"github.com/kanban-board/kanban/internal/tui"
	"github.com/spf13/cobra"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = tui.Run

// newTUICommand creates the tui command for launching the interactive board.
// Running kanban without arguments does the same.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Long: `Open the interactive terminal board.

Navigate with h/j/k/l, move cards with H/J/K/L and press ? for all keys.
Assistant requests run in the background while the board stays usable.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}
