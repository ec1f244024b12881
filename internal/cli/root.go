// Package cli provides the command-line interface for kanban.
package cli

import (
	"fmt"

	"github.com/kanban-board/kanban/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupBoard = "board"
	groupTask  = "task"
	groupAI    = "ai"
)

// NewRootCommand creates the root command for kanban.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "kanban",
		Short: "Kanban board for the terminal",
		Long: `kanban manages a kanban board stored in .kanban/board.json.

Tasks live in ordered columns and can be moved, edited, archived and
restored. Every change is recorded in the board activity log and in the
task's own history. The AI commands use Gemini to fill in subtasks,
priority, descriptions and tags.

Run 'kanban init' to create a board in the current directory, then
'kanban' without arguments to open the interactive board.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.ConfigLoader == nil {
				return nil
			}

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				// Ignore error (defaults apply)
				return nil
			}

			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// Default: launch the interactive board
			return launchTUIFunc(c)
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupBoard, Title: "Board Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupAI, Title: "AI Assistant:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	// Board commands
	showCmd := newShowCommand(c)
	showCmd.GroupID = groupBoard

	statsCmd := newStatsCommand(c)
	statsCmd.GroupID = groupBoard

	logCmd := newLogCommand(c)
	logCmd.GroupID = groupBoard

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupBoard

	columnCmd := newColumnCommand(c)
	columnCmd.GroupID = groupBoard

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupBoard

	// Task management commands
	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupTask

	archiveCmd := newArchiveCommand(c)
	archiveCmd.GroupID = groupTask

	// AI commands
	aiCmd := newAICommand(c)
	aiCmd.GroupID = groupAI

	root.AddCommand(
		initCmd,
		configCmd,
		showCmd,
		statsCmd,
		logCmd,
		exportCmd,
		columnCmd,
		tuiCmd,
		taskCmd,
		archiveCmd,
		aiCmd,
	)

	return root
}
