package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kanban-board/kanban/internal/app"
	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/usecase"
	"github.com/spf13/cobra"
)

// newAICommand creates the ai command group.
func newAICommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Fill in task fields with the AI assistant",
		Long: `Ask the Gemini assistant to fill in task fields.

The API key is read from the environment variable named by
ai.api_key_env (GEMINI_API_KEY by default); a .env file in the project
root is loaded first. Results are applied only if the task is still on
the board when the answer arrives.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(
		newAITaskCommand(c, "subtasks", "Break a task into subtasks",
			func(c *app.Container) assistUseCase { return c.GenerateSubtasksUseCase() },
			func(w io.Writer, t domain.Task) {
				_, _ = fmt.Fprintf(w, "Subtasks of %s:\n", t.Title)
				for _, s := range t.Subtasks {
					_, _ = fmt.Fprintf(w, "  - %s\n", s.Text)
				}
			}),
		newAITaskCommand(c, "priority", "Suggest a priority",
			func(c *app.Container) assistUseCase { return c.SuggestPriorityUseCase() },
			func(w io.Writer, t domain.Task) {
				_, _ = fmt.Fprintf(w, "Priority of %s set to %s\n", t.Title, t.Priority)
			}),
		newAITaskCommand(c, "description", "Write a short description",
			func(c *app.Container) assistUseCase { return c.GenerateDescriptionUseCase() },
			func(w io.Writer, t domain.Task) {
				_, _ = fmt.Fprintf(w, "Description of %s:\n%s\n", t.Title, t.Description)
			}),
		newAITaskCommand(c, "tags", "Suggest tags",
			func(c *app.Container) assistUseCase { return c.SuggestTagsUseCase() },
			func(w io.Writer, t domain.Task) {
				_, _ = fmt.Fprintf(w, "Tags of %s: %s\n", t.Title, strings.Join(t.Tags, ", "))
			}),
		newAIInsightCommand(c),
	)

	return cmd
}

// assistUseCase is implemented by the per-task assistant use cases.
type assistUseCase interface {
	Execute(ctx context.Context, in usecase.AssistTaskInput) (*usecase.AssistTaskOutput, error)
}

// newAITaskCommand creates an ai subcommand that works on one task.
func newAITaskCommand(
	c *app.Container,
	name, short string,
	useCase func(*app.Container) assistUseCase,
	report func(io.Writer, domain.Task),
) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := useCase(c).Execute(cmd.Context(), usecase.AssistTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			report(cmd.OutOrStdout(), out.Task)
			return nil
		},
	}
}

// newAIInsightCommand creates the ai insight subcommand.
func newAIInsightCommand(c *app.Container) *cobra.Command {
	var showSummary bool

	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Get a productivity insight for the board",
		Long:  `Summarize the board and ask the assistant for one actionable suggestion. The board is not changed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ProjectInsightUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if showSummary {
				_, _ = fmt.Fprintln(w, out.Summary.String())
			}
			_, _ = fmt.Fprintln(w, out.Insight)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSummary, "summary", false, "Also print the summary sent to the assistant")

	return cmd
}
