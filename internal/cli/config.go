package cli

import (
	"fmt"
	"io"

	"github.com/kanban-board/kanban/internal/app"
	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/usecase"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration files",
		Long:  `Inspect the merged kanban configuration or create a config file.`,
	}

	cmd.AddCommand(
		newConfigShowCommand(c),
		newConfigTemplateCommand(),
		newConfigInitCommand(c),
	)
	return cmd
}

// newConfigShowCommand prints the config sources and the merged result.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the configuration in effect.

Defaults are overridden by $XDG_CONFIG_HOME/kanban/config.toml, which is
overridden by .kanban/config.toml. Unknown keys are listed as warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			for _, info := range []domain.ConfigInfo{out.GlobalConfig, out.ProjectConfig} {
				switch {
				case info.Path == "":
				case info.Exists:
					_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
				default:
					_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
				}
			}

			if warnings := out.EffectiveConfig.Warnings; len(warnings) > 0 {
				_, _ = fmt.Fprintln(w, "\n[Warnings]")
				for _, warning := range warnings {
					_, _ = fmt.Fprintf(w, "- %s\n", warning)
				}
			}

			_, _ = fmt.Fprintln(w, "\n[Effective Config]")
			return formatEffectiveConfig(w, out.EffectiveConfig)
		},
	}
}

// formatEffectiveConfig writes cfg with the same keys a config file uses.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	output := map[string]any{
		"board": map[string]any{
			"completion_column": cfg.Board.CompletionColumn,
			"activity_limit":    cfg.Board.ActivityLimit,
		},
		"ai": map[string]any{
			"model":       cfg.AI.Model,
			"api_key_env": cfg.AI.APIKeyEnv,
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
		},
	}

	if err := toml.NewEncoder(w).Encode(output); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func newConfigTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print a config file with default values",
		Long: `Print a commented config file with default values.

Existing config files are not read, so this works even when they are broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), domain.RenderConfigTemplate(domain.NewDefaultConfig()))
			return nil
		},
	}
}

// newConfigInitCommand writes the template to the project or global config path.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file",
		Long: `Create .kanban/config.toml, or the global config file with --global.

Fails if the file already exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{Global: global})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Create the global config file")
	return cmd
}
