package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/worklog/internal/app"
	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage worklog configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration.
The API token is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(w, "[Loaded from]")
			if out.GlobalConfig.Path == "" {
				_, _ = fmt.Fprintln(w, "- global config directory unavailable")
			} else if out.GlobalConfig.Exists {
				_, _ = fmt.Fprintf(w, "- %s\n", out.GlobalConfig.Path)
			} else {
				_, _ = fmt.Fprintf(w, "- %s (not found)\n", out.GlobalConfig.Path)
			}
			if c.Config.ConfigPath != "" {
				_, _ = fmt.Fprintf(w, "- %s\n", c.Config.ConfigPath)
			}

			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective)
		},
	}
}

// formatEffectiveConfig writes cfg as TOML in the shape the loader reads.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	token := ""
	if cfg.API.Token != "" {
		token = "********"
	}
	output := map[string]any{
		"api": map[string]any{
			"base_url":      cfg.API.BaseURL,
			"token":         token,
			"timeout":       cfg.API.Timeout.String(),
			"retries":       cfg.API.Retries,
			"batch_reorder": cfg.API.BatchReorder,
		},
		"goals": map[string]any{
			"default_minutes": cfg.Goals.DefaultMinutes,
			"break_minutes":   cfg.Goals.BreakMinutes,
		},
		"categories": map[string]any{
			"break_name": cfg.Categories.BreakName,
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
		},
		"state": map[string]any{
			"dir": cfg.State.Dir,
		},
	}

	data, err := toml.Marshal(output)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the global config file",
		Long: `Create a commented global config file with default values.

The file is written to $XDG_CONFIG_HOME/worklog/config.toml
(~/.config/worklog/config.toml). An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{})
			if errors.Is(err, domain.ErrConfigExists) {
				return fmt.Errorf("%w: remove it first or edit it directly", err)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config: %s\n", out.Path)
			return nil
		},
	}
}
