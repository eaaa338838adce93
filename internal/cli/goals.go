package cli

import (
	"fmt"
	"strconv"

	"github.com/runoshun/worklog/internal/app"
	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase"
	"github.com/spf13/cobra"
)

// newGoalsCommand creates the goals command.
func newGoalsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage daily goal minutes per category",
		Long: `Manage daily goal minutes per category.

Goals are stored locally in the state file, never on the backend.
New categories are seeded with [goals] default_minutes (break
categories with break_minutes); goals of deleted categories are dropped.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newGoalsListCommand(c))
	cmd.AddCommand(newGoalsSetCommand(c))
	cmd.AddCommand(newGoalsSyncCommand(c))

	return cmd
}

// newGoalsListCommand creates the goals list subcommand.
func newGoalsListCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the goal of every category",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListGoalsUseCase().Execute(cmd.Context(), usecase.ListGoalsInput{})
			if err != nil {
				return err
			}
			printWarnings(cmd, out.Warnings)

			goals := out.Goals
			if goals == nil {
				goals = []usecase.GoalEntry{}
			}
			if done, err := writeStructured(cmd.OutOrStdout(), format, goals); done {
				return err
			}

			w := cmd.OutOrStdout()
			if len(goals) == 0 {
				_, _ = fmt.Fprintln(w, "No categories found.")
				return nil
			}
			tw := newTabWriter(w)
			_, _ = fmt.Fprintln(tw, "ID\tCATEGORY\tGOAL")
			for _, g := range goals {
				name := g.Category.Name
				if g.Category.IsBreak {
					name += " (break)"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", g.Category.ID, name, domain.FormatMinutes(g.Minutes))
			}
			return tw.Flush()
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

// newGoalsSetCommand creates the goals set subcommand.
func newGoalsSetCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <minutes>",
		Short: "Set the daily goal of a category",
		Long: `Set the daily goal of a category.

The category is matched by ID first, then by name (case-insensitive).
A goal of 0 means the category is tracked without a target.`,
		Example: `  worklog goals set "Deep work" 240
  worklog goals set 3 0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid minutes %q: %w", args[1], err)
			}
			out, err := c.SetGoalUseCase().Execute(cmd.Context(), usecase.SetGoalInput{
				Category: args[0],
				Minutes:  minutes,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Goal for %s: %s (was %s)\n",
				out.Goal.Category.Name, domain.FormatMinutes(out.Goal.Minutes), domain.FormatMinutes(out.Previous))
			return nil
		},
	}
}

// newGoalsSyncCommand creates the goals sync subcommand.
func newGoalsSyncCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Seed goals for new categories and drop stale ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.SyncGoalsUseCase().Execute(cmd.Context(), usecase.SyncGoalsInput{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Goals synced: %d added, %d removed, %d total\n",
				out.Added, out.Removed, len(out.Goals))
			return nil
		},
	}
}
