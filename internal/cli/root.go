// Package cli provides the command-line interface for worklog.
package cli

import (
	"fmt"
	"strings"

	"github.com/runoshun/worklog/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupLog   = "log"
	groupBoard = "board"
)

// NewRootCommand creates the root command for worklog.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "worklog",
		Short: "Work log client for the team task backend",
		Long: `worklog logs time against tasks stored in a project management backend.

It summarizes a day (totals, productivity, category goals, break cadence),
rolls up the week, reorders sprint and kanban boards, and runs a live
timer that credits minutes to the task it tracks.

Run without arguments to open the dashboard.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchDashboardFunc(cmd, c)
		},
	}

	// Consumed by main before the container is built; declared here so
	// cobra accepts it on every command.
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file merged over the global config")

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupLog, Title: "Work Log:"},
		&cobra.Group{ID: groupBoard, Title: "Boards and Timer:"},
	)

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	catalogCmd := newCatalogCommand(c)
	catalogCmd.GroupID = groupSetup

	tasksCmd := newTasksCommand(c)
	tasksCmd.GroupID = groupLog

	summaryCmd := newSummaryCommand(c)
	summaryCmd.GroupID = groupLog

	weekCmd := newWeekCommand(c)
	weekCmd.GroupID = groupLog

	goalsCmd := newGoalsCommand(c)
	goalsCmd.GroupID = groupLog

	noteCmd := newNoteCommand(c)
	noteCmd.GroupID = groupLog

	boardCmd := newBoardCommand(c)
	boardCmd.GroupID = groupBoard

	timerCmd := newTimerCommand(c)
	timerCmd.GroupID = groupBoard

	dashboardCmd := newDashboardCommand(c)
	dashboardCmd.GroupID = groupBoard

	root.AddCommand(
		configCmd,
		catalogCmd,
		tasksCmd,
		summaryCmd,
		weekCmd,
		goalsCmd,
		noteCmd,
		boardCmd,
		timerCmd,
		dashboardCmd,
	)

	return root
}

// ConfigPathFromArgs returns the value of --config in args, or "".
// Parsing stops at "--".
func ConfigPathFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return ""
		case arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}
