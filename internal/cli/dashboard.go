package cli

import (
	"errors"

	"github.com/runoshun/worklog/internal/app"
	"github.com/runoshun/worklog/internal/tui"
	"github.com/spf13/cobra"
)

// launchDashboardFunc launches the dashboard, allowing it to be mocked in tests.
var launchDashboardFunc = launchDashboard

func launchDashboard(_ *cobra.Command, c *app.Container) error {
	if c == nil {
		return errors.New("dashboard needs a loaded configuration")
	}
	return tui.Run(c)
}

// newDashboardCommand creates the dashboard command.
func newDashboardCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Long: `Open the interactive dashboard for a day.

The dashboard credits the running timer once a minute while it is open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchDashboardFunc(cmd, c)
		},
	}
}
