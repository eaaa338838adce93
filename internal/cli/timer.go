package cli

import (
	"fmt"
	"time"

	"github.com/runoshun/worklog/internal/app"
	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase"
	"github.com/spf13/cobra"
)

// newTimerCommand creates the timer command.
func newTimerCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the live timer",
		Long: `Run the live timer.

One timer runs at a time. Elapsed whole minutes are added to the task's
actual minutes on every tick and when the timer stops. The timer lives in
the local state file, so it survives between invocations.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newTimerStartCommand(c))
	cmd.AddCommand(newTimerStopCommand(c))
	cmd.AddCommand(newTimerTickCommand(c))
	cmd.AddCommand(newTimerStatusCommand(c))

	return cmd
}

// newTimerStartCommand creates the timer start subcommand.
func newTimerStartCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "start <task-id>",
		Short: "Start the timer on a task",
		Long: `Start the timer on a task. A timer running on another task is
stopped first and its minutes are credited.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.StartTimerUseCase().Execute(cmd.Context(), usecase.StartTimerInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Previous != nil {
				_, _ = fmt.Fprintf(w, "Stopped timer on task %s (+%d min)\n", out.Previous.TaskID, out.Previous.Minutes)
			}
			if out.Already {
				_, _ = fmt.Fprintf(w, "Timer already running on task %s since %s\n",
					out.Task.ID, out.Session.StartedAt.Local().Format("15:04"))
				return nil
			}
			_, _ = fmt.Fprintf(w, "Started timer on task %s: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}
}

// newTimerStopCommand creates the timer stop subcommand.
func newTimerStopCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and credit the remaining minutes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.StopTimerUseCase().Execute(cmd.Context(), usecase.StopTimerInput{})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Flush == nil {
				_, _ = fmt.Fprintf(w, "Stopped timer; task %s no longer exists\n", out.Session.TaskID)
				return nil
			}
			_, _ = fmt.Fprintf(w, "Stopped timer on task %s (+%d min)\n", out.Flush.TaskID, out.Flush.Minutes)
			if out.Flush.Task != nil {
				_, _ = fmt.Fprintf(w, "Actual time: %s\n", domain.FormatMinutes(out.Flush.Task.ActualMinutes))
			}
			return nil
		},
	}
}

// newTimerTickCommand creates the timer tick subcommand.
func newTimerTickCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Credit elapsed minutes without stopping",
		Long: `Credit elapsed whole minutes to the running task without stopping
the timer. Suitable for a cron job; does nothing when no timer runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.TickTimerUseCase().Execute(cmd.Context(), usecase.TickTimerInput{})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch {
			case out.Flush == nil && !out.Running:
				_, _ = fmt.Fprintln(w, "No timer running.")
			case out.Flush == nil:
				_, _ = fmt.Fprintln(w, "Timer running.")
			default:
				_, _ = fmt.Fprintf(w, "Task %s +%d min\n", out.Flush.TaskID, out.Flush.Minutes)
			}
			return nil
		},
	}
}

// newTimerStatusCommand creates the timer status subcommand.
func newTimerStatusCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.TimerStatusUseCase().Execute(cmd.Context(), usecase.TimerStatusInput{})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Session == nil {
				_, _ = fmt.Fprintln(w, "No timer running.")
				return nil
			}
			title := "(unavailable)"
			if out.Task != nil {
				title = out.Task.Title
			}
			_, _ = fmt.Fprintf(w, "Task:     %s %s\n", out.Session.TaskID, title)
			_, _ = fmt.Fprintf(w, "Running:  %s\n", formatRunning(out.Running))
			_, _ = fmt.Fprintf(w, "Pending:  %d min\n", out.Pending)
			return nil
		},
	}
}

// formatRunning renders a duration as H:MM:SS.
func formatRunning(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
