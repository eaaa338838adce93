package cli

import (
	"fmt"
	"io"

	"github.com/runoshun/worklog/internal/app"
	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase"
	"github.com/spf13/cobra"
)

// newBoardCommand creates the board command.
func newBoardCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Reorder sprint and kanban boards",
		Long: `Reorder sprint and kanban boards.

A sprint board groups tasks by assignee, a kanban board by status.
Orders within a group are 1-based and renumbered after every move.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newBoardShowCommand(c))
	cmd.AddCommand(newBoardMoveCommand(c))
	cmd.AddCommand(newBoardStatusCommand(c))

	return cmd
}

// boardScopeFlags are the flags selecting the tasks on a board.
type boardScopeFlags struct {
	sprint string
	date   string
}

func (f *boardScopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sprint, "sprint", "", "Sprint to load")
	cmd.Flags().StringVar(&f.date, "date", "", "Only tasks of this day (YYYY-MM-DD)")
}

func (f *boardScopeFlags) scope() (domain.TaskScope, error) {
	d, err := parseDateFlag("date", f.date)
	if err != nil {
		return domain.TaskScope{}, err
	}
	scope := domain.TaskScope{Sprint: f.sprint}
	if !d.IsZero() {
		scope.Date = domain.Day(d)
	}
	return scope, nil
}

// newBoardShowCommand creates the board show subcommand.
func newBoardShowCommand(c *app.Container) *cobra.Command {
	var scopeFlags boardScopeFlags
	var by string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the groups of a board in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := scopeFlags.scope()
			if err != nil {
				return err
			}
			tasks, err := c.Tasks.ListTasks(cmd.Context(), scope)
			if err != nil {
				return err
			}
			board, err := domain.NewBoard(tasks, domain.GroupBy(by))
			if err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), board)
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", string(domain.GroupByStatus), "Grouping: assignee or status")
	scopeFlags.register(cmd)

	return cmd
}

func printBoard(w io.Writer, board *domain.Board) {
	for i, key := range board.Keys() {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		title := key
		if board.GroupBy() == domain.GroupByStatus {
			title = domain.Status(key).Display()
		} else if key == "" {
			title = "(unassigned)"
		}
		group := board.Group(key)
		_, _ = fmt.Fprintf(w, "%s (%d)\n", title, len(group))
		for idx, t := range group {
			line := fmt.Sprintf("  %d. [%s] %s", idx, t.ID, t.Title)
			// Status columns already say it; assignee groups mark finished work.
			if board.GroupBy() == domain.GroupByAssignee && t.Status.IsTerminal() {
				line += " (done)"
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}
}

// newBoardMoveCommand creates the board move subcommand.
func newBoardMoveCommand(c *app.Container) *cobra.Command {
	var scopeFlags boardScopeFlags
	var by, from, to string
	var fromIndex, toIndex int

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a task between positions or groups",
		Long: `Move the task at --from-index in group --from to --to-index in group --to.

Indexes are 0-based positions as printed by "board show". A destination
index past the end of the group appends. Every task whose order or group
changed is persisted; on failure the command reports which updates failed.`,
		Example: `  worklog board move --by status --from todo --from-index 0 --to done --to-index 1
  worklog board move --by assignee --sprint 12 --from kim --from-index 2 --to kim --to-index 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := scopeFlags.scope()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("to") {
				to = from
			}
			out, err := c.ReorderTasksUseCase().Execute(cmd.Context(), usecase.ReorderTasksInput{
				Scope:   scope,
				GroupBy: domain.GroupBy(by),
				Event: domain.MoveEvent{
					SourceKey:   from,
					SourceIndex: fromIndex,
					DestKey:     to,
					DestIndex:   toIndex,
				},
			})
			w := cmd.OutOrStdout()
			if out != nil && out.Result != nil && (out.Result.NoOp || out.Result.Moved != nil) {
				switch {
				case out.Result.NoOp:
					_, _ = fmt.Fprintln(w, "Nothing to move.")
				case err == nil:
					_, _ = fmt.Fprintf(w, "Moved task %s: %d tasks updated\n", out.Result.Moved.ID, out.Persisted)
				default:
					_, _ = fmt.Fprintf(w, "Moved task %s: %d of %d updates saved, failed: %v\n",
						out.Result.Moved.ID, out.Persisted, len(out.Result.Changed), out.Failed)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&by, "by", string(domain.GroupByStatus), "Grouping: assignee or status")
	cmd.Flags().StringVar(&from, "from", "", "Source group (status or assignee)")
	cmd.Flags().IntVar(&fromIndex, "from-index", 0, "Position in the source group")
	cmd.Flags().StringVar(&to, "to", "", "Destination group (default: same as --from)")
	cmd.Flags().IntVar(&toIndex, "to-index", 0, "Position in the destination group")
	scopeFlags.register(cmd)
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

// newBoardStatusCommand creates the board status subcommand.
func newBoardStatusCommand(c *app.Container) *cobra.Command {
	var scopeFlags boardScopeFlags

	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a task to the end of another kanban column",
		Example: `  worklog board status 42 in_progress
  worklog board status 42 done --sprint 12`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := scopeFlags.scope()
			if err != nil {
				return err
			}
			out, err := c.MoveTaskStatusUseCase().Execute(cmd.Context(), usecase.MoveTaskStatusInput{
				Scope:  scope,
				TaskID: args[0],
				Status: domain.Status(args[1]),
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.NoOp {
				_, _ = fmt.Fprintf(w, "Task %s is already %s\n", out.Task.ID, out.Task.Status.Display())
				return nil
			}
			_, _ = fmt.Fprintf(w, "Moved task %s: %s -> %s (position %d)\n",
				out.Task.ID, out.Previous.Display(), out.Task.Status.Display(), out.Task.Order)
			return nil
		},
	}

	scopeFlags.register(cmd)
	return cmd
}
