package cli

import (
	"errors"
	"fmt"

	"github.com/runoshun/worklog/internal/app"
	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase"
	"github.com/spf13/cobra"
)

// newTasksCommand creates the tasks command.
func newTasksCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "List and edit logged tasks",
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newTasksListCommand(c))
	cmd.AddCommand(newTasksAddCommand(c))
	cmd.AddCommand(newTasksEditCommand(c))
	cmd.AddCommand(newTasksRmCommand(c))

	return cmd
}

// newTasksListCommand creates the tasks list subcommand.
func newTasksListCommand(c *app.Container) *cobra.Command {
	var date, from, to, format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks of a day or a date range",
		Example: `  worklog tasks list
  worklog tasks list --date 2026-10-14
  worklog tasks list --from 2026-10-12 --to 2026-10-18 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := resolveScope(c, date, from, to)
			if err != nil {
				return err
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{Scope: scope})
			if err != nil {
				return err
			}
			printWarnings(cmd, out.Warnings)

			views := newTaskViews(out.Tasks, out.Categories, out.Priorities)
			if done, err := writeStructured(cmd.OutOrStdout(), format, views); done {
				return err
			}
			printTaskTable(cmd, views)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to list (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&from, "from", "", "First day of a range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day of a range (YYYY-MM-DD)")
	cmd.MarkFlagsMutuallyExclusive("date", "from")
	cmd.MarkFlagsMutuallyExclusive("date", "to")
	cmd.MarkFlagsRequiredTogether("from", "to")
	addFormatFlag(cmd, &format)

	return cmd
}

// resolveScope turns --date or --from/--to into a task scope.
func resolveScope(c *app.Container, date, from, to string) (domain.TaskScope, error) {
	if from != "" || to != "" {
		f, err := parseDateFlag("from", from)
		if err != nil {
			return domain.TaskScope{}, err
		}
		t, err := parseDateFlag("to", to)
		if err != nil {
			return domain.TaskScope{}, err
		}
		if t.Before(f) {
			return domain.TaskScope{}, errors.New("--to must not be before --from")
		}
		return domain.RangeScope(f, t), nil
	}
	d, err := parseDateFlag("date", date)
	if err != nil {
		return domain.TaskScope{}, err
	}
	if d.IsZero() {
		d = c.Clock.Now()
	}
	return domain.DayScope(d), nil
}

func printTaskTable(cmd *cobra.Command, views []taskView) {
	w := cmd.OutOrStdout()
	if len(views) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks found.")
		return
	}

	total := 0
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "ID\tDATE\tTIME\tDURATION\tCATEGORY\tPRIORITY\tTITLE\tTAGS")
	for _, v := range views {
		total += v.Minutes
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s-%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Date, v.StartTime, v.EndTime, domain.FormatMinutes(v.Minutes),
			v.Category, v.Priority, v.Title, tagsCell(v.Tags))
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintf(w, "\n%d tasks, %s\n", len(views), domain.FormatMinutes(total))
}

// newTasksAddCommand creates the tasks add subcommand.
func newTasksAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		date     string
		category string
		priority string
		title    string
		start    string
		end      string
		assignee string
		status   string
		tags     []string
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new task",
		Example: `  worklog tasks add --title "Code review" --start 9:00 --end 10:30 --category 3
  worklog tasks add --title "Late deploy" --start 23:30 --end 00:15 --tag ops`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := parseDateFlag("date", opts.date)
			if err != nil {
				return err
			}
			in := usecase.CreateTaskInput{
				Date:      date,
				Title:     opts.title,
				StartTime: opts.start,
				EndTime:   opts.end,
				Assignee:  opts.assignee,
				Status:    domain.Status(opts.status),
				Tags:      opts.tags,
			}
			if opts.category != "" {
				in.CategoryID = &opts.category
			}
			if opts.priority != "" {
				in.PriorityID = &opts.priority
			}

			out, err := c.CreateTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s (%s)\n",
				out.Task.ID, out.Task.Title, domain.FormatMinutes(domain.TaskDuration(out.Task)))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&opts.start, "start", "", "Start time HH:MM (required)")
	cmd.Flags().StringVar(&opts.end, "end", "", "End time HH:MM (required)")
	cmd.Flags().StringVar(&opts.date, "date", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&opts.category, "category", "", "Category ID")
	cmd.Flags().StringVar(&opts.priority, "priority", "", "Priority ID")
	cmd.Flags().StringVar(&opts.assignee, "assignee", "", "Assignee for sprint boards")
	cmd.Flags().StringVar(&opts.status, "status", "", "Kanban status (default todo)")
	cmd.Flags().StringArrayVar(&opts.tags, "tag", nil, "Tag (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// newTasksEditCommand creates the tasks edit subcommand.
func newTasksEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		date       string
		title      string
		start      string
		end        string
		category   string
		priority   string
		assignee   string
		status     string
		addTags    []string
		removeTags []string
		noCategory bool
		noPriority bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit a task. Only the given fields are sent to the backend.

Tags are merged into the current list: --add-tag appends, --remove-tag drops.`,
		Example: `  worklog tasks edit 42 --end 11:15
  worklog tasks edit 42 --add-tag review --remove-tag draft
  worklog tasks edit 42 --no-category`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			in := usecase.EditTaskInput{
				TaskID:        args[0],
				AddTags:       opts.addTags,
				RemoveTags:    opts.removeTags,
				ClearCategory: opts.noCategory,
				ClearPriority: opts.noPriority,
			}
			if flags.Changed("date") {
				d, err := parseDateFlag("date", opts.date)
				if err != nil {
					return err
				}
				in.Date = &d
			}
			if flags.Changed("title") {
				in.Title = &opts.title
			}
			if flags.Changed("start") {
				in.StartTime = &opts.start
			}
			if flags.Changed("end") {
				in.EndTime = &opts.end
			}
			if flags.Changed("category") {
				in.CategoryID = &opts.category
			}
			if flags.Changed("priority") {
				in.PriorityID = &opts.priority
			}
			if flags.Changed("assignee") {
				in.Assignee = &opts.assignee
			}
			if flags.Changed("status") {
				s := domain.Status(opts.status)
				in.Status = &s
			}

			out, err := c.EditTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.start, "start", "", "New start time HH:MM")
	cmd.Flags().StringVar(&opts.end, "end", "", "New end time HH:MM")
	cmd.Flags().StringVar(&opts.date, "date", "", "New day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.category, "category", "", "New category ID")
	cmd.Flags().StringVar(&opts.priority, "priority", "", "New priority ID")
	cmd.Flags().StringVar(&opts.assignee, "assignee", "", "New assignee")
	cmd.Flags().StringVar(&opts.status, "status", "", "New kanban status")
	cmd.Flags().StringArrayVar(&opts.addTags, "add-tag", nil, "Tag to add (repeatable)")
	cmd.Flags().StringArrayVar(&opts.removeTags, "remove-tag", nil, "Tag to remove (repeatable)")
	cmd.Flags().BoolVar(&opts.noCategory, "no-category", false, "Clear the category")
	cmd.Flags().BoolVar(&opts.noPriority, "no-priority", false, "Clear the priority")
	cmd.MarkFlagsMutuallyExclusive("category", "no-category")
	cmd.MarkFlagsMutuallyExclusive("priority", "no-priority")

	return cmd
}

// newTasksRmCommand creates the tasks rm subcommand.
func newTasksRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Deleted task %s\n", args[0])
			if out.TimerStopped {
				_, _ = fmt.Fprintln(w, "The running timer on this task was stopped.")
			}
			return nil
		},
	}
}
