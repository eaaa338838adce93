package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/runoshun/worklog/internal/app"
	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase"
	"github.com/spf13/cobra"
)

// summaryView is the structured rendering of a day summary.
type summaryView struct {
	Date    string               `json:"date" yaml:"date"`
	Summary domain.Summary       `json:"summary" yaml:"summary"`
	Goals   domain.GoalReport    `json:"goals" yaml:"goals"`
	Cadence domain.CadenceAdvice `json:"cadence" yaml:"cadence"`
	Tasks   []taskView           `json:"tasks" yaml:"tasks"`
}

// newSummaryCommand creates the summary command.
func newSummaryCommand(c *app.Container) *cobra.Command {
	var date, format string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a day: totals, goals and break cadence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}
			out, err := c.ShowSummaryUseCase().Execute(cmd.Context(), usecase.ShowSummaryInput{Date: d})
			if err != nil {
				return err
			}
			printWarnings(cmd, out.Warnings)

			view := summaryView{
				Date:    domain.FormatDate(out.Date),
				Summary: out.Summary,
				Goals:   out.Goals,
				Cadence: out.Cadence,
				Tasks:   newTaskViews(out.Tasks, out.Categories, out.Priorities),
			}
			if done, err := writeStructured(cmd.OutOrStdout(), format, view); done {
				return err
			}
			printSummary(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to summarize (YYYY-MM-DD, default today)")
	addFormatFlag(cmd, &format)

	return cmd
}

func printSummary(w io.Writer, out *usecase.ShowSummaryOutput) {
	s := out.Summary
	_, _ = fmt.Fprintf(w, "Summary for %s\n\n", domain.FormatDate(out.Date))
	_, _ = fmt.Fprintf(w, "Total:         %s (%d entries)\n", domain.FormatMinutes(s.TotalMinutes), s.Entries)
	_, _ = fmt.Fprintf(w, "Productive:    %s\n", domain.FormatMinutes(s.ProductiveMinutes))
	_, _ = fmt.Fprintf(w, "Break:         %s\n", domain.FormatMinutes(s.BreakMinutes))
	_, _ = fmt.Fprintf(w, "Productivity:  %d/100\n", s.ProductivityScore)

	if len(s.ByCategory) > 0 {
		_, _ = fmt.Fprintln(w, "\nBy category")
		printMinuteBuckets(w, s.ByCategory, func(id string) string {
			return domain.CategoryName(out.Categories, &id)
		})
	}
	if len(s.ByPriority) > 0 {
		_, _ = fmt.Fprintln(w, "\nBy priority")
		printMinuteBuckets(w, s.ByPriority, func(id string) string {
			return domain.PriorityName(out.Priorities, &id)
		})
	}

	if len(out.Goals.Progress) > 0 {
		_, _ = fmt.Fprintln(w, "\nGoals")
		printGoalProgress(w, out.Goals.Progress)
	}
	if len(out.Goals.Overbooked) > 0 {
		names := make([]string, len(out.Goals.Overbooked))
		for i, p := range out.Goals.Overbooked {
			names[i] = p.Category.Name
			if over := p.Overage(); over > 0 {
				names[i] += fmt.Sprintf(" (+%s)", domain.FormatMinutes(over))
			}
		}
		_, _ = fmt.Fprintf(w, "Overbooked: %s\n", strings.Join(names, ", "))
	}

	a := out.Cadence
	_, _ = fmt.Fprintln(w, "\nCadence")
	if a.Message != "" {
		_, _ = fmt.Fprintln(w, a.Message)
	}
	_, _ = fmt.Fprintf(w, "Sessions: %d, average %s, break every %d min, work %d%% / break %d%%\n",
		a.Sessions, domain.FormatMinutes(int(a.AverageSession+0.5)), a.RecommendedEvery, a.WorkShare, a.BreakShare)
}

// printMinuteBuckets prints id->minutes rows sorted by minutes, largest first.
func printMinuteBuckets(w io.Writer, buckets map[string]int, name func(string) string) {
	ids := make([]string, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		if buckets[a] != buckets[b] {
			return buckets[b] - buckets[a]
		}
		return strings.Compare(a, b)
	})

	tw := newTabWriter(w)
	for _, id := range ids {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\n", name(id), domain.FormatMinutes(buckets[id]))
	}
	_ = tw.Flush()
}

func printGoalProgress(w io.Writer, progress []domain.GoalProgress) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "  CATEGORY\tGOAL\tACTUAL\tPERCENT\tSTATUS")
	for _, p := range progress {
		goal := "-"
		if p.Goal > 0 {
			goal = domain.FormatMinutes(p.Goal)
		}
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\t%d%%\t%s\n",
			p.Category.Name, goal, domain.FormatMinutes(p.Actual), p.DisplayPercent, p.Status.Display())
	}
	_ = tw.Flush()
}
