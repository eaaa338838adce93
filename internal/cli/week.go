package cli

import (
	"fmt"

	"github.com/runoshun/worklog/internal/app"
	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase"
	"github.com/spf13/cobra"
)

// dayView is the structured rendering of one day of a week.
type dayView struct {
	Date    string `json:"date" yaml:"date"`
	Day     string `json:"day" yaml:"day"`
	Minutes int    `json:"minutes" yaml:"minutes"`
}

// weekView is the structured rendering of a weekly rollup.
type weekView struct {
	Start   string         `json:"start" yaml:"start"`
	End     string         `json:"end" yaml:"end"`
	Days    []dayView      `json:"days" yaml:"days"`
	Summary domain.Summary `json:"summary" yaml:"summary"`
	Total   int            `json:"total_minutes" yaml:"total_minutes"`
}

// newWeekCommand creates the week command.
func newWeekCommand(c *app.Container) *cobra.Command {
	var date, format string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Roll up the Monday-to-Sunday week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}
			out, err := c.ShowWeekUseCase().Execute(cmd.Context(), usecase.ShowWeekInput{Date: d})
			if err != nil {
				return err
			}
			printWarnings(cmd, out.Warnings)

			view := weekView{
				Start:   domain.FormatDate(out.Start),
				End:     domain.FormatDate(out.End),
				Summary: out.Summary,
				Total:   out.Total,
			}
			for _, day := range out.Days {
				view.Days = append(view.Days, dayView{
					Date:    domain.FormatDate(day.Date),
					Day:     day.DayName,
					Minutes: day.Minutes,
				})
			}
			if done, err := writeStructured(cmd.OutOrStdout(), format, view); done {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Week %s to %s\n\n", view.Start, view.End)
			tw := newTabWriter(w)
			for _, day := range view.Days {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", day.Day, day.Date, domain.FormatMinutes(day.Minutes))
			}
			_ = tw.Flush()
			_, _ = fmt.Fprintf(w, "\nTotal:         %s\n", domain.FormatMinutes(out.Total))
			_, _ = fmt.Fprintf(w, "Productive:    %s\n", domain.FormatMinutes(out.Summary.ProductiveMinutes))
			_, _ = fmt.Fprintf(w, "Break:         %s\n", domain.FormatMinutes(out.Summary.BreakMinutes))
			if len(out.Summary.ByCategory) > 0 {
				_, _ = fmt.Fprintln(w, "\nBy category")
				printMinuteBuckets(w, out.Summary.ByCategory, func(id string) string {
					return domain.CategoryName(out.Categories, &id)
				})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day of the week (YYYY-MM-DD, default today)")
	addFormatFlag(cmd, &format)

	return cmd
}
