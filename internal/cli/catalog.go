package cli

import (
	"fmt"

	"github.com/runoshun/worklog/internal/app"
	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase"
	"github.com/spf13/cobra"
)

// catalogView is the structured rendering of the reference lists.
type catalogView struct {
	Categories []domain.Category `json:"categories" yaml:"categories"`
	Priorities []domain.Priority `json:"priorities" yaml:"priorities"`
	Tags       []string          `json:"tags" yaml:"tags"`
}

// newCatalogCommand creates the catalog command.
func newCatalogCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List categories, priorities and tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowCatalogUseCase().Execute(cmd.Context(), usecase.ShowCatalogInput{})
			if err != nil {
				return err
			}
			view := catalogView{
				Categories: nonNil(out.Categories),
				Priorities: nonNil(out.Priorities),
				Tags:       nonNil(out.Tags),
			}
			if done, err := writeStructured(cmd.OutOrStdout(), format, view); done {
				return err
			}

			w := cmd.OutOrStdout()
			tw := newTabWriter(w)
			_, _ = fmt.Fprintln(tw, "CATEGORY\tID\tBREAK")
			for _, cat := range view.Categories {
				brk := ""
				if cat.IsBreak {
					brk = "yes"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", cat.Name, cat.ID, brk)
			}
			_ = tw.Flush()

			_, _ = fmt.Fprintln(w)
			tw = newTabWriter(w)
			_, _ = fmt.Fprintln(tw, "PRIORITY\tID")
			for _, p := range view.Priorities {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.ID)
			}
			_ = tw.Flush()

			_, _ = fmt.Fprintf(w, "\nTags: %s\n", tagsCell(view.Tags))
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
