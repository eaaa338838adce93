package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/worklog/internal/app"
	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase"
	"github.com/spf13/cobra"
)

// newNoteCommand creates the note command.
func newNoteCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Read or write the daily note",
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newNoteShowCommand(c))
	cmd.AddCommand(newNoteSetCommand(c))

	return cmd
}

// newNoteShowCommand creates the note show subcommand.
func newNoteShowCommand(c *app.Container) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the note of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}
			out, err := c.ShowNoteUseCase().Execute(cmd.Context(), usecase.ShowNoteInput{Date: d})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Note == nil || out.Note.Content == "" {
				_, _ = fmt.Fprintf(w, "No note for %s.\n", domain.FormatDate(out.Date))
				return nil
			}
			_, _ = fmt.Fprintln(w, out.Note.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	return cmd
}

// newNoteSetCommand creates the note set subcommand.
func newNoteSetCommand(c *app.Container) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "set <content>|-",
		Short: "Replace the note of a day",
		Long: `Replace the note of a day. The note is created if it does not exist.
Pass "-" to read the content from stdin.`,
		Example: `  worklog note set "Retro moved to Friday"
  echo "standup notes" | worklog note set -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}
			content := strings.Join(args, " ")
			if content == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = strings.TrimRight(string(b), "\n")
			}

			out, err := c.SaveNoteUseCase().Execute(cmd.Context(), usecase.SaveNoteInput{Date: d, Content: content})
			if err != nil {
				return err
			}
			verb := "Updated"
			if out.Created {
				verb = "Created"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s note for %s\n", verb, domain.FormatDate(out.Note.Date))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	return cmd
}
