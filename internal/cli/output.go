package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// addFormatFlag registers --format on cmd.
func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(format, "format", "o", formatText, "Output format: text, json or yaml")
}

// writeStructured encodes v as JSON or YAML. It reports false for the text
// format so the caller renders its own table.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatText, "":
		return false, nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return true, fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
}

// taskView is the structured rendering of a task.
// Fields are ordered to minimize memory padding.
type taskView struct {
	CategoryID    *string  `json:"category_id" yaml:"category_id"`
	PriorityID    *string  `json:"priority_id" yaml:"priority_id"`
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Date          string   `json:"date" yaml:"date"`
	StartTime     string   `json:"start_time" yaml:"start_time"`
	EndTime       string   `json:"end_time" yaml:"end_time"`
	Category      string   `json:"category" yaml:"category"`
	Priority      string   `json:"priority" yaml:"priority"`
	Assignee      string   `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Status        string   `json:"status" yaml:"status"`
	Tags          []string `json:"tags" yaml:"tags"`
	Minutes       int      `json:"minutes" yaml:"minutes"`
	ActualMinutes int      `json:"actual_minutes" yaml:"actual_minutes"`
	Order         int      `json:"order" yaml:"order"`
}

func newTaskView(t *domain.Task, categories []domain.Category, priorities []domain.Priority) taskView {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return taskView{
		ID:            t.ID,
		Title:         t.Title,
		Date:          domain.FormatDate(t.Date),
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
		CategoryID:    t.CategoryID,
		Category:      domain.CategoryName(categories, t.CategoryID),
		PriorityID:    t.PriorityID,
		Priority:      domain.PriorityName(priorities, t.PriorityID),
		Assignee:      t.Assignee,
		Status:        string(t.Status),
		Tags:          tags,
		Minutes:       domain.TaskDuration(t),
		ActualMinutes: t.ActualMinutes,
		Order:         t.Order,
	}
}

func newTaskViews(tasks []*domain.Task, categories []domain.Category, priorities []domain.Priority) []taskView {
	views := make([]taskView, len(tasks))
	for i, t := range tasks {
		views[i] = newTaskView(t, categories, priorities)
	}
	return views
}

// printWarnings writes non-fatal load failures to stderr.
func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
}

// parseDateFlag parses a YYYY-MM-DD flag value. Empty means the zero date.
func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

// tagsCell renders tags for a table cell.
func tagsCell(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ",")
}
