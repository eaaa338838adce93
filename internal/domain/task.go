// Package domain contains core business entities and interfaces.
package domain

import (
	"slices"
	"time"
)

// DateLayout is the calendar date format used on the wire and in flags.
const DateLayout = "2006-01-02"

// Task is a logged unit of time. Sprint and kanban views reuse it as an
// ordered board item grouped by assignee or status.
// Fields are ordered to minimize memory padding.
type Task struct {
	Date          time.Time // Owning calendar date (midnight UTC)
	CategoryID    *string   // nil = unassigned
	PriorityID    *string   // nil = unassigned
	ID            string    // Opaque backend identifier
	Title         string    // Display title
	StartTime     string    // "HH:MM"
	EndTime       string    // "HH:MM", may be before StartTime (crosses midnight)
	Assignee      string    // Developer grouping for sprint views
	Status        Status    // Kanban column
	Tags          []string  // Free-text labels, insertion order preserved
	ActualMinutes int       // Minutes accumulated by the live timer
	Order         int       // 1-based rank within its board group
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.CategoryID = cloneString(t.CategoryID)
	c.PriorityID = cloneString(t.PriorityID)
	c.Tags = slices.Clone(t.Tags)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// MergeTags appends add to current, skipping duplicates and removed tags.
// Insertion order of the surviving tags is kept.
func MergeTags(current, add, remove []string) []string {
	removed := make(map[string]bool, len(remove))
	for _, tag := range remove {
		removed[tag] = true
	}

	seen := make(map[string]bool, len(current)+len(add))
	var result []string
	for _, group := range [][]string{current, add} {
		for _, tag := range group {
			if tag == "" || removed[tag] || seen[tag] {
				continue
			}
			seen[tag] = true
			result = append(result, tag)
		}
	}
	return result
}

// TaskPatch describes a partial update. Nil fields are left unchanged.
// Fields are ordered to minimize memory padding.
type TaskPatch struct {
	Date          *time.Time
	CategoryID    **string // non-nil pointer to nil clears the category
	PriorityID    **string
	Title         *string
	StartTime     *string
	EndTime       *string
	Assignee      *string
	Status        *Status
	ActualMinutes *int
	Order         *int
	Tags          []string
	SetTags       bool
}

// IsEmpty returns true if the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Date == nil && p.CategoryID == nil && p.PriorityID == nil &&
		p.Title == nil && p.StartTime == nil && p.EndTime == nil &&
		p.Assignee == nil && p.Status == nil && p.ActualMinutes == nil &&
		p.Order == nil && !p.SetTags
}

// Apply applies the patch to the task in place.
func (p TaskPatch) Apply(t *Task) {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.CategoryID != nil {
		t.CategoryID = cloneString(*p.CategoryID)
	}
	if p.PriorityID != nil {
		t.PriorityID = cloneString(*p.PriorityID)
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.StartTime != nil {
		t.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		t.EndTime = *p.EndTime
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.ActualMinutes != nil {
		t.ActualMinutes = *p.ActualMinutes
	}
	if p.Order != nil {
		t.Order = *p.Order
	}
	if p.SetTags {
		t.Tags = slices.Clone(p.Tags)
	}
}

// TaskScope selects the tasks to list: a single date or an inclusive range.
type TaskScope struct {
	Date   time.Time
	From   time.Time
	To     time.Time
	Sprint string // Optional sprint filter for board views
}

// DayScope returns a scope covering a single date.
func DayScope(date time.Time) TaskScope {
	return TaskScope{Date: Day(date)}
}

// RangeScope returns a scope covering from..to inclusive.
func RangeScope(from, to time.Time) TaskScope {
	return TaskScope{From: Day(from), To: Day(to)}
}

// IsRange returns true if the scope is a date range.
func (s TaskScope) IsRange() bool {
	return !s.From.IsZero() || !s.To.IsZero()
}

// Category classifies tasks. Name carries meaning for break detection.
type Category struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Hex     string `json:"hex,omitempty" yaml:"hex,omitempty"`
	IsBreak bool   `json:"is_break" yaml:"is_break"`
}

// Priority ranks tasks.
type Priority struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Hex  string `json:"hex,omitempty" yaml:"hex,omitempty"`
}

// Note is the free-form daily note.
type Note struct {
	Date    time.Time
	ID      string
	Content string
}

// Day truncates t to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD. The zero time formats as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// CategoryName resolves a category id to its name.
// Missing or dangling references display as "Unassigned".
func CategoryName(categories []Category, id *string) string {
	if id == nil {
		return "Unassigned"
	}
	for _, c := range categories {
		if c.ID == *id {
			return c.Name
		}
	}
	return "Unassigned"
}

// PriorityName resolves a priority id to its name.
func PriorityName(priorities []Priority, id *string) string {
	if id == nil {
		return "Unassigned"
	}
	for _, p := range priorities {
		if p.ID == *id {
			return p.Name
		}
	}
	return "Unassigned"
}
