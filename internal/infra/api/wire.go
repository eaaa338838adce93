package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/worklog/internal/domain"
)

// ID is a backend identifier. The backend may send it as a JSON string or
// number; it is always sent back as a string.
type ID string

// UnmarshalJSON accepts "42", 42 and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func idPtr(s *string) *ID {
	if s == nil {
		return nil
	}
	v := ID(*s)
	return &v
}

func strPtr(id *ID) *string {
	if id == nil {
		return nil
	}
	v := string(*id)
	return &v
}

// wireTask is the backend representation of a task.
type wireTask struct {
	CategoryID    *ID      `json:"category_id"`
	PriorityID    *ID      `json:"priority_id"`
	ID            ID       `json:"id,omitempty"`
	Title         string   `json:"title"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Date          string   `json:"date"`
	Assignee      string   `json:"assignee,omitempty"`
	Status        string   `json:"status,omitempty"`
	Tags          []string `json:"tags"`
	ActualMinutes int      `json:"actual_minutes"`
	Order         int      `json:"order"`
}

func toWire(t *domain.Task) wireTask {
	return wireTask{
		ID:            ID(t.ID),
		Title:         t.Title,
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
		CategoryID:    idPtr(t.CategoryID),
		PriorityID:    idPtr(t.PriorityID),
		Date:          domain.FormatDate(t.Date),
		ActualMinutes: t.ActualMinutes,
		Tags:          t.Tags,
		Order:         t.Order,
		Assignee:      t.Assignee,
		Status:        string(t.Status),
	}
}

func fromWire(w wireTask) (*domain.Task, error) {
	date, err := parseWireDate(w.Date)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", w.ID, err)
	}
	return &domain.Task{
		ID:            string(w.ID),
		Title:         w.Title,
		StartTime:     w.StartTime,
		EndTime:       w.EndTime,
		CategoryID:    strPtr(w.CategoryID),
		PriorityID:    strPtr(w.PriorityID),
		Date:          date,
		ActualMinutes: w.ActualMinutes,
		Tags:          w.Tags,
		Order:         w.Order,
		Assignee:      w.Assignee,
		Status:        domain.Status(w.Status),
	}, nil
}

// parseWireDate accepts YYYY-MM-DD or an RFC 3339 timestamp whose date part
// is used as-is. An empty string is the zero date.
func parseWireDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if len(s) > len(domain.DateLayout) && strings.ContainsAny(s[len(domain.DateLayout):len(domain.DateLayout)+1], "T ") {
		s = s[:len(domain.DateLayout)]
	}
	return domain.ParseDate(s)
}

// patchToWire builds a PATCH body holding only the fields the patch sets.
// A cleared category or priority is sent as null.
func patchToWire(p domain.TaskPatch) map[string]any {
	body := make(map[string]any)
	if p.Date != nil {
		body["date"] = domain.FormatDate(*p.Date)
	}
	if p.CategoryID != nil {
		body["category_id"] = idPtr(*p.CategoryID)
	}
	if p.PriorityID != nil {
		body["priority_id"] = idPtr(*p.PriorityID)
	}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.StartTime != nil {
		body["start_time"] = *p.StartTime
	}
	if p.EndTime != nil {
		body["end_time"] = *p.EndTime
	}
	if p.Assignee != nil {
		body["assignee"] = *p.Assignee
	}
	if p.Status != nil {
		body["status"] = string(*p.Status)
	}
	if p.ActualMinutes != nil {
		body["actual_minutes"] = *p.ActualMinutes
	}
	if p.Order != nil {
		body["order"] = *p.Order
	}
	if p.SetTags {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		body["tags"] = tags
	}
	return body
}

type wireCategory struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Hex     string `json:"hex"`
	IsBreak bool   `json:"is_break"`
}

type wirePriority struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// wireTag is a tag sent either as a bare string or as {"name": "..."}.
type wireTag string

func (t *wireTag) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = wireTag(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("tag: %w", err)
	}
	*t = wireTag(obj.Name)
	return nil
}

type wireNote struct {
	ID      ID     `json:"id,omitempty"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

func noteFromWire(w wireNote) (*domain.Note, error) {
	date, err := parseWireDate(w.Date)
	if err != nil {
		return nil, fmt.Errorf("note %s: %w", w.ID, err)
	}
	return &domain.Note{ID: string(w.ID), Date: date, Content: w.Content}, nil
}

type wireReorder struct {
	Changes []domain.TaskChange `json:"changes"`
}
