package domain

import "math"

// BreakCategoryName is the category name that always counts as break time.
// Matching is case-sensitive and exact.
const BreakCategoryName = "Break"

// ProductivityBaselineMinutes is the productive time that scores 100.
const ProductivityBaselineMinutes = 8 * 60

// IsBreakCategory reports whether time in c is excluded from productive time.
func IsBreakCategory(c Category) bool {
	return c.IsBreak || c.Name == BreakCategoryName
}

// MarkBreakCategories flags categories whose name equals name as breaks.
// It returns a new slice; the input is not modified.
func MarkBreakCategories(categories []Category, name string) []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	if name == "" {
		return out
	}
	for i := range out {
		if out[i].Name == name {
			out[i].IsBreak = true
		}
	}
	return out
}

// breakCategoryIDs returns the set of category ids that denote breaks.
func breakCategoryIDs(categories []Category) map[string]bool {
	ids := make(map[string]bool)
	for _, c := range categories {
		if IsBreakCategory(c) {
			ids[c.ID] = true
		}
	}
	return ids
}

// isBreakTask reports whether the task is filed under a break category.
func isBreakTask(t *Task, breakIDs map[string]bool) bool {
	return t.CategoryID != nil && breakIDs[*t.CategoryID]
}

// Summary holds the time totals derived from a set of tasks.
// Fields are ordered to minimize memory padding.
type Summary struct {
	ByCategory        map[string]int `json:"by_category" yaml:"by_category"`
	ByPriority        map[string]int `json:"by_priority" yaml:"by_priority"`
	TotalMinutes      int            `json:"total_minutes" yaml:"total_minutes"`
	ProductiveMinutes int            `json:"productive_minutes" yaml:"productive_minutes"`
	BreakMinutes      int            `json:"break_minutes" yaml:"break_minutes"`
	ProductivityScore int            `json:"productivity_score" yaml:"productivity_score"`
	Entries           int            `json:"entries" yaml:"entries"`
}

// Summarize aggregates task durations into totals, category and priority
// buckets, productive minutes and a 0-100 productivity score.
func Summarize(tasks []*Task, categories []Category) Summary {
	s := Summary{
		ByCategory: make(map[string]int),
		ByPriority: make(map[string]int),
	}
	breakIDs := breakCategoryIDs(categories)

	for _, t := range tasks {
		if t == nil {
			continue
		}
		s.Entries++
		d := TaskDuration(t)
		if d <= 0 {
			continue
		}
		s.TotalMinutes += d
		if t.CategoryID != nil {
			s.ByCategory[*t.CategoryID] += d
		}
		if t.PriorityID != nil {
			s.ByPriority[*t.PriorityID] += d
		}
		if isBreakTask(t, breakIDs) {
			s.BreakMinutes += d
		}
	}

	s.ProductiveMinutes = s.TotalMinutes - s.BreakMinutes
	s.ProductivityScore = ProductivityScore(s.ProductiveMinutes)
	return s
}

// ProductivityScore maps productive minutes onto 0..100 against an 8-hour day.
func ProductivityScore(productiveMinutes int) int {
	if productiveMinutes <= 0 {
		return 0
	}
	ratio := float64(productiveMinutes) / ProductivityBaselineMinutes * 100
	score := int(math.Round(math.Min(100, ratio)))
	// A full score is reserved for a full baseline day.
	if score == 100 && productiveMinutes < ProductivityBaselineMinutes {
		return 99
	}
	return score
}
