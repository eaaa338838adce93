package domain

import (
	"cmp"
	"math"
	"slices"
)

// GoalStatus classifies actual time against a category goal.
type GoalStatus string

const (
	GoalOver    GoalStatus = "over"
	GoalUnder   GoalStatus = "under"
	GoalOnTrack GoalStatus = "on_track"
	GoalTracked GoalStatus = "tracked" // No goal set, time logged
	GoalNeutral GoalStatus = "neutral" // No goal, no time
)

// Goal thresholds in percent of the goal, and overbooking ratios.
const (
	goalOverPercent     = 120
	goalUnderPercent    = 80
	maxDisplayPercent   = 999
	overbookedGoalRatio = 1.1
	overbookedDayShare  = 0.4
)

// Display returns a human-readable label.
func (s GoalStatus) Display() string {
	switch s {
	case GoalOver:
		return "Over"
	case GoalUnder:
		return "Under"
	case GoalOnTrack:
		return "On track"
	case GoalTracked:
		return "Tracked"
	default:
		return "-"
	}
}

// GoalMinutes maps category ids to daily goal minutes.
type GoalMinutes map[string]int

// Clone returns a copy of the mapping.
func (g GoalMinutes) Clone() GoalMinutes {
	out := make(GoalMinutes, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}

// Prune drops goals for category ids no longer present.
// It returns true if anything was removed.
func (g GoalMinutes) Prune(categories []Category) bool {
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}
	pruned := false
	for id := range g {
		if !known[id] {
			delete(g, id)
			pruned = true
		}
	}
	return pruned
}

// SeedDefaults adds a default goal for every category that has none.
// Break-like categories get breakMinutes, all others defaultMinutes.
// It returns true if anything was added.
func (g GoalMinutes) SeedDefaults(categories []Category, defaultMinutes, breakMinutes int) bool {
	seeded := false
	for _, c := range categories {
		if _, ok := g[c.ID]; ok {
			continue
		}
		if IsBreakCategory(c) {
			g[c.ID] = breakMinutes
		} else {
			g[c.ID] = defaultMinutes
		}
		seeded = true
	}
	return seeded
}

// GoalPercent returns round(actual/goal*100), or 0 without a goal.
func GoalPercent(goal, actual int) int {
	if goal <= 0 {
		return 0
	}
	return int(math.Round(float64(actual) / float64(goal) * 100))
}

// ClassifyGoal derives the goal status of a category.
func ClassifyGoal(goal, actual int) GoalStatus {
	if goal <= 0 {
		if actual > 0 {
			return GoalTracked
		}
		return GoalNeutral
	}
	pct := GoalPercent(goal, actual)
	switch {
	case pct >= goalOverPercent:
		return GoalOver
	case pct <= goalUnderPercent:
		return GoalUnder
	default:
		return GoalOnTrack
	}
}

// GoalProgress is the goal state of one category.
// Fields are ordered to minimize memory padding.
type GoalProgress struct {
	Category       Category   `json:"category" yaml:"category"`
	Status         GoalStatus `json:"status" yaml:"status"`
	Goal           int        `json:"goal_minutes" yaml:"goal_minutes"`
	Actual         int        `json:"actual_minutes" yaml:"actual_minutes"`
	Percent        int        `json:"percent" yaml:"percent"`
	DisplayPercent int        `json:"display_percent" yaml:"display_percent"`
}

// Overage returns actual minus goal; an unset goal counts as 0.
func (p GoalProgress) Overage() int {
	return p.Actual - max(p.Goal, 0)
}

// GoalReport is the goal tracker output.
type GoalReport struct {
	Progress   []GoalProgress `json:"progress" yaml:"progress"`
	Overbooked []GoalProgress `json:"overbooked" yaml:"overbooked"`
}

// TrackGoals compares per-category actual minutes against goals.
// Categories with neither a goal nor logged time are left out. Category ids
// in the summary that no longer resolve are not reported.
func TrackGoals(s Summary, goals GoalMinutes, categories []Category) GoalReport {
	var report GoalReport
	for _, c := range categories {
		goal := goals[c.ID]
		actual := s.ByCategory[c.ID]
		if goal == 0 && actual == 0 {
			continue
		}
		pct := GoalPercent(goal, actual)
		p := GoalProgress{
			Category:       c,
			Goal:           goal,
			Actual:         actual,
			Percent:        pct,
			DisplayPercent: min(pct, maxDisplayPercent),
			Status:         ClassifyGoal(goal, actual),
		}
		report.Progress = append(report.Progress, p)
		if isOverbooked(goal, actual, s.TotalMinutes) {
			report.Overbooked = append(report.Overbooked, p)
		}
	}

	slices.SortStableFunc(report.Overbooked, func(a, b GoalProgress) int {
		return cmp.Compare(b.Overage(), a.Overage())
	})
	return report
}

// isOverbooked reports whether a category is clearly over its goal, or takes
// a disproportionate share of the day.
func isOverbooked(goal, actual, total int) bool {
	if actual <= 0 {
		return false
	}
	if goal > 0 && float64(actual) > float64(goal)*overbookedGoalRatio {
		return true
	}
	return total > 0 && float64(actual)/float64(total) > overbookedDayShare
}
