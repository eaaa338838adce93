package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func logged(id, start, end string, category, priority *string) *Task {
	return &Task{ID: id, Title: id, StartTime: start, EndTime: end, CategoryID: category, PriorityID: priority}
}

var testCategories = []Category{
	{ID: "deep", Name: "Deep Work", Hex: "#6C5CE7"},
	{ID: "brk", Name: "Break", Hex: "#00B894"},
	{ID: "mtg", Name: "Meetings", Hex: "#FDCB6E"},
}

func TestSummarize_Scenario(t *testing.T) {
	tasks := []*Task{
		logged("1", "09:00", "11:00", strPtr("deep"), nil),
		logged("2", "11:00", "11:15", strPtr("brk"), nil),
	}

	s := Summarize(tasks, testCategories)

	assert.Equal(t, 135, s.TotalMinutes)
	assert.Equal(t, 120, s.ByCategory["deep"])
	assert.Equal(t, 15, s.ByCategory["brk"])
	assert.Equal(t, 120, s.ProductiveMinutes)
	assert.Equal(t, 15, s.BreakMinutes)
	assert.Equal(t, 25, s.ProductivityScore)
	assert.Equal(t, 2, s.Entries)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, testCategories)

	assert.Zero(t, s.TotalMinutes)
	assert.Zero(t, s.ProductiveMinutes)
	assert.Zero(t, s.ProductivityScore)
	assert.Empty(t, s.ByCategory)
	assert.Empty(t, s.ByPriority)
}

func TestSummarize_NullBucketsStillCountInTotal(t *testing.T) {
	tasks := []*Task{
		logged("1", "09:00", "10:00", strPtr("deep"), strPtr("high")),
		logged("2", "10:00", "10:30", nil, nil),
		logged("3", "23:30", "00:30", strPtr("mtg"), strPtr("low")),
	}

	s := Summarize(tasks, testCategories)

	assert.Equal(t, 150, s.TotalMinutes)
	catSum := 0
	for _, m := range s.ByCategory {
		catSum += m
	}
	assert.Equal(t, 120, catSum)
	assert.LessOrEqual(t, catSum, s.TotalMinutes)
	assert.Equal(t, 60, s.ByPriority["high"])
	assert.Equal(t, 60, s.ByPriority["low"])
}

func TestSummarize_CategorySumEqualsTotalWhenAllCategorized(t *testing.T) {
	tasks := []*Task{
		logged("1", "08:00", "09:10", strPtr("deep"), nil),
		logged("2", "09:10", "09:20", strPtr("brk"), nil),
		logged("3", "13:00", "14:00", strPtr("mtg"), nil),
	}

	s := Summarize(tasks, testCategories)

	catSum := 0
	for _, m := range s.ByCategory {
		catSum += m
	}
	assert.Equal(t, s.TotalMinutes, catSum)
}

func TestSummarize_ZeroAndMalformedRecords(t *testing.T) {
	tasks := []*Task{
		logged("1", "10:00", "10:00", strPtr("deep"), nil),
		logged("2", "bad", "10:00", strPtr("deep"), nil),
		logged("3", "10:00", "10:20", strPtr("deep"), nil),
	}

	s := Summarize(tasks, testCategories)

	assert.Equal(t, 20, s.TotalMinutes)
	assert.Equal(t, 20, s.ByCategory["deep"])
	assert.Equal(t, 3, s.Entries)
}

func TestSummarize_NoBreakCategory(t *testing.T) {
	categories := []Category{
		{ID: "deep", Name: "Deep Work"},
		{ID: "rest", Name: "break"}, // case differs, not a break
	}
	tasks := []*Task{
		logged("1", "09:00", "10:00", strPtr("deep"), nil),
		logged("2", "10:00", "10:30", strPtr("rest"), nil),
	}

	s := Summarize(tasks, categories)

	assert.Equal(t, s.TotalMinutes, s.ProductiveMinutes)
}

func TestSummarize_BreakFlag(t *testing.T) {
	categories := []Category{
		{ID: "deep", Name: "Deep Work"},
		{ID: "lunch", Name: "Lunch", IsBreak: true},
	}
	tasks := []*Task{
		logged("1", "09:00", "12:00", strPtr("deep"), nil),
		logged("2", "12:00", "13:00", strPtr("lunch"), nil),
	}

	s := Summarize(tasks, categories)

	assert.Equal(t, 240, s.TotalMinutes)
	assert.Equal(t, 180, s.ProductiveMinutes)
}

func TestMarkBreakCategories(t *testing.T) {
	categories := []Category{{ID: "a", Name: "Pause"}, {ID: "b", Name: "Work"}}

	marked := MarkBreakCategories(categories, "Pause")

	assert.True(t, marked[0].IsBreak)
	assert.False(t, marked[1].IsBreak)
	assert.False(t, categories[0].IsBreak, "input must not be modified")
}

func TestProductivityScore(t *testing.T) {
	tests := []struct {
		minutes int
		want    int
	}{
		{0, 0},
		{-10, 0},
		{1, 0},
		{3, 1},
		{240, 50},
		{478, 99},
		{479, 99},
		{480, 100},
		{900, 100},
	}

	for _, tt := range tests {
		got := ProductivityScore(tt.minutes)
		assert.Equal(t, tt.want, got, "minutes=%d", tt.minutes)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}
