package usecase

import (
	"time"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/testutil"
)

var (
	day     = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	morning = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
)

func ptr[T any](v T) *T { return &v }

func fixtureCategories() []domain.Category {
	return []domain.Category{
		{ID: "deep", Name: "Deep work"},
		{ID: "mtg", Name: "Meetings"},
		{ID: "brk", Name: "Break"},
	}
}

func fixtureCatalog() *testutil.MockCatalogRepository {
	return &testutil.MockCatalogRepository{
		Categories: fixtureCategories(),
		Priorities: []domain.Priority{{ID: "hi", Name: "High"}},
		Tags:       []string{"go", "ops"},
	}
}

func logTask(id, start, end, category string) *domain.Task {
	t := &domain.Task{
		ID:        id,
		Title:     "task " + id,
		StartTime: start,
		EndTime:   end,
		Date:      day,
		Status:    domain.StatusTodo,
	}
	if category != "" {
		t.CategoryID = ptr(category)
	}
	return t
}

func boardTask(id string, status domain.Status, order int) *domain.Task {
	return &domain.Task{ID: id, Title: "task " + id, Date: day, Status: status, Order: order}
}
