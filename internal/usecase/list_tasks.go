package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase/shared"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Scope domain.TaskScope // Single date or inclusive range
}

// ListTasksOutput contains the result of listing tasks.
// Fields are ordered to minimize memory padding.
type ListTasksOutput struct {
	Tasks      []*domain.Task    // Sorted by date, then start time
	Categories []domain.Category // Empty if the catalog failed to load
	Priorities []domain.Priority
	Warnings   []string // Non-fatal load failures
}

// ListTasks is the use case for listing logged tasks.
type ListTasks struct {
	tasks     domain.TaskRepository
	catalog   domain.CatalogRepository
	logger    domain.Logger
	breakName string
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository, catalog domain.CatalogRepository, breakName string, logger domain.Logger) *ListTasks {
	return &ListTasks{
		tasks:     tasks,
		catalog:   catalog,
		breakName: breakName,
		logger:    logger,
	}
}

// Execute loads the catalog first, then the tasks in scope.
// A catalog failure is not fatal: tasks still load and display raw ids.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	cat := shared.LoadCatalog(ctx, uc.catalog, uc.breakName, uc.logger)

	tasks, err := uc.tasks.ListTasks(ctx, in.Scope)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	sortByTime(tasks)

	return &ListTasksOutput{
		Tasks:      tasks,
		Categories: cat.Categories,
		Priorities: cat.Priorities,
		Warnings:   cat.Warnings,
	}, nil
}

// sortByTime orders tasks by date, then start time, then id.
func sortByTime(tasks []*domain.Task) {
	slices.SortStableFunc(tasks, func(a, b *domain.Task) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if c := compareClock(a.StartTime, b.StartTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// compareClock compares "HH:MM" values numerically; malformed values sort last.
func compareClock(a, b string) int {
	am, aerr := domain.ParseClock(a)
	bm, berr := domain.ParseClock(b)
	switch {
	case aerr != nil && berr != nil:
		return strings.Compare(a, b)
	case aerr != nil:
		return 1
	case berr != nil:
		return -1
	default:
		return am - bm
	}
}
