package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase/shared"
)

// ShowWeekInput contains the parameters for the weekly rollup.
type ShowWeekInput struct {
	Date time.Time // Any day of the week; zero = today
}

// ShowWeekOutput contains per-day totals for a Monday-first week.
// Fields are ordered to minimize memory padding.
type ShowWeekOutput struct {
	Start      time.Time
	End        time.Time
	Categories []domain.Category
	Warnings   []string
	Summary    domain.Summary
	Days       [domain.DaysPerWeek]domain.DayTotal
	Total      int
}

// ShowWeek rolls a week of tasks up by day.
type ShowWeek struct {
	tasks     domain.TaskRepository
	catalog   domain.CatalogRepository
	clock     domain.Clock
	logger    domain.Logger
	breakName string
}

// NewShowWeek creates a new ShowWeek use case.
func NewShowWeek(tasks domain.TaskRepository, catalog domain.CatalogRepository, breakName string, clock domain.Clock, logger domain.Logger) *ShowWeek {
	return &ShowWeek{
		tasks:     tasks,
		catalog:   catalog,
		breakName: breakName,
		clock:     clock,
		logger:    logger,
	}
}

// Execute loads the week's tasks and rolls them up.
func (uc *ShowWeek) Execute(ctx context.Context, in ShowWeekInput) (*ShowWeekOutput, error) {
	date := in.Date
	if date.IsZero() {
		date = uc.clock.Now()
	}
	start, end := domain.WeekRange(date)

	cat := shared.LoadCatalog(ctx, uc.catalog, uc.breakName, uc.logger)

	tasks, err := uc.tasks.ListTasks(ctx, domain.RangeScope(start, end))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	days := domain.RollupWeek(tasks, start)
	return &ShowWeekOutput{
		Start:      start,
		End:        end,
		Days:       days,
		Total:      domain.WeekTotal(days),
		Summary:    domain.Summarize(tasks, cat.Categories),
		Categories: cat.Categories,
		Warnings:   cat.Warnings,
	}, nil
}
