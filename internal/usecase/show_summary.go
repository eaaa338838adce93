package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase/shared"
)

// ShowSummaryInput contains the parameters for the daily summary.
type ShowSummaryInput struct {
	Date time.Time // Zero = today
}

// ShowSummaryOutput contains the derived views for one day.
// Fields are ordered to minimize memory padding.
type ShowSummaryOutput struct {
	Date       time.Time
	Tasks      []*domain.Task
	Categories []domain.Category
	Priorities []domain.Priority
	Warnings   []string
	Goals      domain.GoalReport
	Cadence    domain.CadenceAdvice
	Summary    domain.Summary
}

// ShowSummary aggregates a day's tasks with goal tracking and break advice.
type ShowSummary struct {
	tasks   domain.TaskRepository
	catalog domain.CatalogRepository
	state   domain.LocalStateStore
	clock   domain.Clock
	logger  domain.Logger
	cfg     *domain.Config
}

// NewShowSummary creates a new ShowSummary use case.
func NewShowSummary(
	tasks domain.TaskRepository,
	catalog domain.CatalogRepository,
	state domain.LocalStateStore,
	cfg *domain.Config,
	clock domain.Clock,
	logger domain.Logger,
) *ShowSummary {
	return &ShowSummary{
		tasks:   tasks,
		catalog: catalog,
		state:   state,
		cfg:     cfg,
		clock:   clock,
		logger:  logger,
	}
}

// Execute loads the catalog, the day's tasks and the local goals, then
// derives the summary. Goals are synced with the catalog when it loaded.
func (uc *ShowSummary) Execute(ctx context.Context, in ShowSummaryInput) (*ShowSummaryOutput, error) {
	date := in.Date
	if date.IsZero() {
		date = uc.clock.Now()
	}
	date = domain.Day(date)

	cat := shared.LoadCatalog(ctx, uc.catalog, uc.cfg.Categories.BreakName, uc.logger)

	tasks, err := uc.tasks.ListTasks(ctx, domain.DayScope(date))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	sortByTime(tasks)

	goals, err := uc.goals(cat)
	if err != nil {
		return nil, err
	}

	summary := domain.Summarize(tasks, cat.Categories)
	return &ShowSummaryOutput{
		Date:       date,
		Tasks:      tasks,
		Categories: cat.Categories,
		Priorities: cat.Priorities,
		Warnings:   cat.Warnings,
		Summary:    summary,
		Goals:      domain.TrackGoals(summary, goals, cat.Categories),
		Cadence:    domain.AdviseCadence(tasks, cat.Categories),
	}, nil
}

// goals returns the goal minutes, syncing them with a fully loaded catalog.
// With a partial catalog the stored goals are used untouched.
func (uc *ShowSummary) goals(cat shared.Catalog) (domain.GoalMinutes, error) {
	if !cat.Complete {
		state, err := uc.state.Load()
		if err != nil {
			return nil, fmt.Errorf("load goals: %w", err)
		}
		return state.Goals, nil
	}
	res, err := shared.SyncGoals(uc.state, cat.Categories, uc.cfg.Goals)
	if err != nil {
		return nil, fmt.Errorf("sync goals: %w", err)
	}
	if res.Added > 0 || res.Removed > 0 {
		uc.logger.Info("goals", fmt.Sprintf("synced goals: %d added, %d removed", res.Added, res.Removed))
	}
	return res.Goals, nil
}
