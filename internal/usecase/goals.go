package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase/shared"
)

// GoalEntry is one category's daily goal.
type GoalEntry struct {
	Category domain.Category `json:"category" yaml:"category"`
	Minutes  int             `json:"minutes" yaml:"minutes"`
}

// ListGoalsInput contains the parameters for listing goals.
type ListGoalsInput struct{}

// ListGoalsOutput contains the goal of every known category.
type ListGoalsOutput struct {
	Goals    []GoalEntry
	Warnings []string
}

// ListGoals lists per-category daily goals in catalog order.
type ListGoals struct {
	catalog domain.CatalogRepository
	state   domain.LocalStateStore
	logger  domain.Logger
	cfg     *domain.Config
}

// NewListGoals creates a new ListGoals use case.
func NewListGoals(catalog domain.CatalogRepository, state domain.LocalStateStore, cfg *domain.Config, logger domain.Logger) *ListGoals {
	return &ListGoals{catalog: catalog, state: state, cfg: cfg, logger: logger}
}

// Execute syncs goals with the catalog and lists them.
func (uc *ListGoals) Execute(ctx context.Context, _ ListGoalsInput) (*ListGoalsOutput, error) {
	categories, err := uc.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories = domain.MarkBreakCategories(categories, uc.cfg.Categories.BreakName)

	res, err := shared.SyncGoals(uc.state, categories, uc.cfg.Goals)
	if err != nil {
		return nil, fmt.Errorf("sync goals: %w", err)
	}

	out := &ListGoalsOutput{Goals: make([]GoalEntry, 0, len(categories))}
	for _, c := range categories {
		out.Goals = append(out.Goals, GoalEntry{Category: c, Minutes: res.Goals[c.ID]})
	}
	return out, nil
}

// SetGoalInput contains the parameters for setting a goal.
type SetGoalInput struct {
	Category string // Category id or case-insensitive name
	Minutes  int
}

// SetGoalOutput contains the updated goal.
type SetGoalOutput struct {
	Goal     GoalEntry
	Previous int
}

// SetGoal sets one category's daily goal.
type SetGoal struct {
	catalog domain.CatalogRepository
	state   domain.LocalStateStore
	logger  domain.Logger
}

// NewSetGoal creates a new SetGoal use case.
func NewSetGoal(catalog domain.CatalogRepository, state domain.LocalStateStore, logger domain.Logger) *SetGoal {
	return &SetGoal{catalog: catalog, state: state, logger: logger}
}

// Execute validates and stores the goal.
func (uc *SetGoal) Execute(ctx context.Context, in SetGoalInput) (*SetGoalOutput, error) {
	if in.Minutes < 0 {
		return nil, domain.ErrInvalidGoal
	}
	categories, err := uc.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	category, err := resolveCategory(categories, in.Category)
	if err != nil {
		return nil, err
	}

	out := &SetGoalOutput{Goal: GoalEntry{Category: category, Minutes: in.Minutes}}
	err = uc.state.Update(func(s *domain.LocalState) error {
		if s.Goals == nil {
			s.Goals = domain.GoalMinutes{}
		}
		out.Previous = s.Goals[category.ID]
		s.Goals[category.ID] = in.Minutes
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}
	uc.logger.Info("goals", fmt.Sprintf("goal for %s set to %d minutes", category.Name, in.Minutes))
	return out, nil
}

// resolveCategory finds a category by exact id, then by case-insensitive name.
func resolveCategory(categories []domain.Category, key string) (domain.Category, error) {
	for _, c := range categories {
		if c.ID == key {
			return c, nil
		}
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, key) {
			return c, nil
		}
	}
	return domain.Category{}, fmt.Errorf("%w: %q", domain.ErrCategoryNotFound, key)
}

// SyncGoalsInput contains the parameters for syncing goals.
type SyncGoalsInput struct{}

// SyncGoalsOutput reports the changes made.
type SyncGoalsOutput struct {
	Goals   domain.GoalMinutes
	Added   int
	Removed int
}

// SyncGoals seeds and prunes goals against the current catalog.
type SyncGoals struct {
	catalog domain.CatalogRepository
	state   domain.LocalStateStore
	logger  domain.Logger
	cfg     *domain.Config
}

// NewSyncGoals creates a new SyncGoals use case.
func NewSyncGoals(catalog domain.CatalogRepository, state domain.LocalStateStore, cfg *domain.Config, logger domain.Logger) *SyncGoals {
	return &SyncGoals{catalog: catalog, state: state, cfg: cfg, logger: logger}
}

// Execute runs the sync.
func (uc *SyncGoals) Execute(ctx context.Context, _ SyncGoalsInput) (*SyncGoalsOutput, error) {
	categories, err := uc.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories = domain.MarkBreakCategories(categories, uc.cfg.Categories.BreakName)

	res, err := shared.SyncGoals(uc.state, categories, uc.cfg.Goals)
	if err != nil {
		return nil, fmt.Errorf("sync goals: %w", err)
	}
	uc.logger.Info("goals", fmt.Sprintf("synced goals: %d added, %d removed", res.Added, res.Removed))
	return &SyncGoalsOutput{Goals: res.Goals, Added: res.Added, Removed: res.Removed}, nil
}
