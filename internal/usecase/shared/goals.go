package shared

import (
	"errors"

	"github.com/runoshun/worklog/internal/domain"
)

// GoalSync reports what SyncGoals changed.
type GoalSync struct {
	Goals   domain.GoalMinutes
	Added   int
	Removed int
}

var errGoalsUnchanged = errors.New("goals unchanged")

// SyncGoals seeds defaults for new categories and drops goals of categories
// that no longer exist. The state is written only when something changed.
func SyncGoals(store domain.LocalStateStore, categories []domain.Category, cfg domain.GoalsConfig) (*GoalSync, error) {
	res := &GoalSync{}
	err := store.Update(func(s *domain.LocalState) error {
		if s.Goals == nil {
			s.Goals = domain.GoalMinutes{}
		}
		before := len(s.Goals)
		pruned := s.Goals.Prune(categories)
		afterPrune := len(s.Goals)
		seeded := s.Goals.SeedDefaults(categories, cfg.DefaultMinutes, cfg.BreakMinutes)

		res.Goals = s.Goals.Clone()
		res.Removed = before - afterPrune
		res.Added = len(s.Goals) - afterPrune
		if !pruned && !seeded {
			return errGoalsUnchanged
		}
		return nil
	})
	if err != nil && !errors.Is(err, errGoalsUnchanged) {
		return nil, err
	}
	return res, nil
}
