package shared

import (
	"context"
	"fmt"

	"github.com/runoshun/worklog/internal/domain"
)

// Catalog holds the reference lists loaded before tasks.
type Catalog struct {
	Categories []domain.Category
	Priorities []domain.Priority
	Warnings   []string // Lists that failed to load
	Complete   bool     // Both lists loaded
}

// LoadCatalog loads categories then priorities. Failures are logged and
// reported as warnings; the caller falls back to displaying raw ids.
// Categories named breakName are flagged as breaks.
func LoadCatalog(ctx context.Context, repo domain.CatalogRepository, breakName string, logger domain.Logger) Catalog {
	var c Catalog
	ok := true

	categories, err := repo.ListCategories(ctx)
	if err != nil {
		ok = false
		msg := fmt.Sprintf("load categories: %v", err)
		logger.Warn("catalog", msg)
		c.Warnings = append(c.Warnings, msg)
	} else {
		c.Categories = domain.MarkBreakCategories(categories, breakName)
	}

	priorities, err := repo.ListPriorities(ctx)
	if err != nil {
		ok = false
		msg := fmt.Sprintf("load priorities: %v", err)
		logger.Warn("catalog", msg)
		c.Warnings = append(c.Warnings, msg)
	} else {
		c.Priorities = priorities
	}

	c.Complete = ok
	return c
}
