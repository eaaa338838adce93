package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/worklog/internal/domain"
)

// ShowCatalogInput contains the parameters for listing the catalog.
type ShowCatalogInput struct{}

// ShowCatalogOutput contains every reference list.
type ShowCatalogOutput struct {
	Categories []domain.Category
	Priorities []domain.Priority
	Tags       []string
}

// ShowCatalog lists categories, priorities and tags.
type ShowCatalog struct {
	catalog   domain.CatalogRepository
	breakName string
}

// NewShowCatalog creates a new ShowCatalog use case.
func NewShowCatalog(catalog domain.CatalogRepository, breakName string) *ShowCatalog {
	return &ShowCatalog{catalog: catalog, breakName: breakName}
}

// Execute loads all three lists. Any failure is returned.
func (uc *ShowCatalog) Execute(ctx context.Context, _ ShowCatalogInput) (*ShowCatalogOutput, error) {
	categories, err := uc.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	priorities, err := uc.catalog.ListPriorities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list priorities: %w", err)
	}
	tags, err := uc.catalog.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return &ShowCatalogOutput{
		Categories: domain.MarkBreakCategories(categories, uc.breakName),
		Priorities: priorities,
		Tags:       tags,
	}, nil
}
