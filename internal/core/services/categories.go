package services

import (
	"context"

	"github.com/slipnote/slip-cli/internal/core/domain"
	"github.com/slipnote/slip-cli/internal/core/ports/driven"
	"github.com/slipnote/slip-cli/internal/core/ports/driving"
)

// Ensure Categories implements the interface.
var _ driving.CategoryService = (*Categories)(nil)

// Categories manages the category registry. Categories are never
// created or deleted by callers, only renamed and recolored.
type Categories struct {
	store driven.CategoryStore
}

// NewCategories creates a category service over the given store.
func NewCategories(store driven.CategoryStore) *Categories {
	return &Categories{store: store}
}

// EnsureDefaults seeds the starter categories on first run and repairs
// a missing Trash category. Called once at startup; idempotent.
func (c *Categories) EnsureDefaults(ctx context.Context) error {
	return c.store.Seed(ctx)
}

// List returns all categories in display order.
func (c *Categories) List(ctx context.Context) ([]domain.Category, error) {
	return c.store.List(ctx)
}

// Rename updates a category's name and/or color. Nil means keep.
func (c *Categories) Rename(ctx context.Context, id int, name, color *string) error {
	return c.store.Update(ctx, id, name, color)
}
