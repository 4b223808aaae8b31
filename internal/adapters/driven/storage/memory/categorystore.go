package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/slipnote/slip-cli/internal/core/domain"
	"github.com/slipnote/slip-cli/internal/core/ports/driven"
)

// CategoryStore is an in-memory implementation of driven.CategoryStore.
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[int]domain.Category
}

var _ driven.CategoryStore = (*CategoryStore)(nil)

// NewCategoryStore creates an empty in-memory category registry.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: make(map[int]domain.Category)}
}

// List returns all categories ordered by sort order.
func (s *CategoryStore) List(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cats := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].SortOrder < cats[j].SortOrder })
	return cats, nil
}

// Update changes display fields of a category.
func (s *CategoryStore) Update(_ context.Context, id int, name, color *string) error {
	if name == nil && color == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	if name != nil {
		c.Name = *name
	}
	if color != nil {
		c.Color = *color
	}
	s.categories[id] = c
	return nil
}

// Seed inserts the defaults when empty and always ensures Trash exists.
func (s *CategoryStore) Seed(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.categories) == 0 {
		for _, c := range domain.DefaultCategories() {
			s.categories[c.ID] = c
		}
		return nil
	}

	if _, ok := s.categories[domain.CategoryTrash]; !ok {
		s.categories[domain.CategoryTrash] = domain.TrashCategory()
	}
	return nil
}

// exists reports whether a category ID is registered.
func (s *CategoryStore) exists(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.categories[id]
	return ok
}
