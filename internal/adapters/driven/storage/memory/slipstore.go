package memory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/slipnote/slip-cli/internal/core/domain"
	"github.com/slipnote/slip-cli/internal/core/ports/driven"
)

// SlipStore is an in-memory implementation of driven.SlipStore.
type SlipStore struct {
	mu         sync.RWMutex
	slips      map[string]domain.Slip
	versions   map[string][]domain.Version
	categories *CategoryStore
	nextVerID  int64
}

var _ driven.SlipStore = (*SlipStore)(nil)

// NewSlipStore creates an empty in-memory slip store validating
// category references against the given registry.
func NewSlipStore(categories *CategoryStore) *SlipStore {
	return &SlipStore{
		slips:      make(map[string]domain.Slip),
		versions:   make(map[string][]domain.Version),
		categories: categories,
	}
}

// Insert stores a new slip.
func (s *SlipStore) Insert(_ context.Context, slip *domain.Slip) error {
	if slip == nil || slip.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categories.exists(slip.CategoryID) {
		return fmt.Errorf("%w: category %d does not exist", domain.ErrConstraint, slip.CategoryID)
	}

	s.slips[slip.ID] = *slip
	return nil
}

// Update versions the current content and replaces it, mirroring the
// SQLite adapter's no-op behaviour for identical content.
func (s *SlipStore) Update(_ context.Context, id, newContent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slip, ok := s.slips[id]
	if !ok {
		return domain.ErrNotFound
	}
	if slip.Content == newContent {
		return nil
	}

	now := time.Now().UTC()
	s.nextVerID++
	s.versions[id] = append(s.versions[id], domain.Version{
		ID:        s.nextVerID,
		SlipID:    id,
		Content:   slip.Content,
		CreatedAt: now,
	})

	slip.Content = newContent
	slip.Title = domain.DeriveTitle(newContent)
	slip.UpdatedAt = now
	s.slips[id] = slip
	return nil
}

// Move reassigns the slip's category.
func (s *SlipStore) Move(_ context.Context, id string, categoryID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categories.exists(categoryID) {
		return fmt.Errorf("%w: category %d does not exist", domain.ErrConstraint, categoryID)
	}

	slip, ok := s.slips[id]
	if !ok {
		return domain.ErrNotFound
	}
	slip.CategoryID = categoryID
	slip.UpdatedAt = time.Now().UTC()
	s.slips[id] = slip
	return nil
}

// TogglePin flips the pinned flag.
func (s *SlipStore) TogglePin(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slip, ok := s.slips[id]
	if !ok {
		return domain.ErrNotFound
	}
	slip.IsPinned = !slip.IsPinned
	slip.UpdatedAt = time.Now().UTC()
	s.slips[id] = slip
	return nil
}

// Delete removes the slip and its versions.
func (s *SlipStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slips[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.slips, id)
	delete(s.versions, id)
	return nil
}

// Get retrieves a slip by ID.
func (s *SlipStore) Get(_ context.Context, id string) (*domain.Slip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slip, ok := s.slips[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &slip, nil
}

// List returns slips ordered pinned-first then newest-created-first.
func (s *SlipStore) List(_ context.Context, categoryFilter *int) ([]domain.Slip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slips := make([]domain.Slip, 0, len(s.slips))
	for _, slip := range s.slips {
		if categoryFilter == nil {
			if slip.CategoryID == domain.CategoryTrash {
				continue
			}
		} else if slip.CategoryID != *categoryFilter {
			continue
		}
		slips = append(slips, slip)
	}

	sortSlips(slips)
	return slips, nil
}

// Search matches every query token as a case-insensitive word prefix
// against title and content. Trashed slips are excluded.
func (s *SlipStore) Search(_ context.Context, query string) ([]domain.Slip, error) {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return []domain.Slip{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []domain.Slip
	for _, slip := range s.slips {
		if slip.CategoryID == domain.CategoryTrash {
			continue
		}
		if matchesAllTokens(slip, tokens) {
			matches = append(matches, slip)
		}
	}

	sortSlips(matches)
	if matches == nil {
		matches = []domain.Slip{}
	}
	return matches, nil
}

// Versions returns the slip's history, newest first.
func (s *SlipStore) Versions(_ context.Context, slipID string) ([]domain.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.versions[slipID]
	versions := make([]domain.Version, len(stored))
	copy(versions, stored)
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].ID > versions[j].ID
	})
	return versions, nil
}

// CountInCategory returns the number of slips in a category.
func (s *SlipStore) CountInCategory(_ context.Context, categoryID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, slip := range s.slips {
		if slip.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// DeleteByCategory removes every slip in the category with its versions.
func (s *SlipStore) DeleteByCategory(_ context.Context, categoryID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, slip := range s.slips {
		if slip.CategoryID == categoryID {
			delete(s.slips, id)
			delete(s.versions, id)
			count++
		}
	}
	return count, nil
}

// SnapshotTo writes a marker file so backup tests can observe snapshots
// without a real database.
func (s *SlipStore) SnapshotTo(_ context.Context, path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return os.WriteFile(path, []byte(fmt.Sprintf("memory snapshot: %d slips\n", len(s.slips))), 0600)
}

var _ driven.Snapshotter = (*SlipStore)(nil)

// sortSlips orders pinned-first, then newest-created-first, with the ID
// as a deterministic tiebreak.
func sortSlips(slips []domain.Slip) {
	sort.Slice(slips, func(i, j int) bool {
		if slips[i].IsPinned != slips[j].IsPinned {
			return slips[i].IsPinned
		}
		if !slips[i].CreatedAt.Equal(slips[j].CreatedAt) {
			return slips[i].CreatedAt.After(slips[j].CreatedAt)
		}
		return slips[i].ID < slips[j].ID
	})
}

// matchesAllTokens reports whether every token prefixes some word of the
// slip's title or content.
func matchesAllTokens(slip domain.Slip, tokens []string) bool {
	words := strings.Fields(strings.ToLower(slip.Title + " " + slip.Content))
	for i, w := range words {
		words[i] = strings.TrimFunc(w, func(r rune) bool {
			return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r > 127)
		})
	}

	for _, tok := range tokens {
		tok = strings.TrimFunc(tok, func(r rune) bool {
			return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r > 127)
		})
		if tok == "" {
			continue
		}
		found := false
		for _, w := range words {
			if strings.HasPrefix(w, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
