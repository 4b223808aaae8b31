package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slipnote/slip-cli/internal/core/domain"
	"github.com/slipnote/slip-cli/internal/core/ports/driven"
	"github.com/slipnote/slip-cli/internal/core/ports/driving"
	"github.com/slipnote/slip-cli/internal/logger"
)

// Ensure Slips implements the interface.
var _ driving.SlipService = (*Slips)(nil)

// Slips is the caller-facing slip service. It validates input, derives
// the immutable title/timestamp fields and delegates persistence to the
// slip store, which keeps the search index consistent transactionally.
type Slips struct {
	store driven.SlipStore
}

// NewSlips creates a slip service over the given store.
func NewSlips(store driven.SlipStore) *Slips {
	return &Slips{store: store}
}

// Insert creates a slip from content. Empty or whitespace-only content
// is rejected before the store is touched.
func (s *Slips) Insert(ctx context.Context, content string, categoryID int) (*domain.Slip, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is empty", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	slip := &domain.Slip{
		ID:         uuid.NewString(),
		Timestamp:  now.Format(domain.TimestampLayout),
		Title:      domain.DeriveTitle(content),
		Content:    content,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.Insert(ctx, slip); err != nil {
		return nil, err
	}

	logger.Debug("inserted slip %s into category %d", slip.ID, categoryID)
	return slip, nil
}

// Update replaces a slip's content, versioning the prior state. The
// store treats identical content as a no-op, so no pre-check is needed.
func (s *Slips) Update(ctx context.Context, id, newContent string) error {
	return s.store.Update(ctx, id, newContent)
}

// Move reassigns a slip to another category.
func (s *Slips) Move(ctx context.Context, id string, categoryID int) error {
	return s.store.Move(ctx, id, categoryID)
}

// TogglePin flips a slip's pinned flag.
func (s *Slips) TogglePin(ctx context.Context, id string) error {
	return s.store.TogglePin(ctx, id)
}

// Delete permanently removes a slip and its history.
func (s *Slips) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Trash soft-deletes a slip. This is a category reassignment, not a
// deletion: the slip and its history stay intact and restorable.
func (s *Slips) Trash(ctx context.Context, id string) error {
	return s.store.Move(ctx, id, domain.CategoryTrash)
}

// Restore moves a trashed slip back to the Inbox.
func (s *Slips) Restore(ctx context.Context, id string) error {
	return s.store.Move(ctx, id, domain.CategoryInbox)
}

// EmptyTrash permanently deletes every trashed slip in one
// all-or-nothing transaction.
func (s *Slips) EmptyTrash(ctx context.Context) (int, error) {
	n, err := s.store.DeleteByCategory(ctx, domain.CategoryTrash)
	if err != nil {
		return 0, err
	}
	logger.Info("emptied trash: %d slip(s) deleted", n)
	return n, nil
}

// Get returns a single slip.
func (s *Slips) Get(ctx context.Context, id string) (*domain.Slip, error) {
	return s.store.Get(ctx, id)
}

// List returns slips for a category, or all non-trashed slips when the
// filter is nil.
func (s *Slips) List(ctx context.Context, categoryFilter *int) ([]domain.Slip, error) {
	return s.store.List(ctx, categoryFilter)
}

// Search returns slips matching every query token as a word prefix.
func (s *Slips) Search(ctx context.Context, query string) ([]domain.Slip, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("empty search query, returning no results")
		return []domain.Slip{}, nil
	}
	return s.store.Search(ctx, query)
}

// Versions returns a slip's edit history, newest first.
func (s *Slips) Versions(ctx context.Context, slipID string) ([]domain.Version, error) {
	return s.store.Versions(ctx, slipID)
}

// TrashCount returns the number of trashed slips.
func (s *Slips) TrashCount(ctx context.Context) (int, error) {
	return s.store.CountInCategory(ctx, domain.CategoryTrash)
}

// ExportMarkdown renders the slips selected by the filter as markdown:
// one heading block per slip (title, timestamp, body without the title
// line), blocks separated by a horizontal rule, in listing order.
func (s *Slips) ExportMarkdown(ctx context.Context, categoryFilter *int) (string, error) {
	slips, err := s.store.List(ctx, categoryFilter)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, slip := range slips {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		sb.WriteString("## ")
		sb.WriteString(slip.Title)
		sb.WriteString("\n\n")
		sb.WriteString(slip.Timestamp)
		sb.WriteString("\n")
		if body := slip.Body(); body != "" {
			sb.WriteString("\n")
			sb.WriteString(body)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
