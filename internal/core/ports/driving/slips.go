package driving

import (
	"context"

	"github.com/slipnote/slip-cli/internal/core/domain"
)

// SlipService is the caller-facing surface of the slip store.
type SlipService interface {
	// Insert creates a slip from content, deriving title and timestamp.
	// Fails with domain.ErrInvalidInput on empty or whitespace-only
	// content, and domain.ErrConstraint on an unknown category.
	Insert(ctx context.Context, content string, categoryID int) (*domain.Slip, error)

	// Update replaces a slip's content, versioning the prior state.
	Update(ctx context.Context, id, newContent string) error

	// Move reassigns a slip to another category.
	Move(ctx context.Context, id string, categoryID int) error

	// TogglePin flips a slip's pinned flag.
	TogglePin(ctx context.Context, id string) error

	// Delete permanently removes a slip and its history. Irreversible.
	Delete(ctx context.Context, id string) error

	// Trash soft-deletes a slip by moving it to the Trash category.
	Trash(ctx context.Context, id string) error

	// Restore moves a trashed slip back to the Inbox.
	Restore(ctx context.Context, id string) error

	// EmptyTrash permanently deletes every trashed slip in one
	// all-or-nothing transaction, returning the count deleted.
	EmptyTrash(ctx context.Context) (int, error)

	// Get returns a single slip.
	Get(ctx context.Context, id string) (*domain.Slip, error)

	// List returns slips for a category, or all non-trashed slips when
	// the filter is nil. Pinned slips sort first.
	List(ctx context.Context, categoryFilter *int) ([]domain.Slip, error)

	// Search returns slips matching every query token as a word prefix.
	Search(ctx context.Context, query string) ([]domain.Slip, error)

	// Versions returns a slip's edit history, newest first.
	Versions(ctx context.Context, slipID string) ([]domain.Version, error)

	// TrashCount returns the number of trashed slips.
	TrashCount(ctx context.Context) (int, error)

	// ExportMarkdown renders the slips selected by the filter as a
	// deterministic markdown document.
	ExportMarkdown(ctx context.Context, categoryFilter *int) (string, error)
}

// CategoryService manages the category registry.
type CategoryService interface {
	// List returns all categories in display order.
	List(ctx context.Context) ([]domain.Category, error)

	// Rename updates a category's name and/or color. Nil means keep.
	Rename(ctx context.Context, id int, name, color *string) error
}

// BackupScheduler runs periodic snapshots of the store file.
type BackupScheduler interface {
	// Configure sets the snapshot cadence, persisting it.
	Configure(interval domain.BackupInterval) error

	// RunIfDue takes a snapshot when one is due, then prunes old files.
	RunIfDue(ctx context.Context) (domain.BackupResult, error)

	// State returns the current interval and last-backup time.
	State(ctx context.Context) (domain.BackupState, error)

	// Start blocks, checking for due backups on a timer, until the
	// context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop shuts the scheduler loop down.
	Stop() error
}
