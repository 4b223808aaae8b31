package driven

import (
	"context"

	"github.com/slipnote/slip-cli/internal/core/domain"
)

// SlipStore persists slips and their version history. Every mutation
// executes as one atomic transaction that also keeps the full-text index
// in sync, so readers never observe a half-applied version/content pair.
type SlipStore interface {
	// Insert writes a new slip. No version is recorded (no prior state).
	Insert(ctx context.Context, slip *domain.Slip) error

	// Update replaces the slip's content, recording a version with the
	// pre-edit content first. A no-op when newContent equals the current
	// content: no version, no write, updated_at untouched.
	// Returns domain.ErrNotFound if the slip does not exist.
	Update(ctx context.Context, id, newContent string) error

	// Move reassigns the slip to another category. Content and version
	// history are untouched. Returns domain.ErrConstraint if the target
	// category does not exist.
	Move(ctx context.Context, id string, categoryID int) error

	// TogglePin flips the slip's pinned flag.
	TogglePin(ctx context.Context, id string) error

	// Delete permanently removes the slip and all its versions.
	Delete(ctx context.Context, id string) error

	// Get retrieves a single slip by ID.
	Get(ctx context.Context, id string) (*domain.Slip, error)

	// List returns slips ordered pinned-first, then newest-created-first.
	// A nil filter returns all slips except trashed ones; an explicit
	// category ID (including Trash) returns only that category.
	List(ctx context.Context, categoryFilter *int) ([]domain.Slip, error)

	// Search returns slips whose title or content matches every
	// whitespace-separated token of query as a word prefix. An empty
	// query returns no results. Trashed slips are never returned.
	Search(ctx context.Context, query string) ([]domain.Slip, error)

	// Versions returns the slip's edit history, newest first.
	Versions(ctx context.Context, slipID string) ([]domain.Version, error)

	// CountInCategory returns the number of slips in a category.
	CountInCategory(ctx context.Context, categoryID int) (int, error)

	// DeleteByCategory permanently removes every slip in the category in
	// a single all-or-nothing transaction. Returns the number deleted.
	DeleteByCategory(ctx context.Context, categoryID int) (int, error)
}

// CategoryStore persists the category registry.
type CategoryStore interface {
	// List returns all categories ordered by sort order, Trash last.
	List(ctx context.Context) ([]domain.Category, error)

	// Update changes display fields of a category. Nil fields are left
	// unchanged; ID and sort order are never touched.
	Update(ctx context.Context, id int, name, color *string) error

	// Seed inserts the default category set when the table is empty and
	// ensures Trash exists on stores that predate it. Idempotent.
	Seed(ctx context.Context) error
}

// BackupStateStore persists the backup scheduler's bookkeeping.
type BackupStateStore interface {
	// GetBackupState returns the persisted state, or a zero state with
	// the interval unset when none has been saved yet.
	GetBackupState(ctx context.Context) (domain.BackupState, error)

	// SaveBackupState persists the state.
	SaveBackupState(ctx context.Context, state domain.BackupState) error
}

// Snapshotter copies the live store file to a destination path as one
// consistent transactional state, without blocking concurrent writers.
type Snapshotter interface {
	SnapshotTo(ctx context.Context, path string) error
}
