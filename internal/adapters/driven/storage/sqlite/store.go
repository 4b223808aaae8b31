package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/slipnote/slip-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/slipnote/slip-cli/internal/core/domain"
	"github.com/slipnote/slip-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// slip, category and backup-state store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string

	// writerMu serializes all mutations so that read-modify-write
	// sequences (versioning on update) are atomic with respect to
	// each other. Reads do not take it.
	writerMu sync.Mutex

	closedMu sync.RWMutex
	closed   bool
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.slip/data/slips.db.
// Schema creation or migration failure is returned to the caller and is
// fatal to startup.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".slip", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "slips.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys; version rows cascade with their slip.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrMigration, err)
	}

	return s, nil
}

// Close closes the database connection. Operations after Close fail with
// domain.ErrNotInitialized.
func (s *Store) Close() error {
	s.closedMu.Lock()
	s.closed = true
	s.closedMu.Unlock()
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SlipStore returns a SlipStore interface backed by this store.
func (s *Store) SlipStore() driven.SlipStore {
	return &slipStore{store: s}
}

// CategoryStore returns a CategoryStore interface backed by this store.
func (s *Store) CategoryStore() driven.CategoryStore {
	return &categoryStore{store: s}
}

// BackupStateStore returns a BackupStateStore interface backed by this store.
func (s *Store) BackupStateStore() driven.BackupStateStore {
	return &backupStateStore{store: s}
}

// SnapshotTo copies the database to path as a single consistent
// transactional state. VACUUM INTO runs in its own read transaction, so
// concurrent writers are neither blocked nor reflected half-applied.
func (s *Store) SnapshotTo(ctx context.Context, path string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return fmt.Errorf("snapshotting database to %s: %w", path, err)
	}
	return nil
}

// conn returns the database handle, or ErrNotInitialized after Close.
func (s *Store) conn() (*sql.DB, error) {
	s.closedMu.RLock()
	defer s.closedMu.RUnlock()
	if s.closed || s.db == nil {
		return nil, domain.ErrNotInitialized
	}
	return s.db, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Helper Functions ====================

// timeLayout is the storage format for timestamps. Fixed width so that
// lexicographic ORDER BY on the text column matches chronological order.
const timeLayout = "2006-01-02 15:04:05.000000000+00:00"

// boolToInt converts a bool to the 0/1 representation SQLite stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// formatTime renders a timestamp in the fixed-width storage format.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// formatNullableTime converts a time to a nullable driver value,
// storing NULL for the zero time.
func formatNullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}

// parseNullableTime reads a nullable timestamp column back into a time,
// returning the zero time for NULL.
func parseNullableTime(nt sql.NullTime) time.Time {
	if !nt.Valid {
		return time.Time{}
	}
	return nt.Time
}
