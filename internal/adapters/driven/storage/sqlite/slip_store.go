package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/slipnote/slip-cli/internal/core/domain"
	"github.com/slipnote/slip-cli/internal/core/ports/driven"
)

// slipColumns is the column list shared by every slip query.
const slipColumns = "id, timestamp, title, content, category_id, is_pinned, created_at, updated_at"

// slipStore implements driven.SlipStore.
type slipStore struct {
	store *Store
}

var _ driven.SlipStore = (*slipStore)(nil)

// Insert writes a new slip and its full-text index entry in one
// transaction. No version is recorded; there is no prior state.
func (s *slipStore) Insert(ctx context.Context, slip *domain.Slip) error {
	if slip == nil || slip.ID == "" {
		return domain.ErrInvalidInput
	}

	db, err := s.store.conn()
	if err != nil {
		return err
	}

	s.store.writerMu.Lock()
	defer s.store.writerMu.Unlock()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := categoryExists(ctx, tx, slip.CategoryID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO slips (id, timestamp, title, content, category_id, is_pinned, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, slip.ID, slip.Timestamp, slip.Title, slip.Content, slip.CategoryID,
		boolToInt(slip.IsPinned), formatTime(slip.CreatedAt), formatTime(slip.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting slip: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO slips_fts (slip_id, title, content) VALUES (?, ?, ?)
	`, slip.ID, slip.Title, slip.Content); err != nil {
		return fmt.Errorf("indexing slip: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Update versions the current content, then writes the new content,
// re-derived title and index entry. Equal content is a no-op: no
// version, no write, updated_at untouched.
func (s *slipStore) Update(ctx context.Context, id, newContent string) error {
	db, err := s.store.conn()
	if err != nil {
		return err
	}

	s.store.writerMu.Lock()
	defer s.store.writerMu.Unlock()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var current string
	row := tx.QueryRowContext(ctx, "SELECT content FROM slips WHERE id = ?", id)
	if err := row.Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("reading current content: %w", err)
	}

	if current == newContent {
		return nil
	}

	now := time.Now().UTC()

	// Version carries the pre-edit content so the chain plus the live
	// slip reconstructs full history.
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO versions (slip_id, content, created_at) VALUES (?, ?, ?)
	`, id, current, formatTime(now)); err != nil {
		return fmt.Errorf("recording version: %w", err)
	}

	title := domain.DeriveTitle(newContent)
	if _, err := tx.ExecContext(ctx, `
		UPDATE slips SET content = ?, title = ?, updated_at = ? WHERE id = ?
	`, newContent, title, formatTime(now), id); err != nil {
		return fmt.Errorf("updating slip: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM slips_fts WHERE slip_id = ?", id); err != nil {
		return fmt.Errorf("removing stale index entry: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO slips_fts (slip_id, title, content) VALUES (?, ?, ?)
	`, id, title, newContent); err != nil {
		return fmt.Errorf("reindexing slip: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Move reassigns the slip to another category. Trash and restore are
// moves like any other; no content or version state is touched.
func (s *slipStore) Move(ctx context.Context, id string, categoryID int) error {
	db, err := s.store.conn()
	if err != nil {
		return err
	}

	s.store.writerMu.Lock()
	defer s.store.writerMu.Unlock()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := categoryExists(ctx, tx, categoryID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE slips SET category_id = ?, updated_at = ? WHERE id = ?
	`, categoryID, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("moving slip: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking move result: %w", err)
	} else if n == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// TogglePin flips the pinned flag and bumps updated_at.
func (s *slipStore) TogglePin(ctx context.Context, id string) error {
	db, err := s.store.conn()
	if err != nil {
		return err
	}

	s.store.writerMu.Lock()
	defer s.store.writerMu.Unlock()

	res, err := db.ExecContext(ctx, `
		UPDATE slips SET is_pinned = 1 - is_pinned, updated_at = ? WHERE id = ?
	`, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("toggling pin: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking pin result: %w", err)
	} else if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete permanently removes the slip, its index entry and, via the
// foreign-key cascade, all of its versions.
func (s *slipStore) Delete(ctx context.Context, id string) error {
	db, err := s.store.conn()
	if err != nil {
		return err
	}

	s.store.writerMu.Lock()
	defer s.store.writerMu.Unlock()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM slips_fts WHERE slip_id = ?", id); err != nil {
		return fmt.Errorf("removing index entry: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM slips WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting slip: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	} else if n == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a single slip by ID.
func (s *slipStore) Get(ctx context.Context, id string) (*domain.Slip, error) {
	db, err := s.store.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx,
		"SELECT "+slipColumns+" FROM slips WHERE id = ?", id)
	return scanSlip(row)
}

// List returns slips ordered pinned-first, then newest-created-first.
// A nil filter excludes the Trash category.
func (s *slipStore) List(ctx context.Context, categoryFilter *int) ([]domain.Slip, error) {
	db, err := s.store.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + slipColumns + " FROM slips WHERE category_id != ?"
	arg := any(domain.CategoryTrash)
	if categoryFilter != nil {
		query = "SELECT " + slipColumns + " FROM slips WHERE category_id = ?"
		arg = *categoryFilter
	}
	query += " ORDER BY is_pinned DESC, created_at DESC"

	rows, err := db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("querying slips: %w", err)
	}
	defer rows.Close()

	return scanSlips(rows)
}

// Search matches every whitespace token of query as a word prefix
// against title and content, AND-combined. Results come back
// pinned-first then newest-first; trashed slips are excluded. An empty
// query returns no results.
func (s *slipStore) Search(ctx context.Context, query string) ([]domain.Slip, error) {
	db, err := s.store.conn()
	if err != nil {
		return nil, err
	}

	match := ftsMatchExpr(query)
	if match == "" {
		return []domain.Slip{}, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+prefixedSlipColumns("s")+`
		FROM slips_fts
		JOIN slips s ON s.id = slips_fts.slip_id
		WHERE slips_fts MATCH ? AND s.category_id != ?
		ORDER BY s.is_pinned DESC, s.created_at DESC
	`, match, domain.CategoryTrash)
	if err != nil {
		return nil, fmt.Errorf("searching slips: %w", err)
	}
	defer rows.Close()

	return scanSlips(rows)
}

// Versions returns the slip's edit history, newest first.
func (s *slipStore) Versions(ctx context.Context, slipID string) ([]domain.Version, error) {
	db, err := s.store.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, slip_id, content, created_at
		FROM versions WHERE slip_id = ?
		ORDER BY created_at DESC, id DESC
	`, slipID)
	if err != nil {
		return nil, fmt.Errorf("querying versions: %w", err)
	}
	defer rows.Close()

	var versions []domain.Version //nolint:prealloc // size unknown from query
	for rows.Next() {
		var v domain.Version
		if err := rows.Scan(&v.ID, &v.SlipID, &v.Content, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning version: %w", err)
		}
		versions = append(versions, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating versions: %w", err)
	}

	return versions, nil
}

// CountInCategory returns the number of slips in a category.
func (s *slipStore) CountInCategory(ctx context.Context, categoryID int) (int, error) {
	db, err := s.store.conn()
	if err != nil {
		return 0, err
	}

	var count int
	err = db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM slips WHERE category_id = ?", categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting slips: %w", err)
	}
	return count, nil
}

// DeleteByCategory permanently removes every slip in the category in a
// single all-or-nothing transaction: index entries, slip rows and, via
// the cascade, every version. Returns the number of slips deleted.
func (s *slipStore) DeleteByCategory(ctx context.Context, categoryID int) (int, error) {
	db, err := s.store.conn()
	if err != nil {
		return 0, err
	}

	s.store.writerMu.Lock()
	defer s.store.writerMu.Unlock()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM slips_fts
		WHERE slip_id IN (SELECT id FROM slips WHERE category_id = ?)
	`, categoryID); err != nil {
		return 0, fmt.Errorf("removing index entries: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM slips WHERE category_id = ?", categoryID)
	if err != nil {
		return 0, fmt.Errorf("deleting slips: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking delete result: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return int(n), nil
}

// ==================== Helper Functions ====================

// categoryExists verifies a category reference inside a transaction,
// returning domain.ErrConstraint when the target is missing.
func categoryExists(ctx context.Context, tx *sql.Tx, id int) error {
	var count int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categories WHERE id = ?", id).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking category: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: category %d does not exist", domain.ErrConstraint, id)
	}
	return nil
}

// ftsMatchExpr builds an FTS5 MATCH expression from a free-text query:
// each whitespace token becomes a quoted prefix term, AND-combined.
// Returns "" for an empty or whitespace-only query.
func ftsMatchExpr(query string) string {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return ""
	}

	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		// Double embedded quotes per FTS5 string escaping.
		escaped := strings.ReplaceAll(tok, `"`, `""`)
		terms = append(terms, `"`+escaped+`"*`)
	}
	return strings.Join(terms, " AND ")
}

// prefixedSlipColumns qualifies the shared column list with a table alias.
func prefixedSlipColumns(alias string) string {
	cols := strings.Split(slipColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// scanSlip scans a single slip row.
func scanSlip(row *sql.Row) (*domain.Slip, error) {
	var slip domain.Slip
	var pinned int
	if err := row.Scan(&slip.ID, &slip.Timestamp, &slip.Title, &slip.Content,
		&slip.CategoryID, &pinned, &slip.CreatedAt, &slip.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning slip: %w", err)
	}
	slip.IsPinned = pinned != 0
	return &slip, nil
}

// scanSlips scans multiple slip rows.
func scanSlips(rows *sql.Rows) ([]domain.Slip, error) {
	var slips []domain.Slip //nolint:prealloc // size unknown from query
	for rows.Next() {
		var slip domain.Slip
		var pinned int
		if err := rows.Scan(&slip.ID, &slip.Timestamp, &slip.Title, &slip.Content,
			&slip.CategoryID, &pinned, &slip.CreatedAt, &slip.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning slip: %w", err)
		}
		slip.IsPinned = pinned != 0
		slips = append(slips, slip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slips: %w", err)
	}

	return slips, nil
}
