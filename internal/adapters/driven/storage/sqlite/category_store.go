package sqlite

import (
	"context"
	"fmt"

	"github.com/slipnote/slip-cli/internal/core/domain"
	"github.com/slipnote/slip-cli/internal/core/ports/driven"
)

// categoryStore implements driven.CategoryStore.
type categoryStore struct {
	store *Store
}

var _ driven.CategoryStore = (*categoryStore)(nil)

// List returns all categories ordered by sort order. Trash carries the
// largest sort order, so it always lists last.
func (s *categoryStore) List(ctx context.Context) ([]domain.Category, error) {
	db, err := s.store.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, emoji, color, sort_order
		FROM categories ORDER BY sort_order
	`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Emoji, &c.Color, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

// Update changes display fields of a category. Nil fields are left
// unchanged; ID and sort order are never touched.
func (s *categoryStore) Update(ctx context.Context, id int, name, color *string) error {
	if name == nil && color == nil {
		return nil
	}

	db, err := s.store.conn()
	if err != nil {
		return err
	}

	s.store.writerMu.Lock()
	defer s.store.writerMu.Unlock()

	query := "UPDATE categories SET "
	args := make([]any, 0, 3)
	if name != nil {
		query += "name = ?"
		args = append(args, *name)
	}
	if color != nil {
		if name != nil {
			query += ", "
		}
		query += "color = ?"
		args = append(args, *color)
	}
	query += " WHERE id = ?"
	args = append(args, id)

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking update result: %w", err)
	} else if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Seed inserts the default category set only when the table is empty,
// and separately ensures Trash exists so stores created before the
// Trash category gain it on startup. Never destructive; safe to call
// on every run.
func (s *categoryStore) Seed(ctx context.Context) error {
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

	var count int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}

	if count == 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO categories (id, name, emoji, color, sort_order)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing seed statement: %w", err)
		}
		defer stmt.Close()

		for _, c := range domain.DefaultCategories() {
			if _, err := stmt.ExecContext(ctx,
				c.ID, c.Name, c.Emoji, c.Color, c.SortOrder); err != nil {
				return fmt.Errorf("seeding category %d: %w", c.ID, err)
			}
		}
	} else {
		// Idempotent repair for stores that predate the Trash category.
		trash := domain.TrashCategory()
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO categories (id, name, emoji, color, sort_order)
			VALUES (?, ?, ?, ?, ?)
		`, trash.ID, trash.Name, trash.Emoji, trash.Color, trash.SortOrder); err != nil {
			return fmt.Errorf("ensuring trash category: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
