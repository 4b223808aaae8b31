package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/slipnote/slip-cli/internal/core/domain"
	"github.com/slipnote/slip-cli/internal/core/ports/driven"
)

// backupStateStore implements driven.BackupStateStore over the
// single-row backup_state table.
type backupStateStore struct {
	store *Store
}

var _ driven.BackupStateStore = (*backupStateStore)(nil)

// GetBackupState returns the persisted scheduler state. When no state
// has been saved yet, returns a zero state with the interval unset.
func (s *backupStateStore) GetBackupState(ctx context.Context) (domain.BackupState, error) {
	db, err := s.store.conn()
	if err != nil {
		return domain.BackupState{}, err
	}

	row := db.QueryRowContext(ctx,
		"SELECT interval, last_backup_at FROM backup_state WHERE id = 1")

	var interval string
	var lastBackup sql.NullTime
	if err := row.Scan(&interval, &lastBackup); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BackupState{Interval: domain.BackupOff}, nil
		}
		return domain.BackupState{}, fmt.Errorf("scanning backup state: %w", err)
	}

	return domain.BackupState{
		Interval:     domain.BackupInterval(interval),
		LastBackupAt: parseNullableTime(lastBackup),
	}, nil
}

// SaveBackupState upserts the scheduler state.
func (s *backupStateStore) SaveBackupState(ctx context.Context, state domain.BackupState) error {
	db, err := s.store.conn()
	if err != nil {
		return err
	}

	s.store.writerMu.Lock()
	defer s.store.writerMu.Unlock()

	_, err = db.ExecContext(ctx, `
		INSERT INTO backup_state (id, interval, last_backup_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			interval = excluded.interval,
			last_backup_at = excluded.last_backup_at
	`, string(state.Interval), formatNullableTime(state.LastBackupAt))

	if err != nil {
		return fmt.Errorf("saving backup state: %w", err)
	}
	return nil
}
