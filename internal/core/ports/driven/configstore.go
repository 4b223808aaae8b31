package driven

import "github.com/slipnote/slip-cli/internal/core/domain"

// ConfigStore persists user-facing settings outside the database, so a
// restored or replaced store file does not lose them.
type ConfigStore interface {
	// BackupInterval returns the configured snapshot cadence.
	// Defaults to off when unset.
	BackupInterval() domain.BackupInterval

	// SetBackupInterval persists the snapshot cadence.
	SetBackupInterval(interval domain.BackupInterval) error

	// BackupDir returns the directory snapshot files are written to.
	BackupDir() string
}
