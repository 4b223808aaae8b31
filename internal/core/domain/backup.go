package domain

import (
	"fmt"
	"time"
)

// BackupInterval controls how often the backup scheduler snapshots the
// store file.
type BackupInterval string

// Supported backup intervals.
const (
	BackupOff     BackupInterval = "off"
	BackupDaily   BackupInterval = "daily"
	BackupWeekly  BackupInterval = "weekly"
	BackupMonthly BackupInterval = "monthly"
)

// BackupRetention is the number of snapshot files kept on disk. Older
// files are pruned after every successful backup.
const BackupRetention = 10

// ParseBackupInterval validates a user-supplied interval string.
func ParseBackupInterval(s string) (BackupInterval, error) {
	switch BackupInterval(s) {
	case BackupOff, BackupDaily, BackupWeekly, BackupMonthly:
		return BackupInterval(s), nil
	}
	return "", fmt.Errorf("%w: unknown backup interval %q", ErrInvalidInput, s)
}

// Duration maps the interval to its fixed duration. Returns 0 for off.
func (i BackupInterval) Duration() time.Duration {
	switch i {
	case BackupDaily:
		return 24 * time.Hour
	case BackupWeekly:
		return 7 * 24 * time.Hour
	case BackupMonthly:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// BackupState is the scheduler's persisted bookkeeping.
type BackupState struct {
	// Interval is the configured snapshot cadence.
	Interval BackupInterval

	// LastBackupAt is when the last successful snapshot completed.
	// Zero when no backup has ever run.
	LastBackupAt time.Time
}

// Due reports whether a backup should run at the given time.
func (s BackupState) Due(now time.Time) bool {
	if s.Interval == BackupOff || s.Interval == "" {
		return false
	}
	if s.LastBackupAt.IsZero() {
		return true
	}
	return now.Sub(s.LastBackupAt) >= s.Interval.Duration()
}

// BackupResult describes the outcome of one scheduler check.
type BackupResult struct {
	// Ran is true when a snapshot was taken.
	Ran bool

	// Path is the snapshot file written, when Ran.
	Path string

	// Pruned is the number of old snapshot files removed.
	Pruned int

	// At is when the snapshot completed.
	At time.Time
}
