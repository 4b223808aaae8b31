package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/slipnote/slip-cli/internal/core/domain"
	"github.com/slipnote/slip-cli/internal/core/ports/driven"
	"github.com/slipnote/slip-cli/internal/core/ports/driving"
	"github.com/slipnote/slip-cli/internal/logger"
)

// Ensure Backup implements the interface.
var _ driving.BackupScheduler = (*Backup)(nil)

// checkInterval is how often the scheduler loop looks for due backups.
// The configured backup intervals are all much longer, so a coarse
// check is enough.
const checkInterval = time.Minute

// backupPrefix and backupSuffix frame snapshot file names:
// slips-20060102-150405.db.
const (
	backupPrefix = "slips-"
	backupSuffix = ".db"
)

// Backup runs periodic snapshots of the store file. Snapshots go
// through the Snapshotter (a consistent read-transaction copy), so the
// scheduler never holds a lock that blocks slip mutations. Failures are
// logged and retried on the next check, never fatal.
type Backup struct {
	snapshotter driven.Snapshotter
	states      driven.BackupStateStore
	config      driven.ConfigStore

	// now is the clock; replaced in tests.
	now func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewBackup creates a backup scheduler.
func NewBackup(
	snapshotter driven.Snapshotter,
	states driven.BackupStateStore,
	config driven.ConfigStore,
) *Backup {
	return &Backup{
		snapshotter: snapshotter,
		states:      states,
		config:      config,
		now:         time.Now,
	}
}

// Configure sets the snapshot cadence, persisting it to the config file
// and mirroring it into the store's bookkeeping row.
func (b *Backup) Configure(interval domain.BackupInterval) error {
	if err := b.config.SetBackupInterval(interval); err != nil {
		return fmt.Errorf("persisting backup interval: %w", err)
	}

	ctx := context.Background()
	state, err := b.states.GetBackupState(ctx)
	if err != nil {
		return err
	}
	state.Interval = interval
	return b.states.SaveBackupState(ctx, state)
}

// State returns the configured interval and last-backup time. The
// interval comes from config so it survives a restored database.
func (b *Backup) State(ctx context.Context) (domain.BackupState, error) {
	state, err := b.states.GetBackupState(ctx)
	if err != nil {
		return domain.BackupState{}, err
	}
	state.Interval = b.config.BackupInterval()
	return state, nil
}

// RunIfDue takes a snapshot when one is due, updates the bookkeeping
// and prunes old snapshot files down to the retention limit.
func (b *Backup) RunIfDue(ctx context.Context) (domain.BackupResult, error) {
	state, err := b.State(ctx)
	if err != nil {
		return domain.BackupResult{}, err
	}

	now := b.now().UTC()
	if !state.Due(now) {
		return domain.BackupResult{}, nil
	}

	dir := b.config.BackupDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return domain.BackupResult{}, fmt.Errorf("creating backup directory: %w", err)
	}

	path := filepath.Join(dir, backupPrefix+now.Format("20060102-150405")+backupSuffix)
	if err := b.snapshotter.SnapshotTo(ctx, path); err != nil {
		return domain.BackupResult{}, err
	}

	state.LastBackupAt = now
	if err := b.states.SaveBackupState(ctx, state); err != nil {
		return domain.BackupResult{}, err
	}

	// Retention failures do not invalidate the snapshot that was taken.
	pruned, err := b.pruneRetention(dir)
	if err != nil {
		logger.Warn("backup retention pruning failed: %v", err)
	}

	logger.Info("backup written to %s (%d pruned)", path, pruned)
	return domain.BackupResult{Ran: true, Path: path, Pruned: pruned, At: now}, nil
}

// Start blocks, checking for due backups immediately and then on a
// timer, until the context is cancelled or Stop is called. Backup
// failures are logged and retried on the next tick.
func (b *Backup) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return nil // Already running
	}
	b.running = true
	b.stopCh = make(chan struct{})
	stopCh := b.stopCh
	b.mu.Unlock()

	b.check(ctx)

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			b.check(ctx)
		}
	}
}

// Stop shuts the scheduler loop down.
func (b *Backup) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		return nil
	}
	b.running = false
	close(b.stopCh)
	return nil
}

// check runs one due-check, swallowing errors into the log.
func (b *Backup) check(ctx context.Context) {
	if _, err := b.RunIfDue(ctx); err != nil {
		logger.Warn("backup failed, will retry next cycle: %v", err)
	}
}

// pruneRetention deletes all but the most recent BackupRetention
// snapshot files, ordered by file modification time (snapshots are
// never rewritten, so this is their creation time).
func (b *Backup) pruneRetention(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading backup directory: %w", err)
	}

	type backupFile struct {
		name    string
		modTime time.Time
	}

	var backups []backupFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return 0, fmt.Errorf("inspecting backup %s: %w", name, err)
		}
		backups = append(backups, backupFile{name: name, modTime: info.ModTime()})
	}

	if len(backups) <= domain.BackupRetention {
		return 0, nil
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.After(backups[j].modTime)
	})

	pruned := 0
	for _, old := range backups[domain.BackupRetention:] {
		if err := os.Remove(filepath.Join(dir, old.name)); err != nil {
			logger.Warn("removing old backup %s: %v", old.name, err)
			continue
		}
		pruned++
	}
	return pruned, nil
}
