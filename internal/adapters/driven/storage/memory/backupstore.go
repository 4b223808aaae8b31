package memory

import (
	"context"
	"sync"

	"github.com/slipnote/slip-cli/internal/core/domain"
	"github.com/slipnote/slip-cli/internal/core/ports/driven"
)

// BackupStateStore is an in-memory implementation of driven.BackupStateStore.
type BackupStateStore struct {
	mu    sync.RWMutex
	state domain.BackupState
	saved bool
}

var _ driven.BackupStateStore = (*BackupStateStore)(nil)

// NewBackupStateStore creates an empty in-memory backup state store.
func NewBackupStateStore() *BackupStateStore {
	return &BackupStateStore{}
}

// GetBackupState returns the stored state, defaulting to interval off.
func (s *BackupStateStore) GetBackupState(_ context.Context) (domain.BackupState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return domain.BackupState{Interval: domain.BackupOff}, nil
	}
	return s.state, nil
}

// SaveBackupState stores the state.
func (s *BackupStateStore) SaveBackupState(_ context.Context, state domain.BackupState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.saved = true
	return nil
}
