// Package file provides a TOML-backed implementation of the ConfigStore
// port. Settings live outside the database so a restored store file does
// not lose them.
package file

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/pelletier/go-toml/v2"

	"github.com/slipnote/slip-cli/internal/core/domain"
	"github.com/slipnote/slip-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// config is the on-disk TOML shape.
type config struct {
	Backup backupConfig `toml:"backup"`
}

type backupConfig struct {
	Interval string `toml:"interval"`
	Dir      string `toml:"dir,omitempty"`
}

// ConfigStore is a file-based config store using TOML.
// Configuration is stored at <configDir>/config.toml.
type ConfigStore struct {
	mu       sync.RWMutex
	baseDir  string
	filePath string
	cfg      config
}

// NewConfigStore creates a TOML-based config store.
// If configDir is empty, defaults to ~/.slip.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".slip")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		baseDir:  configDir,
		filePath: filepath.Join(configDir, "config.toml"),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// BackupInterval returns the configured snapshot cadence, defaulting to
// off when unset or unparseable.
func (s *ConfigStore) BackupInterval() domain.BackupInterval {
	s.mu.RLock()
	defer s.mu.RUnlock()

	interval, err := domain.ParseBackupInterval(s.cfg.Backup.Interval)
	if err != nil {
		return domain.BackupOff
	}
	return interval
}

// SetBackupInterval persists the snapshot cadence.
func (s *ConfigStore) SetBackupInterval(interval domain.BackupInterval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.Backup.Interval = string(interval)
	return s.save()
}

// BackupDir returns the snapshot directory, defaulting to
// <configDir>/backups when not configured.
func (s *ConfigStore) BackupDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cfg.Backup.Dir != "" {
		return s.cfg.Backup.Dir
	}
	return filepath.Join(s.baseDir, "backups")
}

// load reads the config file into memory.
func (s *ConfigStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, &s.cfg)
}

// save writes the config file atomically, so a crash mid-write never
// leaves a truncated file behind.
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.cfg)
	if err != nil {
		return err
	}
	return atomic.WriteFile(s.filePath, bytes.NewReader(data))
}
