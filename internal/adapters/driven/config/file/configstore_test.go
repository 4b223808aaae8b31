package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipnote/slip-cli/internal/core/domain"
)

func TestConfigStore_Defaults(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, domain.BackupOff, store.BackupInterval())
	assert.Equal(t, filepath.Join(dir, "backups"), store.BackupDir())
}

func TestConfigStore_SetAndReload(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetBackupInterval(domain.BackupWeekly))

	// A fresh store reads the persisted value back.
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.BackupWeekly, reloaded.BackupInterval())

	assert.FileExists(t, filepath.Join(dir, "config.toml"))
}

func TestConfigStore_IgnoresUnknownInterval(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[backup]\ninterval = \"hourly\"\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.BackupOff, store.BackupInterval())
}

func TestConfigStore_CustomBackupDir(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path,
		[]byte("[backup]\ninterval = \"daily\"\ndir = \"/tmp/slip-backups\"\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/slip-backups", store.BackupDir())
	assert.Equal(t, domain.BackupDaily, store.BackupInterval())
}

func TestConfigStore_BadTOML(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml ["), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}
