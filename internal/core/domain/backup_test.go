package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackupInterval(t *testing.T) {
	for _, valid := range []string{"off", "daily", "weekly", "monthly"} {
		got, err := ParseBackupInterval(valid)
		require.NoError(t, err)
		assert.Equal(t, BackupInterval(valid), got)
	}

	_, err := ParseBackupInterval("hourly")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBackupStateDue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		state BackupState
		want  bool
	}{
		{
			name:  "off never due",
			state: BackupState{Interval: BackupOff, LastBackupAt: now.Add(-365 * 24 * time.Hour)},
			want:  false,
		},
		{
			name:  "unset interval never due",
			state: BackupState{},
			want:  false,
		},
		{
			name:  "no previous backup is due immediately",
			state: BackupState{Interval: BackupDaily},
			want:  true,
		},
		{
			name:  "daily not yet elapsed",
			state: BackupState{Interval: BackupDaily, LastBackupAt: now.Add(-23 * time.Hour)},
			want:  false,
		},
		{
			name:  "daily exactly elapsed",
			state: BackupState{Interval: BackupDaily, LastBackupAt: now.Add(-24 * time.Hour)},
			want:  true,
		},
		{
			name:  "weekly elapsed",
			state: BackupState{Interval: BackupWeekly, LastBackupAt: now.Add(-8 * 24 * time.Hour)},
			want:  true,
		},
		{
			name:  "monthly not elapsed",
			state: BackupState{Interval: BackupMonthly, LastBackupAt: now.Add(-20 * 24 * time.Hour)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Due(now))
		})
	}
}
