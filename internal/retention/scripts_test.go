package retention

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/BrunoTulio/safesync/internal/logging"
	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	entries []model.ScriptEntry
	deleted []string
	failOn  string
}

func (m *memStore) List() ([]model.ScriptEntry, error) {
	return append([]model.ScriptEntry{}, m.entries...), nil
}

func (m *memStore) Delete(name string) error {
	if name == m.failOn {
		return fmt.Errorf("%w: locked", model.ErrIO)
	}
	m.deleted = append(m.deleted, name)
	return nil
}

var now = time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)

func entry(name string, age time.Duration) model.ScriptEntry {
	return model.ScriptEntry{Name: name, ModTime: now.Add(-age), Size: 100}
}

func newStore() *memStore {
	return &memStore{entries: []model.ScriptEntry{
		entry("backup_c.bat", 1*time.Hour),
		entry("backup_a.bat", 72*time.Hour),
		entry("backup_b.bat", 48*time.Hour),
	}}
}

func intPtr(v int) *int { return &v }

func TestRunWithoutPolicy(t *testing.T) {
	store := newStore()
	report, err := New(logging.New("ERROR"), store).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Removed)
	assert.Empty(t, store.deleted)
}

func TestRunByCount(t *testing.T) {
	store := newStore()
	r := NewWithOptions(logging.New("ERROR"), store, WithRetention(intPtr(1), nil), WithClock(func() time.Time { return now }))

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"backup_a.bat", "backup_b.bat"}, store.deleted)
	assert.Equal(t, []string{"backup_a.bat", "backup_b.bat"}, report.Removed.Names())
	assert.Equal(t, 1, report.Kept)
	assert.Equal(t, int64(200), report.Removed.Size())
}

func TestRunByCountUnderLimit(t *testing.T) {
	store := newStore()
	r := NewWithOptions(logging.New("ERROR"), store, WithRetention(intPtr(3), nil))

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, store.deleted)
	assert.Equal(t, 3, report.Kept)
}

func TestRunByDays(t *testing.T) {
	store := newStore()
	r := NewWithOptions(logging.New("ERROR"), store, WithRetention(nil, intPtr(2)), WithClock(func() time.Time { return now }))

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"backup_a.bat"}, store.deleted)
	assert.Equal(t, 2, report.Kept)
}

func TestRunSkipsFailedDeletes(t *testing.T) {
	store := newStore()
	store.failOn = "backup_a.bat"
	r := NewWithOptions(logging.New("ERROR"), store, WithRetention(intPtr(1), nil), WithClock(func() time.Time { return now }))

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"backup_b.bat"}, report.Removed.Names())
	assert.Equal(t, 2, report.Kept)
}
