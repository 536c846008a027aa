package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BrunoTulio/safesync/internal/logging"
	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func newTestStore(t *testing.T, now time.Time) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "scripts")
	return NewWithOptions(logging.New("ERROR"), WithDir(dir), WithClock(fixedClock(now))), dir
}

func TestSaveAndRead(t *testing.T) {
	now := time.Date(2024, 5, 17, 14, 30, 0, 0, time.Local)
	s, dir := newTestStore(t, now)

	content := "@echo off\naws s3 sync \"C:\\a\" \"s3://b/a/\" --exact-timestamps"
	script, err := s.Save(content)
	require.NoError(t, err)

	assert.Equal(t, "backup_20240517_143000.bat", script.Name)
	assert.Equal(t, filepath.Join(dir, "backup_20240517_143000.bat"), script.Path)
	assert.Equal(t, now, script.CreatedAt)

	raw, err := os.ReadFile(script.Path)
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))

	got, err := s.Read("backup_20240517_143000")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestSaveSameSecondOverwrites(t *testing.T) {
	s, _ := newTestStore(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))

	first, err := s.Save("one")
	require.NoError(t, err)
	second, err := s.Save("two")
	require.NoError(t, err)

	assert.Equal(t, first.Path, second.Path)

	got, err := s.Read(first.Name)
	require.NoError(t, err)
	assert.Equal(t, "two", got)

	entries, err := s.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestListCreatesDirAndSorts(t *testing.T) {
	s, dir := newTestStore(t, time.Now())

	entries, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.DirExists(t, dir)

	for _, name := range []string{"backup_20240102_000000.bat", "backup_20240101_000000.bat", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.bat"), 0o755))

	mod := time.Date(2024, 3, 4, 5, 6, 7, 0, time.Local)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "backup_20240101_000000.bat"), mod, mod))

	entries, err = s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "backup_20240101_000000.bat", entries[0].Name)
	assert.Equal(t, "backup_20240102_000000.bat", entries[1].Name)
	assert.Equal(t, "2024-03-04 05:06:07", entries[0].Modified)
	assert.Equal(t, "backup_20240101_000000.bat (2024-03-04 05:06:07)", entries[0].DisplayName())
	assert.Equal(t, int64(1), entries[0].Size)
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))

	script, err := s.Save("x")
	require.NoError(t, err)

	require.NoError(t, s.Delete(script.Name))
	assert.NoFileExists(t, script.Path)

	err = s.Delete(script.Name)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestResolve(t *testing.T) {
	s, dir := newTestStore(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	script, err := s.Save("x")
	require.NoError(t, err)

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{name: "with extension", ref: script.Name, want: script.Path},
		{name: "without extension", ref: "backup_20240101_000000", want: script.Path},
		{name: "absolute path inside store", ref: filepath.Join(dir, script.Name), want: script.Path},
		{name: "missing", ref: "backup_19990101_000000", wantErr: model.ErrNotFound},
		{name: "empty", ref: " ", wantErr: model.ErrValidation},
		{name: "traversal", ref: "../secret", wantErr: model.ErrValidation},
		{name: "foreign dir", ref: "other/x.bat", wantErr: model.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Resolve(tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadMissing(t *testing.T) {
	s, _ := newTestStore(t, time.Now())
	_, err := s.List()
	require.NoError(t, err)

	_, err = s.Read("nope.bat")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
