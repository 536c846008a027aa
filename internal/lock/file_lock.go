package lock

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

type FileLock struct {
	flock *flock.Flock
}

// DefaultPath is run.lock under the user cache directory.
func DefaultPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	lockDir := filepath.Join(cacheDir, "safesync")
	if err := os.MkdirAll(lockDir, os.ModePerm); err != nil {
		lockDir = cacheDir
	}

	return filepath.Join(lockDir, "run.lock")
}

// New returns a lock on path, or on DefaultPath when path is empty.
func New(path string) *FileLock {
	if path == "" {
		path = DefaultPath()
	}

	return &FileLock{
		flock: flock.New(path),
	}
}

func (f *FileLock) Path() string {
	return f.flock.Path()
}

func (f *FileLock) TryLock() (bool, error) {
	return f.flock.TryLock()
}

func (f *FileLock) Unlock() error {
	return f.flock.Unlock()
}

// IsRunning reports whether another holder has the lock right now.
func (f *FileLock) IsRunning() bool {
	locked, err := f.flock.TryLock()
	if err != nil || !locked {
		return true
	}
	_ = f.flock.Unlock()
	return false
}
