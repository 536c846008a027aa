// Package lock keeps two script runs from overlapping across processes.
package lock

type Locker interface {
	TryLock() (bool, error)
	Unlock() error
	IsRunning() bool
}
