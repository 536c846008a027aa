// Package proctest provides a scripted proc.Runner for tests.
package proctest

import (
	"context"
	"sync"

	"github.com/BrunoTulio/safesync/internal/proc"
)

// Fake records every command and answers with Result/Err, or with
// Handler when it is set.
type Fake struct {
	mu      sync.Mutex
	Calls   []proc.Command
	Result  proc.Result
	Err     error
	Handler func(cmd proc.Command) (proc.Result, error)
}

func (f *Fake) Run(_ context.Context, cmd proc.Command) (proc.Result, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, cmd)
	handler := f.Handler
	f.mu.Unlock()

	if handler != nil {
		return handler(cmd)
	}
	return f.Result, f.Err
}

func (f *Fake) Last() proc.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return proc.Command{}
	}
	return f.Calls[len(f.Calls)-1]
}
