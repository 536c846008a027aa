// Package notify reports the outcome of a script run.
package notify

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/BrunoTulio/safesync/internal/utils"
)

const maxOutputTail = 1500

type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

type Event struct {
	Script   string
	Success  bool
	ExitCode int
	Output   string
	Duration time.Duration
	Err      string
}

func EventFromResult(res model.ExecutionResult, err error) Event {
	e := Event{
		Script:   filepath.Base(res.Script),
		Success:  err == nil && res.Success(),
		ExitCode: res.ExitCode,
		Output:   res.Output,
		Duration: res.Duration,
	}
	if err != nil {
		e.Err = err.Error()
	}
	return e
}

func (e Event) Title() string {
	if e.Success {
		return "✅ Backup Success"
	}
	return "❌ Backup Failed"
}

func (e Event) Summary() string {
	if e.Success {
		return fmt.Sprintf("%s completed in %s", e.Script, utils.FormatDuration(e.Duration))
	}
	if e.Err != "" {
		return fmt.Sprintf("%s failed (exit %d): %s", e.Script, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s failed (exit %d)", e.Script, e.ExitCode)
}

// OutputTail returns the end of the script output, short enough for
// chat messages.
func (e Event) OutputTail() string {
	if len(e.Output) <= maxOutputTail {
		return e.Output
	}
	return "..." + e.Output[len(e.Output)-maxOutputTail:]
}
