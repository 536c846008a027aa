// Package backup runs a stored script immediately.
package backup

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/BrunoTulio/safesync/internal/proc"
	"github.com/BrunoTulio/safesync/internal/utils"
)

// ScriptResolver maps a script reference to a path on disk.
type ScriptResolver interface {
	Resolve(name string) (string, error)
}

type Runner struct {
	log     logr.Logger
	scripts ScriptResolver
	opt     *Options
}

func New(log logr.Logger, scripts ScriptResolver) *Runner {
	return NewWithFnOptions(log, scripts)
}

func NewWithFnOptions(log logr.Logger, scripts ScriptResolver, opts ...FnOptions) *Runner {
	opt := &Options{
		Shell:  []string{"cmd", "/c"},
		Runner: proc.NewExec(),
	}
	for _, o := range opts {
		o(opt)
	}

	return &Runner{
		log:     log,
		scripts: scripts,
		opt:     opt,
	}
}

// RunNow executes the script and waits for it. A non-zero exit returns
// the captured result together with model.ErrExecution.
func (r *Runner) RunNow(ctx context.Context, name string) (model.ExecutionResult, error) {
	path, err := r.scripts.Resolve(name)
	if err != nil {
		return model.ExecutionResult{}, err
	}

	if r.opt.Locker != nil {
		locked, err := r.opt.Locker.TryLock()
		if err != nil {
			return model.ExecutionResult{}, fmt.Errorf("%w: acquire run lock: %w", model.ErrIO, err)
		}
		if !locked {
			return model.ExecutionResult{}, fmt.Errorf("%w: %s not started", model.ErrBusy, name)
		}
		defer func() {
			_ = r.opt.Locker.Unlock()
		}()
	}

	if r.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opt.Timeout)
		defer cancel()
	}

	cmd := proc.Command{
		Name: r.opt.Shell[0],
		Args: append(append([]string{}, r.opt.Shell[1:]...), path),
	}
	if r.opt.Env != nil {
		cmd.Env = r.opt.Env()
	}

	r.log.Infof("🚀 Running %s", path)
	startTime := time.Now()

	res, err := r.opt.Runner.Run(ctx, cmd)
	result := model.ExecutionResult{
		Script:   path,
		ExitCode: res.ExitCode,
		Output:   res.Output(),
		Duration: time.Since(startTime),
	}
	r.logOutput(result.Output)

	if err != nil {
		return result, fmt.Errorf("%w: run %s: %w", model.ErrExecution, path, err)
	}

	if !result.Success() {
		r.log.Errorf("❌ Script failed with exit code %d", result.ExitCode)
		return result, fmt.Errorf("%w: %s exited with code %d", model.ErrExecution, path, result.ExitCode)
	}

	r.log.Infof("✅ Script completed in %s", utils.FormatDuration(result.Duration))
	return result, nil
}

// Busy reports whether a run holds the lock, in this process or another.
func (r *Runner) Busy() bool {
	return r.opt.Locker != nil && r.opt.Locker.IsRunning()
}

func (r *Runner) logOutput(output string) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 64*1024), 2*1024*1024)

	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			r.log.Debugf("script: %s", line)
		}
	}
}
