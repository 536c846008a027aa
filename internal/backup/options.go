package backup

import (
	"time"

	"github.com/BrunoTulio/safesync/internal/config"
	"github.com/BrunoTulio/safesync/internal/lock"
	"github.com/BrunoTulio/safesync/internal/proc"
)

type (
	FnOptions func(*Options)
	Options   struct {
		Shell   []string      // program and flags placed before the script path
		Timeout time.Duration // 0 = no limit
		Runner  proc.Runner
		Locker  lock.Locker // nil = runs are not serialized
		Env     func() []string
	}
)

func WithConfig(cfg *config.Config) FnOptions {
	return func(opt *Options) {
		opt.Shell = cfg.Execution.Shell
		opt.Timeout = time.Duration(cfg.Execution.Timeout) * time.Minute
	}
}

func WithShell(shell ...string) FnOptions {
	return func(opt *Options) {
		opt.Shell = shell
	}
}

func WithRunner(r proc.Runner) FnOptions {
	return func(opt *Options) {
		opt.Runner = r
	}
}

func WithLocker(l lock.Locker) FnOptions {
	return func(opt *Options) {
		opt.Locker = l
	}
}

func WithTimeout(d time.Duration) FnOptions {
	return func(opt *Options) {
		opt.Timeout = d
	}
}

// WithEnv sets a source of extra variables for the script, read on every run.
func WithEnv(env func() []string) FnOptions {
	return func(opt *Options) {
		opt.Env = env
	}
}
