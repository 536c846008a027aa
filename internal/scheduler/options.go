package scheduler

import (
	"github.com/BrunoTulio/safesync/internal/config"
	"github.com/BrunoTulio/safesync/internal/proc"
)

const DefaultBinary = "schtasks"

type Options struct {
	Binary string
	Runner proc.Runner
}

func WithConfig(cfg *config.Config) func(*Options) {
	return func(o *Options) {
		if cfg.Scheduler.Binary != "" {
			o.Binary = cfg.Scheduler.Binary
		}
	}
}

func WithRunner(r proc.Runner) func(*Options) {
	return func(o *Options) {
		o.Runner = r
	}
}
