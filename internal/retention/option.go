package retention

import (
	"time"

	"github.com/BrunoTulio/safesync/internal/config"
)

type (
	FnOptions func(*Options)

	Options struct {
		Retention config.RetentionConfig
		Now       func() time.Time
	}
)

func WithConfig(cfg *config.Config) FnOptions {
	return func(opts *Options) {
		opts.Retention = cfg.Scripts.Retention
	}
}

func WithRetention(maxScripts *int, retentionDays *int) FnOptions {
	return func(opts *Options) {
		opts.Retention.MaxScripts = maxScripts
		opts.Retention.RetentionDays = retentionDays
	}
}

func WithClock(now func() time.Time) FnOptions {
	return func(opts *Options) {
		opts.Now = now
	}
}

func (o *Options) HasRetention() bool {
	return o.Retention.HasMaxScripts() || o.Retention.HasRetentionDays()
}

func (o *Options) HasMaxScripts() bool {
	return o.Retention.HasMaxScripts()
}

func (o *Options) HasRetentionDays() bool {
	return o.Retention.HasRetentionDays()
}
