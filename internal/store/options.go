package store

import (
	"time"

	"github.com/BrunoTulio/safesync/internal/config"
)

const (
	DefaultExtension = ".bat"
	DefaultPrefix    = "backup_"
	nameLayout       = "20060102_150405"
)

type (
	FnOptions func(*Options)

	Options struct {
		Dir       string
		Extension string
		Prefix    string
		Now       func() time.Time
	}
)

func defaultOptions() *Options {
	return &Options{
		Extension: DefaultExtension,
		Prefix:    DefaultPrefix,
		Now:       time.Now,
	}
}

func WithConfig(cfg *config.Config) FnOptions {
	return func(o *Options) {
		o.Dir = cfg.Scripts.Dir
	}
}

func WithDir(dir string) FnOptions {
	return func(o *Options) {
		o.Dir = dir
	}
}

func WithExtension(ext string) FnOptions {
	return func(o *Options) {
		o.Extension = ext
	}
}

// WithClock replaces the clock used to name saved scripts.
func WithClock(now func() time.Time) FnOptions {
	return func(o *Options) {
		o.Now = now
	}
}

// GenerateFileName names a script after the save time at second resolution.
func (o *Options) GenerateFileName() string {
	return o.Prefix + o.Now().Format(nameLayout) + o.Extension
}
