// Package retention prunes old generated scripts on request.
package retention

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/BrunoTulio/safesync/internal/utils"
)

type (
	ScriptStore interface {
		List() ([]model.ScriptEntry, error)
		Delete(name string) error
	}

	Scripts struct {
		opt   *Options
		log   logr.Logger
		store ScriptStore
	}

	ScriptFiles []model.ScriptEntry

	Report struct {
		Removed ScriptFiles
		Kept    int
	}
)

func New(log logr.Logger, store ScriptStore) *Scripts {
	return NewWithOptions(log, store)
}

func NewWithOptions(log logr.Logger, store ScriptStore, opts ...FnOptions) *Scripts {
	opt := &Options{Now: time.Now}

	for _, o := range opts {
		o(opt)
	}
	return &Scripts{
		log:   log,
		opt:   opt,
		store: store,
	}
}

// Run deletes scripts beyond the configured count or age. Only one
// strategy applies; the count limit wins when both are set. Registered
// tasks pointing at a removed script are left to the caller.
func (s *Scripts) Run(ctx context.Context) (Report, error) {
	s.log.Info("🧹 starting script retention")

	if !s.opt.HasRetention() {
		s.log.Info("No retention policy configured, skipping cleanup")
		return Report{}, nil
	}

	entries, err := s.store.List()
	if err != nil {
		return Report{}, fmt.Errorf("list scripts: %w", err)
	}

	if len(entries) == 0 {
		s.log.Info("No scripts found, nothing to clean")
		return Report{}, nil
	}

	scripts := ScriptFiles(entries)
	sort.Sort(scripts)

	s.log.Infof("Found %d script(s)", len(scripts))

	var candidates ScriptFiles
	if s.opt.HasMaxScripts() {
		candidates = s.byCount(scripts, *s.opt.Retention.MaxScripts)
	} else if s.opt.HasRetentionDays() {
		candidates = s.byDays(scripts, *s.opt.Retention.RetentionDays)
	}

	removed := make(ScriptFiles, 0, len(candidates))
	for _, script := range candidates {
		if err := ctx.Err(); err != nil {
			return Report{Removed: removed, Kept: len(scripts) - len(removed)}, err
		}

		s.log.Infof("Removing old script: %s (age: %s, size: %s)",
			script.Name,
			utils.FormatDuration(s.opt.Now().Sub(script.ModTime)),
			utils.FormatBytes(script.Size))

		if err := s.store.Delete(script.Name); err != nil {
			s.log.Warnf("Failed to remove script %s: %v", script.Name, err)
			continue
		}
		removed = append(removed, script)
	}

	report := Report{Removed: removed, Kept: len(scripts) - len(removed)}

	s.log.Infof("✅ Cleanup completed:")
	s.log.Infof("   Removed: %d script(s)", report.Removed.Len())
	s.log.Infof("   Kept: %d script(s)", report.Kept)
	s.log.Infof("   Space freed: %s", utils.FormatBytes(report.Removed.Size()))

	return report, nil
}

func (s *Scripts) byCount(scripts ScriptFiles, maxScripts int) ScriptFiles {
	if len(scripts) <= maxScripts {
		s.log.Infof("%d script(s), limit %d not reached", len(scripts), maxScripts)
		return nil
	}
	return scripts[:len(scripts)-maxScripts]
}

func (s *Scripts) byDays(scripts ScriptFiles, retentionDays int) ScriptFiles {
	cutoff := s.opt.Now().AddDate(0, 0, -retentionDays)

	var old ScriptFiles
	for _, script := range scripts {
		if script.ModTime.Before(cutoff) {
			old = append(old, script)
		}
	}

	if len(old) == 0 {
		s.log.Infof("No scripts older than %d days", retentionDays)
	}
	return old
}

func (b ScriptFiles) Names() []string {
	names := make([]string, len(b))
	for i, script := range b {
		names[i] = script.Name
	}
	return names
}

func (b ScriptFiles) Size() int64 {
	var total int64
	for _, script := range b {
		total += script.Size
	}
	return total
}

func (b ScriptFiles) Len() int { return len(b) }
func (b ScriptFiles) Less(i, j int) bool {
	if b[i].ModTime.Equal(b[j].ModTime) {
		return b[i].Name < b[j].Name
	}
	return b[i].ModTime.Before(b[j].ModTime)
}
func (b ScriptFiles) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
