// Package scheduler registers generated scripts with the Windows task
// scheduler and reads back the tasks it owns.
package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/BrunoTulio/safesync/internal/proc"
	"github.com/BrunoTulio/safesync/internal/script"
)

// TaskPrefix marks the tasks this tool created among every task on the host.
const TaskPrefix = "AutoS3Backup_"

type Bridge struct {
	log logr.Logger
	opt *Options
}

func New(log logr.Logger) *Bridge {
	return NewWithOptions(log)
}

func NewWithOptions(log logr.Logger, opts ...func(*Options)) *Bridge {
	opt := &Options{
		Binary: DefaultBinary,
		Runner: proc.NewExec(),
	}
	for _, fn := range opts {
		fn(opt)
	}

	return &Bridge{
		log: log,
		opt: opt,
	}
}

// TaskName derives the task name from the script file name.
func TaskName(scriptPath string) string {
	base := script.BaseName(scriptPath)
	return TaskPrefix + strings.TrimSuffix(base, filepath.Ext(base))
}

// IsOwned reports whether name carries the reserved prefix, ignoring
// case and a leading root separator.
func IsOwned(name string) bool {
	name = strings.ToLower(strings.TrimLeft(name, `\`))
	return strings.HasPrefix(name, strings.ToLower(TaskPrefix))
}

// Register creates the task for scriptPath. A task with the same
// derived name is replaced.
func (b *Bridge) Register(ctx context.Context, spec model.ScheduleSpec, scriptPath string) (model.TaskHandle, error) {
	rec, err := NewRecurrence(spec)
	if err != nil {
		return model.TaskHandle{}, err
	}

	name := TaskName(scriptPath)

	args := []string{"/create", "/tn", name, "/tr", scriptPath}
	args = append(args, rec.Args()...)
	args = append(args, "/f")

	b.log.Infof("📅 Registering %s (%s)", name, rec)

	if _, err := b.run(ctx, args...); err != nil {
		return model.TaskHandle{}, err
	}

	b.log.Infof("✅ Task %s registered", name)

	return model.TaskHandle{Name: name}, nil
}

func (b *Bridge) Unregister(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if !IsOwned(name) {
		return fmt.Errorf("%w: task %q is not managed by safesync (expected prefix %s)", model.ErrValidation, name, TaskPrefix)
	}

	b.log.Infof("🗑️  Removing task %s", name)

	if _, err := b.run(ctx, "/delete", "/tn", name, "/f"); err != nil {
		return err
	}

	b.log.Infof("✅ Task %s removed", name)
	return nil
}

// List returns the owned tasks in the order the scheduler reports them.
func (b *Bridge) List(ctx context.Context) ([]model.ScheduledTaskRecord, error) {
	res, err := b.run(ctx, "/query", "/fo", "LIST", "/v")
	if err != nil {
		return nil, err
	}

	all := ParseQuery(res.Stdout)
	owned := FilterOwned(all)

	b.log.Debugf("Scheduler reported %d task(s), %d owned", len(all), len(owned))

	return owned, nil
}

func (b *Bridge) run(ctx context.Context, args ...string) (proc.Result, error) {
	cmd := proc.Command{Name: b.opt.Binary, Args: args}
	b.log.Debugf("exec: %s", cmd)

	res, err := b.opt.Runner.Run(ctx, cmd)
	if err != nil {
		return res, fmt.Errorf("%w: %s %s: %w", model.ErrScheduler, b.opt.Binary, args[0], err)
	}

	if res.ExitCode != 0 {
		return res, fmt.Errorf("%w: %s %s exited with code %d: %s",
			model.ErrScheduler, b.opt.Binary, args[0], res.ExitCode, strings.TrimSpace(res.Output()))
	}

	return res, nil
}
