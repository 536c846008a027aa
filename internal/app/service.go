// Package app is the orchestrator behind the CLI and the HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/safesync/internal/auth"
	"github.com/BrunoTulio/safesync/internal/config"
	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/BrunoTulio/safesync/internal/notify"
	"github.com/BrunoTulio/safesync/internal/retention"
	"github.com/BrunoTulio/safesync/internal/script"
	"github.com/BrunoTulio/safesync/internal/utils"
)

const notifyTimeout = 15 * time.Second

type (
	ScriptStore interface {
		Save(content string) (model.GeneratedScript, error)
		List() ([]model.ScriptEntry, error)
		Read(name string) (string, error)
		Delete(name string) error
		Resolve(name string) (string, error)
	}

	TaskScheduler interface {
		Register(ctx context.Context, spec model.ScheduleSpec, scriptPath string) (model.TaskHandle, error)
		Unregister(ctx context.Context, name string) error
		List(ctx context.Context) ([]model.ScheduledTaskRecord, error)
	}

	ScriptRunner interface {
		RunNow(ctx context.Context, name string) (model.ExecutionResult, error)
		Busy() bool
	}

	CredentialChecker interface {
		Check(ctx context.Context, creds config.Credentials) (auth.Result, error)
	}

	Pruner interface {
		Run(ctx context.Context) (retention.Report, error)
	}

	// Deps are the collaborators of a Service. Notifier and Pruner may be nil.
	Deps struct {
		Scripts  ScriptStore
		Tasks    TaskScheduler
		Runner   ScriptRunner
		Checker  CredentialChecker
		Secrets  *config.Secrets
		Notifier notify.Notifier
		Pruner   Pruner
	}

	Service struct {
		log  logr.Logger
		deps Deps
	}
)

func New(log logr.Logger, deps Deps) *Service {
	if deps.Secrets == nil {
		deps.Secrets = config.NewSecrets("", "")
	}
	return &Service{
		log:  log,
		deps: deps,
	}
}

// Preview composes the script without touching the disk.
func (s *Service) Preview(spec model.BackupJobSpec) (string, error) {
	return script.Compose(s.withDefaults(spec))
}

// Generate checks that every source folder exists, composes the script
// and saves it.
func (s *Service) Generate(ctx context.Context, spec model.BackupJobSpec) (model.GeneratedScript, error) {
	spec = s.withDefaults(spec)
	if err := spec.Validate(); err != nil {
		return model.GeneratedScript{}, err
	}

	folders := make([]string, len(spec.SourceFolders))
	for i, folder := range spec.SourceFolders {
		abs, err := filepath.Abs(strings.TrimSpace(folder))
		if err != nil {
			return model.GeneratedScript{}, fmt.Errorf("%w: folder %q: %w", model.ErrValidation, folder, err)
		}
		if !utils.DirExists(abs) {
			return model.GeneratedScript{}, fmt.Errorf("%w: folder %q does not exist or is not a directory", model.ErrValidation, folder)
		}
		folders[i] = abs
	}
	spec.SourceFolders = folders

	if err := ctx.Err(); err != nil {
		return model.GeneratedScript{}, err
	}

	content, err := script.Compose(spec)
	if err != nil {
		return model.GeneratedScript{}, err
	}

	s.log.Infof("📝 Composed script for %d folder(s) to bucket %s", len(folders), spec.BucketName)

	return s.deps.Scripts.Save(content)
}

func (s *Service) Scripts() ([]model.ScriptEntry, error) {
	return s.deps.Scripts.List()
}

func (s *Service) Script(name string) (string, error) {
	return s.deps.Scripts.Read(name)
}

func (s *Service) DeleteScript(name string) error {
	return s.deps.Scripts.Delete(name)
}

func (s *Service) PruneScripts(ctx context.Context) (retention.Report, error) {
	if s.deps.Pruner == nil {
		return retention.Report{}, nil
	}
	return s.deps.Pruner.Run(ctx)
}

// Schedule registers spec.Script with the OS scheduler. The script must
// already be in the store.
func (s *Service) Schedule(ctx context.Context, spec model.ScheduleSpec) (model.TaskHandle, error) {
	if err := spec.Validate(); err != nil {
		return model.TaskHandle{}, err
	}

	path, err := s.deps.Scripts.Resolve(spec.Script)
	if err != nil {
		return model.TaskHandle{}, err
	}

	return s.deps.Tasks.Register(ctx, spec, path)
}

func (s *Service) Tasks(ctx context.Context) ([]model.ScheduledTaskRecord, error) {
	return s.deps.Tasks.List(ctx)
}

func (s *Service) DeleteTask(ctx context.Context, name string) error {
	return s.deps.Tasks.Unregister(ctx, name)
}

// RunNow executes a stored script and reports the outcome to the
// notifier when one is configured. Runs that never started are not
// reported.
func (s *Service) RunNow(ctx context.Context, name string) (model.ExecutionResult, error) {
	res, err := s.deps.Runner.RunNow(ctx, name)

	if err == nil || errors.Is(err, model.ErrExecution) {
		s.notify(res, err)
	}

	return res, err
}

// Busy reports whether a script run is in progress.
func (s *Service) Busy() bool {
	return s.deps.Runner.Busy()
}

func (s *Service) CheckCredentials(ctx context.Context) (auth.Result, error) {
	return s.deps.Checker.Check(ctx, s.deps.Secrets.Credentials())
}

func (s *Service) Credentials() config.Credentials {
	return s.deps.Secrets.Credentials()
}

func (s *Service) ReloadSecrets() (config.Credentials, error) {
	creds, err := s.deps.Secrets.Reload()
	if err != nil {
		return creds, fmt.Errorf("reload secrets: %w", err)
	}
	s.log.Infof("🔑 Secrets loaded from %s", s.deps.Secrets.Path())
	return creds, nil
}

func (s *Service) withDefaults(spec model.BackupJobSpec) model.BackupJobSpec {
	if strings.TrimSpace(spec.BucketName) == "" {
		spec.BucketName = s.deps.Secrets.Credentials().BucketName
	}
	return spec
}

func (s *Service) notify(res model.ExecutionResult, runErr error) {
	if s.deps.Notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.deps.Notifier.Notify(ctx, notify.EventFromResult(res, runErr)); err != nil {
		s.log.Warnf("⚠️  Notification failed: %v", err)
	}
}
