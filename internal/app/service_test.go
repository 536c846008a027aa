package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BrunoTulio/safesync/internal/auth"
	"github.com/BrunoTulio/safesync/internal/config"
	"github.com/BrunoTulio/safesync/internal/logging"
	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/BrunoTulio/safesync/internal/notify"
	"github.com/BrunoTulio/safesync/internal/proc"
	"github.com/BrunoTulio/safesync/internal/proc/proctest"
	"github.com/BrunoTulio/safesync/internal/retention"
	"github.com/BrunoTulio/safesync/internal/scheduler"
	"github.com/BrunoTulio/safesync/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	res   model.ExecutionResult
	err   error
	names []string
}

func (f *fakeRunner) RunNow(_ context.Context, name string) (model.ExecutionResult, error) {
	f.names = append(f.names, name)
	return f.res, f.err
}

func (f *fakeRunner) Busy() bool { return false }

type fakeChecker struct {
	got config.Credentials
}

func (f *fakeChecker) Check(_ context.Context, creds config.Credentials) (auth.Result, error) {
	f.got = creds
	return auth.Result{Valid: creds.AccessKeyID != ""}, nil
}

type recorder struct {
	events []notify.Event
}

func (r *recorder) Notify(_ context.Context, e notify.Event) error {
	r.events = append(r.events, e)
	return nil
}

type fixture struct {
	svc      *Service
	store    *store.Store
	sched    *proctest.Fake
	runner   *fakeRunner
	checker  *fakeChecker
	notifier *recorder
	envFile  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logging.New("ERROR")
	dir := t.TempDir()

	f := &fixture{
		store: store.NewWithOptions(log,
			store.WithDir(filepath.Join(dir, "scripts")),
			store.WithClock(func() time.Time { return time.Date(2024, 5, 17, 14, 30, 0, 0, time.Local) })),
		sched:    &proctest.Fake{},
		runner:   &fakeRunner{},
		checker:  &fakeChecker{},
		notifier: &recorder{},
		envFile:  filepath.Join(dir, ".env"),
	}

	f.svc = New(log, Deps{
		Scripts:  f.store,
		Tasks:    scheduler.NewWithOptions(log, scheduler.WithRunner(f.sched)),
		Runner:   f.runner,
		Checker:  f.checker,
		Secrets:  config.NewSecrets(f.envFile, ""),
		Notifier: f.notifier,
		Pruner:   retention.New(log, f.store),
	})
	return f
}

func TestGenerate(t *testing.T) {
	f := newFixture(t)
	photos := filepath.Join(t.TempDir(), "Photos")
	require.NoError(t, os.Mkdir(photos, 0o755))

	script, err := f.svc.Generate(context.Background(), model.BackupJobSpec{
		SourceFolders: []string{photos},
		BucketName:    "my-bkt",
		LogFilePath:   `C:\logs\b.txt`,
	})
	require.NoError(t, err)

	assert.Equal(t, "backup_20240517_143000.bat", script.Name)
	want := "@echo off\n" +
		fmt.Sprintf(`aws s3 sync "%s" "s3://my-bkt/Photos/" --exact-timestamps`, photos) + "\n" +
		`echo Backup completed at %DATE% %TIME% >> "C:\logs\b.txt"`
	assert.Equal(t, want, script.Content)

	stored, err := f.svc.Script(script.Name)
	require.NoError(t, err)
	assert.Equal(t, want, stored)
}

func TestGenerateRejectsMissingFolder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Generate(context.Background(), model.BackupJobSpec{
		SourceFolders: []string{filepath.Join(t.TempDir(), "missing")},
		BucketName:    "b",
	})
	assert.ErrorIs(t, err, model.ErrValidation)

	entries, err := f.svc.Scripts()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateUsesBucketFromSecrets(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.envFile, []byte("BUCKET_NAME=from-env\n"), 0o600))
	_, err := f.svc.ReloadSecrets()
	require.NoError(t, err)

	preview, err := f.svc.Preview(model.BackupJobSpec{SourceFolders: []string{`C:\Data`}})
	require.NoError(t, err)
	assert.Contains(t, preview, `"s3://from-env/Data/"`)

	preview, err = f.svc.Preview(model.BackupJobSpec{SourceFolders: []string{`C:\Data`}, BucketName: "explicit"})
	require.NoError(t, err)
	assert.Contains(t, preview, `"s3://explicit/Data/"`)
}

func TestPreviewWithoutBucket(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Preview(model.BackupJobSpec{SourceFolders: []string{`C:\Data`}})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestScheduleAndTasks(t *testing.T) {
	f := newFixture(t)
	script, err := f.store.Save("@echo off")
	require.NoError(t, err)

	handle, err := f.svc.Schedule(context.Background(), model.ScheduleSpec{
		Hour: 2, Minute: 30, Days: []model.Weekday{model.Saturday, model.Sunday}, Script: "backup_20240517_143000",
	})
	require.NoError(t, err)
	assert.Equal(t, "AutoS3Backup_backup_20240517_143000", handle.Name)
	assert.Equal(t, []string{"/create", "/tn", handle.Name, "/tr", script.Path,
		"/sc", "weekly", "/d", "SAT,SUN", "/st", "02:30", "/f"}, f.sched.Last().Args)

	f.sched.Result = proc.Result{Stdout: "TaskName: \\AutoS3Backup_backup_20240517_143000\nNext Run Time: 5/18/2024 2:30:00 AM\n"}
	tasks, err := f.svc.Tasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "AutoS3Backup_backup_20240517_143000 (Next: 5/18/2024 2:30:00 AM)", tasks[0].DisplayName())

	f.sched.Result = proc.Result{}
	require.NoError(t, f.svc.DeleteTask(context.Background(), tasks[0].Name))
	assert.Equal(t, []string{"/delete", "/tn", tasks[0].Name, "/f"}, f.sched.Last().Args)
}

func TestScheduleUnknownScript(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Schedule(context.Background(), model.ScheduleSpec{Hour: 2, Days: model.AllWeekdays(), Script: "nope"})
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Empty(t, f.sched.Calls)
}

func TestRunNowNotifies(t *testing.T) {
	f := newFixture(t)

	f.runner.res = model.ExecutionResult{Script: "/s/backup_x.bat"}
	_, err := f.svc.RunNow(context.Background(), "backup_x")
	require.NoError(t, err)

	f.runner.res = model.ExecutionResult{Script: "/s/backup_x.bat", ExitCode: 1}
	f.runner.err = fmt.Errorf("%w: exit 1", model.ErrExecution)
	_, err = f.svc.RunNow(context.Background(), "backup_x")
	require.ErrorIs(t, err, model.ErrExecution)

	f.runner.err = fmt.Errorf("%w: gone", model.ErrNotFound)
	_, err = f.svc.RunNow(context.Background(), "gone")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.Len(t, f.notifier.events, 2)
	assert.True(t, f.notifier.events[0].Success)
	assert.False(t, f.notifier.events[1].Success)
}

func TestCheckCredentialsUsesLoadedSecrets(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.envFile, []byte("AWS_ACCESS_KEY_ID=AKIA\nAWS_SECRET_ACCESS_KEY=s\n"), 0o600))

	res, err := f.svc.CheckCredentials(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Valid, "secrets are only read on reload")

	_, err = f.svc.ReloadSecrets()
	require.NoError(t, err)

	res, err = f.svc.CheckCredentials(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "AKIA", f.checker.got.AccessKeyID)
	assert.Equal(t, "AKIA", f.svc.Credentials().AccessKeyID)
}

func TestDeleteScript(t *testing.T) {
	f := newFixture(t)
	script, err := f.store.Save("x")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteScript(script.Name))
	assert.True(t, errors.Is(f.svc.DeleteScript(script.Name), model.ErrNotFound))
}

func TestPruneWithoutPolicy(t *testing.T) {
	f := newFixture(t)
	report, err := f.svc.PruneScripts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Removed)
}
