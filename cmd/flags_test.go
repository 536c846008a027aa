package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerateFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	c := &cobra.Command{}
	c.Flags().StringArrayVarP(&genFolders, "folder", "f", nil, "")
	c.Flags().StringVar(&genFoldersFile, "folders-file", "", "")
	c.Flags().StringVarP(&genBucket, "bucket", "b", "", "")
	c.Flags().StringVar(&genLogFile, "log-file", "", "")
	c.Flags().BoolVar(&genArchive, "archive", false, "")
	c.Flags().StringVar(&genJobFile, "job", "", "")
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestJobFromFlags(t *testing.T) {
	dir := t.TempDir()
	job := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(job, []byte("folders:\n  - C:\\Data\nbucket: from-job\narchive: true\n"), 0o600))
	list := filepath.Join(dir, "folders.txt")
	require.NoError(t, os.WriteFile(list, []byte("# photos\nD:\\Photos\n\n"), 0o600))

	c := newGenerateFlags(t, "--job", job, "--folders-file", list, "-f", `E:\Work`, "-b", "override")

	spec, err := jobFromFlags(c)
	require.NoError(t, err)

	assert.Equal(t, model.BackupJobSpec{
		SourceFolders:  []string{`C:\Data`, `D:\Photos`, `E:\Work`},
		BucketName:     "override",
		UseArchiveTier: true,
	}, spec)
}

func TestJobFromFlagsMissingJob(t *testing.T) {
	c := newGenerateFlags(t, "--job", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := jobFromFlags(c)
	assert.Error(t, err)
}

func TestScheduleFromFlags(t *testing.T) {
	t.Cleanup(func() { schedAt, schedDays, schedDaily = "02:00", "", false })

	schedAt, schedDays, schedDaily = "02:30", "sun,sat", false
	spec, err := scheduleFromFlags("backup_x")
	require.NoError(t, err)
	assert.Equal(t, 2, spec.Hour)
	assert.Equal(t, 30, spec.Minute)
	assert.Equal(t, []model.Weekday{model.Saturday, model.Sunday}, spec.Days)

	schedAt, schedDaily = "23:45", true
	spec, err = scheduleFromFlags("backup_x")
	require.NoError(t, err)
	assert.True(t, spec.IsDaily())

	schedAt = "02:10"
	_, err = scheduleFromFlags("backup_x")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("  a  \n#b\n\nc\r\n"), 0o600))

	lines, err := readLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, lines)
}
