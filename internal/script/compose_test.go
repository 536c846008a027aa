package script

import (
	"strings"
	"testing"

	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name string
		spec model.BackupJobSpec
		want string
	}{
		{
			name: "two folders with log and archive tier",
			spec: model.BackupJobSpec{
				SourceFolders:  []string{`C:\Data\Photos`, `D:\Work`},
				BucketName:     "my-bkt",
				LogFilePath:    `C:\logs\b.txt`,
				UseArchiveTier: true,
			},
			want: "@echo off\n" +
				`aws s3 sync "C:\Data\Photos" "s3://my-bkt/Photos/" --exact-timestamps --storage-class GLACIER_IR` + "\n" +
				`aws s3 sync "D:\Work" "s3://my-bkt/Work/" --exact-timestamps --storage-class GLACIER_IR` + "\n" +
				`echo Backup completed at %DATE% %TIME% >> "C:\logs\b.txt"`,
		},
		{
			name: "single folder without log",
			spec: model.BackupJobSpec{
				SourceFolders: []string{"/home/me/docs"},
				BucketName:    "b",
			},
			want: "@echo off\n" + `aws s3 sync "/home/me/docs" "s3://b/docs/" --exact-timestamps`,
		},
		{
			name: "trailing separator keeps the folder name",
			spec: model.BackupJobSpec{
				SourceFolders: []string{`E:\Music\`},
				BucketName:    "b",
			},
			want: "@echo off\n" + `aws s3 sync "E:\Music\" "s3://b/Music/" --exact-timestamps`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compose(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.False(t, strings.HasSuffix(got, "\n"))
			assert.Len(t, strings.Split(got, "\n"), LineCount(tt.spec))
		})
	}
}

func TestComposeValidation(t *testing.T) {
	tests := []struct {
		name string
		spec model.BackupJobSpec
	}{
		{name: "no folders", spec: model.BackupJobSpec{BucketName: "b"}},
		{name: "blank bucket", spec: model.BackupJobSpec{SourceFolders: []string{"/a"}, BucketName: "  "}},
		{name: "blank folder", spec: model.BackupJobSpec{SourceFolders: []string{"/a", " "}, BucketName: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compose(tt.spec)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}

func TestComposeKeepsFolderOrder(t *testing.T) {
	spec := model.BackupJobSpec{
		SourceFolders: []string{"/z", "/a", "/m"},
		BucketName:    "b",
	}

	got, err := Compose(spec)
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], `"s3://b/z/"`)
	assert.Contains(t, lines[2], `"s3://b/a/"`)
	assert.Contains(t, lines[3], `"s3://b/m/"`)
}

func TestComposeIsDeterministic(t *testing.T) {
	spec := model.BackupJobSpec{
		SourceFolders: []string{`C:\x`},
		BucketName:    "b",
		LogFilePath:   `C:\l.txt`,
	}

	first, err := Compose(spec)
	require.NoError(t, err)
	second, err := Compose(spec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "%DATE% %TIME%")
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		`C:\Data\Photos`:   "Photos",
		`C:\Data\Photos\\`: "Photos",
		"/srv/backup/":     "backup",
		"relative":         "relative",
		"D:":               "D:",
		`/`:                "",
	}

	for in, want := range tests {
		assert.Equal(t, want, BaseName(in), in)
	}
}
