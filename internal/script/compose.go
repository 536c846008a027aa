// Package script turns a backup job into the text of a batch script.
package script

import (
	"fmt"
	"strings"

	"github.com/BrunoTulio/safesync/internal/model"
)

const (
	header       = "@echo off"
	archiveClass = " --storage-class GLACIER_IR"
)

// Compose renders the script for spec. It has no side effects; the same
// spec always yields the same text. Lines are joined with "\n" and the
// result has no trailing newline.
func Compose(spec model.BackupJobSpec) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}

	bucket := strings.TrimSpace(spec.BucketName)
	lines := make([]string, 0, LineCount(spec))
	lines = append(lines, header)

	for _, folder := range spec.SourceFolders {
		line := fmt.Sprintf(`aws s3 sync "%s" "s3://%s/%s/" --exact-timestamps`, folder, bucket, BaseName(folder))
		if spec.UseArchiveTier {
			line += archiveClass
		}
		lines = append(lines, line)
	}

	if log := strings.TrimSpace(spec.LogFilePath); log != "" {
		// %DATE% and %TIME% are expanded by cmd.exe when the script runs.
		lines = append(lines, fmt.Sprintf(`echo Backup completed at %%DATE%% %%TIME%% >> "%s"`, log))
	}

	return strings.Join(lines, "\n"), nil
}

// LineCount is the number of lines Compose produces for spec.
func LineCount(spec model.BackupJobSpec) int {
	n := 1 + len(spec.SourceFolders)
	if strings.TrimSpace(spec.LogFilePath) != "" {
		n++
	}
	return n
}

// BaseName returns the last segment of a Windows or POSIX path.
// Trailing separators are ignored, so `C:\Data\Photos\` gives "Photos".
func BaseName(folder string) string {
	trimmed := strings.TrimRight(folder, `/\`)
	if trimmed == "" {
		return ""
	}

	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		return trimmed[i+1:]
	}

	// bare drive such as "D:"
	return trimmed
}
