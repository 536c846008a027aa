package model

import (
	"fmt"
	"strings"
	"time"
)

type (
	// BackupJobSpec describes what a generated script syncs and where.
	BackupJobSpec struct {
		SourceFolders  []string `yaml:"folders"`
		BucketName     string   `yaml:"bucket"`
		LogFilePath    string   `yaml:"log_file"`
		UseArchiveTier bool     `yaml:"archive"`
	}

	GeneratedScript struct {
		Name      string
		Path      string
		Content   string
		CreatedAt time.Time
	}

	ScriptEntry struct {
		Name     string
		Path     string
		Size     int64
		ModTime  time.Time
		Modified string
	}
)

func (s BackupJobSpec) Validate() error {
	if len(s.SourceFolders) == 0 {
		return fmt.Errorf("%w: at least one source folder is required", ErrValidation)
	}

	for i, folder := range s.SourceFolders {
		if strings.TrimSpace(folder) == "" {
			return fmt.Errorf("%w: source folder #%d is empty", ErrValidation, i+1)
		}
	}

	if strings.TrimSpace(s.BucketName) == "" {
		return fmt.Errorf("%w: bucket name is required", ErrValidation)
	}

	return nil
}

func (e ScriptEntry) DisplayName() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Modified)
}
