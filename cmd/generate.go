package cmd

import (
	"fmt"
	"os"

	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	genFolders     []string
	genFoldersFile string
	genBucket      string
	genLogFile     string
	genArchive     bool
	genJobFile     string
	genPreview     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a backup script",
	Long: `Compose a batch script with one "aws s3 sync" line per folder and save it
to the scripts directory as backup_YYYYMMDD_HHMMSS.bat.

Each folder is synced to s3://<bucket>/<folder name>/. When no bucket is
given, BUCKET_NAME from the secrets file is used.

Examples:
  # Two folders, standard storage class
  safesync generate -f "C:\Data\Photos" -f "D:\Work" -b my-bucket

  # Glacier Instant Retrieval and a completion log
  safesync generate -f "C:\Data" -b my-bucket --archive --log-file C:\logs\backup.txt

  # Folders listed in a file, one per line
  safesync generate --folders-file folders.txt -b my-bucket

  # Job described in YAML (folders, bucket, log_file, archive)
  safesync generate --job job.yaml

  # Print the script without saving it
  safesync generate -f "C:\Data" -b my-bucket --preview`,
	Run: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringArrayVarP(&genFolders, "folder", "f", nil, "source folder (repeatable)")
	generateCmd.Flags().StringVar(&genFoldersFile, "folders-file", "", "file with one source folder per line")
	generateCmd.Flags().StringVarP(&genBucket, "bucket", "b", "", "S3 bucket name (default BUCKET_NAME from the secrets file)")
	generateCmd.Flags().StringVar(&genLogFile, "log-file", "", "append a completion line to this file")
	generateCmd.Flags().BoolVar(&genArchive, "archive", false, "use the GLACIER_IR storage class")
	generateCmd.Flags().StringVar(&genJobFile, "job", "", "YAML job file")
	generateCmd.Flags().BoolVar(&genPreview, "preview", false, "print the script without saving it")
}

func runGenerate(cmd *cobra.Command, args []string) {
	spec, err := jobFromFlags(cmd)
	if err != nil {
		log.Fatalf("Invalid job: %v", err)
	}

	svc, _, _ := buildService()

	if genPreview {
		content, err := svc.Preview(spec)
		if err != nil {
			log.Fatalf("Preview failed: %v", err)
		}
		fmt.Println(content)
		return
	}

	ctx, cancel := commandContext()
	defer cancel()

	script, err := svc.Generate(ctx, spec)
	if err != nil {
		log.Fatalf("Generate failed: %v", err)
	}

	color.Green("✅ Script generated: %s", script.Path)
	fmt.Printf("\nSchedule it with:\n  safesync schedule %s --at 02:00 --daily\n", script.Name)
}

// jobFromFlags starts from --job when given; explicit flags override it
// and --folder/--folders-file append to its folders.
func jobFromFlags(cmd *cobra.Command) (model.BackupJobSpec, error) {
	var spec model.BackupJobSpec

	if genJobFile != "" {
		data, err := os.ReadFile(genJobFile)
		if err != nil {
			return spec, fmt.Errorf("read job file: %w", err)
		}
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return spec, fmt.Errorf("parse job file: %w", err)
		}
	}

	if genFoldersFile != "" {
		folders, err := readLines(genFoldersFile)
		if err != nil {
			return spec, fmt.Errorf("read folders file: %w", err)
		}
		spec.SourceFolders = append(spec.SourceFolders, folders...)
	}
	spec.SourceFolders = append(spec.SourceFolders, genFolders...)

	if cmd.Flags().Changed("bucket") {
		spec.BucketName = genBucket
	}
	if cmd.Flags().Changed("log-file") {
		spec.LogFilePath = genLogFile
	}
	if cmd.Flags().Changed("archive") {
		spec.UseArchiveTier = genArchive
	}

	return spec, nil
}
