package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BrunoTulio/safesync/internal/utils"
	"github.com/spf13/cobra"
)

var (
	initOutputPath string
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default safesync.yaml",
	Long: `Creates a default configuration file with examples.

By default, creates safesync.yaml in the current directory.
Use -o to specify a custom output path.

Examples:
  # Create safesync.yaml in current directory
  safesync init

  # Create in specific location
  safesync init -o C:\safesync\safesync.yaml`,
	Run: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", "", "Output file path (default: ./safesync.yaml)")
	initCmd.Flags().Bool("force", false, "overwrite an existing file without asking")
}

func runInit(cmd *cobra.Command, args []string) {
	log.Info("Starting config initialization")

	outputPath := initOutputPath
	if outputPath == "" {
		outputPath = "./safesync.yaml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		log.Fatalf("Invalid output path %s, error %v", outputPath, err)
	}

	log.Debugf("Output path resolved %s", absPath)

	if utils.FileExists(absPath) {
		log.Warnf("Config file already exists %s", absPath)

		if !confirm(cmd, fmt.Sprintf("Config file %s already exists. Overwrite?", absPath)) {
			log.Info("User cancelled")
			fmt.Println("❌ Cancelled")
			return
		}
	}

	dir := filepath.Dir(absPath)
	if err := utils.EnsureDir(dir); err != nil {
		log.Fatalf("Failed to create directory %s, error %v", dir, err)
	}

	if err := os.WriteFile(absPath, []byte(configDefault), 0o644); err != nil {
		log.Fatalf("Failed to write config file %s, error %v", absPath, err)
	}

	log.Infof("Config file created successfully %s", absPath)
	fmt.Printf("✅ Config file created: %s\n", absPath)

	printNextSteps(absPath)
}

func printNextSteps(configPath string) {
	fmt.Println("\n📝 Next steps:")
	fmt.Println("   1. Edit config if needed:")
	fmt.Printf("      notepad %s\n", configPath)
	fmt.Println("\n   2. Put AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and BUCKET_NAME in .env")
	fmt.Println("\n   3. Check the credentials:")
	fmt.Println("      safesync credentials check")
	fmt.Println("\n   4. Generate a script:")
	fmt.Println(`      safesync generate -f "C:\Data"`)
	fmt.Println("\n   5. Schedule it:")
	fmt.Println("      safesync schedule <script> --at 02:00 --daily")
}
