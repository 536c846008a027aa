package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/BrunoTulio/safesync/internal/utils"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a generated script now",
	Long: `Execute a generated script immediately and wait for it to finish.
Only one run can be active at a time. Credentials from the secrets file
are passed to the script's environment.

Examples:
  safesync run backup_20240517_143000`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) {
	svc, _, _ := buildService()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("Running %s", args[0])),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	res, err := svc.RunNow(context.Background(), args[0])
	close(done)
	_ = bar.Finish()

	if res.Output != "" {
		fmt.Println(res.Output)
	}

	switch {
	case err == nil:
		color.Green("✅ %s completed in %s", args[0], utils.FormatDuration(res.Duration))
	case errors.Is(err, model.ErrBusy):
		color.Yellow("⏳ Another backup is already running")
		os.Exit(1)
	case errors.Is(err, model.ErrExecution) && res.ExitCode > 0:
		color.Red("❌ %s failed with exit code %d", args[0], res.ExitCode)
		os.Exit(res.ExitCode)
	default:
		log.Fatalf("Run failed: %v", err)
	}
}
