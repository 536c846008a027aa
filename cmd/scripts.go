package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/BrunoTulio/safesync/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Manage generated scripts",
}

var scriptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated scripts",
	Args:  cobra.NoArgs,
	Run:   runScriptsList,
}

var scriptsShowCmd = &cobra.Command{
	Use:   "show <script>",
	Short: "Print a script",
	Args:  cobra.ExactArgs(1),
	Run:   runScriptsShow,
}

var scriptsDeleteCmd = &cobra.Command{
	Use:   "delete <script>",
	Short: "Delete a script",
	Long: `Delete a generated script. Tasks pointing at it are not removed;
use "safesync tasks delete" for those.`,
	Args: cobra.ExactArgs(1),
	Run:  runScriptsDelete,
}

var scriptsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the retention policy to generated scripts",
	Long: `Remove old scripts according to scripts.retention in the config
(max_scripts or retention_days). Nothing is removed when no policy is set.`,
	Args: cobra.NoArgs,
	Run:  runScriptsPrune,
}

func init() {
	rootCmd.AddCommand(scriptsCmd)
	scriptsCmd.AddCommand(scriptsListCmd, scriptsShowCmd, scriptsDeleteCmd, scriptsPruneCmd)

	scriptsDeleteCmd.Flags().Bool("force", false, "delete without asking")
}

func runScriptsList(cmd *cobra.Command, args []string) {
	svc, cfg, _ := buildService()

	entries, err := svc.Scripts()
	if err != nil {
		log.Fatalf("Failed to list scripts: %v", err)
	}

	if len(entries) == 0 {
		fmt.Printf("No scripts in %s\n", cfg.Scripts.Dir)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSIZE\tMODIFIED")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, utils.FormatBytes(e.Size), e.Modified)
	}
	_ = w.Flush()
}

func runScriptsShow(cmd *cobra.Command, args []string) {
	svc, _, _ := buildService()

	content, err := svc.Script(args[0])
	if err != nil {
		log.Fatalf("Failed to read script: %v", err)
	}
	fmt.Println(content)
}

func runScriptsDelete(cmd *cobra.Command, args []string) {
	svc, _, _ := buildService()

	if !confirm(cmd, fmt.Sprintf("Delete script %s?", args[0])) {
		fmt.Println("❌ Cancelled")
		return
	}

	if err := svc.DeleteScript(args[0]); err != nil {
		log.Fatalf("Failed to delete script: %v", err)
	}
	color.Green("✅ Script %s deleted", args[0])
}

func runScriptsPrune(cmd *cobra.Command, args []string) {
	svc, _, _ := buildService()

	ctx, cancel := commandContext()
	defer cancel()

	report, err := svc.PruneScripts(ctx)
	if err != nil {
		log.Fatalf("Prune failed: %v", err)
	}

	if len(report.Removed) == 0 {
		fmt.Println("Nothing to prune")
		return
	}

	for _, e := range report.Removed {
		fmt.Printf("  🗑️  %s\n", e.Name)
	}
	color.Green("✅ Removed %d script(s) (%s), kept %d",
		len(report.Removed), utils.FormatBytes(report.Removed.Size()), report.Kept)
}
