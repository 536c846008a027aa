package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage scheduled backup tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the AutoS3Backup_ tasks",
	Args:  cobra.NoArgs,
	Run:   runTasksList,
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <task>",
	Short: "Delete a scheduled task",
	Long: `Delete a task created by safesync. Only names starting with
AutoS3Backup_ are accepted.`,
	Args: cobra.ExactArgs(1),
	Run:  runTasksDelete,
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksListCmd, tasksDeleteCmd)

	tasksDeleteCmd.Flags().Bool("force", false, "delete without asking")
}

func runTasksList(cmd *cobra.Command, args []string) {
	svc, _, _ := buildService()

	ctx, cancel := commandContext()
	defer cancel()

	tasks, err := svc.Tasks(ctx)
	if err != nil {
		log.Fatalf("Failed to list tasks: %v", err)
	}

	if len(tasks) == 0 {
		fmt.Println("No scheduled backup tasks")
		return
	}

	for _, t := range tasks {
		fmt.Printf("  📅 %s\n", t.DisplayName())
	}
}

func runTasksDelete(cmd *cobra.Command, args []string) {
	svc, _, _ := buildService()

	if !confirm(cmd, fmt.Sprintf("Delete task %s?", args[0])) {
		fmt.Println("❌ Cancelled")
		return
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := svc.DeleteTask(ctx, args[0]); err != nil {
		log.Fatalf("Failed to delete task: %v", err)
	}
	color.Green("✅ Task %s deleted", args[0])
}
