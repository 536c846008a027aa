package cmd

import (
	"fmt"
	"time"

	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/BrunoTulio/safesync/internal/scheduler"
	"github.com/BrunoTulio/safesync/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	schedAt    string
	schedDays  string
	schedDaily bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <script>",
	Short: "Register a script with the Task Scheduler",
	Long: `Create (or replace) the task AutoS3Backup_<script> that runs a generated
script daily or on selected weekdays. Minutes must be 00, 15, 30 or 45.

Examples:
  # Every day at 02:00
  safesync schedule backup_20240517_143000 --at 02:00 --daily

  # Saturdays and Sundays at 02:30
  safesync schedule backup_20240517_143000 --at 02:30 --days SAT,SUN`,
	Args: cobra.ExactArgs(1),
	Run:  runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&schedAt, "at", "02:00", "start time HH:MM (minutes 00, 15, 30 or 45)")
	scheduleCmd.Flags().StringVar(&schedDays, "days", "", "comma-separated days: MON,TUE,WED,THU,FRI,SAT,SUN")
	scheduleCmd.Flags().BoolVar(&schedDaily, "daily", false, "run every day")
	scheduleCmd.MarkFlagsMutuallyExclusive("days", "daily")
	scheduleCmd.MarkFlagsOneRequired("days", "daily")
}

func runSchedule(cmd *cobra.Command, args []string) {
	spec, err := scheduleFromFlags(args[0])
	if err != nil {
		log.Fatalf("Invalid schedule: %v", err)
	}

	svc, _, _ := buildService()

	ctx, cancel := commandContext()
	defer cancel()

	handle, err := svc.Schedule(ctx, spec)
	if err != nil {
		log.Fatalf("Schedule failed: %v", err)
	}

	color.Green("✅ Task %s registered", handle.Name)

	rec, err := scheduler.NewRecurrence(spec)
	if err != nil {
		return
	}
	fmt.Printf("   Runs %s\n", rec)
	if next, err := rec.Next(time.Now()); err == nil {
		fmt.Printf("   Next run: %s\n", utils.FormatTime(next))
	}
}

func scheduleFromFlags(script string) (model.ScheduleSpec, error) {
	hour, minute, err := model.ParseTimeOfDay(schedAt)
	if err != nil {
		return model.ScheduleSpec{}, err
	}

	days := model.AllWeekdays()
	if !schedDaily {
		if days, err = model.ParseWeekdays(schedDays); err != nil {
			return model.ScheduleSpec{}, err
		}
	}

	spec := model.ScheduleSpec{
		Hour:   hour,
		Minute: minute,
		Days:   days,
		Script: script,
	}
	return spec, spec.Validate()
}
