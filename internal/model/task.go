package model

import (
	"fmt"
	"time"
)

type (
	TaskHandle struct {
		Name string
	}

	// ScheduledTaskRecord is one task reported by the OS scheduler.
	// RawName keeps the identifier as reported, Name has the root
	// separator stripped.
	ScheduledTaskRecord struct {
		RawName     string `json:"raw_name"`
		Name        string `json:"name"`
		NextRunTime string `json:"next_run_time"`
	}

	ExecutionResult struct {
		Script   string
		ExitCode int
		Output   string
		Duration time.Duration
	}
)

func (r ScheduledTaskRecord) DisplayName() string {
	return fmt.Sprintf("%s (Next: %s)", r.Name, r.NextRunTime)
}

func (r ExecutionResult) Success() bool {
	return r.ExitCode == 0
}
