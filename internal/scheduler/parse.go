package scheduler

import (
	"bufio"
	"strings"

	"github.com/BrunoTulio/safesync/internal/model"
)

const (
	taskNameField = "TaskName:"
	nextRunField  = "Next Run Time:"
)

type parseState int

const (
	stateOutside parseState = iota
	stateInside
)

// ParseQuery reads the output of "schtasks /query /fo LIST /v".
// Every TaskName line opens a record and closes the previous one. The
// first Next Run Time line inside a record is kept; a record without
// one keeps an empty value.
func ParseQuery(output string) []model.ScheduledTaskRecord {
	var (
		records []model.ScheduledTaskRecord
		current model.ScheduledTaskRecord
		hasNext bool
		state   = stateOutside
	)

	flush := func() {
		if state == stateInside {
			records = append(records, current)
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimLeft(strings.TrimRight(scanner.Text(), "\r"), " \t")

		switch {
		case strings.HasPrefix(line, taskNameField):
			flush()
			raw := fieldValue(line, taskNameField)
			current = model.ScheduledTaskRecord{
				RawName: raw,
				Name:    strings.TrimLeft(raw, `\`),
			}
			hasNext = false
			state = stateInside

		case state == stateInside && !hasNext && strings.HasPrefix(line, nextRunField):
			current.NextRunTime = fieldValue(line, nextRunField)
			hasNext = true
		}
	}
	flush()

	return records
}

// FilterOwned keeps the records whose name carries the reserved prefix.
func FilterOwned(records []model.ScheduledTaskRecord) []model.ScheduledTaskRecord {
	owned := make([]model.ScheduledTaskRecord, 0, len(records))
	for _, r := range records {
		if IsOwned(r.Name) {
			owned = append(owned, r)
		}
	}
	return owned
}

func fieldValue(line, field string) string {
	return strings.TrimSpace(line[len(field):])
}
