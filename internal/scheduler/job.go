package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/robfig/cron/v3"
)

type Kind string

const (
	KindDaily  Kind = "daily"
	KindWeekly Kind = "weekly"
)

// Recurrence is a ScheduleSpec reduced to what the OS scheduler needs.
type Recurrence struct {
	Kind   Kind
	Days   []model.Weekday
	Hour   int
	Minute int
}

// cron day-of-week numbers, Sunday is 0
var cronDays = map[model.Weekday]int{
	model.Sunday:    0,
	model.Monday:    1,
	model.Tuesday:   2,
	model.Wednesday: 3,
	model.Thursday:  4,
	model.Friday:    5,
	model.Saturday:  6,
}

func NewRecurrence(spec model.ScheduleSpec) (Recurrence, error) {
	if err := spec.Validate(); err != nil {
		return Recurrence{}, err
	}

	r := Recurrence{
		Kind:   KindWeekly,
		Days:   model.SortWeekdays(spec.Days),
		Hour:   spec.Hour,
		Minute: spec.Minute,
	}
	if spec.IsDaily() {
		r.Kind = KindDaily
	}

	return r, nil
}

func (r Recurrence) Time() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// Args renders the recurrence as schtasks /create flags.
func (r Recurrence) Args() []string {
	if r.Kind == KindDaily {
		return []string{"/sc", "daily", "/st", r.Time()}
	}
	return []string{"/sc", "weekly", "/d", model.JoinWeekdays(r.Days), "/st", r.Time()}
}

func (r Recurrence) CronSpec() string {
	if r.Kind == KindDaily {
		return fmt.Sprintf("%d %d * * *", r.Minute, r.Hour)
	}

	days := make([]string, len(r.Days))
	for i, d := range r.Days {
		days[i] = fmt.Sprintf("%d", cronDays[d])
	}
	return fmt.Sprintf("%d %d * * %s", r.Minute, r.Hour, strings.Join(days, ","))
}

// Next estimates the next firing time after from, in from's location.
// It is only used for display; the OS scheduler owns the real timing.
func (r Recurrence) Next(from time.Time) (time.Time, error) {
	sched, err := cron.ParseStandard(r.CronSpec())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cron %q: %w", r.CronSpec(), err)
	}
	return sched.Next(from), nil
}

func (r Recurrence) String() string {
	if r.Kind == KindDaily {
		return "daily at " + r.Time()
	}
	return fmt.Sprintf("weekly on %s at %s", model.JoinWeekdays(r.Days), r.Time())
}
