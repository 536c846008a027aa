package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

var weekOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// AllWeekdays returns the seven day tags in week order, Monday first.
func AllWeekdays() []Weekday {
	return slices.Clone(weekOrder)
}

func (d Weekday) Index() int {
	return slices.Index(weekOrder, d)
}

func (d Weekday) Valid() bool {
	return d.Index() >= 0
}

// ParseWeekdays parses a comma separated list such as "sat,Sun".
// Duplicates are dropped and the result is in week order.
func ParseWeekdays(value string) ([]Weekday, error) {
	seen := make(map[Weekday]bool)

	for _, part := range strings.Split(value, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part == "" {
			continue
		}

		day := Weekday(part)
		if !day.Valid() {
			return nil, fmt.Errorf("%w: unknown day %q (expected one of %s)", ErrValidation, part, joinDays(weekOrder))
		}
		seen[day] = true
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrValidation)
	}

	return SortWeekdays(keys(seen)), nil
}

// SortWeekdays returns a deduplicated copy of days in week order.
func SortWeekdays(days []Weekday) []Weekday {
	out := make([]Weekday, 0, len(days))
	for _, d := range weekOrder {
		if slices.Contains(days, d) {
			out = append(out, d)
		}
	}
	return out
}

type ScheduleSpec struct {
	Hour   int
	Minute int
	Days   []Weekday
	Script string
}

var allowedMinutes = []int{0, 15, 30, 45}

func (s ScheduleSpec) Validate() error {
	if s.Hour < 0 || s.Hour > 23 {
		return fmt.Errorf("%w: hour must be between 0 and 23, got %d", ErrValidation, s.Hour)
	}

	if !slices.Contains(allowedMinutes, s.Minute) {
		return fmt.Errorf("%w: minute must be one of 00, 15, 30, 45, got %02d", ErrValidation, s.Minute)
	}

	if len(s.Days) == 0 {
		return fmt.Errorf("%w: at least one day is required", ErrValidation)
	}

	for _, d := range s.Days {
		if !d.Valid() {
			return fmt.Errorf("%w: unknown day %q", ErrValidation, d)
		}
	}

	return nil
}

func (s ScheduleSpec) TimeOfDay() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

func (s ScheduleSpec) IsDaily() bool {
	return len(SortWeekdays(s.Days)) == len(weekOrder)
}

// ParseTimeOfDay parses "HH:MM" into hour and minute. Range checks are
// left to ScheduleSpec.Validate.
func ParseTimeOfDay(value string) (int, int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: time %q must be HH:MM", ErrValidation, value)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid hour in %q", ErrValidation, value)
	}

	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid minute in %q", ErrValidation, value)
	}

	return hour, minute, nil
}

func joinDays(days []Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}

// JoinWeekdays renders days as the scheduler expects them, e.g. "MON,SAT".
func JoinWeekdays(days []Weekday) string {
	return joinDays(days)
}

func keys(m map[Weekday]bool) []Weekday {
	out := make([]Weekday, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
