package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

var (
	// ErrTimeRangeIncomplete is returned when only one of start/end time is set.
	ErrTimeRangeIncomplete = errors.New("start time and end time must be set together")
	// ErrInvalidTime is returned when a time field is not a valid HH:MM value.
	ErrInvalidTime = errors.New("invalid time")
)

// TimeInfo carries the fields derived from a schedule's HH:MM range.
type TimeInfo struct {
	CrossesMidnight bool
	DurationMinutes int
}

// ComputeTimeInfo derives the crosses-midnight flag and duration in minutes
// from a start/end pair. Both nil means an untimed schedule and yields nil;
// exactly one set is a hard input error, never silently corrected. An end
// numerically earlier than the start denotes an overnight shift.
func ComputeTimeInfo(start, end *string) (*TimeInfo, error) {
	if start == nil && end == nil {
		return nil, nil
	}
	if start == nil || end == nil {
		return nil, ErrTimeRangeIncomplete
	}

	startMinutes, err := parseClock(*start)
	if err != nil {
		return nil, err
	}
	endMinutes, err := parseClock(*end)
	if err != nil {
		return nil, err
	}

	info := &TimeInfo{CrossesMidnight: startMinutes > endMinutes}
	if info.CrossesMidnight {
		info.DurationMinutes = minutesPerDay - startMinutes + endMinutes
	} else {
		info.DurationMinutes = endMinutes - startMinutes
	}
	return info, nil
}

// parseClock converts an HH:MM string to minutes since midnight.
func parseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w %q: expected HH:MM", ErrInvalidTime, value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w %q: expected HH:MM", ErrInvalidTime, value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w %q: expected HH:MM", ErrInvalidTime, value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w %q: out of range", ErrInvalidTime, value)
	}
	return hours*60 + minutes, nil
}
