// Package schedule computes interview admission windows. Everything here is
// pure: the current time is always an explicit argument, never read from the
// wall clock.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AdmissionLead is how long before the scheduled start a candidate may join.
const AdmissionLead = 5 * time.Minute

type State int

const (
	StateTooEarly State = iota
	StateAdmitted
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateTooEarly:
		return "too_early"
	case StateAdmitted:
		return "admitted"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Window holds the three named instants of an interview schedule.
// AdmissionOpen = Start - AdmissionLead.
type Window struct {
	AdmissionOpen time.Time
	Start         time.Time
	End           time.Time
}

// ParseClock parses a local "HH:MM" string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// Resolve combines a calendar date with HH:MM start/end times into full
// instants in the date's location. Comparing instants instead of date and
// time-of-day strings keeps midnight boundaries out of the picture.
func Resolve(date time.Time, startTime, endTime string) (Window, error) {
	startH, startM, err := ParseClock(startTime)
	if err != nil {
		return Window{}, err
	}
	endH, endM, err := ParseClock(endTime)
	if err != nil {
		return Window{}, err
	}

	year, month, day := date.Date()
	start := time.Date(year, month, day, startH, startM, 0, 0, date.Location())
	end := time.Date(year, month, day, endH, endM, 0, 0, date.Location())

	return Window{
		AdmissionOpen: start.Add(-AdmissionLead),
		Start:         start,
		End:           end,
	}, nil
}

// Evaluate classifies now against the interview window. The three states
// partition all of time: TooEarly before AdmissionOpen, Admitted on
// [AdmissionOpen, End] inclusive, Expired after End.
func Evaluate(date time.Time, startTime, endTime string, now time.Time) (State, Window, error) {
	w, err := Resolve(date, startTime, endTime)
	if err != nil {
		return StateTooEarly, Window{}, err
	}
	switch {
	case now.Before(w.AdmissionOpen):
		return StateTooEarly, w, nil
	case now.After(w.End):
		return StateExpired, w, nil
	default:
		return StateAdmitted, w, nil
	}
}

// Duration returns the scheduled length in minutes.
func Duration(startTime, endTime string) (int, error) {
	startH, startM, err := ParseClock(startTime)
	if err != nil {
		return 0, err
	}
	endH, endM, err := ParseClock(endTime)
	if err != nil {
		return 0, err
	}
	return endH*60 + endM - (startH*60 + startM), nil
}
