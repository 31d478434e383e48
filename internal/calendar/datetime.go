package calendar

import (
	"fmt"
	"time"
)

// Split-field layouts used by the event form.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Combine joins a form date and clock time into one instant in loc.
// All-day values ignore clock and land on midnight of date.
func Combine(date, clock string, allDay bool, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if allDay {
		t, err := time.ParseInLocation(DateLayout, date, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing date %q: %w", date, err)
		}
		return t, nil
	}

	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q and time %q: %w", date, clock, err)
	}
	return t, nil
}

// Decompose splits an instant into form date and clock time.
func Decompose(t time.Time) (date, clock string) {
	return t.Format(DateLayout), t.Format(ClockLayout)
}
