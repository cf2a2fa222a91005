package timetable

import (
	"fmt"

	appErrors "github.com/noah-isme/uni-timetable/pkg/errors"
)

// Interval is a day-scoped, half-open time range. Times are parsed once at
// construction and kept as minutes since midnight; the original "HH:MM"
// strings are retained for display and export.
type Interval struct {
	day      string
	start    string
	end      string
	startMin int
	endMin   int
}

// NewInterval builds an interval from a day label and "HH:MM" start/end
// times. The start must lie strictly before the end.
func NewInterval(day, start, end string) (*Interval, error) {
	startMin, err := parseClock(start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, fmt.Sprintf("invalid start time %q", start))
	}
	endMin, err := parseClock(end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, fmt.Sprintf("invalid end time %q", end))
	}
	if startMin >= endMin {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("start time %s must be before end time %s", start, end))
	}
	return &Interval{day: day, start: start, end: end, startMin: startMin, endMin: endMin}, nil
}

// parseClock converts a strict "HH:MM" string into minutes since midnight.
// Anything other than two digits, a colon and two digits within 00:00-23:59
// is rejected rather than silently mis-read.
func parseClock(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("time %q is not in HH:MM form", value)
	}
	for _, idx := range []int{0, 1, 3, 4} {
		if value[idx] < '0' || value[idx] > '9' {
			return 0, fmt.Errorf("time %q contains a non-digit", value)
		}
	}
	hour := int(value[0]-'0')*10 + int(value[1]-'0')
	minute := int(value[3]-'0')*10 + int(value[4]-'0')
	if hour > 23 {
		return 0, fmt.Errorf("hour %d out of range", hour)
	}
	if minute > 59 {
		return 0, fmt.Errorf("minute %d out of range", minute)
	}
	return hour*60 + minute, nil
}

// Day returns the day label.
func (i *Interval) Day() string {
	return i.day
}

// Start returns the original start time string.
func (i *Interval) Start() string {
	return i.start
}

// End returns the original end time string.
func (i *Interval) End() string {
	return i.end
}

// Overlaps reports whether two intervals collide. Intervals on different
// days never overlap; on the same day the comparison is half-open, so a
// session ending at 10:00 does not collide with one starting at 10:00.
func (i *Interval) Overlaps(other *Interval) bool {
	if i.day != other.day {
		return false
	}
	return i.startMin < other.endMin && i.endMin > other.startMin
}

// String renders the interval for display, e.g. "Monday 09:00 - 10:00".
func (i *Interval) String() string {
	return fmt.Sprintf("%s %s - %s", i.day, i.start, i.end)
}
