package timetable

import (
	"fmt"

	appErrors "github.com/noah-isme/uni-timetable/pkg/errors"
)

// Ledger records the committed intervals of a single resource (one lecturer
// or one room), grouped by day. No two intervals committed under the same
// day may overlap; the invariant is enforced at commit time.
type Ledger struct {
	days map[string][]*Interval
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{days: make(map[string][]*Interval)}
}

// IsAvailable reports whether the interval collides with nothing already
// committed on its day. Days the ledger has never seen are vacuously free.
func (l *Ledger) IsAvailable(interval *Interval) bool {
	for _, booked := range l.days[interval.Day()] {
		if booked.Overlaps(interval) {
			return false
		}
	}
	return true
}

// Commit re-checks availability and appends the interval to its day. On a
// collision the ledger is left unchanged and a conflict error is returned.
func (l *Ledger) Commit(interval *Interval) error {
	if !l.IsAvailable(interval) {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("interval %s collides with an existing booking", interval))
	}
	l.days[interval.Day()] = append(l.days[interval.Day()], interval)
	return nil
}

// release removes a previously committed interval. It exists solely to
// unwind the first half of a dual-ledger commit when the second half fails;
// entry deletion deliberately does not release bookings.
func (l *Ledger) release(interval *Interval) {
	day := l.days[interval.Day()]
	for idx, booked := range day {
		if booked == interval {
			l.days[interval.Day()] = append(day[:idx], day[idx+1:]...)
			return
		}
	}
}

// BookedOn returns the committed intervals for a day, in commit order.
func (l *Ledger) BookedOn(day string) []*Interval {
	booked := l.days[day]
	out := make([]*Interval, len(booked))
	copy(out, booked)
	return out
}
