package timetable

import (
	"fmt"

	appErrors "github.com/noah-isme/uni-timetable/pkg/errors"
)

// Entry is a scheduled session: a week number and time interval bound to a
// module, lecturer, room, student group and session type. The entry owns its
// interval; the referenced entities are owned by their registries.
//
// After successful construction the interval is committed into both the
// lecturer's and the room's ledger. Entries are created only through
// Store.CreateEntry, which performs reference and availability validation
// before this trusted commit point.
type Entry struct {
	id          string
	week        int
	module      *Module
	lecturer    *Lecturer
	room        *Room
	group       *StudentGroup
	sessionType *SessionType
	interval    *Interval
}

// newEntry commits the interval into the lecturer's and the room's ledgers
// and binds the references. Both commits succeed or neither does: when the
// room commit fails the lecturer booking is released again.
func newEntry(id string, week int, module *Module, lecturer *Lecturer, room *Room,
	group *StudentGroup, sessionType *SessionType, interval *Interval) (*Entry, error) {
	if module == nil || lecturer == nil || room == nil || group == nil || sessionType == nil || interval == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidReference, "entry requires module, lecturer, room, group, session type and interval")
	}

	if err := lecturer.schedule.Commit(interval); err != nil {
		return nil, err
	}
	if err := room.bookings.Commit(interval); err != nil {
		lecturer.schedule.release(interval)
		return nil, err
	}

	return &Entry{
		id:          id,
		week:        week,
		module:      module,
		lecturer:    lecturer,
		room:        room,
		group:       group,
		sessionType: sessionType,
		interval:    interval,
	}, nil
}

// ID returns the entry identifier.
func (e *Entry) ID() string {
	return e.id
}

// Week returns the week number.
func (e *Entry) Week() int {
	return e.week
}

// Module returns the referenced module.
func (e *Entry) Module() *Module {
	return e.module
}

// Lecturer returns the referenced lecturer.
func (e *Entry) Lecturer() *Lecturer {
	return e.lecturer
}

// Room returns the referenced room.
func (e *Entry) Room() *Room {
	return e.room
}

// Group returns the referenced student group.
func (e *Entry) Group() *StudentGroup {
	return e.group
}

// SessionType returns the referenced session type.
func (e *Entry) SessionType() *SessionType {
	return e.sessionType
}

// Interval returns the owned time interval.
func (e *Entry) Interval() *Interval {
	return e.interval
}

// ConflictsWith reports whether two entries collide: same week, overlapping
// intervals, and at least one of room, lecturer or student group shared.
// Sharing a module or session type is not a conflict signal.
func (e *Entry) ConflictsWith(other *Entry) bool {
	if e.week != other.week {
		return false
	}
	if !e.interval.Overlaps(other.interval) {
		return false
	}
	return e.room.ID == other.room.ID ||
		e.lecturer.ID == other.lecturer.ID ||
		e.group.ID == other.group.ID
}

// Describe renders a human-readable composite of the entry.
func (e *Entry) Describe() string {
	return fmt.Sprintf("Entry ID: %s, Week: %d, Module: %s (%s), Lecturer: %s, Room: %s, Group: %s, Session: %s, Time: %s",
		e.id, e.week, e.module.Title, e.module.Code, e.lecturer.Name, e.room.ID, e.group.Name, e.sessionType.Name, e.interval)
}
