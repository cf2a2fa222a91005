package timetable

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/uni-timetable/pkg/errors"
)

const (
	minWeek = 1
	maxWeek = 53
)

// Filter selects entries by conjunction of the supplied fields. Zero values
// match everything: Week 0 means any week, empty strings mean any value.
type Filter struct {
	Week       int
	ModuleCode string
	RoomID     string
	LecturerID string
}

// Store owns the timetable entry collection for one academic term. Creation
// runs the full admission pipeline (reference validation, week bounds,
// lecturer and room availability) before committing; a post-admission scan
// keeps the cached conflict set current for observability.
//
// The mutex guards the entry slice and, transitively, the per-lecturer and
// per-room ledgers, which are only mutated under the write path here.
type Store struct {
	mu sync.RWMutex

	academicYear string
	semester     string

	entries   []*Entry
	nextSeq   int
	scanner   *Scanner
	conflicts []ConflictPair
	logger    *zap.Logger
}

// NewStore creates an empty store for the given academic term.
func NewStore(academicYear, semester string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		academicYear: academicYear,
		semester:     semester,
		scanner:      NewScanner(),
		logger:       logger,
	}
}

// AcademicYear returns the term's academic year label.
func (s *Store) AcademicYear() string {
	return s.academicYear
}

// Semester returns the term's semester label.
func (s *Store) Semester() string {
	return s.semester
}

// CreateEntry admits a new session into the timetable. All six references
// must be present, the week must lie in [1,53], and both the lecturer and
// the room must be free for the interval. Group and session-type
// availability are deliberately not checked here; collisions on those
// dimensions surface only through the post-admission scan.
func (s *Store) CreateEntry(week int, module *Module, lecturer *Lecturer, room *Room,
	group *StudentGroup, sessionType *SessionType, interval *Interval) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkReferences(module, lecturer, room, group, sessionType, interval); err != nil {
		return nil, err
	}
	if week < minWeek || week > maxWeek {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("week %d must be between %d and %d", week, minWeek, maxWeek))
	}
	if !lecturer.IsAvailable(interval) {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("lecturer %s is already booked for %s", lecturer.ID, interval))
	}
	if !room.IsAvailable(interval) {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("room %s is already booked for %s", room.ID, interval))
	}

	// The sequence never decreases, so deleted ids are not reissued.
	id := fmt.Sprintf("TT%04d", s.nextSeq+1)
	entry, err := newEntry(id, week, module, lecturer, room, group, sessionType, interval)
	if err != nil {
		return nil, err
	}
	s.nextSeq++
	s.entries = append(s.entries, entry)

	// Admission already excluded room and lecturer collisions for this
	// entry, but the scan can surface a fresh student-group conflict.
	s.conflicts = s.scanner.Scan(s.entries)
	if len(s.conflicts) > 0 {
		s.logger.Warn("conflict audit after admission",
			zap.String("entry_id", id),
			zap.Int("conflict_pairs", len(s.conflicts)))
	}

	return entry, nil
}

// DeleteEntry removes the entry with the given id and reports whether it was
// found. Ledger bookings made at creation are not released; the lecturer and
// room remain blocked for the deleted interval. Inherited behaviour, kept
// deliberately.
func (s *Store) DeleteEntry(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, entry := range s.entries {
		if entry.ID() == id {
			s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
			return true
		}
	}
	return false
}

// Search returns the entries matching every supplied filter field, in
// insertion order.
func (s *Store) Search(filter Filter) []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Entry
	for _, entry := range s.entries {
		if filter.Week != 0 && entry.Week() != filter.Week {
			continue
		}
		if filter.ModuleCode != "" && entry.Module().Code != filter.ModuleCode {
			continue
		}
		if filter.RoomID != "" && entry.Room().ID != filter.RoomID {
			continue
		}
		if filter.LecturerID != "" && entry.Lecturer().ID != filter.LecturerID {
			continue
		}
		results = append(results, entry)
	}
	return results
}

// EntriesForGroup returns the group's entries, optionally narrowed to a
// week (0 means any), in insertion order.
func (s *Store) EntriesForGroup(groupID string, week int) []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Entry
	for _, entry := range s.entries {
		if entry.Group().ID != groupID {
			continue
		}
		if week != 0 && entry.Week() != week {
			continue
		}
		results = append(results, entry)
	}
	return results
}

// EntriesForLecturer returns the lecturer's entries, optionally narrowed to
// a week (0 means any), in insertion order.
func (s *Store) EntriesForLecturer(lecturerID string, week int) []*Entry {
	return s.Search(Filter{LecturerID: lecturerID, Week: week})
}

// EntriesForRoom returns the room's entries, optionally narrowed to a week
// (0 means any), in insertion order.
func (s *Store) EntriesForRoom(roomID string, week int) []*Entry {
	return s.Search(Filter{RoomID: roomID, Week: week})
}

// Entries returns a snapshot of the full entry collection in insertion
// order.
func (s *Store) Entries() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// CheckForConflicts re-runs the pairwise scan over the current entry set and
// refreshes the cached conflict list.
func (s *Store) CheckForConflicts() []ConflictPair {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conflicts = s.scanner.Scan(s.entries)
	out := make([]ConflictPair, len(s.conflicts))
	copy(out, s.conflicts)
	return out
}

// HasConflicts reports whether the last scan found any conflicting pair.
func (s *Store) HasConflicts() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conflicts) > 0
}

// Conflicts returns the conflict pairs from the last scan.
func (s *Store) Conflicts() []ConflictPair {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ConflictPair, len(s.conflicts))
	copy(out, s.conflicts)
	return out
}

// Scanner exposes the store's conflict scanner for resolution advisories.
func (s *Store) Scanner() *Scanner {
	return s.scanner
}

func checkReferences(module *Module, lecturer *Lecturer, room *Room,
	group *StudentGroup, sessionType *SessionType, interval *Interval) error {
	switch {
	case module == nil:
		return appErrors.Clone(appErrors.ErrInvalidReference, "module reference is missing")
	case lecturer == nil:
		return appErrors.Clone(appErrors.ErrInvalidReference, "lecturer reference is missing")
	case room == nil:
		return appErrors.Clone(appErrors.ErrInvalidReference, "room reference is missing")
	case group == nil:
		return appErrors.Clone(appErrors.ErrInvalidReference, "student group reference is missing")
	case sessionType == nil:
		return appErrors.Clone(appErrors.ErrInvalidReference, "session type reference is missing")
	case interval == nil:
		return appErrors.Clone(appErrors.ErrInvalidReference, "time interval is missing")
	}
	return nil
}
