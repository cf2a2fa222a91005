package timetable

import (
	"fmt"
	"strings"
)

// ConflictPair is an unordered pair of conflicting entries. First always
// carries the lower input index, so repeated scans over an unchanged entry
// list produce identical pair sets in identical order.
type ConflictPair struct {
	First  *Entry
	Second *Entry
}

// Scanner audits a full entry set for pairwise conflicts after the fact.
// Admission-time availability checks stop room and lecturer double-bookings
// from ever being created; the scanner is the only detector for student
// group collisions.
type Scanner struct{}

// NewScanner constructs a scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan examines every unordered pair of entries exactly once, in input
// order. The quadratic sweep is intentional: timetables at this scale are
// small and the simple pass keeps the pair order stable.
func (s *Scanner) Scan(entries []*Entry) []ConflictPair {
	var pairs []ConflictPair
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].ConflictsWith(entries[j]) {
				pairs = append(pairs, ConflictPair{First: entries[i], Second: entries[j]})
			}
		}
	}
	return pairs
}

// SuggestResolution inspects which of room, lecturer and student group
// matched and emits one advisory per matching dimension. A pair can trigger
// several advisories at once.
func (s *Scanner) SuggestResolution(pair ConflictPair) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Conflict found between:\n")
	fmt.Fprintf(&b, "1. %s\n", pair.First.Describe())
	fmt.Fprintf(&b, "2. %s\n\n", pair.Second.Describe())

	if pair.First.room.ID == pair.Second.room.ID {
		b.WriteString("Room Double-booking: Consider using a different room for one of the sessions.\n")
		b.WriteString("  - Suggestion: Move session 2 to a different room.\n")
	}
	if pair.First.lecturer.ID == pair.Second.lecturer.ID {
		b.WriteString("Lecturer Time Conflict: Consider rescheduling one session to a different time slot.\n")
		b.WriteString("  - Suggestion: Reschedule session 2 to a different day or time.\n")
	}
	if pair.First.group.ID == pair.Second.group.ID {
		b.WriteString("Student Group Time Conflict: Students cannot attend two sessions simultaneously.\n")
		b.WriteString("  - Suggestion: Reschedule one of the sessions to avoid time overlap.\n")
	}

	return b.String()
}
