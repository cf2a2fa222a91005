package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/uni-timetable/pkg/errors"
)

type fixtures struct {
	module      *Module
	lecturer    *Lecturer
	room        *Room
	group       *StudentGroup
	sessionType *SessionType
}

func newFixtures() fixtures {
	return fixtures{
		module:      &Module{Code: "CS2001", Title: "Algorithms"},
		lecturer:    NewLecturer("lec1", "Dr. Okafor", "Computer Science"),
		room:        NewRoom("JC006", "John Clare Building", 120),
		group:       NewStudentGroup("CS-Y2-A", "CS Year 2 Group A"),
		sessionType: &SessionType{ID: "ST1", Name: "Lecture"},
	}
}

func TestNewEntryCommitsBothLedgers(t *testing.T) {
	f := newFixtures()
	interval := mustInterval(t, "Monday", "09:00", "10:00")

	entry, err := newEntry("TT0001", 5, f.module, f.lecturer, f.room, f.group, f.sessionType, interval)
	require.NoError(t, err)

	assert.Equal(t, "TT0001", entry.ID())
	assert.False(t, f.lecturer.IsAvailable(mustInterval(t, "Monday", "09:30", "10:30")))
	assert.False(t, f.room.IsAvailable(mustInterval(t, "Monday", "09:30", "10:30")))
}

func TestNewEntryRollsBackLecturerWhenRoomCommitFails(t *testing.T) {
	f := newFixtures()
	// Pre-book the room so the second half of the dual commit fails.
	require.NoError(t, f.room.Bookings().Commit(mustInterval(t, "Monday", "09:00", "11:00")))

	interval := mustInterval(t, "Monday", "09:00", "10:00")
	_, err := newEntry("TT0001", 5, f.module, f.lecturer, f.room, f.group, f.sessionType, interval)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	// No partial booking: the lecturer must still be free.
	assert.True(t, f.lecturer.IsAvailable(mustInterval(t, "Monday", "09:00", "10:00")))
	assert.Empty(t, f.lecturer.Schedule().BookedOn("Monday"))
}

func TestNewEntryRejectsMissingReferences(t *testing.T) {
	f := newFixtures()
	interval := mustInterval(t, "Monday", "09:00", "10:00")

	_, err := newEntry("TT0001", 5, nil, f.lecturer, f.room, f.group, f.sessionType, interval)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidReference.Code, appErrors.FromError(err).Code)
}

func TestConflictsWithSameRoomOverlap(t *testing.T) {
	f := newFixtures()
	otherLecturer := NewLecturer("lec2", "Prof. Hartley", "Computer Science")
	otherGroup := NewStudentGroup("MATH-Y2", "Maths Year 2")

	first, err := newEntry("TT0001", 5, f.module, f.lecturer, f.room, f.group, f.sessionType,
		mustInterval(t, "Monday", "09:00", "10:00"))
	require.NoError(t, err)

	// Same room, different lecturer and group, overlapping time. Bypass the
	// room ledger by building the entry against a twin room record with the
	// same identity, as a stale registry edit would.
	twinRoom := NewRoom("JC006", "John Clare Building", 120)
	second, err := newEntry("TT0002", 5, f.module, otherLecturer, twinRoom, otherGroup, f.sessionType,
		mustInterval(t, "Monday", "09:30", "10:30"))
	require.NoError(t, err)

	assert.True(t, first.ConflictsWith(second))
	assert.True(t, second.ConflictsWith(first))
}

func TestConflictsWithDifferentWeeksNeverConflict(t *testing.T) {
	f := newFixtures()

	first, err := newEntry("TT0001", 5, f.module, f.lecturer, f.room, f.group, f.sessionType,
		mustInterval(t, "Monday", "09:00", "10:00"))
	require.NoError(t, err)

	// Identical everything except the week. The ledgers treat the slot as
	// taken regardless of week, so use twin records for the second entry.
	second, err := newEntry("TT0002", 6,
		f.module,
		NewLecturer("lec1", "Dr. Okafor", "Computer Science"),
		NewRoom("JC006", "John Clare Building", 120),
		f.group, f.sessionType,
		mustInterval(t, "Monday", "09:00", "10:00"))
	require.NoError(t, err)

	assert.False(t, first.ConflictsWith(second))
}

func TestConflictsWithSharedModuleOnlyIsNoConflict(t *testing.T) {
	f := newFixtures()
	otherLecturer := NewLecturer("lec2", "Prof. Hartley", "Computer Science")
	otherRoom := NewRoom("KV208", "Kingsgate Vault", 40)
	otherGroup := NewStudentGroup("MATH-Y2", "Maths Year 2")

	first, err := newEntry("TT0001", 5, f.module, f.lecturer, f.room, f.group, f.sessionType,
		mustInterval(t, "Monday", "09:00", "10:00"))
	require.NoError(t, err)

	second, err := newEntry("TT0002", 5, f.module, otherLecturer, otherRoom, otherGroup, f.sessionType,
		mustInterval(t, "Monday", "09:00", "10:00"))
	require.NoError(t, err)

	assert.False(t, first.ConflictsWith(second))
}

func TestDescribeContainsAllIdentifiers(t *testing.T) {
	f := newFixtures()
	entry, err := newEntry("TT0001", 5, f.module, f.lecturer, f.room, f.group, f.sessionType,
		mustInterval(t, "Monday", "09:00", "10:00"))
	require.NoError(t, err)

	details := entry.Describe()
	assert.Contains(t, details, "TT0001")
	assert.Contains(t, details, "Week: 5")
	assert.Contains(t, details, "Algorithms (CS2001)")
	assert.Contains(t, details, "Dr. Okafor")
	assert.Contains(t, details, "JC006")
	assert.Contains(t, details, "CS Year 2 Group A")
	assert.Contains(t, details, "Lecture")
	assert.Contains(t, details, "Monday 09:00 - 10:00")
}
