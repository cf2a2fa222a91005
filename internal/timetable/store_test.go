package timetable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/uni-timetable/pkg/errors"
)

type storeFixtures struct {
	store       *Store
	module      *Module
	lecturers   []*Lecturer
	rooms       []*Room
	groups      []*StudentGroup
	sessionType *SessionType
}

func newStoreFixtures() storeFixtures {
	return storeFixtures{
		store:  NewStore("2025/26", "1", zap.NewNop()),
		module: &Module{Code: "CS2001", Title: "Algorithms"},
		lecturers: []*Lecturer{
			NewLecturer("lec1", "Dr. Okafor", "CS"),
			NewLecturer("lec2", "Prof. Hartley", "CS"),
		},
		rooms: []*Room{
			NewRoom("JC006", "John Clare Building", 120),
			NewRoom("KV208", "Kingsgate Vault", 40),
		},
		groups: []*StudentGroup{
			NewStudentGroup("CS-Y2-A", "CS Year 2 Group A"),
			NewStudentGroup("MATH-Y2", "Maths Year 2"),
		},
		sessionType: &SessionType{ID: "ST1", Name: "Lecture"},
	}
}

func (f storeFixtures) create(t *testing.T, week int, lecturer, room, group int, day, start, end string) *Entry {
	t.Helper()
	interval := mustInterval(t, day, start, end)
	entry, err := f.store.CreateEntry(week, f.module, f.lecturers[lecturer], f.rooms[room], f.groups[group], f.sessionType, interval)
	require.NoError(t, err)
	return entry
}

func TestStoreCreateEntryAssignsSequentialIDs(t *testing.T) {
	f := newStoreFixtures()

	first := f.create(t, 5, 0, 0, 0, "Monday", "09:00", "10:00")
	second := f.create(t, 5, 1, 1, 1, "Monday", "09:00", "10:00")

	assert.Equal(t, "TT0001", first.ID())
	assert.Equal(t, "TT0002", second.ID())
}

func TestStoreCreateEntryValidatesWeekBounds(t *testing.T) {
	f := newStoreFixtures()
	interval := mustInterval(t, "Monday", "09:00", "10:00")

	for _, week := range []int{0, -1, 54} {
		_, err := f.store.CreateEntry(week, f.module, f.lecturers[0], f.rooms[0], f.groups[0], f.sessionType, interval)
		require.Error(t, err, "week %d", week)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}

	assert.Empty(t, f.store.Entries())
}

func TestStoreCreateEntryRejectsMissingReference(t *testing.T) {
	f := newStoreFixtures()
	interval := mustInterval(t, "Monday", "09:00", "10:00")

	_, err := f.store.CreateEntry(5, f.module, nil, f.rooms[0], f.groups[0], f.sessionType, interval)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidReference.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "lecturer")
}

func TestStoreAdmissionExcludesLecturerDoubleBooking(t *testing.T) {
	f := newStoreFixtures()
	f.create(t, 5, 0, 0, 0, "Monday", "09:00", "10:00")

	// Same lecturer, different room, overlapping interval.
	overlapping := mustInterval(t, "Monday", "09:30", "10:30")
	_, err := f.store.CreateEntry(5, f.module, f.lecturers[0], f.rooms[1], f.groups[1], f.sessionType, overlapping)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "lecturer lec1")
	assert.Len(t, f.store.Entries(), 1)
}

func TestStoreAdmissionExcludesRoomDoubleBooking(t *testing.T) {
	f := newStoreFixtures()
	f.create(t, 5, 0, 0, 0, "Monday", "09:00", "10:00")

	overlapping := mustInterval(t, "Monday", "09:30", "10:30")
	_, err := f.store.CreateEntry(5, f.module, f.lecturers[1], f.rooms[0], f.groups[1], f.sessionType, overlapping)
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "room JC006")
}

func TestStoreAdmitsGroupConflictAndScanSurfacesIt(t *testing.T) {
	f := newStoreFixtures()
	f.create(t, 5, 0, 0, 0, "Monday", "09:00", "10:00")

	// Different lecturer and room but the same group at an overlapping
	// time: admission does not guard the group dimension.
	entry := f.create(t, 5, 1, 1, 0, "Monday", "09:30", "10:30")
	assert.Equal(t, "TT0002", entry.ID())

	require.True(t, f.store.HasConflicts())
	pairs := f.store.Conflicts()
	require.Len(t, pairs, 1)
	assert.Equal(t, "TT0001", pairs[0].First.ID())
	assert.Equal(t, "TT0002", pairs[0].Second.ID())
}

func TestStoreDeleteEntry(t *testing.T) {
	f := newStoreFixtures()
	entry := f.create(t, 5, 0, 0, 0, "Monday", "09:00", "10:00")

	assert.True(t, f.store.DeleteEntry(entry.ID()))
	assert.Empty(t, f.store.Entries())
	assert.False(t, f.store.DeleteEntry(entry.ID()))
}

func TestStoreDeleteEntryKeepsLedgerBookings(t *testing.T) {
	f := newStoreFixtures()
	entry := f.create(t, 5, 0, 0, 0, "Monday", "09:00", "10:00")
	require.True(t, f.store.DeleteEntry(entry.ID()))

	// Deletion does not release the lecturer or room booking, so the same
	// slot stays blocked.
	interval := mustInterval(t, "Monday", "09:00", "10:00")
	_, err := f.store.CreateEntry(5, f.module, f.lecturers[0], f.rooms[1], f.groups[0], f.sessionType, interval)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestStoreDeletedIDsAreNotReissued(t *testing.T) {
	f := newStoreFixtures()
	first := f.create(t, 5, 0, 0, 0, "Monday", "09:00", "10:00")
	require.True(t, f.store.DeleteEntry(first.ID()))

	second := f.create(t, 5, 1, 1, 1, "Tuesday", "09:00", "10:00")
	assert.Equal(t, "TT0002", second.ID())
}

func TestStoreSearchAppliesAllSuppliedFilters(t *testing.T) {
	f := newStoreFixtures()
	f.create(t, 5, 0, 0, 0, "Monday", "09:00", "10:00")
	f.create(t, 5, 1, 1, 1, "Monday", "09:00", "10:00")
	f.create(t, 6, 0, 0, 0, "Tuesday", "09:00", "10:00")

	assert.Len(t, f.store.Search(Filter{}), 3)
	assert.Len(t, f.store.Search(Filter{Week: 5}), 2)
	assert.Len(t, f.store.Search(Filter{Week: 5, LecturerID: "lec1"}), 1)
	assert.Len(t, f.store.Search(Filter{RoomID: "KV208"}), 1)
	assert.Len(t, f.store.Search(Filter{ModuleCode: "CS2001"}), 3)
	assert.Empty(t, f.store.Search(Filter{Week: 7}))
}

func TestStoreSearchPreservesInsertionOrder(t *testing.T) {
	f := newStoreFixtures()
	f.create(t, 5, 0, 0, 0, "Monday", "09:00", "10:00")
	f.create(t, 5, 0, 0, 0, "Tuesday", "09:00", "10:00")
	f.create(t, 5, 0, 0, 0, "Wednesday", "09:00", "10:00")

	results := f.store.Search(Filter{LecturerID: "lec1"})
	require.Len(t, results, 3)
	for idx, entry := range results {
		assert.Equal(t, fmt.Sprintf("TT%04d", idx+1), entry.ID())
	}
}

func TestStoreEntriesForGroupAndLecturerAndRoom(t *testing.T) {
	f := newStoreFixtures()
	f.create(t, 5, 0, 0, 0, "Monday", "09:00", "10:00")
	f.create(t, 6, 0, 1, 0, "Monday", "10:00", "11:00")
	f.create(t, 5, 1, 1, 1, "Monday", "09:00", "10:00")

	assert.Len(t, f.store.EntriesForGroup("CS-Y2-A", 0), 2)
	assert.Len(t, f.store.EntriesForGroup("CS-Y2-A", 5), 1)
	assert.Len(t, f.store.EntriesForLecturer("lec1", 0), 2)
	assert.Len(t, f.store.EntriesForRoom("KV208", 0), 2)
	assert.Len(t, f.store.EntriesForRoom("KV208", 6), 1)
	assert.Empty(t, f.store.EntriesForGroup("unknown", 0))
}

func TestStoreCheckForConflictsIsIdempotent(t *testing.T) {
	f := newStoreFixtures()
	f.create(t, 5, 0, 0, 0, "Monday", "09:00", "10:00")
	f.create(t, 5, 1, 1, 0, "Monday", "09:30", "10:30")

	first := f.store.CheckForConflicts()
	second := f.store.CheckForConflicts()

	require.Equal(t, len(first), len(second))
	for idx := range first {
		assert.Equal(t, first[idx].First.ID(), second[idx].First.ID())
		assert.Equal(t, first[idx].Second.ID(), second[idx].Second.ID())
	}
}
