package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable/internal/timetable"
	appErrors "github.com/noah-isme/uni-timetable/pkg/errors"
)

func TestModuleRegistryAddGetRemove(t *testing.T) {
	registry := NewModuleRegistry()
	require.NoError(t, registry.Add(&timetable.Module{Code: "CS2001", Title: "Algorithms"}))

	module, err := registry.Get("CS2001")
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", module.Title)

	assert.True(t, registry.Remove("CS2001"))
	assert.False(t, registry.Remove("CS2001"))

	_, err = registry.Get("CS2001")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestModuleRegistryRejectsDuplicateCodes(t *testing.T) {
	registry := NewModuleRegistry()
	require.NoError(t, registry.Add(&timetable.Module{Code: "CS2001", Title: "Algorithms"}))

	err := registry.Add(&timetable.Module{Code: "CS2001", Title: "Another"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestLecturerRegistryGeneratesIDWhenBlank(t *testing.T) {
	registry := NewLecturerRegistry()
	lecturer := timetable.NewLecturer("", "Dr. Okafor", "CS")
	require.NoError(t, registry.Add(lecturer))

	assert.NotEmpty(t, lecturer.ID)
	resolved, err := registry.Get(lecturer.ID)
	require.NoError(t, err)
	assert.Same(t, lecturer, resolved)
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	registry := NewRoomRegistry()
	require.NoError(t, registry.Add(timetable.NewRoom("JC006", "John Clare Building", 120)))
	require.NoError(t, registry.Add(timetable.NewRoom("KV208", "Kingsgate Vault", 40)))
	require.NoError(t, registry.Add(timetable.NewRoom("AB101", "Ashby Block", 60)))

	rooms := registry.List()
	require.Len(t, rooms, 3)
	assert.Equal(t, "JC006", rooms[0].ID)
	assert.Equal(t, "KV208", rooms[1].ID)
	assert.Equal(t, "AB101", rooms[2].ID)

	registry.Remove("KV208")
	rooms = registry.List()
	require.Len(t, rooms, 2)
	assert.Equal(t, "AB101", rooms[1].ID)
}

func TestSetBundlesAllKinds(t *testing.T) {
	set := NewSet()
	require.NoError(t, set.Groups.Add(timetable.NewStudentGroup("CS-Y2-A", "CS Year 2 Group A")))
	require.NoError(t, set.SessionTypes.Add(&timetable.SessionType{ID: "ST1", Name: "Lecture"}))

	group, err := set.Groups.Get("CS-Y2-A")
	require.NoError(t, err)
	assert.Equal(t, "CS Year 2 Group A", group.Name)

	sessionType, err := set.SessionTypes.Get("ST1")
	require.NoError(t, err)
	assert.Equal(t, "Lecture", sessionType.Name)
}
