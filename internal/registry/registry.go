// Package registry provides the in-memory entity registries the timetable
// core depends on: lookup by identifier, identifier uniqueness within each
// kind, and stable listing order. The registries own their records; the
// scheduling core only ever holds references to them.
package registry

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/noah-isme/uni-timetable/internal/timetable"
	appErrors "github.com/noah-isme/uni-timetable/pkg/errors"
)

// Set bundles one registry per entity kind.
type Set struct {
	Modules      *ModuleRegistry
	Lecturers    *LecturerRegistry
	Rooms        *RoomRegistry
	Groups       *GroupRegistry
	SessionTypes *SessionTypeRegistry
}

// NewSet creates empty registries for all entity kinds.
func NewSet() *Set {
	return &Set{
		Modules:      NewModuleRegistry(),
		Lecturers:    NewLecturerRegistry(),
		Rooms:        NewRoomRegistry(),
		Groups:       NewGroupRegistry(),
		SessionTypes: NewSessionTypeRegistry(),
	}
}

// ModuleRegistry owns the module catalogue, keyed by module code.
type ModuleRegistry struct {
	mu    sync.RWMutex
	items map[string]*timetable.Module
	order []string
}

// NewModuleRegistry creates an empty module registry.
func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{items: make(map[string]*timetable.Module)}
}

// Add registers a module. A blank code is replaced by a generated one;
// duplicate codes are rejected.
func (r *ModuleRegistry) Add(module *timetable.Module) error {
	if module == nil {
		return appErrors.Clone(appErrors.ErrValidation, "module is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if module.Code == "" {
		module.Code = uuid.NewString()
	}
	if _, exists := r.items[module.Code]; exists {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("module code %s already registered", module.Code))
	}
	r.items[module.Code] = module
	r.order = append(r.order, module.Code)
	return nil
}

// Get resolves a module by code.
func (r *ModuleRegistry) Get(code string) (*timetable.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	module, ok := r.items[code]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("module %s not found", code))
	}
	return module, nil
}

// Remove deletes a module by code and reports whether it existed.
func (r *ModuleRegistry) Remove(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[code]; !ok {
		return false
	}
	delete(r.items, code)
	r.order = removeID(r.order, code)
	return true
}

// List returns all modules in registration order.
func (r *ModuleRegistry) List() []*timetable.Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*timetable.Module, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.items[code])
	}
	return out
}

// LecturerRegistry owns the lecturer records.
type LecturerRegistry struct {
	mu    sync.RWMutex
	items map[string]*timetable.Lecturer
	order []string
}

// NewLecturerRegistry creates an empty lecturer registry.
func NewLecturerRegistry() *LecturerRegistry {
	return &LecturerRegistry{items: make(map[string]*timetable.Lecturer)}
}

// Add registers a lecturer, generating an identifier when none is supplied.
func (r *LecturerRegistry) Add(lecturer *timetable.Lecturer) error {
	if lecturer == nil {
		return appErrors.Clone(appErrors.ErrValidation, "lecturer is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if lecturer.ID == "" {
		lecturer.ID = uuid.NewString()
	}
	if _, exists := r.items[lecturer.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("lecturer id %s already registered", lecturer.ID))
	}
	r.items[lecturer.ID] = lecturer
	r.order = append(r.order, lecturer.ID)
	return nil
}

// Get resolves a lecturer by id.
func (r *LecturerRegistry) Get(id string) (*timetable.Lecturer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lecturer, ok := r.items[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("lecturer %s not found", id))
	}
	return lecturer, nil
}

// Remove deletes a lecturer by id and reports whether it existed.
func (r *LecturerRegistry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	r.order = removeID(r.order, id)
	return true
}

// List returns all lecturers in registration order.
func (r *LecturerRegistry) List() []*timetable.Lecturer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*timetable.Lecturer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// RoomRegistry owns the room records.
type RoomRegistry struct {
	mu    sync.RWMutex
	items map[string]*timetable.Room
	order []string
}

// NewRoomRegistry creates an empty room registry.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{items: make(map[string]*timetable.Room)}
}

// Add registers a room, generating an identifier when none is supplied.
func (r *RoomRegistry) Add(room *timetable.Room) error {
	if room == nil {
		return appErrors.Clone(appErrors.ErrValidation, "room is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if _, exists := r.items[room.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("room id %s already registered", room.ID))
	}
	r.items[room.ID] = room
	r.order = append(r.order, room.ID)
	return nil
}

// Get resolves a room by id.
func (r *RoomRegistry) Get(id string) (*timetable.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.items[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %s not found", id))
	}
	return room, nil
}

// Remove deletes a room by id and reports whether it existed.
func (r *RoomRegistry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	r.order = removeID(r.order, id)
	return true
}

// List returns all rooms in registration order.
func (r *RoomRegistry) List() []*timetable.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*timetable.Room, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// GroupRegistry owns the student group records.
type GroupRegistry struct {
	mu    sync.RWMutex
	items map[string]*timetable.StudentGroup
	order []string
}

// NewGroupRegistry creates an empty group registry.
func NewGroupRegistry() *GroupRegistry {
	return &GroupRegistry{items: make(map[string]*timetable.StudentGroup)}
}

// Add registers a group, generating an identifier when none is supplied.
func (r *GroupRegistry) Add(group *timetable.StudentGroup) error {
	if group == nil {
		return appErrors.Clone(appErrors.ErrValidation, "student group is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	if _, exists := r.items[group.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("group id %s already registered", group.ID))
	}
	r.items[group.ID] = group
	r.order = append(r.order, group.ID)
	return nil
}

// Get resolves a group by id.
func (r *GroupRegistry) Get(id string) (*timetable.StudentGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	group, ok := r.items[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student group %s not found", id))
	}
	return group, nil
}

// Remove deletes a group by id and reports whether it existed.
func (r *GroupRegistry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	r.order = removeID(r.order, id)
	return true
}

// List returns all groups in registration order.
func (r *GroupRegistry) List() []*timetable.StudentGroup {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*timetable.StudentGroup, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// SessionTypeRegistry owns the session type records.
type SessionTypeRegistry struct {
	mu    sync.RWMutex
	items map[string]*timetable.SessionType
	order []string
}

// NewSessionTypeRegistry creates an empty session type registry.
func NewSessionTypeRegistry() *SessionTypeRegistry {
	return &SessionTypeRegistry{items: make(map[string]*timetable.SessionType)}
}

// Add registers a session type, generating an identifier when none is
// supplied.
func (r *SessionTypeRegistry) Add(sessionType *timetable.SessionType) error {
	if sessionType == nil {
		return appErrors.Clone(appErrors.ErrValidation, "session type is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if sessionType.ID == "" {
		sessionType.ID = uuid.NewString()
	}
	if _, exists := r.items[sessionType.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("session type id %s already registered", sessionType.ID))
	}
	r.items[sessionType.ID] = sessionType
	r.order = append(r.order, sessionType.ID)
	return nil
}

// Get resolves a session type by id.
func (r *SessionTypeRegistry) Get(id string) (*timetable.SessionType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessionType, ok := r.items[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("session type %s not found", id))
	}
	return sessionType, nil
}

// Remove deletes a session type by id and reports whether it existed.
func (r *SessionTypeRegistry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	r.order = removeID(r.order, id)
	return true
}

// List returns all session types in registration order.
func (r *SessionTypeRegistry) List() []*timetable.SessionType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*timetable.SessionType, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

func removeID(order []string, id string) []string {
	for idx, existing := range order {
		if existing == id {
			return append(order[:idx], order[idx+1:]...)
		}
	}
	return order
}
