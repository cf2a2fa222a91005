package timetable

import "fmt"

// Module is a unit of teaching identified by its module code.
type Module struct {
	Code        string
	Title       string
	Description string
}

// Details renders the module for display.
func (m *Module) Details() string {
	if m.Description == "" {
		return fmt.Sprintf("Module Code: %s, Title: %s", m.Code, m.Title)
	}
	return fmt.Sprintf("Module Code: %s, Title: %s, Description: %s", m.Code, m.Title, m.Description)
}

// Lecturer teaches modules and owns the ledger of times they are booked.
type Lecturer struct {
	ID         string
	Name       string
	Department string

	modules  []*Module
	schedule *Ledger
}

// NewLecturer creates a lecturer with an empty schedule.
func NewLecturer(id, name, department string) *Lecturer {
	return &Lecturer{ID: id, Name: name, Department: department, schedule: NewLedger()}
}

// IsAvailable reports whether the lecturer is free for the interval.
func (l *Lecturer) IsAvailable(interval *Interval) bool {
	return l.schedule.IsAvailable(interval)
}

// Schedule exposes the lecturer's booking ledger.
func (l *Lecturer) Schedule() *Ledger {
	return l.schedule
}

// AssignModule adds a module to the lecturer's teaching list. Assigning the
// same module code twice is a no-op returning false.
func (l *Lecturer) AssignModule(module *Module) bool {
	if module == nil {
		return false
	}
	for _, assigned := range l.modules {
		if assigned.Code == module.Code {
			return false
		}
	}
	l.modules = append(l.modules, module)
	return true
}

// RemoveModule drops a module from the teaching list by code.
func (l *Lecturer) RemoveModule(code string) bool {
	for idx, assigned := range l.modules {
		if assigned.Code == code {
			l.modules = append(l.modules[:idx], l.modules[idx+1:]...)
			return true
		}
	}
	return false
}

// AssignedModules returns the lecturer's teaching list in assignment order.
func (l *Lecturer) AssignedModules() []*Module {
	out := make([]*Module, len(l.modules))
	copy(out, l.modules)
	return out
}

// Room is a teaching space and owns the ledger of times it is booked.
type Room struct {
	ID       string
	Location string
	Capacity int

	bookings *Ledger
}

// NewRoom creates a room with an empty booking ledger.
func NewRoom(id, location string, capacity int) *Room {
	return &Room{ID: id, Location: location, Capacity: capacity, bookings: NewLedger()}
}

// IsAvailable reports whether the room is free for the interval.
func (r *Room) IsAvailable(interval *Interval) bool {
	return r.bookings.IsAvailable(interval)
}

// Bookings exposes the room's booking ledger.
func (r *Room) Bookings() *Ledger {
	return r.bookings
}

// StudentGroup is a cohort that attends sessions together.
type StudentGroup struct {
	ID   string
	Name string

	students []string
}

// NewStudentGroup creates a group with an empty roster.
func NewStudentGroup(id, name string) *StudentGroup {
	return &StudentGroup{ID: id, Name: name}
}

// AddStudent appends a student identifier to the roster if not present.
func (g *StudentGroup) AddStudent(studentID string) bool {
	if g.HasStudent(studentID) {
		return false
	}
	g.students = append(g.students, studentID)
	return true
}

// RemoveStudent drops a student identifier from the roster.
func (g *StudentGroup) RemoveStudent(studentID string) bool {
	for idx, id := range g.students {
		if id == studentID {
			g.students = append(g.students[:idx], g.students[idx+1:]...)
			return true
		}
	}
	return false
}

// HasStudent reports roster membership.
func (g *StudentGroup) HasStudent(studentID string) bool {
	for _, id := range g.students {
		if id == studentID {
			return true
		}
	}
	return false
}

// SessionType labels the kind of session, e.g. "Lecture", "Lab", "Seminar".
type SessionType struct {
	ID   string
	Name string
}
