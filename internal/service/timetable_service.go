package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable/internal/registry"
	"github.com/noah-isme/uni-timetable/internal/timetable"
	appErrors "github.com/noah-isme/uni-timetable/pkg/errors"
	"github.com/noah-isme/uni-timetable/pkg/export"
)

// exportHeaders is the fixed column set of every timetable export.
var exportHeaders = []string{
	"EntryID", "Week", "Module", "ModuleCode", "Lecturer", "Room",
	"StudentGroup", "SessionType", "Day", "StartTime", "EndTime",
}

// CreateEntryRequest describes the payload for scheduling a session.
type CreateEntryRequest struct {
	Week          int    `json:"week" validate:"required,min=1,max=53"`
	ModuleCode    string `json:"module_code" validate:"required"`
	LecturerID    string `json:"lecturer_id" validate:"required"`
	RoomID        string `json:"room_id" validate:"required"`
	GroupID       string `json:"group_id" validate:"required"`
	SessionTypeID string `json:"session_type_id" validate:"required"`
	Day           string `json:"day" validate:"required"`
	StartTime     string `json:"start_time" validate:"required"`
	EndTime       string `json:"end_time" validate:"required"`
}

// SearchRequest filters the timetable; zero values match everything.
type SearchRequest struct {
	Week       int    `json:"week"`
	ModuleCode string `json:"module_code"`
	RoomID     string `json:"room_id"`
	LecturerID string `json:"lecturer_id"`
}

// ConflictReport pairs two conflicting entry ids with a resolution
// narrative covering every matching dimension.
type ConflictReport struct {
	FirstID    string `json:"first_id"`
	SecondID   string `json:"second_id"`
	Resolution string `json:"resolution"`
}

// TimetableService coordinates entry admission, retrieval, conflict audits
// and exports over the registries and the schedule store.
type TimetableService struct {
	store      *timetable.Store
	registries *registry.Set
	validator  *validator.Validate
	logger     *zap.Logger
	metrics    *MetricsService
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
}

// NewTimetableService instantiates TimetableService.
func NewTimetableService(store *timetable.Store, registries *registry.Set, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		store:      store,
		registries: registries,
		validator:  validate,
		logger:     logger,
		metrics:    metrics,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
	}
}

// CreateEntry validates the request, resolves every reference, parses the
// interval and admits the entry through the store. Failures are typed: a
// reference that does not resolve reports which field failed, a malformed
// time aborts before any booking is attempted, and availability collisions
// surface as conflict errors.
func (s *TimetableService) CreateEntry(ctx context.Context, req CreateEntryRequest) (*timetable.Entry, error) {
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordEntryRejected(appErrors.ErrValidation.Code)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid entry payload")
	}

	module, err := s.registries.Modules.Get(req.ModuleCode)
	if err != nil {
		return nil, s.rejectReference("module_code", req.ModuleCode)
	}
	lecturer, err := s.registries.Lecturers.Get(req.LecturerID)
	if err != nil {
		return nil, s.rejectReference("lecturer_id", req.LecturerID)
	}
	room, err := s.registries.Rooms.Get(req.RoomID)
	if err != nil {
		return nil, s.rejectReference("room_id", req.RoomID)
	}
	group, err := s.registries.Groups.Get(req.GroupID)
	if err != nil {
		return nil, s.rejectReference("group_id", req.GroupID)
	}
	sessionType, err := s.registries.SessionTypes.Get(req.SessionTypeID)
	if err != nil {
		return nil, s.rejectReference("session_type_id", req.SessionTypeID)
	}

	interval, err := timetable.NewInterval(req.Day, req.StartTime, req.EndTime)
	if err != nil {
		s.metrics.RecordEntryRejected(appErrors.FromError(err).Code)
		return nil, err
	}

	entry, err := s.store.CreateEntry(req.Week, module, lecturer, room, group, sessionType, interval)
	if err != nil {
		s.metrics.RecordEntryRejected(appErrors.FromError(err).Code)
		s.logger.Info("entry rejected",
			zap.String("module", req.ModuleCode),
			zap.String("lecturer", req.LecturerID),
			zap.String("room", req.RoomID),
			zap.String("error", err.Error()))
		return nil, err
	}

	s.metrics.RecordEntryCreated()
	s.logger.Info("entry admitted",
		zap.String("entry_id", entry.ID()),
		zap.Int("week", entry.Week()),
		zap.String("interval", entry.Interval().String()))
	return entry, nil
}

// DeleteEntry removes an entry by id. The lecturer and room bookings made
// at admission remain in their ledgers.
func (s *TimetableService) DeleteEntry(ctx context.Context, id string) error {
	if !s.store.DeleteEntry(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "timetable entry "+id+" not found")
	}
	s.logger.Info("entry deleted", zap.String("entry_id", id))
	return nil
}

// Search returns entries matching all supplied filters in insertion order.
func (s *TimetableService) Search(ctx context.Context, req SearchRequest) []*timetable.Entry {
	return s.store.Search(timetable.Filter{
		Week:       req.Week,
		ModuleCode: req.ModuleCode,
		RoomID:     req.RoomID,
		LecturerID: req.LecturerID,
	})
}

// TimetableForGroup returns the group's sessions, optionally narrowed to a
// week (0 means any). The group must resolve.
func (s *TimetableService) TimetableForGroup(ctx context.Context, groupID string, week int) ([]*timetable.Entry, error) {
	if _, err := s.registries.Groups.Get(groupID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidReference, "unknown student group "+groupID)
	}
	return s.store.EntriesForGroup(groupID, week), nil
}

// TimetableForLecturer returns the lecturer's sessions, optionally narrowed
// to a week (0 means any). The lecturer must resolve.
func (s *TimetableService) TimetableForLecturer(ctx context.Context, lecturerID string, week int) ([]*timetable.Entry, error) {
	if _, err := s.registries.Lecturers.Get(lecturerID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidReference, "unknown lecturer "+lecturerID)
	}
	return s.store.EntriesForLecturer(lecturerID, week), nil
}

// TimetableForRoom returns the room's sessions, optionally narrowed to a
// week (0 means any). The room must resolve.
func (s *TimetableService) TimetableForRoom(ctx context.Context, roomID string, week int) ([]*timetable.Entry, error) {
	if _, err := s.registries.Rooms.Get(roomID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidReference, "unknown room "+roomID)
	}
	return s.store.EntriesForRoom(roomID, week), nil
}

// Audit re-runs the pairwise conflict scan and returns one report per
// conflicting pair, each with its resolution narrative.
func (s *TimetableService) Audit(ctx context.Context) []ConflictReport {
	pairs := s.store.CheckForConflicts()
	s.metrics.RecordConflictPairs(len(pairs))

	reports := make([]ConflictReport, 0, len(pairs))
	for _, pair := range pairs {
		reports = append(reports, ConflictReport{
			FirstID:    pair.First.ID(),
			SecondID:   pair.Second.ID(),
			Resolution: s.store.Scanner().SuggestResolution(pair),
		})
	}
	if len(reports) > 0 {
		s.logger.Warn("timetable conflicts detected", zap.Int("pairs", len(reports)))
	}
	return reports
}

// ExportCSV renders the full timetable as CSV: a header line plus one row
// per entry in store order.
func (s *TimetableService) ExportCSV(ctx context.Context) ([]byte, error) {
	data, err := s.csv.Render(s.dataset())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	s.metrics.RecordExport("csv")
	return data, nil
}

// ExportPDF renders the full timetable as a tabular PDF titled with the
// academic term.
func (s *TimetableService) ExportPDF(ctx context.Context) ([]byte, error) {
	subtitle := "Academic Year " + s.store.AcademicYear() + ", Semester " + s.store.Semester()
	data, err := s.pdf.Render(s.dataset(), "University Timetable", subtitle)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	s.metrics.RecordExport("pdf")
	return data, nil
}

func (s *TimetableService) dataset() export.Dataset {
	entries := s.store.Entries()
	rows := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, map[string]string{
			"EntryID":      entry.ID(),
			"Week":         strconv.Itoa(entry.Week()),
			"Module":       entry.Module().Title,
			"ModuleCode":   entry.Module().Code,
			"Lecturer":     entry.Lecturer().Name,
			"Room":         entry.Room().ID,
			"StudentGroup": entry.Group().Name,
			"SessionType":  entry.SessionType().Name,
			"Day":          entry.Interval().Day(),
			"StartTime":    entry.Interval().Start(),
			"EndTime":      entry.Interval().End(),
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func (s *TimetableService) rejectReference(field, value string) error {
	s.metrics.RecordEntryRejected(appErrors.ErrInvalidReference.Code)
	return appErrors.Clone(appErrors.ErrInvalidReference, field+" "+value+" does not resolve")
}
