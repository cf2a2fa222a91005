// Command timetable-audit builds the demo term timetable, runs the conflict
// audit and writes the configured exports. It is the non-interactive
// counterpart of the original administrative tool: the catalogue is seeded
// in code, sessions are admitted through the regular validation pipeline,
// and every rejection or conflict is logged rather than prompted for.
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable/internal/registry"
	"github.com/noah-isme/uni-timetable/internal/service"
	"github.com/noah-isme/uni-timetable/internal/timetable"
	"github.com/noah-isme/uni-timetable/pkg/config"
	"github.com/noah-isme/uni-timetable/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	registries := registry.NewSet()
	if err := seedCatalogue(registries); err != nil {
		logr.Sugar().Fatalw("failed to seed catalogue", "error", err)
	}

	store := timetable.NewStore(cfg.Academic.Year, cfg.Academic.Semester, logr)

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	svc := service.NewTimetableService(store, registries, validator.New(), logr, metrics)
	ctx := context.Background()

	admitted, rejected := buildTimetable(ctx, svc)
	logr.Info("timetable built",
		zap.String("academic_year", cfg.Academic.Year),
		zap.String("semester", cfg.Academic.Semester),
		zap.Int("admitted", admitted),
		zap.Int("rejected", rejected))

	for _, report := range svc.Audit(ctx) {
		logr.Warn("conflict pair",
			zap.String("first", report.FirstID),
			zap.String("second", report.SecondID),
			zap.String("resolution", report.Resolution))
	}

	if err := writeExports(ctx, svc, cfg, logr); err != nil {
		logr.Sugar().Fatalw("failed to write exports", "error", err)
	}
}

func seedCatalogue(registries *registry.Set) error {
	modules := []*timetable.Module{
		{Code: "CS2001", Title: "Algorithms and Data Structures"},
		{Code: "CS2004", Title: "Software Engineering", Description: "Team project module"},
		{Code: "MA2010", Title: "Linear Algebra"},
	}
	for _, module := range modules {
		if err := registries.Modules.Add(module); err != nil {
			return err
		}
	}

	lecturers := []*timetable.Lecturer{
		timetable.NewLecturer("L001", "Dr. Amara Okafor", "Computer Science"),
		timetable.NewLecturer("L002", "Prof. James Hartley", "Computer Science"),
		timetable.NewLecturer("L003", "Dr. Elena Petrova", "Mathematics"),
	}
	for _, lecturer := range lecturers {
		if err := registries.Lecturers.Add(lecturer); err != nil {
			return err
		}
	}

	rooms := []*timetable.Room{
		timetable.NewRoom("JC006", "John Clare Building", 120),
		timetable.NewRoom("KV208", "Kingsgate Vault", 40),
	}
	for _, room := range rooms {
		if err := registries.Rooms.Add(room); err != nil {
			return err
		}
	}

	groups := []*timetable.StudentGroup{
		timetable.NewStudentGroup("CS-Y2-A", "Computer Science Year 2 Group A"),
		timetable.NewStudentGroup("MATH-Y2", "Mathematics Year 2"),
	}
	for _, group := range groups {
		if err := registries.Groups.Add(group); err != nil {
			return err
		}
	}

	sessionTypes := []*timetable.SessionType{
		{ID: "ST1", Name: "Lecture"},
		{ID: "ST2", Name: "Lab"},
		{ID: "ST3", Name: "Seminar"},
	}
	for _, sessionType := range sessionTypes {
		if err := registries.SessionTypes.Add(sessionType); err != nil {
			return err
		}
	}

	return nil
}

// buildTimetable admits the demo sessions. The last request deliberately
// reuses a booked room so the rejection path is exercised and logged.
func buildTimetable(ctx context.Context, svc *service.TimetableService) (admitted, rejected int) {
	requests := []service.CreateEntryRequest{
		{Week: 5, ModuleCode: "CS2001", LecturerID: "L001", RoomID: "JC006", GroupID: "CS-Y2-A", SessionTypeID: "ST1", Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
		{Week: 5, ModuleCode: "CS2004", LecturerID: "L002", RoomID: "KV208", GroupID: "CS-Y2-A", SessionTypeID: "ST2", Day: "Monday", StartTime: "10:00", EndTime: "12:00"},
		{Week: 5, ModuleCode: "MA2010", LecturerID: "L003", RoomID: "JC006", GroupID: "MATH-Y2", SessionTypeID: "ST1", Day: "Tuesday", StartTime: "09:00", EndTime: "11:00"},
		{Week: 6, ModuleCode: "CS2001", LecturerID: "L001", RoomID: "JC006", GroupID: "CS-Y2-A", SessionTypeID: "ST3", Day: "Wednesday", StartTime: "09:00", EndTime: "10:00"},
		// Admissible, but clashes with the 10:00-12:00 lab for the same
		// group: only the audit scan catches it.
		{Week: 5, ModuleCode: "MA2010", LecturerID: "L003", RoomID: "JC006", GroupID: "CS-Y2-A", SessionTypeID: "ST1", Day: "Monday", StartTime: "11:00", EndTime: "12:00"},
		// Rejected at admission: JC006 is already booked 09:00-10:00.
		{Week: 5, ModuleCode: "CS2004", LecturerID: "L003", RoomID: "JC006", GroupID: "MATH-Y2", SessionTypeID: "ST1", Day: "Monday", StartTime: "09:30", EndTime: "10:30"},
	}

	for _, req := range requests {
		if _, err := svc.CreateEntry(ctx, req); err != nil {
			rejected++
			continue
		}
		admitted++
	}
	return admitted, rejected
}

func writeExports(ctx context.Context, svc *service.TimetableService, cfg *config.Config, logr *zap.Logger) error {
	if err := os.MkdirAll(cfg.Export.Directory, 0o755); err != nil {
		return err
	}

	for _, format := range cfg.Export.Formats {
		var data []byte
		var err error
		switch format {
		case "csv":
			data, err = svc.ExportCSV(ctx)
		case "pdf":
			data, err = svc.ExportPDF(ctx)
		default:
			logr.Warn("unknown export format", zap.String("format", format))
			continue
		}
		if err != nil {
			return err
		}

		path := filepath.Join(cfg.Export.Directory, "timetable."+format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		logr.Info("export written", zap.String("path", path), zap.Int("bytes", len(data)))
	}
	return nil
}
