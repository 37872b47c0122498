package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/repository"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/interval"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/redis"
)

// ExportService read-only exports of the schedule: an xlsx availability
// sheet for the office and an ICS feed per teacher.
type ExportService interface {
	// AvailabilityWorkbook renders the slot inventory over [from, to] into
	// an xlsx workbook.
	AvailabilityWorkbook(ctx context.Context, from, to string, teacherID *string) (*excelize.File, error)
	// TeacherCalendar serializes the teacher's lessons and blocks over
	// [from, to] as an ICS calendar.
	TeacherCalendar(ctx context.Context, teacherID, from, to string) (string, error)
}

type exportService struct {
	repo     *repository.Repository
	cache    *redis.Client // nil when redis is unavailable
	cacheTTL time.Duration
	loc      *time.Location
	logger   *zap.Logger
}

// NewExportService creates an ExportService instance. cache may be nil.
func NewExportService(repo *repository.Repository, cache *redis.Client, cacheTTL time.Duration, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, cache: cache, cacheTTL: cacheTTL, loc: loc, logger: logger}
}

var slotStatusLabels = map[model.SlotStatus]string{
	model.SlotOpen:     "Open",
	model.SlotClosed:   "Booked",
	model.SlotCanceled: "Cancelled",
	model.SlotBlocked:  "Blocked",
}

var weekdayLabels = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ────────────────────── xlsx ──────────────────────

func (s *exportService) AvailabilityWorkbook(ctx context.Context, from, to string, teacherID *string) (*excelize.File, error) {
	slots, err := s.repo.Slot.ListByDateRange(ctx, from, to, teacherID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Availability"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	headers := []string{"Date", "Day", "Teacher", "Start", "End", "Status", "Locked"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "G1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 11)
	f.SetColWidth(sheet, "C", "C", 20)
	f.SetColWidth(sheet, "D", "F", 10)

	row := 2
	for i := range slots {
		slot := &slots[i]
		if slot.Status == model.SlotCanceled {
			continue
		}
		day := ""
		if d, err := interval.ParseDate(slot.Date.String(), s.loc); err == nil {
			day = weekdayLabels[int(d.Weekday())]
		}
		locked := ""
		if slot.IsLocked {
			locked = "yes"
		}
		values := []interface{}{
			slot.Date.String(),
			day,
			s.teacherName(ctx, slot),
			slot.StartTime,
			slot.EndTime,
			slotStatusLabels[slot.Status],
			locked,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	return f, nil
}

// ────────────────────── ICS ──────────────────────

func (s *exportService) TeacherCalendar(ctx context.Context, teacherID, from, to string) (string, error) {
	lessons, err := s.repo.Lesson.ListByDateRange(ctx, from, to, &teacherID)
	if err != nil {
		return "", err
	}
	slots, err := s.repo.Slot.ListByDateRange(ctx, from, to, &teacherID)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//RAZ Tutoring//Schedule//EN")

	for i := range lessons {
		lesson := &lessons[i]
		if lesson.Status.ExcludedFromConflicts() {
			continue
		}
		r, err := interval.NewWithDuration(lesson.LessonID, interval.SourceLesson,
			lesson.Date.String(), lesson.StartTime, lesson.DurationMinutes, "", s.loc)
		if err != nil {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("lesson-%s@raz-tutoring", lesson.LessonID))
		ev.SetCreatedTime(lesson.CreatedAt)
		ev.SetDtStampTime(lesson.UpdatedAt)
		ev.SetStartAt(r.Start)
		ev.SetEndAt(r.End)
		ev.SetSummary(fmt.Sprintf("Lesson: %s", lesson.StudentName))
		if lesson.Notes != "" {
			ev.SetDescription(lesson.Notes)
		}
	}

	for i := range slots {
		slot := &slots[i]
		if !slot.IsBlock || slot.Status != model.SlotBlocked {
			continue
		}
		r, err := interval.New(slot.SlotID, interval.SourceSlot,
			slot.Date.String(), slot.StartTime, slot.EndTime, "", s.loc)
		if err != nil {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("block-%s@raz-tutoring", slot.SlotID))
		ev.SetCreatedTime(slot.CreatedAt)
		ev.SetDtStampTime(slot.UpdatedAt)
		ev.SetStartAt(r.Start)
		ev.SetEndAt(r.End)
		ev.SetSummary("Blocked")
	}

	return cal.Serialize(), nil
}

// teacherName resolves the display name through the redis cache, falling
// back to the preloaded association or a registry lookup. Cache failures
// degrade to the database silently.
func (s *exportService) teacherName(ctx context.Context, slot *model.SlotInstance) string {
	if slot.Teacher != nil {
		return slot.Teacher.Name
	}
	if s.cache != nil {
		if name, err := s.cache.GetTeacherName(ctx, slot.TeacherID); err == nil && name != "" {
			return name
		}
	}
	teacher, err := s.repo.Teacher.GetByID(ctx, slot.TeacherID)
	if err != nil {
		s.logger.Warn("failed to resolve teacher name",
			zap.String("teacher_id", slot.TeacherID), zap.Error(err))
		return slot.TeacherID
	}
	if s.cache != nil {
		if err := s.cache.CacheTeacherName(ctx, teacher.TeacherID, teacher.Name, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache teacher name", zap.Error(err))
		}
	}
	return teacher.Name
}
