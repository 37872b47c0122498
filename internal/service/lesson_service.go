package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/dto"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/repository"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/interval"
)

// ── Lesson module errors ──

var (
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrLessonNotCancelable = errors.New("lesson is not in a cancelable status")
	ErrSlotNotFound        = errors.New("slot not found")
	ErrSlotNotBookable     = errors.New("slot is not open for booking")
	ErrInvalidLessonInput  = errors.New("invalid lesson input")
)

const defaultLessonMinutes = 60

// LessonService lesson lifecycle: booking (conflict-checked), cancellation
// with slot reopening, and materialization of fixed recurring lessons.
type LessonService interface {
	Create(ctx context.Context, req *dto.CreateLessonRequest) (*dto.LessonResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LessonResponse, error)
	List(ctx context.Context, req *dto.LessonListRequest) ([]dto.LessonResponse, error)
	// Cancel marks the lesson cancelled and unlinks it from any slot
	// instances, reopening slots whose link set becomes empty.
	Cancel(ctx context.Context, id string) (*dto.LessonResponse, error)
	// MaterializeFixedLessons creates lessons from fixed-lesson templates
	// over [windowStart, windowStart+days). Idempotent: occurrences that
	// already have a non-cancelled lesson at the same identity are skipped.
	MaterializeFixedLessons(ctx context.Context, windowStart time.Time, days int) (created, skipped int, err error)
}

type lessonService struct {
	repo      *repository.Repository
	conflicts ConflictService
	loc       *time.Location
	logger    *zap.Logger
}

// NewLessonService creates a LessonService instance.
func NewLessonService(repo *repository.Repository, conflicts ConflictService, loc *time.Location, logger *zap.Logger) LessonService {
	return &lessonService{repo: repo, conflicts: conflicts, loc: loc, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Booking
// ════════════════════════════════════════════════════════════

func (s *lessonService) Create(ctx context.Context, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	minutes := req.DurationMinutes
	if minutes <= 0 {
		minutes = defaultLessonMinutes
	}
	proposed, err := interval.NewWithDuration("", interval.SourceLesson,
		req.Date, req.StartTime, minutes, "", s.loc)
	if err != nil {
		return nil, ErrInvalidLessonInput
	}

	// Booking always fails closed: a confirmed overlap rejects the request,
	// and an unavailable check rejects it too.
	check, err := s.conflicts.Check(ctx, &dto.ConflictCheckRequest{
		Entity:    dto.EntityLesson,
		TeacherID: req.TeacherID,
		Date:      req.Date,
		Start:     req.StartTime,
		End:       interval.FormatClock(proposed.End),
	})
	if err != nil {
		return nil, err
	}
	if check.HasConflicts {
		// A booking into an open slot is expected to overlap that slot.
		remaining := make([]dto.ConflictItem, 0, len(check.Conflicts))
		for _, c := range check.Conflicts {
			if req.SlotID != "" && c.RecordID == req.SlotID {
				continue
			}
			remaining = append(remaining, c)
		}
		if len(remaining) > 0 {
			return nil, &ConflictError{Conflicts: remaining}
		}
	}

	lesson := &model.Lesson{
		TeacherID:       req.TeacherID,
		StudentName:     req.StudentName,
		Date:            model.DateOnly(req.Date),
		StartTime:       req.StartTime,
		DurationMinutes: minutes,
		Status:          model.LessonScheduled,
		Notes:           req.Notes,
	}
	if err := s.repo.Lesson.Create(ctx, lesson); err != nil {
		s.logger.Error("failed to create lesson", zap.Error(err))
		return nil, err
	}

	if req.SlotID != "" {
		if err := s.bookIntoSlot(ctx, req.SlotID, lesson.LessonID); err != nil {
			// The lesson exists; the link failed. Surface the error rather
			// than silently leaving the slot open.
			s.logger.Error("lesson created but slot link failed",
				zap.String("lesson_id", lesson.LessonID),
				zap.String("slot_id", req.SlotID),
				zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("lesson created",
		zap.String("lesson_id", lesson.LessonID),
		zap.String("teacher_id", lesson.TeacherID),
		zap.String("date", lesson.Date.String()),
		zap.String("start_time", lesson.StartTime),
	)
	return s.toResponse(lesson), nil
}

// bookIntoSlot links the lesson to an open slot and closes it.
func (s *lessonService) bookIntoSlot(ctx context.Context, slotID, lessonID string) error {
	slot, err := s.repo.Slot.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		return err
	}
	if slot.Status != model.SlotOpen || slot.IsBlock {
		return ErrSlotNotBookable
	}
	slot.LinkedLessonIDs = append(slot.LinkedLessonIDs, lessonID)
	slot.Status = model.SlotClosed
	return s.repo.Slot.Update(ctx, slot)
}

// ════════════════════════════════════════════════════════════
// Cancellation & slot reopening
// ════════════════════════════════════════════════════════════

func (s *lessonService) Cancel(ctx context.Context, id string) (*dto.LessonResponse, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	if lesson.Status == model.LessonCancelled || lesson.Status == model.LessonCompleted {
		return nil, ErrLessonNotCancelable
	}

	lesson.Status = model.LessonCancelled
	if err := s.repo.Lesson.Update(ctx, lesson); err != nil {
		return nil, err
	}

	if err := s.unlinkAndReopen(ctx, lesson.LessonID); err != nil {
		// The cancellation stands; the reopening failed and is retryable.
		s.logger.Error("lesson cancelled but slot reopening failed",
			zap.String("lesson_id", lesson.LessonID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("lesson cancelled", zap.String("lesson_id", lesson.LessonID))
	return s.toResponse(lesson), nil
}

// unlinkAndReopen removes the lesson from every slot link set. A closed,
// non-blocked slot whose link set becomes empty reopens for booking.
func (s *lessonService) unlinkAndReopen(ctx context.Context, lessonID string) error {
	slots, err := s.repo.Slot.ListLinkingLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	for i := range slots {
		slot := &slots[i]
		slot.LinkedLessonIDs = slot.LinkedLessonIDs.Without(lessonID)
		if len(slot.LinkedLessonIDs) == 0 && slot.Status == model.SlotClosed && !slot.IsBlock {
			slot.Status = model.SlotOpen
			s.logger.Info("slot reopened after cancellation",
				zap.String("slot_id", slot.SlotID),
				zap.String("natural_key", slot.NaturalKey))
		}
		if err := s.repo.Slot.Update(ctx, slot); err != nil {
			return err
		}
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// Fixed-lesson materialization
// ════════════════════════════════════════════════════════════

func (s *lessonService) MaterializeFixedLessons(ctx context.Context, windowStart time.Time, days int) (int, int, error) {
	templates, err := s.repo.Template.ListActive(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrSyncLoadFailed, err)
	}

	created, skipped := 0, 0
	for i := range templates {
		tpl := &templates[i]
		if tpl.Type != model.TemplateFixedLesson {
			continue
		}
		if !templateComplete(tpl) || tpl.StudentName == nil || *tpl.StudentName == "" {
			s.logger.Warn("skipping incomplete fixed-lesson template",
				zap.String("template_id", tpl.TemplateID))
			continue
		}

		for _, occ := range templateOccurrences(tpl, windowStart, days, s.loc) {
			date := interval.FormatDate(occ)
			exists, err := s.repo.Lesson.ExistsAt(ctx, tpl.TeacherID, date, tpl.StartTime)
			if err != nil {
				return created, skipped, err
			}
			if exists {
				skipped++
				continue
			}
			minutes := tpl.DurationMinutes
			if minutes <= 0 {
				minutes = defaultLessonMinutes
			}
			lesson := &model.Lesson{
				TeacherID:       tpl.TeacherID,
				StudentName:     *tpl.StudentName,
				Date:            model.DateOnly(date),
				StartTime:       tpl.StartTime,
				DurationMinutes: minutes,
				Status:          model.LessonScheduled,
			}
			if err := s.repo.Lesson.Create(ctx, lesson); err != nil {
				return created, skipped, err
			}
			created++
		}
	}
	return created, skipped, nil
}

// ── Queries ──

func (s *lessonService) GetByID(ctx context.Context, id string) (*dto.LessonResponse, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	return s.toResponse(lesson), nil
}

func (s *lessonService) List(ctx context.Context, req *dto.LessonListRequest) ([]dto.LessonResponse, error) {
	lessons, err := s.repo.Lesson.ListByDateRange(ctx, req.From, req.To, req.TeacherID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		out = append(out, *s.toResponse(&lessons[i]))
	}
	return out, nil
}

func (s *lessonService) toResponse(lesson *model.Lesson) *dto.LessonResponse {
	resp := &dto.LessonResponse{
		ID:              lesson.LessonID,
		TeacherID:       lesson.TeacherID,
		StudentName:     lesson.StudentName,
		Date:            lesson.Date.String(),
		StartTime:       lesson.StartTime,
		DurationMinutes: lesson.DurationMinutes,
		Status:          string(lesson.Status),
		Notes:           lesson.Notes,
		CreatedAt:       lesson.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       lesson.UpdatedAt.Format(time.RFC3339),
	}
	if r, err := interval.NewWithDuration(lesson.LessonID, interval.SourceLesson,
		lesson.Date.String(), lesson.StartTime, lesson.DurationMinutes, "", s.loc); err == nil {
		resp.EndTime = interval.FormatClock(r.End)
	}
	if lesson.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{ID: lesson.Teacher.TeacherID, Name: lesson.Teacher.Name}
	}
	return resp
}
