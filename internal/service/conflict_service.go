package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/dto"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/repository"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/interval"
)

// ── Conflict module errors ──

var (
	// ErrConflictCheckFailed is returned when either candidate fetch fails.
	// No partial conflict list is ever returned; an incomplete candidate
	// set would produce false negatives.
	ErrConflictCheckFailed = errors.New("conflict check failed")

	ErrInvalidTimeRange = errors.New("invalid time range")
)

// ConflictError is a confirmed scheduling conflict: the proposed interval
// overlaps existing records. Distinct from ErrConflictCheckFailed so callers
// can fail closed on a confirmed conflict and decide separately what to do
// when the check itself was impossible.
type ConflictError struct {
	Conflicts []dto.ConflictItem
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("scheduling conflict with %d existing record(s)", len(e.Conflicts))
}

// ConflictService checks proposed intervals against existing lessons and
// open slots for time overlap.
type ConflictService interface {
	// Check runs the full conflict check for a booking or edit.
	Check(ctx context.Context, req *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error)
	// FindLessonConflicts checks a proposed interval against non-cancelled
	// lessons only. Used by the slot-opening guard.
	FindLessonConflicts(ctx context.Context, teacherID, date, start, end string) ([]dto.ConflictItem, error)
}

type conflictService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewConflictService creates a ConflictService instance.
func NewConflictService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ConflictService {
	return &conflictService{repo: repo, loc: loc, logger: logger}
}

// ────────────────────── Check ──────────────────────

func (s *conflictService) Check(ctx context.Context, req *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
	proposed, err := interval.New("", "", req.Date, req.Start, req.End, "", s.loc)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	if !proposed.End.After(proposed.Start) {
		return nil, ErrInvalidTimeRange
	}

	excluded := make(map[string]bool, len(req.LinkedLessonIDs)+1)
	if req.RecordID != "" {
		excluded[req.RecordID] = true
	}
	for _, id := range req.LinkedLessonIDs {
		excluded[id] = true
	}

	candidates, err := s.loadCandidates(ctx, req.TeacherID, req.Date, excluded)
	if err != nil {
		return nil, err
	}

	conflicts := collectConflicts(proposed, candidates)
	return &dto.ConflictCheckResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}, nil
}

// ────────────────────── FindLessonConflicts ──────────────────────

func (s *conflictService) FindLessonConflicts(ctx context.Context, teacherID, date, start, end string) ([]dto.ConflictItem, error) {
	proposed, err := interval.New("", "", date, start, end, "", s.loc)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}

	lessons, err := s.repo.Lesson.ListByDateRange(ctx, date, date, &teacherID)
	if err != nil {
		s.logger.Error("failed to load lesson candidates", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrConflictCheckFailed, err)
	}

	candidates := s.lessonRanges(lessons, nil)
	return collectConflicts(proposed, candidates), nil
}

// ── Internal helpers ──

// loadCandidates fetches same-day lessons and open slots and normalizes them
// into intervals. Either fetch failing fails the whole check.
func (s *conflictService) loadCandidates(ctx context.Context, teacherID, date string, excluded map[string]bool) ([]interval.Range, error) {
	lessons, err := s.repo.Lesson.ListByDateRange(ctx, date, date, &teacherID)
	if err != nil {
		s.logger.Error("failed to load lesson candidates", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrConflictCheckFailed, err)
	}

	slots, err := s.repo.Slot.ListOpenByDateRange(ctx, date, date, &teacherID)
	if err != nil {
		s.logger.Error("failed to load slot candidates", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrConflictCheckFailed, err)
	}

	candidates := s.lessonRanges(lessons, excluded)
	for i := range slots {
		slot := &slots[i]
		if excluded[slot.SlotID] {
			continue
		}
		r, err := interval.New(slot.SlotID, interval.SourceSlot,
			slot.Date.String(), slot.StartTime, slot.EndTime,
			"Open slot", s.loc)
		if err != nil {
			// Malformed inventory rows are skipped, not fatal.
			s.logger.Warn("skipping malformed slot instance",
				zap.String("slot_id", slot.SlotID), zap.Error(err))
			continue
		}
		candidates = append(candidates, r)
	}

	return candidates, nil
}

// lessonRanges normalizes lessons into intervals, dropping cancelled and
// pending-cancel records and any excluded ids.
func (s *conflictService) lessonRanges(lessons []model.Lesson, excluded map[string]bool) []interval.Range {
	out := make([]interval.Range, 0, len(lessons))
	for i := range lessons {
		lesson := &lessons[i]
		if lesson.Status.ExcludedFromConflicts() {
			continue
		}
		if excluded[lesson.LessonID] {
			continue
		}
		r, err := interval.NewWithDuration(lesson.LessonID, interval.SourceLesson,
			lesson.Date.String(), lesson.StartTime, lesson.DurationMinutes,
			fmt.Sprintf("Lesson — %s", lesson.StudentName), s.loc)
		if err != nil {
			s.logger.Warn("skipping malformed lesson record",
				zap.String("lesson_id", lesson.LessonID), zap.Error(err))
			continue
		}
		out = append(out, r)
	}
	return out
}

// collectConflicts runs the overlap predicate over every candidate and
// returns matches sorted by start ascending. Pure: identical candidate sets
// always produce identical results.
func collectConflicts(proposed interval.Range, candidates []interval.Range) []dto.ConflictItem {
	matches := make([]interval.Range, 0)
	for _, c := range candidates {
		if proposed.Overlaps(c) {
			matches = append(matches, c)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].Start.Equal(matches[j].Start) {
			return matches[i].Start.Before(matches[j].Start)
		}
		return matches[i].RecordID < matches[j].RecordID
	})

	items := make([]dto.ConflictItem, 0, len(matches))
	for _, m := range matches {
		items = append(items, dto.ConflictItem{
			Source:   string(m.Source),
			RecordID: m.RecordID,
			Start:    m.Start.Format(time.RFC3339),
			End:      m.End.Format(time.RFC3339),
			Label:    m.Label,
		})
	}
	return items
}
