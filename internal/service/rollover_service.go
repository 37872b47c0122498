package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/dto"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/interval"
)

// RolloverService advances the rolling booking window. Runs at the turn of
// the week: the week that just ended drops out of the window and a fresh
// week opens at the far edge.
type RolloverService interface {
	// PerformRollover opens the incoming week: one sync pass over it plus
	// fixed-lesson materialization. Idempotent: re-running on the same day
	// finds the week already populated and changes nothing.
	PerformRollover(ctx context.Context, now time.Time) (*dto.RolloverResult, error)
}

type rolloverService struct {
	sync    SlotSyncService
	lessons LessonService
	loc     *time.Location
	logger  *zap.Logger
}

// NewRolloverService creates a RolloverService instance.
func NewRolloverService(sync SlotSyncService, lessons LessonService, loc *time.Location, logger *zap.Logger) RolloverService {
	return &rolloverService{sync: sync, lessons: lessons, loc: loc, logger: logger}
}

func (s *rolloverService) PerformRollover(ctx context.Context, now time.Time) (*dto.RolloverResult, error) {
	// The window is two Sunday-aligned weeks. At rollover time the current
	// week W0 has just begun; W0-7 fell out of the window and W0+7 enters it.
	w0 := weekStart(now.In(s.loc))
	closedWeek := w0.AddDate(0, 0, -7)
	newWeek := w0.AddDate(0, 0, 7)

	s.logger.Info("rollover started",
		zap.String("closed_week_start", interval.FormatDate(closedWeek)),
		zap.String("new_week_start", interval.FormatDate(newWeek)),
	)

	syncResult, err := s.sync.Run(ctx, &dto.SlotSyncRequest{
		StartDate: interval.FormatDate(newWeek),
		DaysAhead: 7,
	})
	if err != nil {
		s.logger.Error("rollover sync failed", zap.Error(err))
		return nil, err
	}

	created, skipped, err := s.lessons.MaterializeFixedLessons(ctx, newWeek, 7)
	if err != nil {
		s.logger.Error("rollover fixed-lesson materialization failed", zap.Error(err))
		return nil, err
	}

	result := &dto.RolloverResult{
		ClosedWeekStart: interval.FormatDate(closedWeek),
		NewWeekStart:    interval.FormatDate(newWeek),
		Sync:            syncResult,
		LessonsCreated:  created,
		LessonsSkipped:  skipped,
	}

	s.logger.Info("rollover finished",
		zap.String("new_week_start", result.NewWeekStart),
		zap.Int("slots_created", syncResult.Created),
		zap.Int("lessons_created", created),
		zap.Int("lessons_skipped", skipped),
	)
	return result, nil
}
