package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/config"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/repository"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/redis"
)

// Services aggregates all services behind one injection point.
type Services struct {
	Teacher  TeacherService
	Template WeeklyTemplateService
	Lesson   LessonService
	Slot     SlotInventoryService
	Conflict ConflictService
	Sync     SlotSyncService
	Rollover RolloverService
	Export   ExportService
}

// NewServices wires the service graph. cache may be nil; dependent services
// degrade to database lookups.
func NewServices(repo *repository.Repository, cache *redis.Client, syncCfg *config.SyncConfig, loc *time.Location, logger *zap.Logger) *Services {
	ttl := syncCfg.TeacherNameCacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	conflict := NewConflictService(repo, loc, logger)
	lesson := NewLessonService(repo, conflict, loc, logger)
	sync := NewSlotSyncService(repo, conflict, loc, syncCfg.DaysAhead, logger)

	return &Services{
		Teacher:  NewTeacherService(repo, cache, ttl, logger),
		Template: NewWeeklyTemplateService(repo, logger),
		Lesson:   lesson,
		Slot:     NewSlotInventoryService(repo, logger),
		Conflict: conflict,
		Sync:     sync,
		Rollover: NewRolloverService(sync, lesson, loc, logger),
		Export:   NewExportService(repo, cache, ttl, loc, logger),
	}
}
