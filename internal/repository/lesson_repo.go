package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
)

// LessonRepository lesson data access. Conflict detection reads through
// ListByDateRange without any status filtering; all filtering happens in
// the conflict service.
type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	GetByID(ctx context.Context, id string) (*model.Lesson, error)
	ListByDateRange(ctx context.Context, from, to string, teacherID *string) ([]model.Lesson, error)
	// ExistsAt reports whether any non-cancelled lesson exists for the exact
	// (teacher, date, start) identity. Used by idempotent materialization.
	ExistsAt(ctx context.Context, teacherID, date, startTime string) (bool, error)
	Update(ctx context.Context, lesson *model.Lesson) error
}

type lessonRepo struct {
	db *gorm.DB
}

// NewLessonRepo creates a LessonRepository instance.
func NewLessonRepo(db *gorm.DB) LessonRepository {
	return &lessonRepo{db: db}
}

func (r *lessonRepo) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepo) GetByID(ctx context.Context, id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("lesson_id = ?", id).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) ListByDateRange(ctx context.Context, from, to string, teacherID *string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	db := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to)
	if teacherID != nil && *teacherID != "" {
		db = db.Where("teacher_id = ?", *teacherID)
	}
	err := db.Preload("Teacher").
		Order("date ASC, start_time ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) ExistsAt(ctx context.Context, teacherID, date, startTime string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Lesson{}).
		Where("teacher_id = ? AND date = ? AND start_time = ?", teacherID, date, startTime).
		Where("status NOT IN ?", []model.LessonStatus{model.LessonCancelled}).
		Count(&count).Error
	return count > 0, err
}

func (r *lessonRepo) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Save(lesson).Error
}
