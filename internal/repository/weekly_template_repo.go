package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
)

// WeeklyTemplateRepository weekly availability template data access.
type WeeklyTemplateRepository interface {
	Create(ctx context.Context, tpl *model.WeeklyTemplate) error
	GetByID(ctx context.Context, id string) (*model.WeeklyTemplate, error)
	// ListActive returns active templates, optionally filtered by teacher.
	ListActive(ctx context.Context, teacherID *string) ([]model.WeeklyTemplate, error)
	List(ctx context.Context, teacherID *string, includeInactive bool) ([]model.WeeklyTemplate, error)
	Update(ctx context.Context, tpl *model.WeeklyTemplate) error
	Deactivate(ctx context.Context, id string, updatedBy string) error
}

type weeklyTemplateRepo struct {
	db *gorm.DB
}

// NewWeeklyTemplateRepo creates a WeeklyTemplateRepository instance.
func NewWeeklyTemplateRepo(db *gorm.DB) WeeklyTemplateRepository {
	return &weeklyTemplateRepo{db: db}
}

func (r *weeklyTemplateRepo) Create(ctx context.Context, tpl *model.WeeklyTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *weeklyTemplateRepo) GetByID(ctx context.Context, id string) (*model.WeeklyTemplate, error) {
	var tpl model.WeeklyTemplate
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("template_id = ?", id).
		First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *weeklyTemplateRepo) ListActive(ctx context.Context, teacherID *string) ([]model.WeeklyTemplate, error) {
	return r.List(ctx, teacherID, false)
}

func (r *weeklyTemplateRepo) List(ctx context.Context, teacherID *string, includeInactive bool) ([]model.WeeklyTemplate, error) {
	var tpls []model.WeeklyTemplate
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	if teacherID != nil && *teacherID != "" {
		db = db.Where("teacher_id = ?", *teacherID)
	}
	err := db.Preload("Teacher").
		Order("teacher_id ASC, day_of_week ASC, start_time ASC").
		Find(&tpls).Error
	return tpls, err
}

func (r *weeklyTemplateRepo) Update(ctx context.Context, tpl *model.WeeklyTemplate) error {
	return r.db.WithContext(ctx).Save(tpl).Error
}

func (r *weeklyTemplateRepo) Deactivate(ctx context.Context, id string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.WeeklyTemplate{}).
		Where("template_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
		}).Error
}
