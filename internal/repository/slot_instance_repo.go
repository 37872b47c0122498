package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
	apperrors "github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/errors"
)

// SlotInstanceRepository slot inventory data access. Instances are never
// hard-deleted by the sync engine; deactivation is a status update.
type SlotInstanceRepository interface {
	Create(ctx context.Context, slot *model.SlotInstance) error
	GetByID(ctx context.Context, id string) (*model.SlotInstance, error)
	GetByNaturalKey(ctx context.Context, key string) (*model.SlotInstance, error)
	ListByDateRange(ctx context.Context, from, to string, teacherID *string) ([]model.SlotInstance, error)
	ListOpenByDateRange(ctx context.Context, from, to string, teacherID *string) ([]model.SlotInstance, error)
	// ListLinkingLesson returns every instance whose link set contains lessonID.
	ListLinkingLesson(ctx context.Context, lessonID string) ([]model.SlotInstance, error)
	// Update saves the instance with an optimistic-lock version check.
	Update(ctx context.Context, slot *model.SlotInstance) error
}

type slotInstanceRepo struct {
	db *gorm.DB
}

// NewSlotInstanceRepo creates a SlotInstanceRepository instance.
func NewSlotInstanceRepo(db *gorm.DB) SlotInstanceRepository {
	return &slotInstanceRepo{db: db}
}

func (r *slotInstanceRepo) Create(ctx context.Context, slot *model.SlotInstance) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *slotInstanceRepo) GetByID(ctx context.Context, id string) (*model.SlotInstance, error) {
	var slot model.SlotInstance
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotInstanceRepo) GetByNaturalKey(ctx context.Context, key string) (*model.SlotInstance, error) {
	var slot model.SlotInstance
	err := r.db.WithContext(ctx).
		Where("natural_key = ?", key).
		Where("status <> ?", model.SlotCanceled).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotInstanceRepo) ListByDateRange(ctx context.Context, from, to string, teacherID *string) ([]model.SlotInstance, error) {
	var slots []model.SlotInstance
	db := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to)
	if teacherID != nil && *teacherID != "" {
		db = db.Where("teacher_id = ?", *teacherID)
	}
	err := db.Preload("Teacher").
		Order("date ASC, start_time ASC").
		Find(&slots).Error
	return slots, err
}

func (r *slotInstanceRepo) ListOpenByDateRange(ctx context.Context, from, to string, teacherID *string) ([]model.SlotInstance, error) {
	var slots []model.SlotInstance
	db := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Where("status = ?", model.SlotOpen)
	if teacherID != nil && *teacherID != "" {
		db = db.Where("teacher_id = ?", *teacherID)
	}
	err := db.Order("date ASC, start_time ASC").Find(&slots).Error
	return slots, err
}

func (r *slotInstanceRepo) ListLinkingLesson(ctx context.Context, lessonID string) ([]model.SlotInstance, error) {
	var slots []model.SlotInstance
	err := r.db.WithContext(ctx).
		Where("? = ANY(linked_lesson_ids)", lessonID).
		Find(&slots).Error
	return slots, err
}

// Update applies the full instance guarded by its version column. A second
// writer racing on the same row loses with ErrOptimisticLock instead of
// silently overwriting.
func (r *slotInstanceRepo) Update(ctx context.Context, slot *model.SlotInstance) error {
	currentVersion := slot.Version
	slot.Version++

	res := r.db.WithContext(ctx).
		Model(&model.SlotInstance{}).
		Where("slot_id = ? AND version = ?", slot.SlotID, currentVersion).
		Select("*").
		Omit("slot_id", "created_at", "created_by").
		Updates(slot)
	if res.Error != nil {
		slot.Version = currentVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		slot.Version = currentVersion
		return apperrors.ErrOptimisticLock
	}
	return nil
}
