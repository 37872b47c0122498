package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/dto"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/repository"
)

// ── Slot inventory errors ──

var (
	ErrSlotHasLinkedLessons = errors.New("slot has linked lessons")
	ErrSlotNotBlocked       = errors.New("slot is not a block")
)

// SlotInventoryService manual slot operations: queries, blocking a time
// range, and lock toggling. The sync engine never touches what these
// operations protect.
type SlotInventoryService interface {
	GetByID(ctx context.Context, id string) (*dto.SlotResponse, error)
	List(ctx context.Context, req *dto.SlotListRequest) ([]dto.SlotResponse, error)
	// Block creates a protected block instance over the range. Existing
	// lessons in the range are not cancelled; the block marks the range
	// unavailable for new bookings.
	Block(ctx context.Context, req *dto.BlockSlotRequest) (*dto.SlotResponse, error)
	// Unblock cancels a block instance. Only blocks can be unblocked.
	Unblock(ctx context.Context, id string) (*dto.SlotResponse, error)
	// SetLock toggles the manual sync-protection flag.
	SetLock(ctx context.Context, id string, locked bool) (*dto.SlotResponse, error)
}

type slotInventoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSlotInventoryService creates a SlotInventoryService instance.
func NewSlotInventoryService(repo *repository.Repository, logger *zap.Logger) SlotInventoryService {
	return &slotInventoryService{repo: repo, logger: logger}
}

func (s *slotInventoryService) GetByID(ctx context.Context, id string) (*dto.SlotResponse, error) {
	slot, err := s.repo.Slot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return toSlotResponse(slot), nil
}

func (s *slotInventoryService) List(ctx context.Context, req *dto.SlotListRequest) ([]dto.SlotResponse, error) {
	slots, err := s.repo.Slot.ListByDateRange(ctx, req.From, req.To, req.TeacherID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, *toSlotResponse(&slots[i]))
	}
	return out, nil
}

func (s *slotInventoryService) Block(ctx context.Context, req *dto.BlockSlotRequest) (*dto.SlotResponse, error) {
	if !validClockPair(req.StartTime, req.EndTime) {
		return nil, ErrInvalidTimeRange
	}

	slot := &model.SlotInstance{
		NaturalKey: model.SlotNaturalKey(req.TeacherID, req.Date, req.StartTime),
		TeacherID:  req.TeacherID,
		Date:       model.DateOnly(req.Date),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     model.SlotBlocked,
		IsBlock:    true,
	}
	if err := s.repo.Slot.Create(ctx, slot); err != nil {
		s.logger.Error("failed to create block", zap.Error(err))
		return nil, err
	}

	s.logger.Info("time range blocked",
		zap.String("slot_id", slot.SlotID),
		zap.String("teacher_id", req.TeacherID),
		zap.String("date", req.Date),
	)
	return toSlotResponse(slot), nil
}

func (s *slotInventoryService) Unblock(ctx context.Context, id string) (*dto.SlotResponse, error) {
	slot, err := s.repo.Slot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	if !slot.IsBlock {
		return nil, ErrSlotNotBlocked
	}
	if slot.HasLinkedLessons() {
		// Staff sometimes pin a lesson onto a block they created by hand.
		// Those lessons must be cancelled or moved before the block goes.
		return nil, ErrSlotHasLinkedLessons
	}

	slot.IsBlock = false
	slot.Status = model.SlotCanceled
	if err := s.repo.Slot.Update(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("block removed", zap.String("slot_id", id))
	return toSlotResponse(slot), nil
}

func (s *slotInventoryService) SetLock(ctx context.Context, id string, locked bool) (*dto.SlotResponse, error) {
	slot, err := s.repo.Slot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	slot.IsLocked = locked
	if err := s.repo.Slot.Update(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("slot lock changed",
		zap.String("slot_id", id), zap.Bool("locked", locked))
	return toSlotResponse(slot), nil
}

func toSlotResponse(slot *model.SlotInstance) *dto.SlotResponse {
	resp := &dto.SlotResponse{
		ID:                    slot.SlotID,
		NaturalKey:            slot.NaturalKey,
		TeacherID:             slot.TeacherID,
		Date:                  slot.Date.String(),
		StartTime:             slot.StartTime,
		EndTime:               slot.EndTime,
		Status:                string(slot.Status),
		CreatedFromTemplateID: slot.CreatedFromTemplateID,
		IsLocked:              slot.IsLocked,
		IsBlock:               slot.IsBlock,
		LinkedLessonIDs:       slot.LinkedLessonIDs,
		CreatedAt:             slot.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             slot.UpdatedAt.Format(time.RFC3339),
	}
	if slot.Teacher != nil {
		resp.TeacherName = slot.Teacher.Name
	}
	return resp
}
