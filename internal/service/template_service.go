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

// ── Template module errors ──

var (
	ErrTemplateNotFound     = errors.New("template not found")
	ErrTeacherNotFound      = errors.New("teacher not found")
	ErrInvalidTemplateInput = errors.New("invalid template input")
)

// WeeklyTemplateService weekly availability template management.
// Deactivating a template does not touch the inventory directly; the next
// sync pass deactivates its unprotected orphan instances.
type WeeklyTemplateService interface {
	Create(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TemplateResponse, error)
	List(ctx context.Context, req *dto.TemplateListRequest) ([]dto.TemplateResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type weeklyTemplateService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWeeklyTemplateService creates a WeeklyTemplateService instance.
func NewWeeklyTemplateService(repo *repository.Repository, logger *zap.Logger) WeeklyTemplateService {
	return &weeklyTemplateService{repo: repo, logger: logger}
}

func (s *weeklyTemplateService) Create(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	if !validClockPair(req.StartTime, req.EndTime) {
		return nil, ErrInvalidTemplateInput
	}

	tplType := model.TemplateType(req.Type)
	if tplType == "" {
		tplType = model.TemplateOpenSlot
	}
	if tplType == model.TemplateFixedLesson && (req.StudentName == nil || *req.StudentName == "") {
		return nil, ErrInvalidTemplateInput
	}

	if _, err := s.repo.Teacher.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	minutes := req.DurationMinutes
	if minutes <= 0 {
		minutes = defaultLessonMinutes
	}
	tpl := &model.WeeklyTemplate{
		TeacherID:       req.TeacherID,
		DayOfWeek:       req.DayOfWeek,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Type:            tplType,
		DurationMinutes: minutes,
		StudentName:     req.StudentName,
		IsActive:        true,
	}
	if err := s.repo.Template.Create(ctx, tpl); err != nil {
		s.logger.Error("failed to create template", zap.Error(err))
		return nil, err
	}

	s.logger.Info("template created",
		zap.String("template_id", tpl.TemplateID),
		zap.String("teacher_id", tpl.TeacherID),
		zap.Int("day_of_week", tpl.DayOfWeek),
		zap.String("type", string(tpl.Type)),
	)
	return toTemplateResponse(tpl), nil
}

func (s *weeklyTemplateService) GetByID(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	tpl, err := s.repo.Template.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

func (s *weeklyTemplateService) List(ctx context.Context, req *dto.TemplateListRequest) ([]dto.TemplateResponse, error) {
	tpls, err := s.repo.Template.List(ctx, req.TeacherID, req.IncludeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TemplateResponse, 0, len(tpls))
	for i := range tpls {
		out = append(out, *toTemplateResponse(&tpls[i]))
	}
	return out, nil
}

func (s *weeklyTemplateService) Update(ctx context.Context, id string, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	tpl, err := s.repo.Template.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	if req.DayOfWeek != nil {
		tpl.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		tpl.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		tpl.EndTime = *req.EndTime
	}
	if req.DurationMinutes != nil {
		tpl.DurationMinutes = *req.DurationMinutes
	}
	if req.StudentName != nil {
		tpl.StudentName = req.StudentName
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}

	if !validClockPair(tpl.StartTime, tpl.EndTime) {
		return nil, ErrInvalidTemplateInput
	}

	if err := s.repo.Template.Update(ctx, tpl); err != nil {
		s.logger.Error("failed to update template",
			zap.String("template_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("template updated", zap.String("template_id", id))
	return toTemplateResponse(tpl), nil
}

func (s *weeklyTemplateService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.Template.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	if err := s.repo.Template.Deactivate(ctx, id, ""); err != nil {
		return err
	}
	s.logger.Info("template deactivated", zap.String("template_id", id))
	return nil
}

// ── Helpers ──

// validClockPair checks HH:MM shape and ordering. Lexicographic comparison
// is correct for zero-padded 24h clocks.
func validClockPair(start, end string) bool {
	if _, err := time.Parse("15:04", start); err != nil {
		return false
	}
	if _, err := time.Parse("15:04", end); err != nil {
		return false
	}
	return start < end
}

func toTemplateResponse(tpl *model.WeeklyTemplate) *dto.TemplateResponse {
	resp := &dto.TemplateResponse{
		ID:              tpl.TemplateID,
		TeacherID:       tpl.TeacherID,
		DayOfWeek:       tpl.DayOfWeek,
		StartTime:       tpl.StartTime,
		EndTime:         tpl.EndTime,
		Type:            string(tpl.Type),
		DurationMinutes: tpl.DurationMinutes,
		StudentName:     tpl.StudentName,
		IsActive:        tpl.IsActive,
		CreatedAt:       tpl.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       tpl.UpdatedAt.Format(time.RFC3339),
	}
	if tpl.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{ID: tpl.Teacher.TeacherID, Name: tpl.Teacher.Name}
	}
	return resp
}
