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
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/redis"
)

// TeacherService teacher registry.
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.TeacherResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
}

type teacherService struct {
	repo     *repository.Repository
	cache    *redis.Client // nil when redis is unavailable
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTeacherService creates a TeacherService instance. cache may be nil.
func NewTeacherService(repo *repository.Repository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher := &model.Teacher{
		Name:     req.Name,
		Email:    req.Email,
		IsActive: true,
	}
	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		s.logger.Error("failed to create teacher", zap.Error(err))
		return nil, err
	}
	s.logger.Info("teacher created",
		zap.String("teacher_id", teacher.TeacherID), zap.String("name", teacher.Name))
	return toTeacherResponse(teacher), nil
}

func (s *teacherService) GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return toTeacherResponse(teacher), nil
}

func (s *teacherService) List(ctx context.Context, includeInactive bool) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		out = append(out, *toTeacherResponse(&teachers[i]))
	}
	return out, nil
}

func (s *teacherService) Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.Email != nil {
		teacher.Email = *req.Email
	}
	if req.IsActive != nil {
		teacher.IsActive = *req.IsActive
	}

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		return nil, err
	}

	// Renaming invalidates-by-overwrite; expiry handles everything else.
	if s.cache != nil && req.Name != nil {
		if err := s.cache.CacheTeacherName(ctx, teacher.TeacherID, teacher.Name, s.cacheTTL); err != nil {
			s.logger.Warn("failed to refresh cached teacher name", zap.Error(err))
		}
	}

	s.logger.Info("teacher updated", zap.String("teacher_id", id))
	return toTeacherResponse(teacher), nil
}

func toTeacherResponse(t *model.Teacher) *dto.TeacherResponse {
	return &dto.TeacherResponse{
		ID:        t.TeacherID,
		Name:      t.Name,
		Email:     t.Email,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
}
