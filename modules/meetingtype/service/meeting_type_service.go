package service

import (
	"context"
	"fmt"

	"bookmeet-api/core/constants"
	"bookmeet-api/core/errors"
	"bookmeet-api/core/logger"
	"bookmeet-api/modules/meetingtype/dto"
	"bookmeet-api/modules/meetingtype/entity"
	"bookmeet-api/modules/meetingtype/repository"

	"github.com/gosimple/slug"
)

// MeetingTypeService handles meeting type business logic
type MeetingTypeService struct {
	repo repository.MeetingTypeRepositoryInterface
}

// MeetingTypeServiceInterface defines the service contract
type MeetingTypeServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateMeetingTypeRequest) (*dto.MeetingTypeResponse, *errors.AppError)
	GetByID(ctx context.Context, id int) (*dto.MeetingTypeResponse, *errors.AppError)
	GetBySlug(ctx context.Context, slugName string) (*dto.MeetingTypeResponse, *errors.AppError)
	GetEntityBySlug(ctx context.Context, slugName string) (*entity.MeetingType, *errors.AppError)
	GetAll(ctx context.Context) ([]dto.MeetingTypeResponse, *errors.AppError)
	Update(ctx context.Context, id int, req *dto.UpdateMeetingTypeRequest) (*dto.MeetingTypeResponse, *errors.AppError)
	Delete(ctx context.Context, id int) *errors.AppError
}

// NewMeetingTypeService creates a new meeting type service
func NewMeetingTypeService(repo repository.MeetingTypeRepositoryInterface) MeetingTypeServiceInterface {
	return &MeetingTypeService{repo: repo}
}

// Create creates a new meeting type with a slug derived from its title
func (s *MeetingTypeService) Create(ctx context.Context, req *dto.CreateMeetingTypeRequest) (*dto.MeetingTypeResponse, *errors.AppError) {
	if req.Title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Title is required", nil)
	}
	if req.DurationMinutes < constants.MinMeetingDurationMinutes {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("Duration must be at least %d minutes", constants.MinMeetingDurationMinutes), nil)
	}
	if req.BufferBefore < 0 || req.BufferAfter < 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Buffers must not be negative", nil)
	}

	mt := &entity.MeetingType{
		Title:           req.Title,
		Slug:            slug.Make(req.Title),
		DurationMinutes: req.DurationMinutes,
		BufferBefore:    req.BufferBefore,
		BufferAfter:     req.BufferAfter,
		Description:     req.Description,
		Color:           req.Color,
	}
	if mt.Color == "" {
		mt.Color = "#2563eb"
	}

	created, err := s.repo.Create(ctx, mt)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "A meeting type with this title already exists", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create meeting type", err)
	}

	logger.Info("MeetingTypeService:Create:Success", "id", created.ID, "slug", created.Slug)
	return dto.ToMeetingTypeResponse(created), nil
}

// GetByID retrieves a meeting type by ID
func (s *MeetingTypeService) GetByID(ctx context.Context, id int) (*dto.MeetingTypeResponse, *errors.AppError) {
	mt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get meeting type", err)
	}
	if mt == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Meeting type not found", nil)
	}

	return dto.ToMeetingTypeResponse(mt), nil
}

// GetBySlug retrieves a meeting type by its public slug
func (s *MeetingTypeService) GetBySlug(ctx context.Context, slugName string) (*dto.MeetingTypeResponse, *errors.AppError) {
	mt, appErr := s.GetEntityBySlug(ctx, slugName)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToMeetingTypeResponse(mt), nil
}

// GetEntityBySlug retrieves the raw entity; used by the booking module which
// needs duration and buffers for slot resolution.
func (s *MeetingTypeService) GetEntityBySlug(ctx context.Context, slugName string) (*entity.MeetingType, *errors.AppError) {
	mt, err := s.repo.GetBySlug(ctx, slugName)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get meeting type", err)
	}
	if mt == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Meeting type not found", nil)
	}
	return mt, nil
}

// GetAll retrieves all meeting types
func (s *MeetingTypeService) GetAll(ctx context.Context) ([]dto.MeetingTypeResponse, *errors.AppError) {
	types, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get meeting types", err)
	}

	result := make([]dto.MeetingTypeResponse, 0, len(types))
	for _, mt := range types {
		result = append(result, *dto.ToMeetingTypeResponse(&mt))
	}

	return result, nil
}

// Update updates a meeting type. The slug follows the title when it changes.
func (s *MeetingTypeService) Update(ctx context.Context, id int, req *dto.UpdateMeetingTypeRequest) (*dto.MeetingTypeResponse, *errors.AppError) {
	mt, err := s.repo.GetByID(ctx, id)
	if err != nil || mt == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Meeting type not found", err)
	}

	if req.Title != "" {
		mt.Title = req.Title
		mt.Slug = slug.Make(req.Title)
	}
	if req.DurationMinutes > 0 {
		if req.DurationMinutes < constants.MinMeetingDurationMinutes {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("Duration must be at least %d minutes", constants.MinMeetingDurationMinutes), nil)
		}
		mt.DurationMinutes = req.DurationMinutes
	}
	if req.BufferBefore != nil {
		if *req.BufferBefore < 0 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Buffers must not be negative", nil)
		}
		mt.BufferBefore = *req.BufferBefore
	}
	if req.BufferAfter != nil {
		if *req.BufferAfter < 0 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Buffers must not be negative", nil)
		}
		mt.BufferAfter = *req.BufferAfter
	}
	if req.Description != nil {
		mt.Description = *req.Description
	}
	if req.Color != "" {
		mt.Color = req.Color
	}

	if err := s.repo.Update(ctx, mt); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "A meeting type with this title already exists", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update meeting type", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes a meeting type and, via the schema cascade, its bookings
func (s *MeetingTypeService) Delete(ctx context.Context, id int) *errors.AppError {
	mt, err := s.repo.GetByID(ctx, id)
	if err != nil || mt == nil {
		return errors.NewAppError(errors.ErrNotFound, "Meeting type not found", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete meeting type", err)
	}

	logger.Info("MeetingTypeService:Delete:Success", "id", id)
	return nil
}
