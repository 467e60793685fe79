package service

import (
	"context"
	"fmt"
	"time"

	"bookmeet-api/core/cache"
	"bookmeet-api/core/constants"
	"bookmeet-api/core/errors"
	"bookmeet-api/core/logger"
	"bookmeet-api/modules/availability/dto"
	"bookmeet-api/modules/availability/entity"
	"bookmeet-api/modules/availability/repository"
)

// AvailabilityService owns the weekly schedule and slot resolution
type AvailabilityService struct {
	repo     repository.AvailabilityRepositoryInterface
	resolver *SlotResolver
	cache    cache.Cache
}

// AvailabilityServiceInterface defines the service contract
type AvailabilityServiceInterface interface {
	GetAll(ctx context.Context) (*dto.AvailabilityResponse, *errors.AppError)
	Replace(ctx context.Context, req *dto.ReplaceAvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError)
	// GenerateSlots resolves candidate slots for a calendar date. An empty
	// result with a nil error means the day simply has no availability.
	GenerateSlots(ctx context.Context, date string, durationMinutes int) ([]entity.TimeSlot, *errors.AppError)
}

// NewAvailabilityService creates a new availability service. The cache is
// optional; when present, cached slot lists are flushed on schedule changes.
func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface, loc *time.Location, c cache.Cache) AvailabilityServiceInterface {
	return &AvailabilityService{
		repo:     repo,
		resolver: NewSlotResolver(loc),
		cache:    c,
	}
}

// GetAll returns the full weekly schedule
func (s *AvailabilityService) GetAll(ctx context.Context) (*dto.AvailabilityResponse, *errors.AppError) {
	rules, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get availability", err)
	}

	resp := &dto.AvailabilityResponse{Rules: make([]dto.AvailabilityRuleDTO, 0, len(rules))}
	for _, r := range rules {
		resp.Rules = append(resp.Rules, dto.ToRuleDTO(&r))
	}
	return resp, nil
}

// Replace validates and swaps the whole weekly schedule
func (s *AvailabilityService) Replace(ctx context.Context, req *dto.ReplaceAvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError) {
	rules := make([]entity.AvailabilityRule, 0, len(req.Rules))
	for i, ruleDTO := range req.Rules {
		if appErr := validateRule(&ruleDTO); appErr != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("Rule %d: %s", i+1, appErr.Message), nil)
		}
		rule := dto.ToRuleEntity(&ruleDTO)
		if rule.Timezone == "" {
			rule.Timezone = "UTC"
		}
		rules = append(rules, rule)
	}

	saved, err := s.repo.ReplaceAll(ctx, rules)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save availability", err)
	}

	// Every cached slot list is stale once the schedule changes
	if s.cache != nil {
		if err := s.cache.InvalidateSlots(ctx, "slots:*"); err != nil {
			logger.Warn("AvailabilityService:Replace:InvalidateSlots", "error", err)
		}
	}

	logger.Info("AvailabilityService:Replace:Success", "rule_count", len(saved))

	resp := &dto.AvailabilityResponse{Rules: make([]dto.AvailabilityRuleDTO, 0, len(saved))}
	for _, r := range saved {
		resp.Rules = append(resp.Rules, dto.ToRuleDTO(&r))
	}
	return resp, nil
}

// GenerateSlots resolves candidate slots for one calendar date and duration.
// Invalid dates and non-positive durations fail fast; a day without matching
// rules yields an empty list, which is a normal outcome and distinct from a
// fetch failure.
func (s *AvailabilityService) GenerateSlots(ctx context.Context, date string, durationMinutes int) ([]entity.TimeSlot, *errors.AppError) {
	day, err := s.resolver.ParseDate(date)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Date must be in YYYY-MM-DD format", err)
	}
	if durationMinutes <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Duration must be positive", nil)
	}

	rules, err := s.repo.GetByDay(ctx, int(day.Weekday()))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to fetch availability", err)
	}
	if len(rules) == 0 {
		return []entity.TimeSlot{}, nil
	}

	slots, err := s.resolver.Resolve(day, durationMinutes, rules)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to resolve slots", err)
	}

	return slots, nil
}

// validateRule enforces the rule invariants: a valid weekday, parseable clock
// times and start < end.
func validateRule(r *dto.AvailabilityRuleDTO) *errors.AppError {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return errors.NewAppError(errors.ErrInvalidInput, "day_of_week must be between 0 (Sunday) and 6 (Saturday)", nil)
	}

	start, err := time.Parse(constants.ClockTimeFormat, r.StartTime)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "start_time must be in HH:MM format", err)
	}
	end, err := time.Parse(constants.ClockTimeFormat, r.EndTime)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "end_time must be in HH:MM format", err)
	}

	if !start.Before(end) {
		return errors.NewAppError(errors.ErrInvalidInput, "start_time must be before end_time", nil)
	}

	return nil
}
