package dto

import (
	"time"

	"bookmeet-api/modules/availability/entity"
)

// ===================== Request DTOs =====================

// AvailabilityRuleDTO carries one weekly window in requests and responses
type AvailabilityRuleDTO struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"` // HH:MM
	EndTime   string `json:"end_time" validate:"required"`   // HH:MM
	Timezone  string `json:"timezone"`
}

// ReplaceAvailabilityRequest replaces the whole weekly schedule. The settings
// page always saves the full week, so partial updates are not supported.
type ReplaceAvailabilityRequest struct {
	Rules []AvailabilityRuleDTO `json:"rules"`
}

// ===================== Response DTOs =====================

// AvailabilityResponse for the weekly schedule
type AvailabilityResponse struct {
	Rules []AvailabilityRuleDTO `json:"rules"`
}

// SlotDTO for a single bookable slot
type SlotDTO struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	DateTime        string `json:"date_time"` // RFC3339 UTC instant
	DurationMinutes int    `json:"duration_minutes"`
	Available       bool   `json:"available"`
}

// ===================== Mapper Functions =====================

// ToRuleDTO maps entity to DTO
func ToRuleDTO(r *entity.AvailabilityRule) AvailabilityRuleDTO {
	return AvailabilityRuleDTO{
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Timezone:  r.Timezone,
	}
}

// ToRuleEntity maps DTO to entity
func ToRuleEntity(d *AvailabilityRuleDTO) entity.AvailabilityRule {
	return entity.AvailabilityRule{
		DayOfWeek: d.DayOfWeek,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Timezone:  d.Timezone,
	}
}

// ToSlotDTO maps a resolved slot to its transport form
func ToSlotDTO(s *entity.TimeSlot) SlotDTO {
	return SlotDTO{
		Date:            s.Date,
		Time:            s.Time,
		DateTime:        s.Start.UTC().Format(time.RFC3339),
		DurationMinutes: s.DurationMinutes,
		Available:       s.Available,
	}
}
