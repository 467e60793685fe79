package dto

import (
	"time"

	"bookmeet-api/modules/meetingtype/entity"
)

// ===================== Request DTOs =====================

// CreateMeetingTypeRequest for creating a new meeting type
type CreateMeetingTypeRequest struct {
	Title           string `json:"title" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=5,max=480"`
	BufferBefore    int    `json:"buffer_before" validate:"min=0"`
	BufferAfter     int    `json:"buffer_after" validate:"min=0"`
	Description     string `json:"description"`
	Color           string `json:"color"`
}

// UpdateMeetingTypeRequest for updating a meeting type. Zero values leave the
// field unchanged, matching the partial-update behavior of the settings page.
type UpdateMeetingTypeRequest struct {
	Title           string  `json:"title"`
	DurationMinutes int     `json:"duration_minutes"`
	BufferBefore    *int    `json:"buffer_before"`
	BufferAfter     *int    `json:"buffer_after"`
	Description     *string `json:"description"`
	Color           string  `json:"color"`
}

// ===================== Response DTOs =====================

// MeetingTypeResponse for meeting type details
type MeetingTypeResponse struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	DurationMinutes int       `json:"duration_minutes"`
	BufferBefore    int       `json:"buffer_before"`
	BufferAfter     int       `json:"buffer_after"`
	Description     string    `json:"description,omitempty"`
	Color           string    `json:"color"`
	CreatedAt       time.Time `json:"created_at"`
}

// ===================== Mapper Functions =====================

// ToMeetingTypeResponse maps entity to DTO
func ToMeetingTypeResponse(mt *entity.MeetingType) *MeetingTypeResponse {
	return &MeetingTypeResponse{
		ID:              mt.ID,
		Title:           mt.Title,
		Slug:            mt.Slug,
		DurationMinutes: mt.DurationMinutes,
		BufferBefore:    mt.BufferBefore,
		BufferAfter:     mt.BufferAfter,
		Description:     mt.Description,
		Color:           mt.Color,
		CreatedAt:       mt.CreatedAt,
	}
}
