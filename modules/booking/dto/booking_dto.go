package dto

import (
	"time"

	avdto "bookmeet-api/modules/availability/dto"
	"bookmeet-api/modules/booking/entity"
)

// ===================== Request DTOs =====================

// ScheduleRequest books a previously resolved slot on a meeting type
type ScheduleRequest struct {
	DateTime      string `json:"date_time" validate:"required"` // RFC3339, the slot's instant
	AttendeeName  string `json:"attendee_name" validate:"required"`
	AttendeeEmail string `json:"attendee_email" validate:"required,email"`
	Message       string `json:"message"`
}

// UpdateStatusRequest transitions a booking's status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ===================== Response DTOs =====================

// BookingResponse for booking details
type BookingResponse struct {
	ID            int       `json:"id"`
	MeetingTypeID int       `json:"meeting_type_id"`
	Reference     string    `json:"reference"`
	DateTime      time.Time `json:"date_time"`
	AttendeeName  string    `json:"attendee_name"`
	AttendeeEmail string    `json:"attendee_email"`
	Message       string    `json:"message,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// SlotsResponse for the public slot listing
type SlotsResponse struct {
	Date  string          `json:"date"`
	Slots []avdto.SlotDTO `json:"slots"`
}

// StatsResponse for the organizer dashboard
type StatsResponse struct {
	TotalBookings     int `json:"total_bookings"`
	UpcomingBookings  int `json:"upcoming_bookings"`
	BookingsThisWeek  int `json:"bookings_this_week"`
	CancelledBookings int `json:"cancelled_bookings"`
	CompletedBookings int `json:"completed_bookings"`
}

// ===================== Mapper Functions =====================

// ToBookingResponse maps entity to DTO
func ToBookingResponse(b *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID,
		MeetingTypeID: b.MeetingTypeID,
		Reference:     b.Reference,
		DateTime:      b.StartTime,
		AttendeeName:  b.AttendeeName,
		AttendeeEmail: b.AttendeeEmail,
		Message:       b.Message,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}
}
