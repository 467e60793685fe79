package entity

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusPending, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Booking is a confirmed (or otherwise tracked) reservation of one slot.
// StartTime is the absolute UTC instant of the slot; only non-cancelled
// bookings occupy their slot.
type Booking struct {
	ID            int           `db:"id" json:"id"`
	MeetingTypeID int           `db:"meeting_type_id" json:"meeting_type_id"`
	Reference     string        `db:"reference" json:"reference"`
	StartTime     time.Time     `db:"start_time" json:"start_time"`
	AttendeeName  string        `db:"attendee_name" json:"attendee_name"`
	AttendeeEmail string        `db:"attendee_email" json:"attendee_email"`
	Message       string        `db:"message" json:"message"`
	Status        BookingStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// Occupies reports whether the booking blocks its slot.
func (b *Booking) Occupies() bool {
	return b.Status != BookingStatusCancelled
}
