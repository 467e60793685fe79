package entity

import "time"

// MeetingType defines a bookable meeting offering: how long it runs and how
// much padding the organizer wants around it. Buffers are stored per type and
// applied during conflict filtering when buffer enforcement is enabled.
type MeetingType struct {
	ID              int       `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Slug            string    `db:"slug" json:"slug"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	BufferBefore    int       `db:"buffer_before" json:"buffer_before"`
	BufferAfter     int       `db:"buffer_after" json:"buffer_after"`
	Description     string    `db:"description" json:"description"`
	Color           string    `db:"color" json:"color"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
