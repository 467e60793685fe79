package entity

import "time"

// AvailabilityRule is a recurring weekly window during which the organizer
// accepts meetings. DayOfWeek follows time.Weekday numbering (Sunday = 0).
// Start and end are local clock times in "HH:MM" form; the timezone is an
// opaque label and a single location is applied when rules are materialized
// into slots.
type AvailabilityRule struct {
	ID        int       `db:"id" json:"id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Timezone  string    `db:"timezone" json:"timezone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TimeSlot is a concrete dated candidate booking window derived from an
// availability rule. Slots are ephemeral: produced fresh on every resolution
// call and never persisted.
type TimeSlot struct {
	Date            string    `json:"date"`      // YYYY-MM-DD
	Time            string    `json:"time"`      // HH:MM local clock time
	Start           time.Time `json:"date_time"` // absolute UTC instant
	DurationMinutes int       `json:"duration_minutes"`
	Available       bool      `json:"available"`
}

// End returns the exclusive end instant of the slot.
func (s TimeSlot) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationMinutes) * time.Minute)
}
