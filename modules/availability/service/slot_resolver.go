package service

import (
	"fmt"
	"sort"
	"time"

	"bookmeet-api/core/constants"
	"bookmeet-api/modules/availability/entity"
)

// SlotResolver expands weekly availability rules into concrete candidate
// slots for a calendar date. It is pure: given the same rules and inputs it
// always produces the same slots, and it performs no I/O.
type SlotResolver struct {
	// Location in which rule clock times are interpreted. Rules carry a
	// timezone label for display but a single location governs resolution.
	Location *time.Location
}

// NewSlotResolver creates a resolver for the given location
func NewSlotResolver(loc *time.Location) *SlotResolver {
	if loc == nil {
		loc = time.UTC
	}
	return &SlotResolver{Location: loc}
}

// ParseDate parses a YYYY-MM-DD calendar date in the resolver's location.
func (r *SlotResolver) ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat, date, r.Location)
}

// Resolve generates all candidate slots of durationMinutes on the given date
// from the rules matching that date's weekday.
//
// Within one rule the walk starts at the rule's start time and advances in
// fixed duration-sized steps; a slot is emitted only when its end stays
// inside the rule window, so trailing partial slots are dropped. Slots from
// all matching rules are combined, sorted by instant, and de-duplicated
// (overlapping rules can yield the same instant twice).
func (r *SlotResolver) Resolve(date time.Time, durationMinutes int, rules []entity.AvailabilityRule) ([]entity.TimeSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}

	dayOfWeek := int(date.Weekday())
	duration := time.Duration(durationMinutes) * time.Minute

	slots := []entity.TimeSlot{}

	for _, rule := range rules {
		if rule.DayOfWeek != dayOfWeek {
			continue
		}

		windowStart, err := r.combine(date, rule.StartTime)
		if err != nil {
			return nil, fmt.Errorf("rule %d has malformed start time %q: %w", rule.ID, rule.StartTime, err)
		}
		windowEnd, err := r.combine(date, rule.EndTime)
		if err != nil {
			return nil, fmt.Errorf("rule %d has malformed end time %q: %w", rule.ID, rule.EndTime, err)
		}
		if !windowStart.Before(windowEnd) {
			return nil, fmt.Errorf("rule %d window is empty: %s >= %s", rule.ID, rule.StartTime, rule.EndTime)
		}

		for current := windowStart; !current.Add(duration).After(windowEnd); current = current.Add(duration) {
			slots = append(slots, entity.TimeSlot{
				Date:            date.Format(constants.DateFormat),
				Time:            current.Format(constants.ClockTimeFormat),
				Start:           current.UTC(),
				DurationMinutes: durationMinutes,
				Available:       true,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return dedupeSlots(slots), nil
}

// combine builds the absolute instant for a clock time on a calendar date.
func (r *SlotResolver) combine(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(constants.ClockTimeFormat, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, r.Location), nil
}

// dedupeSlots drops slots sharing an instant with their predecessor. Input
// must be sorted by instant.
func dedupeSlots(slots []entity.TimeSlot) []entity.TimeSlot {
	if len(slots) < 2 {
		return slots
	}

	deduped := slots[:1]
	for _, slot := range slots[1:] {
		if !slot.Start.Equal(deduped[len(deduped)-1].Start) {
			deduped = append(deduped, slot)
		}
	}
	return deduped
}
