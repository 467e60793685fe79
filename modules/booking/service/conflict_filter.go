package service

import (
	"sort"
	"time"

	aventity "bookmeet-api/modules/availability/entity"
	"bookmeet-api/modules/booking/entity"
	mtentity "bookmeet-api/modules/meetingtype/entity"
)

// ConflictMode selects how a booking blocks candidate slots.
type ConflictMode string

const (
	// ConflictModeOverlap treats a booking as occupying
	// [start, start+duration) and removes every intersecting slot.
	ConflictModeOverlap ConflictMode = "overlap"
	// ConflictModeExact removes only slots whose instant equals a booking's
	// instant. This reproduces the original application's behavior, where a
	// booking one minute into a slot did not block it.
	ConflictModeExact ConflictMode = "exact"
)

// ConflictOptions configures FilterAvailable. MeetingTypes supplies the
// duration (and buffers) for each booking's meeting type; bookings whose type
// is missing from the map fall back to the slot-equality check.
type ConflictOptions struct {
	Mode           ConflictMode
	EnforceBuffers bool
	MeetingTypes   map[int]mtentity.MeetingType
}

// interval is a half-open time range [Start, End).
type interval struct {
	start time.Time
	end   time.Time
}

func (a interval) overlaps(b interval) bool {
	return a.start.Before(b.end) && a.end.After(b.start)
}

// FilterAvailable removes candidate slots that collide with existing
// bookings. Pure and order-preserving: the input slice is not mutated,
// unrelated slots keep their positions, and identical inputs always produce
// identical output. Cancelled bookings never occupy a slot.
func FilterAvailable(slots []aventity.TimeSlot, bookings []entity.Booking, opts ConflictOptions) []aventity.TimeSlot {
	if len(slots) == 0 || len(bookings) == 0 {
		return append([]aventity.TimeSlot(nil), slots...)
	}

	if opts.Mode == ConflictModeExact {
		return filterExact(slots, bookings)
	}

	occupied := occupiedIntervals(bookings, opts)

	available := make([]aventity.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		slotIv := interval{start: slot.Start, end: slot.End()}
		free := true
		for _, iv := range occupied {
			if slotIv.overlaps(iv) {
				free = false
				break
			}
		}
		if free {
			available = append(available, slot)
		}
	}

	return available
}

// filterExact is the legacy comparison: a slot is taken only when a
// non-cancelled booking sits on exactly the same instant.
func filterExact(slots []aventity.TimeSlot, bookings []entity.Booking) []aventity.TimeSlot {
	available := make([]aventity.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		taken := false
		for _, booking := range bookings {
			if booking.Occupies() && booking.StartTime.Equal(slot.Start) {
				taken = true
				break
			}
		}
		if !taken {
			available = append(available, slot)
		}
	}
	return available
}

// occupiedIntervals builds the merged set of blocked time ranges from
// non-cancelled bookings. With buffer enforcement each booking's range is
// widened by its meeting type's buffer_before and buffer_after.
func occupiedIntervals(bookings []entity.Booking, opts ConflictOptions) []interval {
	intervals := make([]interval, 0, len(bookings))

	for _, booking := range bookings {
		if !booking.Occupies() {
			continue
		}

		mt, known := opts.MeetingTypes[booking.MeetingTypeID]
		if !known {
			// No duration information: block the bare instant
			intervals = append(intervals, interval{start: booking.StartTime, end: booking.StartTime.Add(time.Minute)})
			continue
		}

		start := booking.StartTime
		end := booking.StartTime.Add(time.Duration(mt.DurationMinutes) * time.Minute)

		if opts.EnforceBuffers {
			start = start.Add(-time.Duration(mt.BufferBefore) * time.Minute)
			end = end.Add(time.Duration(mt.BufferAfter) * time.Minute)
		}

		intervals = append(intervals, interval{start: start, end: end})
	}

	return mergeIntervals(intervals)
}

// mergeIntervals collapses overlapping or adjacent intervals. Input order is
// irrelevant; output is sorted by start.
func mergeIntervals(intervals []interval) []interval {
	if len(intervals) < 2 {
		return intervals
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start.Before(intervals[j].start)
	})

	merged := []interval{intervals[0]}
	for _, current := range intervals[1:] {
		last := &merged[len(merged)-1]
		if current.start.Before(last.end) || current.start.Equal(last.end) {
			if current.end.After(last.end) {
				last.end = current.end
			}
		} else {
			merged = append(merged, current)
		}
	}

	return merged
}
