package service

import (
	"testing"
	"time"

	aventity "bookmeet-api/modules/availability/entity"
	"bookmeet-api/modules/booking/entity"
	mtentity "bookmeet-api/modules/meetingtype/entity"
)

var filterDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func slotAt(clock string, duration int) aventity.TimeSlot {
	t, _ := time.Parse("15:04", clock)
	start := time.Date(filterDay.Year(), filterDay.Month(), filterDay.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	return aventity.TimeSlot{
		Date:            filterDay.Format("2006-01-02"),
		Time:            clock,
		Start:           start,
		DurationMinutes: duration,
		Available:       true,
	}
}

func bookingAt(clock string, typeID int, status entity.BookingStatus) entity.Booking {
	s := slotAt(clock, 0)
	return entity.Booking{
		ID:            1,
		MeetingTypeID: typeID,
		Reference:     "BK-test001",
		StartTime:     s.Start,
		Status:        status,
	}
}

func filterTypes() map[int]mtentity.MeetingType {
	return map[int]mtentity.MeetingType{
		1: {ID: 1, Title: "Intro Call", Slug: "intro-call", DurationMinutes: 30},
		2: {ID: 2, Title: "Deep Dive", Slug: "deep-dive", DurationMinutes: 60},
		3: {ID: 3, Title: "Padded", Slug: "padded", DurationMinutes: 30, BufferBefore: 15, BufferAfter: 15},
	}
}

func remainingTimes(slots []aventity.TimeSlot) []string {
	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
	}
	return times
}

func assertRemaining(t *testing.T, got []aventity.TimeSlot, want ...string) {
	t.Helper()
	times := remainingTimes(got)
	if len(times) != len(want) {
		t.Fatalf("got %v, want %v", times, want)
	}
	for i := range want {
		if times[i] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, times, want)
		}
	}
}

func TestFilterAvailableOverlap(t *testing.T) {
	slots := []aventity.TimeSlot{slotAt("09:00", 30), slotAt("09:30", 30), slotAt("10:00", 30)}
	opts := ConflictOptions{Mode: ConflictModeOverlap, MeetingTypes: filterTypes()}

	t.Run("booked slot removed others kept", func(t *testing.T) {
		got := FilterAvailable(slots, []entity.Booking{bookingAt("09:30", 1, entity.BookingStatusConfirmed)}, opts)
		assertRemaining(t, got, "09:00", "10:00")
	})

	t.Run("long booking blocks every intersecting slot", func(t *testing.T) {
		got := FilterAvailable(slots, []entity.Booking{bookingAt("09:30", 2, entity.BookingStatusConfirmed)}, opts)
		assertRemaining(t, got, "09:00")
	})

	t.Run("cancelled booking blocks nothing", func(t *testing.T) {
		got := FilterAvailable(slots, []entity.Booking{bookingAt("09:30", 1, entity.BookingStatusCancelled)}, opts)
		assertRemaining(t, got, "09:00", "09:30", "10:00")
	})

	t.Run("pending booking still occupies", func(t *testing.T) {
		got := FilterAvailable(slots, []entity.Booking{bookingAt("09:30", 1, entity.BookingStatusPending)}, opts)
		assertRemaining(t, got, "09:00", "10:00")
	})

	t.Run("offset booking blocks the slots it straddles", func(t *testing.T) {
		b := bookingAt("09:30", 1, entity.BookingStatusConfirmed)
		b.StartTime = b.StartTime.Add(10 * time.Minute) // 09:40 to 10:10
		got := FilterAvailable(slots, []entity.Booking{b}, opts)
		assertRemaining(t, got, "09:00")
	})

	t.Run("unknown meeting type blocks its instant", func(t *testing.T) {
		got := FilterAvailable(slots, []entity.Booking{bookingAt("09:30", 99, entity.BookingStatusConfirmed)}, opts)
		assertRemaining(t, got, "09:00", "10:00")
	})
}

func TestFilterAvailableExact(t *testing.T) {
	slots := []aventity.TimeSlot{slotAt("09:00", 30), slotAt("09:30", 30)}
	opts := ConflictOptions{Mode: ConflictModeExact, MeetingTypes: filterTypes()}

	t.Run("same instant collides", func(t *testing.T) {
		got := FilterAvailable(slots, []entity.Booking{bookingAt("09:30", 1, entity.BookingStatusConfirmed)}, opts)
		assertRemaining(t, got, "09:00")
	})

	t.Run("offset booking does not collide", func(t *testing.T) {
		b := bookingAt("09:30", 1, entity.BookingStatusConfirmed)
		b.StartTime = b.StartTime.Add(time.Minute)
		got := FilterAvailable(slots, []entity.Booking{b}, opts)
		assertRemaining(t, got, "09:00", "09:30")
	})

	t.Run("cancelled booking does not collide", func(t *testing.T) {
		got := FilterAvailable(slots, []entity.Booking{bookingAt("09:30", 1, entity.BookingStatusCancelled)}, opts)
		assertRemaining(t, got, "09:00", "09:30")
	})
}

func TestFilterAvailableBuffers(t *testing.T) {
	slots := []aventity.TimeSlot{slotAt("09:00", 30), slotAt("09:30", 30), slotAt("10:00", 30), slotAt("10:30", 30)}
	booking := bookingAt("09:30", 3, entity.BookingStatusConfirmed) // 30min with 15min either side

	t.Run("buffers off", func(t *testing.T) {
		got := FilterAvailable(slots, []entity.Booking{booking},
			ConflictOptions{Mode: ConflictModeOverlap, MeetingTypes: filterTypes()})
		assertRemaining(t, got, "09:00", "10:00", "10:30")
	})

	t.Run("buffers widen the blocked range", func(t *testing.T) {
		got := FilterAvailable(slots, []entity.Booking{booking},
			ConflictOptions{Mode: ConflictModeOverlap, EnforceBuffers: true, MeetingTypes: filterTypes()})
		// blocked range is 09:15 to 10:15
		assertRemaining(t, got, "10:30")
	})
}

func TestFilterAvailableIsPure(t *testing.T) {
	slots := []aventity.TimeSlot{slotAt("09:00", 30), slotAt("09:30", 30)}
	bookings := []entity.Booking{bookingAt("09:00", 1, entity.BookingStatusConfirmed)}
	opts := ConflictOptions{Mode: ConflictModeOverlap, MeetingTypes: filterTypes()}

	first := FilterAvailable(slots, bookings, opts)
	second := FilterAvailable(slots, bookings, opts)

	if len(first) != len(second) {
		t.Fatalf("filter not stable: %d vs %d", len(first), len(second))
	}
	if slots[0].Time != "09:00" || slots[1].Time != "09:30" {
		t.Fatalf("input slice mutated: %v", remainingTimes(slots))
	}

	t.Run("no bookings returns a copy", func(t *testing.T) {
		got := FilterAvailable(slots, nil, opts)
		if len(got) != len(slots) {
			t.Fatalf("got %d slots, want %d", len(got), len(slots))
		}
		got[0].Available = false
		if !slots[0].Available {
			t.Fatal("returned slice aliases the input")
		}
	})
}

func TestMergeIntervals(t *testing.T) {
	at := func(clock string) time.Time { return slotAt(clock, 0).Start }

	intervals := []interval{
		{start: at("10:00"), end: at("10:30")},
		{start: at("09:00"), end: at("09:45")},
		{start: at("09:30"), end: at("10:00")},
	}

	merged := mergeIntervals(intervals)
	if len(merged) != 1 {
		t.Fatalf("got %d intervals, want 1: %v", len(merged), merged)
	}
	if !merged[0].start.Equal(at("09:00")) || !merged[0].end.Equal(at("10:30")) {
		t.Fatalf("merged to [%v, %v), want [09:00, 10:30)", merged[0].start, merged[0].end)
	}

	disjoint := mergeIntervals([]interval{
		{start: at("09:00"), end: at("09:30")},
		{start: at("11:00"), end: at("11:30")},
	})
	if len(disjoint) != 2 {
		t.Fatalf("disjoint intervals merged: %v", disjoint)
	}
}
