package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"bookmeet-api/core/config"
	"bookmeet-api/core/errors"
	avdto "bookmeet-api/modules/availability/dto"
	aventity "bookmeet-api/modules/availability/entity"
	"bookmeet-api/modules/booking/dto"
	"bookmeet-api/modules/booking/entity"
	"bookmeet-api/modules/booking/repository"
	mtentity "bookmeet-api/modules/meetingtype/entity"
)

// fakeBookingRepo is an in-memory booking store. Create enforces the same
// single-active-booking-per-slot rule as the database's partial unique index.
type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int
	bookings []entity.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.bookings {
		if existing.MeetingTypeID == b.MeetingTypeID &&
			existing.StartTime.Equal(b.StartTime) &&
			existing.Status != entity.BookingStatusCancelled {
			return nil, repository.ErrSlotTaken
		}
	}

	f.nextID++
	saved := *b
	saved.ID = f.nextID
	saved.CreatedAt = time.Now()
	f.bookings = append(f.bookings, saved)
	return &saved, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			copied := b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) GetByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.Reference == reference {
			copied := b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) GetAll(ctx context.Context) ([]entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Booking(nil), f.bookings...), nil
}

func (f *fakeBookingRepo) GetByDateRange(ctx context.Context, start, end time.Time) ([]entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []entity.Booking
	for _, b := range f.bookings {
		if !b.StartTime.Before(start) && b.StartTime.Before(end) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return nil
		}
	}
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBookingRepo) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.bookings {
		if f.bookings[i].Status == entity.BookingStatusConfirmed && f.bookings[i].StartTime.Before(cutoff) {
			f.bookings[i].Status = entity.BookingStatusCompleted
			n++
		}
	}
	return n, nil
}

type fakeMeetingTypeRepo struct {
	types []mtentity.MeetingType
}

func (f *fakeMeetingTypeRepo) Create(ctx context.Context, mt *mtentity.MeetingType) (*mtentity.MeetingType, error) {
	return mt, nil
}

func (f *fakeMeetingTypeRepo) GetByID(ctx context.Context, id int) (*mtentity.MeetingType, error) {
	for _, mt := range f.types {
		if mt.ID == id {
			copied := mt
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMeetingTypeRepo) GetBySlug(ctx context.Context, slug string) (*mtentity.MeetingType, error) {
	for _, mt := range f.types {
		if mt.Slug == slug {
			copied := mt
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMeetingTypeRepo) GetAll(ctx context.Context) ([]mtentity.MeetingType, error) {
	return append([]mtentity.MeetingType(nil), f.types...), nil
}

func (f *fakeMeetingTypeRepo) Update(ctx context.Context, mt *mtentity.MeetingType) error { return nil }
func (f *fakeMeetingTypeRepo) Delete(ctx context.Context, id int) error                   { return nil }

// fakeAvailability serves a fixed 09:00 to 10:00 window every day.
type fakeAvailability struct{}

func (fakeAvailability) GetAll(ctx context.Context) (*avdto.AvailabilityResponse, *errors.AppError) {
	return &avdto.AvailabilityResponse{}, nil
}

func (fakeAvailability) Replace(ctx context.Context, req *avdto.ReplaceAvailabilityRequest) (*avdto.AvailabilityResponse, *errors.AppError) {
	return &avdto.AvailabilityResponse{}, nil
}

func (fakeAvailability) GenerateSlots(ctx context.Context, date string, durationMinutes int) ([]aventity.TimeSlot, *errors.AppError) {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Date must be in YYYY-MM-DD format", err)
	}

	start := day.Add(9 * time.Hour)
	end := day.Add(10 * time.Hour)
	duration := time.Duration(durationMinutes) * time.Minute

	slots := []aventity.TimeSlot{}
	for current := start; !current.Add(duration).After(end); current = current.Add(duration) {
		slots = append(slots, aventity.TimeSlot{
			Date:            date,
			Time:            current.Format("15:04"),
			Start:           current.UTC(),
			DurationMinutes: durationMinutes,
			Available:       true,
		})
	}
	return slots, nil
}

func newTestBookingService(repo *fakeBookingRepo) *BookingService {
	mtRepo := &fakeMeetingTypeRepo{types: []mtentity.MeetingType{
		{ID: 1, Title: "Intro Call", Slug: "intro-call", DurationMinutes: 30},
	}}
	return NewBookingService(
		repo, mtRepo, fakeAvailability{}, nil, nil, nil,
		config.BookingConfig{Timezone: "UTC", ConflictMode: "overlap"},
		time.UTC,
	)
}

func scheduleRequest(instant string) *dto.ScheduleRequest {
	return &dto.ScheduleRequest{
		DateTime:      instant,
		AttendeeName:  "Ada Lovelace",
		AttendeeEmail: "ada@example.com",
		Message:       "Looking forward to it",
	}
}

func TestScheduleCreatesBooking(t *testing.T) {
	ctx := context.Background()
	repo := &fakeBookingRepo{}
	svc := newTestBookingService(repo)

	booked, appErr := svc.Schedule(ctx, "intro-call", scheduleRequest("2026-09-07T09:30:00Z"))
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if booked.Status != string(entity.BookingStatusConfirmed) {
		t.Fatalf("status = %q, want confirmed", booked.Status)
	}
	if booked.Reference == "" {
		t.Fatal("booking has no reference")
	}
	if !booked.DateTime.Equal(time.Date(2026, 9, 7, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("booked instant = %v", booked.DateTime)
	}
}

func TestScheduleRejectsBadRequests(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(&fakeBookingRepo{})

	tests := []struct {
		name string
		slug string
		req  *dto.ScheduleRequest
		want errors.ErrorCode
	}{
		{
			name: "missing name",
			slug: "intro-call",
			req:  &dto.ScheduleRequest{DateTime: "2026-09-07T09:00:00Z", AttendeeEmail: "a@b.c"},
			want: errors.ErrInvalidInput,
		},
		{
			name: "bad email",
			slug: "intro-call",
			req:  &dto.ScheduleRequest{DateTime: "2026-09-07T09:00:00Z", AttendeeName: "Ada", AttendeeEmail: "nope"},
			want: errors.ErrInvalidInput,
		},
		{
			name: "malformed timestamp",
			slug: "intro-call",
			req:  scheduleRequest("next tuesday"),
			want: errors.ErrInvalidInput,
		},
		{
			name: "unknown meeting type",
			slug: "no-such-type",
			req:  scheduleRequest("2026-09-07T09:00:00Z"),
			want: errors.ErrNotFound,
		},
		{
			name: "instant outside availability",
			slug: "intro-call",
			req:  scheduleRequest("2026-09-07T15:00:00Z"),
			want: errors.ErrInvalidInput,
		},
		{
			name: "instant between slot boundaries",
			slug: "intro-call",
			req:  scheduleRequest("2026-09-07T09:10:00Z"),
			want: errors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := svc.Schedule(ctx, tt.slug, tt.req)
			if appErr == nil || appErr.Code != tt.want {
				t.Fatalf("got %v, want code %s", appErr, tt.want)
			}
		})
	}
}

func TestScheduleSameSlotTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(&fakeBookingRepo{})

	if _, appErr := svc.Schedule(ctx, "intro-call", scheduleRequest("2026-09-07T09:00:00Z")); appErr != nil {
		t.Fatalf("first booking failed: %v", appErr)
	}

	_, appErr := svc.Schedule(ctx, "intro-call", scheduleRequest("2026-09-07T09:00:00Z"))
	if appErr == nil || appErr.Code != errors.ErrBookingConflict {
		t.Fatalf("second booking: got %v, want ErrBookingConflict", appErr)
	}
}

func TestScheduleConcurrentRequestsOneWins(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(&fakeBookingRepo{})

	const attempts = 8
	results := make(chan *errors.AppError, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, appErr := svc.Schedule(ctx, "intro-call", scheduleRequest("2026-09-07T09:30:00Z"))
			results <- appErr
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for appErr := range results {
		switch {
		case appErr == nil:
			successes++
		case appErr.Code == errors.ErrBookingConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", appErr)
		}
	}

	if successes != 1 {
		t.Fatalf("got %d successful bookings, want exactly 1", successes)
	}
	if conflicts != attempts-1 {
		t.Fatalf("got %d conflicts, want %d", conflicts, attempts-1)
	}
}

func TestListSlotsExcludesBookedSlot(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(&fakeBookingRepo{})

	before, appErr := svc.ListSlots(ctx, "intro-call", "2026-09-07")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(before.Slots) != 2 {
		t.Fatalf("got %d slots before booking, want 2", len(before.Slots))
	}

	if _, appErr := svc.Schedule(ctx, "intro-call", scheduleRequest("2026-09-07T09:30:00Z")); appErr != nil {
		t.Fatalf("booking failed: %v", appErr)
	}

	after, appErr := svc.ListSlots(ctx, "intro-call", "2026-09-07")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(after.Slots) != 1 || after.Slots[0].Time != "09:00" {
		t.Fatalf("slots after booking = %+v, want only 09:00", after.Slots)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(&fakeBookingRepo{})

	booked, appErr := svc.Schedule(ctx, "intro-call", scheduleRequest("2026-09-07T09:00:00Z"))
	if appErr != nil {
		t.Fatalf("booking failed: %v", appErr)
	}

	if _, appErr := svc.UpdateStatus(ctx, booked.ID, "cancelled"); appErr != nil {
		t.Fatalf("cancel failed: %v", appErr)
	}

	if _, appErr := svc.Schedule(ctx, "intro-call", scheduleRequest("2026-09-07T09:00:00Z")); appErr != nil {
		t.Fatalf("rebooking a cancelled slot failed: %v", appErr)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(&fakeBookingRepo{})

	_, appErr := svc.UpdateStatus(ctx, 1, "postponed")
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("got %v, want ErrInvalidInput", appErr)
	}
}

func TestGetAllRangeValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(&fakeBookingRepo{})

	tests := []struct {
		name     string
		from, to string
	}{
		{"only from", "2026-09-01", ""},
		{"bad from", "yesterday", "2026-09-30"},
		{"inverted range", "2026-09-30", "2026-09-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := svc.GetAll(ctx, tt.from, tt.to)
			if appErr == nil || appErr.Code != errors.ErrInvalidInput {
				t.Fatalf("got %v, want ErrInvalidInput", appErr)
			}
		})
	}

	t.Run("inclusive end date", func(t *testing.T) {
		if _, appErr := svc.Schedule(ctx, "intro-call", scheduleRequest("2026-09-07T09:00:00Z")); appErr != nil {
			t.Fatalf("booking failed: %v", appErr)
		}

		got, appErr := svc.GetAll(ctx, "2026-09-07", "2026-09-07")
		if appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
		if len(got) != 1 {
			t.Fatalf("got %d bookings, want 1", len(got))
		}
	})
}

func TestStatsCounts(t *testing.T) {
	ctx := context.Background()
	repo := &fakeBookingRepo{}
	svc := newTestBookingService(repo)

	future := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")
	if _, appErr := svc.Schedule(ctx, "intro-call", scheduleRequest(future+"T09:00:00Z")); appErr != nil {
		t.Fatalf("booking failed: %v", appErr)
	}
	cancelled, appErr := svc.Schedule(ctx, "intro-call", scheduleRequest(future+"T09:30:00Z"))
	if appErr != nil {
		t.Fatalf("booking failed: %v", appErr)
	}
	if _, appErr := svc.UpdateStatus(ctx, cancelled.ID, "cancelled"); appErr != nil {
		t.Fatalf("cancel failed: %v", appErr)
	}

	stats, appErr := svc.Stats(ctx)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if stats.TotalBookings != 2 {
		t.Fatalf("total = %d, want 2", stats.TotalBookings)
	}
	if stats.CancelledBookings != 1 {
		t.Fatalf("cancelled = %d, want 1", stats.CancelledBookings)
	}
	if stats.UpcomingBookings != 1 {
		t.Fatalf("upcoming = %d, want 1", stats.UpcomingBookings)
	}
}

func TestCompletedSweep(t *testing.T) {
	ctx := context.Background()
	repo := &fakeBookingRepo{}
	svc := newTestBookingService(repo)

	repo.bookings = []entity.Booking{
		{ID: 1, MeetingTypeID: 1, Reference: "BK-past001", StartTime: time.Now().Add(-48 * time.Hour), Status: entity.BookingStatusConfirmed},
		{ID: 2, MeetingTypeID: 1, Reference: "BK-futr001", StartTime: time.Now().Add(48 * time.Hour), Status: entity.BookingStatusConfirmed},
	}
	repo.nextID = 2

	if err := svc.HandleCompletedSweep(ctx, nil); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	past, _ := repo.GetByID(ctx, 1)
	if past.Status != entity.BookingStatusCompleted {
		t.Fatalf("past booking status = %s, want completed", past.Status)
	}
	future, _ := repo.GetByID(ctx, 2)
	if future.Status != entity.BookingStatusConfirmed {
		t.Fatalf("future booking status = %s, want confirmed", future.Status)
	}
}
