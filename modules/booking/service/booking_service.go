package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"bookmeet-api/core/cache"
	"bookmeet-api/core/config"
	"bookmeet-api/core/constants"
	"bookmeet-api/core/errors"
	"bookmeet-api/core/logger"
	"bookmeet-api/core/storage"
	"bookmeet-api/core/utils"
	avdto "bookmeet-api/modules/availability/dto"
	avservice "bookmeet-api/modules/availability/service"
	"bookmeet-api/modules/booking/dto"
	"bookmeet-api/modules/booking/entity"
	"bookmeet-api/modules/booking/repository"
	mtentity "bookmeet-api/modules/meetingtype/entity"
	mtrepository "bookmeet-api/modules/meetingtype/repository"
)

// TaskEnqueuer is the slice of the background worker the booking service
// needs. Kept narrow so tests can stub it.
type TaskEnqueuer interface {
	EnqueueICSUpload(ctx context.Context, bookingID int) error
}

// BookingService handles slot listing, conflict-aware booking creation and
// the organizer's booking management operations.
type BookingService struct {
	repo         repository.BookingRepositoryInterface
	mtRepo       mtrepository.MeetingTypeRepositoryInterface
	availability avservice.AvailabilityServiceInterface
	cache        cache.Cache
	worker       TaskEnqueuer
	uploader     storage.Uploader
	cfg          config.BookingConfig
	location     *time.Location

	// createMu serializes booking creation so the availability re-check and
	// the insert form a single critical section (the database's partial
	// unique index is the backstop for multi-process deployments).
	createMu sync.Mutex
}

// BookingServiceInterface defines the service contract
type BookingServiceInterface interface {
	ListSlots(ctx context.Context, slug string, date string) (*dto.SlotsResponse, *errors.AppError)
	Schedule(ctx context.Context, slug string, req *dto.ScheduleRequest) (*dto.BookingResponse, *errors.AppError)
	GetAll(ctx context.Context, from, to string) ([]dto.BookingResponse, *errors.AppError)
	GetByID(ctx context.Context, id int) (*dto.BookingResponse, *errors.AppError)
	GetByReference(ctx context.Context, reference string) (*dto.BookingResponse, *errors.AppError)
	UpdateStatus(ctx context.Context, id int, status string) (*dto.BookingResponse, *errors.AppError)
	Delete(ctx context.Context, id int) *errors.AppError
	Stats(ctx context.Context) (*dto.StatsResponse, *errors.AppError)
	GetICS(ctx context.Context, reference string) (string, []byte, *errors.AppError)
}

// NewBookingService creates a new booking service
func NewBookingService(
	repo repository.BookingRepositoryInterface,
	mtRepo mtrepository.MeetingTypeRepositoryInterface,
	availability avservice.AvailabilityServiceInterface,
	c cache.Cache,
	worker TaskEnqueuer,
	uploader storage.Uploader,
	cfg config.BookingConfig,
	loc *time.Location,
) *BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingService{
		repo:         repo,
		mtRepo:       mtRepo,
		availability: availability,
		cache:        c,
		worker:       worker,
		uploader:     uploader,
		cfg:          cfg,
		location:     loc,
	}
}

// conflictOptions builds the filter options from config and the given
// meeting type lookup.
func (s *BookingService) conflictOptions(types map[int]mtentity.MeetingType) ConflictOptions {
	mode := ConflictModeOverlap
	if strings.EqualFold(s.cfg.ConflictMode, string(ConflictModeExact)) {
		mode = ConflictModeExact
	}
	return ConflictOptions{
		Mode:           mode,
		EnforceBuffers: s.cfg.EnforceBuffers,
		MeetingTypes:   types,
	}
}

// meetingTypeIndex loads all meeting types keyed by ID for duration lookups.
func (s *BookingService) meetingTypeIndex(ctx context.Context) (map[int]mtentity.MeetingType, error) {
	types, err := s.mtRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[int]mtentity.MeetingType, len(types))
	for _, mt := range types {
		index[mt.ID] = mt
	}
	return index, nil
}

// dayRange returns the UTC query window for a calendar date, padded by a day
// on each side so buffered bookings near midnight are not missed.
func (s *BookingService) dayRange(date time.Time) (time.Time, time.Time) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.location)
	return dayStart.AddDate(0, 0, -1).UTC(), dayStart.AddDate(0, 0, 2).UTC()
}

// ListSlots resolves the bookable slots for a meeting type on a date:
// candidate slots from the availability rules minus conflicts with existing
// bookings. Results are cached briefly per (slug, date).
func (s *BookingService) ListSlots(ctx context.Context, slug string, date string) (*dto.SlotsResponse, *errors.AppError) {
	key := cache.SlotsKey(slug, date)
	if s.cache != nil {
		if payload, hit, err := s.cache.GetSlots(ctx, key); err == nil && hit {
			var cached dto.SlotsResponse
			if err := json.Unmarshal([]byte(payload), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	mt, err := s.mtRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get meeting type", err)
	}
	if mt == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Meeting type not found", nil)
	}

	slots, appErr := s.availability.GenerateSlots(ctx, date, mt.DurationMinutes)
	if appErr != nil {
		return nil, appErr
	}

	resp := &dto.SlotsResponse{Date: date, Slots: make([]avdto.SlotDTO, 0, len(slots))}

	if len(slots) > 0 {
		day, parseErr := time.ParseInLocation(constants.DateFormat, date, s.location)
		if parseErr != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Date must be in YYYY-MM-DD format", parseErr)
		}

		rangeStart, rangeEnd := s.dayRange(day)
		bookings, err := s.repo.GetByDateRange(ctx, rangeStart, rangeEnd)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to fetch bookings", err)
		}

		types, err := s.meetingTypeIndex(ctx)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get meeting types", err)
		}

		for _, slot := range FilterAvailable(slots, bookings, s.conflictOptions(types)) {
			resp.Slots = append(resp.Slots, avdto.ToSlotDTO(&slot))
		}
	}

	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.cache.SetSlots(ctx, key, string(payload)); err != nil {
				logger.Warn("BookingService:ListSlots:CacheSet", "error", err)
			}
		}
	}

	return resp, nil
}

// Schedule books a slot. The availability re-check and insert run under a
// single-writer lock; the partial unique index turns any remaining race into
// a conflict error instead of a double booking.
func (s *BookingService) Schedule(ctx context.Context, slug string, req *dto.ScheduleRequest) (*dto.BookingResponse, *errors.AppError) {
	if strings.TrimSpace(req.AttendeeName) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Attendee name is required", nil)
	}
	if !strings.Contains(req.AttendeeEmail, "@") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "A valid attendee email is required", nil)
	}

	instant, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "date_time must be an RFC3339 timestamp", err)
	}
	instant = instant.UTC()

	mt, err := s.mtRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get meeting type", err)
	}
	if mt == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Meeting type not found", nil)
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	date := instant.In(s.location).Format(constants.DateFormat)

	candidates, appErr := s.availability.GenerateSlots(ctx, date, mt.DurationMinutes)
	if appErr != nil {
		return nil, appErr
	}

	offered := false
	for _, slot := range candidates {
		if slot.Start.Equal(instant) {
			offered = true
			break
		}
	}
	if !offered {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Requested time is not a bookable slot", nil)
	}

	day, _ := time.ParseInLocation(constants.DateFormat, date, s.location)
	rangeStart, rangeEnd := s.dayRange(day)
	bookings, err := s.repo.GetByDateRange(ctx, rangeStart, rangeEnd)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to fetch bookings", err)
	}

	types, err := s.meetingTypeIndex(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get meeting types", err)
	}

	stillOpen := false
	for _, slot := range FilterAvailable(candidates, bookings, s.conflictOptions(types)) {
		if slot.Start.Equal(instant) {
			stillOpen = true
			break
		}
	}
	if !stillOpen {
		return nil, errors.NewAppError(errors.ErrBookingConflict, "This slot has just been booked, please pick another time", nil)
	}

	booking := &entity.Booking{
		MeetingTypeID: mt.ID,
		Reference:     utils.GenerateBookingReference(),
		StartTime:     instant,
		AttendeeName:  strings.TrimSpace(req.AttendeeName),
		AttendeeEmail: strings.TrimSpace(req.AttendeeEmail),
		Message:       req.Message,
		Status:        entity.BookingStatusConfirmed,
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		if err == repository.ErrSlotTaken {
			return nil, errors.NewAppError(errors.ErrBookingConflict, "This slot has just been booked, please pick another time", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create booking", err)
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, cache.SlotsKey(slug, date)); err != nil {
			logger.Warn("BookingService:Schedule:CacheInvalidate", "error", err)
		}
	}

	if s.worker != nil {
		if err := s.worker.EnqueueICSUpload(ctx, created.ID); err != nil {
			logger.Warn("BookingService:Schedule:EnqueueICSUpload", "error", err, "booking_id", created.ID)
		}
	}

	logger.Info("BookingService:Schedule:Success",
		"booking_id", created.ID,
		"reference", created.Reference,
		"meeting_type", mt.Slug,
		"start_time", created.StartTime.Format(time.RFC3339),
	)

	return dto.ToBookingResponse(created), nil
}

// GetAll lists bookings, optionally restricted to a [from, to] date range.
func (s *BookingService) GetAll(ctx context.Context, from, to string) ([]dto.BookingResponse, *errors.AppError) {
	var (
		bookings []entity.Booking
		err      error
	)

	if from != "" || to != "" {
		start, end, appErr := s.parseRange(from, to)
		if appErr != nil {
			return nil, appErr
		}
		bookings, err = s.repo.GetByDateRange(ctx, start, end)
	} else {
		bookings, err = s.repo.GetAll(ctx)
	}

	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get bookings", err)
	}

	result := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *dto.ToBookingResponse(&b))
	}
	return result, nil
}

func (s *BookingService) parseRange(from, to string) (time.Time, time.Time, *errors.AppError) {
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Both from and to are required for a range query", nil)
	}

	start, err := time.ParseInLocation(constants.DateFormat, from, s.location)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "from must be in YYYY-MM-DD format", err)
	}
	end, err := time.ParseInLocation(constants.DateFormat, to, s.location)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "to must be in YYYY-MM-DD format", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "to must not be before from", nil)
	}

	// end date is inclusive
	return start.UTC(), end.AddDate(0, 0, 1).UTC(), nil
}

// GetByID retrieves one booking
func (s *BookingService) GetByID(ctx context.Context, id int) (*dto.BookingResponse, *errors.AppError) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}
	return dto.ToBookingResponse(booking), nil
}

// GetByReference retrieves one booking by its public reference
func (s *BookingService) GetByReference(ctx context.Context, reference string) (*dto.BookingResponse, *errors.AppError) {
	booking, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}
	return dto.ToBookingResponse(booking), nil
}

// UpdateStatus transitions a booking to a new status. Cancelling frees the
// slot, so the cached slot list for that day is dropped.
func (s *BookingService) UpdateStatus(ctx context.Context, id int, status string) (*dto.BookingResponse, *errors.AppError) {
	newStatus := entity.BookingStatus(status)
	if !entity.ValidStatus(newStatus) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown booking status", nil)
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update booking status", err)
	}

	if newStatus == entity.BookingStatusCancelled && s.cache != nil {
		mt, _ := s.mtRepo.GetByID(ctx, booking.MeetingTypeID)
		if mt != nil {
			date := booking.StartTime.In(s.location).Format(constants.DateFormat)
			if err := s.cache.Del(ctx, cache.SlotsKey(mt.Slug, date)); err != nil {
				logger.Warn("BookingService:UpdateStatus:CacheInvalidate", "error", err)
			}
		}
	}

	logger.Info("BookingService:UpdateStatus:Success", "booking_id", id, "status", newStatus)
	return s.GetByID(ctx, id)
}

// Delete removes a booking outright
func (s *BookingService) Delete(ctx context.Context, id int) *errors.AppError {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil || booking == nil {
		return errors.NewAppError(errors.ErrNotFound, "Booking not found", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete booking", err)
	}

	return nil
}

// Stats aggregates dashboard counts for the organizer
func (s *BookingService) Stats(ctx context.Context) (*dto.StatsResponse, *errors.AppError) {
	bookings, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get bookings", err)
	}

	now := time.Now()
	weekStart := startOfWeek(now.In(s.location))

	stats := &dto.StatsResponse{}
	for _, b := range bookings {
		stats.TotalBookings++

		switch b.Status {
		case entity.BookingStatusCancelled:
			stats.CancelledBookings++
		case entity.BookingStatusCompleted:
			stats.CompletedBookings++
		}

		if b.Status == entity.BookingStatusConfirmed && b.StartTime.After(now) {
			stats.UpcomingBookings++
		}
		if !b.StartTime.Before(weekStart) && b.StartTime.Before(weekStart.AddDate(0, 0, 7)) {
			stats.BookingsThisWeek++
		}
	}

	return stats, nil
}

// startOfWeek returns midnight of the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
