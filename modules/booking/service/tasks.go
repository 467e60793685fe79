package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookmeet-api/core/logger"
	"bookmeet-api/core/worker"

	"github.com/hibiken/asynq"
)

// HandleCompletedSweep marks confirmed bookings whose end time has passed as
// completed. Registered as a periodic task.
func (s *BookingService) HandleCompletedSweep(ctx context.Context, t *asynq.Task) error {
	n, err := s.repo.MarkCompletedBefore(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("BookingService:CompletedSweep", "error", err)
		return err
	}
	if n > 0 {
		logger.Info("BookingService:CompletedSweep", "completed", n)
	}
	return nil
}

// HandleICSUpload generates the calendar invite for a freshly created booking
// and stores it in object storage. A no-op when storage is not configured.
func (s *BookingService) HandleICSUpload(ctx context.Context, t *asynq.Task) error {
	var payload worker.ICSUploadPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid ics upload payload: %w", err)
	}

	if s.uploader == nil || !s.uploader.Enabled() {
		return nil
	}

	booking, err := s.repo.GetByID(ctx, payload.BookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		// deleted before the task ran, nothing to do
		return nil
	}

	mt, err := s.mtRepo.GetByID(ctx, booking.MeetingTypeID)
	if err != nil {
		return err
	}
	if mt == nil {
		return nil
	}

	key := fmt.Sprintf("invites/%s.ics", booking.Reference)
	url, err := s.uploader.Upload(ctx, key, "text/calendar", BuildICS(booking, mt))
	if err != nil {
		return err
	}

	logger.Info("BookingService:ICSUpload", "booking_id", booking.ID, "url", url)
	return nil
}
