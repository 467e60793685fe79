package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookmeet-api/core/errors"
	"bookmeet-api/modules/booking/entity"
	mtentity "bookmeet-api/modules/meetingtype/entity"
)

const icsTimestampFormat = "20060102T150405Z"

// BuildICS renders a calendar invite for a booking. Attendees download it
// from the confirmation page to add the meeting to their own calendar.
func BuildICS(booking *entity.Booking, mt *mtentity.MeetingType) []byte {
	start := booking.StartTime.UTC()
	end := start.Add(time.Duration(mt.DurationMinutes) * time.Minute)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//BookMeet//Booking//EN",
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@bookmeet.io", booking.Reference),
		fmt.Sprintf("DTSTAMP:%s", time.Now().UTC().Format(icsTimestampFormat)),
		fmt.Sprintf("DTSTART:%s", start.Format(icsTimestampFormat)),
		fmt.Sprintf("DTEND:%s", end.Format(icsTimestampFormat)),
		fmt.Sprintf("SUMMARY:%s with %s", escapeICS(mt.Title), escapeICS(booking.AttendeeName)),
	}
	if booking.Message != "" {
		lines = append(lines, fmt.Sprintf("DESCRIPTION:%s", escapeICS(booking.Message)))
	}
	lines = append(lines,
		"END:VEVENT",
		"END:VCALENDAR",
	)

	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

// escapeICS escapes the characters with special meaning in ICS text values.
func escapeICS(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}

// GetICS returns the invite filename and body for a booking reference.
func (s *BookingService) GetICS(ctx context.Context, reference string) (string, []byte, *errors.AppError) {
	booking, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		return "", nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get booking", err)
	}
	if booking == nil {
		return "", nil, errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}

	mt, err := s.mtRepo.GetByID(ctx, booking.MeetingTypeID)
	if err != nil || mt == nil {
		return "", nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get meeting type for booking", err)
	}

	filename := fmt.Sprintf("%s.ics", booking.Reference)
	return filename, BuildICS(booking, mt), nil
}
