package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bookmeet-api/core/database"
	"bookmeet-api/core/logger"
	"bookmeet-api/modules/booking/entity"

	"github.com/lib/pq"
)

// ErrSlotTaken is returned when an insert collides with the partial unique
// index on (meeting_type_id, start_time) for non-cancelled bookings.
var ErrSlotTaken = errors.New("slot already booked")

// BookingRepository handles booking database operations
type BookingRepository struct {
	DB database.Database
}

// NewBookingRepository creates a new repository instance
func NewBookingRepository(db database.Database) *BookingRepository {
	return &BookingRepository{DB: db}
}

// BookingRepositoryInterface defines the repository contract
type BookingRepositoryInterface interface {
	Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	GetByID(ctx context.Context, id int) (*entity.Booking, error)
	GetByReference(ctx context.Context, reference string) (*entity.Booking, error)
	GetAll(ctx context.Context) ([]entity.Booking, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]entity.Booking, error)
	UpdateStatus(ctx context.Context, id int, status entity.BookingStatus) error
	Delete(ctx context.Context, id int) error
	MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

func (r *BookingRepository) Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	query := `
		INSERT INTO bookings (meeting_type_id, reference, start_time, attendee_name, attendee_email, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, meeting_type_id, reference, start_time, attendee_name, attendee_email, message, status, created_at, updated_at
	`

	var created entity.Booking
	err := r.DB.GetContext(ctx, &created, query,
		booking.MeetingTypeID, booking.Reference, booking.StartTime,
		booking.AttendeeName, booking.AttendeeEmail, booking.Message, booking.Status)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrSlotTaken
		}
		logger.Error("BookingRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int) (*entity.Booking, error) {
	query := `
		SELECT id, meeting_type_id, reference, start_time, attendee_name, attendee_email, message, status, created_at, updated_at
		FROM bookings WHERE id = $1
	`

	var booking entity.Booking
	err := r.DB.GetContext(ctx, &booking, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByID", err)
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := `
		SELECT id, meeting_type_id, reference, start_time, attendee_name, attendee_email, message, status, created_at, updated_at
		FROM bookings WHERE reference = $1
	`

	var booking entity.Booking
	err := r.DB.GetContext(ctx, &booking, query, reference)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByReference", err)
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepository) GetAll(ctx context.Context) ([]entity.Booking, error) {
	query := `
		SELECT id, meeting_type_id, reference, start_time, attendee_name, attendee_email, message, status, created_at, updated_at
		FROM bookings
		ORDER BY start_time DESC
	`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query)
	if err != nil {
		logger.Error("BookingRepository:GetAll", err)
		return nil, err
	}

	return bookings, nil
}

// GetByDateRange returns bookings of every status whose instant falls in
// [start, end). Status filtering is left to the conflict filter, which is the
// single place that decides what occupies a slot.
func (r *BookingRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]entity.Booking, error) {
	query := `
		SELECT id, meeting_type_id, reference, start_time, attendee_name, attendee_email, message, status, created_at, updated_at
		FROM bookings
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time ASC
	`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query, start, end)
	if err != nil {
		logger.Error("BookingRepository:GetByDateRange", err)
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		logger.Error("BookingRepository:UpdateStatus", err)
		return err
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM bookings WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("BookingRepository:Delete", err)
		return err
	}
	return nil
}

// MarkCompletedBefore transitions confirmed bookings that ended before the
// cutoff to completed. Run periodically by the background worker.
func (r *BookingRepository) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE bookings b
		SET status = 'completed', updated_at = NOW()
		FROM meeting_types mt
		WHERE b.meeting_type_id = mt.id
		  AND b.status = 'confirmed'
		  AND b.start_time + (mt.duration_minutes * INTERVAL '1 minute') < $1
	`

	res, err := r.DB.SQLx().ExecContext(ctx, query, cutoff)
	if err != nil {
		logger.Error("BookingRepository:MarkCompletedBefore", err)
		return 0, err
	}

	affected, _ := res.RowsAffected()
	return affected, nil
}
