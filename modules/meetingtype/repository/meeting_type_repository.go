package repository

import (
	"context"
	"database/sql"

	"bookmeet-api/core/database"
	"bookmeet-api/core/logger"
	"bookmeet-api/modules/meetingtype/entity"

	"github.com/lib/pq"
)

// MeetingTypeRepository handles meeting type database operations
type MeetingTypeRepository struct {
	DB database.Database
}

// NewMeetingTypeRepository creates a new repository instance
func NewMeetingTypeRepository(db database.Database) *MeetingTypeRepository {
	return &MeetingTypeRepository{DB: db}
}

// MeetingTypeRepositoryInterface defines the repository contract
type MeetingTypeRepositoryInterface interface {
	Create(ctx context.Context, mt *entity.MeetingType) (*entity.MeetingType, error)
	GetByID(ctx context.Context, id int) (*entity.MeetingType, error)
	GetBySlug(ctx context.Context, slug string) (*entity.MeetingType, error)
	GetAll(ctx context.Context) ([]entity.MeetingType, error)
	Update(ctx context.Context, mt *entity.MeetingType) error
	Delete(ctx context.Context, id int) error
}

// IsUniqueViolation reports whether err is a Postgres unique constraint error.
func IsUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

func (r *MeetingTypeRepository) Create(ctx context.Context, mt *entity.MeetingType) (*entity.MeetingType, error) {
	query := `
		INSERT INTO meeting_types (title, slug, duration_minutes, buffer_before, buffer_after, description, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, slug, duration_minutes, buffer_before, buffer_after, description, color, created_at, updated_at
	`

	var created entity.MeetingType
	err := r.DB.GetContext(ctx, &created, query,
		mt.Title, mt.Slug, mt.DurationMinutes, mt.BufferBefore, mt.BufferAfter, mt.Description, mt.Color)

	if err != nil {
		logger.Error("MeetingTypeRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *MeetingTypeRepository) GetByID(ctx context.Context, id int) (*entity.MeetingType, error) {
	query := `
		SELECT id, title, slug, duration_minutes, buffer_before, buffer_after, description, color, created_at, updated_at
		FROM meeting_types WHERE id = $1
	`

	var mt entity.MeetingType
	err := r.DB.GetContext(ctx, &mt, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingTypeRepository:GetByID", err)
		return nil, err
	}

	return &mt, nil
}

func (r *MeetingTypeRepository) GetBySlug(ctx context.Context, slug string) (*entity.MeetingType, error) {
	query := `
		SELECT id, title, slug, duration_minutes, buffer_before, buffer_after, description, color, created_at, updated_at
		FROM meeting_types WHERE slug = $1
	`

	var mt entity.MeetingType
	err := r.DB.GetContext(ctx, &mt, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingTypeRepository:GetBySlug", err)
		return nil, err
	}

	return &mt, nil
}

func (r *MeetingTypeRepository) GetAll(ctx context.Context) ([]entity.MeetingType, error) {
	query := `
		SELECT id, title, slug, duration_minutes, buffer_before, buffer_after, description, color, created_at, updated_at
		FROM meeting_types
		ORDER BY created_at ASC
	`

	var types []entity.MeetingType
	err := r.DB.SelectContext(ctx, &types, query)
	if err != nil {
		logger.Error("MeetingTypeRepository:GetAll", err)
		return nil, err
	}

	return types, nil
}

func (r *MeetingTypeRepository) Update(ctx context.Context, mt *entity.MeetingType) error {
	query := `
		UPDATE meeting_types
		SET title = $2, slug = $3, duration_minutes = $4, buffer_before = $5, buffer_after = $6,
		    description = $7, color = $8, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		mt.ID, mt.Title, mt.Slug, mt.DurationMinutes, mt.BufferBefore, mt.BufferAfter, mt.Description, mt.Color)

	if err != nil {
		logger.Error("MeetingTypeRepository:Update", err)
		return err
	}

	return nil
}

func (r *MeetingTypeRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM meeting_types WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("MeetingTypeRepository:Delete", err)
		return err
	}
	return nil
}
