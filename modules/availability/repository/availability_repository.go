package repository

import (
	"context"

	"bookmeet-api/core/database"
	"bookmeet-api/core/logger"
	"bookmeet-api/modules/availability/entity"
)

// AvailabilityRepository handles availability rule database operations
type AvailabilityRepository struct {
	DB database.Database
}

// NewAvailabilityRepository creates a new repository instance
func NewAvailabilityRepository(db database.Database) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

// AvailabilityRepositoryInterface defines the repository contract
type AvailabilityRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entity.AvailabilityRule, error)
	GetByDay(ctx context.Context, dayOfWeek int) ([]entity.AvailabilityRule, error)
	ReplaceAll(ctx context.Context, rules []entity.AvailabilityRule) ([]entity.AvailabilityRule, error)
}

func (r *AvailabilityRepository) GetAll(ctx context.Context) ([]entity.AvailabilityRule, error) {
	query := `
		SELECT id, day_of_week, start_time, end_time, timezone, created_at
		FROM availability_rules
		ORDER BY day_of_week, start_time
	`

	var rules []entity.AvailabilityRule
	err := r.DB.SelectContext(ctx, &rules, query)
	if err != nil {
		logger.Error("AvailabilityRepository:GetAll", err)
		return nil, err
	}

	return rules, nil
}

func (r *AvailabilityRepository) GetByDay(ctx context.Context, dayOfWeek int) ([]entity.AvailabilityRule, error) {
	query := `
		SELECT id, day_of_week, start_time, end_time, timezone, created_at
		FROM availability_rules
		WHERE day_of_week = $1
		ORDER BY id
	`

	var rules []entity.AvailabilityRule
	err := r.DB.SelectContext(ctx, &rules, query, dayOfWeek)
	if err != nil {
		logger.Error("AvailabilityRepository:GetByDay", err)
		return nil, err
	}

	return rules, nil
}

// ReplaceAll swaps the whole weekly schedule in one transaction. The settings
// surface always submits the full week.
func (r *AvailabilityRepository) ReplaceAll(ctx context.Context, rules []entity.AvailabilityRule) ([]entity.AvailabilityRule, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("AvailabilityRepository:ReplaceAll:Begin", err)
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM availability_rules`); err != nil {
		logger.Error("AvailabilityRepository:ReplaceAll:Delete", err)
		return nil, err
	}

	insert := `
		INSERT INTO availability_rules (day_of_week, start_time, end_time, timezone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, day_of_week, start_time, end_time, timezone, created_at
	`

	saved := make([]entity.AvailabilityRule, 0, len(rules))
	for _, rule := range rules {
		var created entity.AvailabilityRule
		if err := tx.GetContext(ctx, &created, insert,
			rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.Timezone); err != nil {
			logger.Error("AvailabilityRepository:ReplaceAll:Insert", err)
			return nil, err
		}
		saved = append(saved, created)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("AvailabilityRepository:ReplaceAll:Commit", err)
		return nil, err
	}

	return saved, nil
}
