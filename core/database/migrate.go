package database

import (
	"context"

	"bookmeet-api/core/logger"
)

// schema is applied on startup. Statements are idempotent so restarting the
// server against an existing database is safe.
const schema = `
CREATE TABLE IF NOT EXISTS meeting_types (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	duration_minutes INT NOT NULL CHECK (duration_minutes >= 5),
	buffer_before INT NOT NULL DEFAULT 0 CHECK (buffer_before >= 0),
	buffer_after INT NOT NULL DEFAULT 0 CHECK (buffer_after >= 0),
	description TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '#2563eb',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS availability_rules (
	id SERIAL PRIMARY KEY,
	day_of_week INT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	timezone TEXT NOT NULL DEFAULT 'UTC',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_availability_rules_day ON availability_rules (day_of_week);

CREATE TABLE IF NOT EXISTS bookings (
	id SERIAL PRIMARY KEY,
	meeting_type_id INT NOT NULL REFERENCES meeting_types(id) ON DELETE CASCADE,
	reference TEXT NOT NULL UNIQUE,
	start_time TIMESTAMPTZ NOT NULL,
	attendee_name TEXT NOT NULL,
	attendee_email TEXT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'confirmed',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_bookings_start_time ON bookings (start_time);

-- Storage-level guard against double booking: one non-cancelled booking per
-- meeting type per instant.
CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_slot_unique
	ON bookings (meeting_type_id, start_time)
	WHERE status <> 'cancelled';
`

// Migrate applies the schema.
func (d *Database) Migrate(ctx context.Context) error {
	if _, err := d.sqlx.ExecContext(ctx, schema); err != nil {
		logger.Error("Database:Migrate", "error", err)
		return err
	}
	logger.Info("Database schema up to date")
	return nil
}
