package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Database defaults
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Auth
const (
	AccessTokenTTL   = 24 * time.Hour
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
)

// Booking rules
const (
	MinMeetingDurationMinutes = 5
	SlotCacheTTL              = 30 * time.Second
	BookingReferencePrefix    = "BK-"
)

// Time formats used across the scheduling modules.
const (
	DateFormat      = "2006-01-02"
	ClockTimeFormat = "15:04"
)
