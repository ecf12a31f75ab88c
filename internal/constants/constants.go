package constants

import "time"

const (
	RequestTimeout     = 30 * time.Second
	DatabaseTimeout    = 5 * time.Second
	ExternalAPITimeout = 10 * time.Second
	ShutdownTimeout    = 5 * time.Second
)

// SQLite allows a single writer, so the pool only needs to cover concurrent
// readers plus the recompute fan-out.
const (
	DBMaxOpenConns    = 16
	DBMaxIdleConns    = 4
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBusyTimeoutMs   = 5000
)

// Draft rules.
const (
	TeamBudget            = 4500
	TeamSize              = 7
	CaptainMultiplier     = 2.0
	ViceCaptainMultiplier = 1.5
)

// RecomputeConcurrency bounds how many teams are re-aggregated at once after
// a scoring update.
const RecomputeConcurrency = 8
