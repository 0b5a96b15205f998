package constants

// ContextKeyUserID is the session and gin context key holding the
// authenticated user's ID.
const ContextKeyUserID = "user_id"

// SessionCookieName is the cookie carrying the session ID.
const SessionCookieName = "shiftcal_session"

const (
	// MinPasswordLength is the minimum accepted password length at signup.
	MinPasswordLength = 8

	// MaxShiftTypesPerTemplate caps the number of live shift types a
	// template may hold.
	MaxShiftTypesPerTemplate = 10

	// MaxBatchUpsertSize caps the number of entries in one batch work-shift
	// upsert request.
	MaxBatchUpsertSize = 100
)
