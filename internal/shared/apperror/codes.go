package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	// CodeInvalidState marks sequencing violations in the attendance
	// lifecycle (break with no open clock-in, time-in against a
	// completed day). Reported, never fatal.
	CodeInvalidState = "INVALID_STATE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
