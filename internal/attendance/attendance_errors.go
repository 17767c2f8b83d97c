package attendance

import (
	"net/http"

	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/apperror"
)

// Sequencing violations. Each is reported to the caller and logged;
// none of them stops the event-processing loop.
var (
	ErrDayComplete = apperror.New(
		apperror.CodeInvalidState,
		"day already completed, time-in ignored",
		http.StatusConflict,
	)

	ErrNoOpenClockIn = apperror.New(
		apperror.CodeInvalidState,
		"no clocked-in record for today",
		http.StatusConflict,
	)

	ErrNoOpenBreak = apperror.New(
		apperror.CodeInvalidState,
		"no on-break record for today",
		http.StatusConflict,
	)
)
