package bench

import "github.com/hoaproject/Bench/internal/derrors"

// Errors returned by marks and by report generation. They are aliases so that
// callers can match them with errors.As without importing internal packages.
type (
	AlreadyStartedError = derrors.AlreadyStartedError
	NotStartedError     = derrors.NotStartedError
	AlreadyPausedError  = derrors.AlreadyPausedError
	InvalidWidthError   = derrors.InvalidWidthError
)
