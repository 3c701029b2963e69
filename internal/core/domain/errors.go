package domain

import "errors"

// Authentication / authorization.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
	ErrWrongIssuer        = errors.New("token issuer mismatch")
	ErrWrongAudience      = errors.New("token audience mismatch")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Lookups.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrJobNotFound  = errors.New("job not found")
	ErrFileNotFound = errors.New("file not found")
)

// Conflicts.
var (
	ErrUserExists     = errors.New("user already exists")
	ErrAlreadyApplied = errors.New("already applied to this job")
)

// Upload policy violations.
var (
	ErrUnknownField    = errors.New("unknown upload field")
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidFileType = errors.New("file type not allowed")
	ErrInvalidFilename = errors.New("invalid filename")
)

// Infrastructure failures. Details are logged, never sent to clients.
var (
	ErrPersistenceFailed = errors.New("persistence failed")
	ErrStorageFailed     = errors.New("storage failed")
)
