package grievance

import "errors"

// Failure taxonomy for store operations. Handlers map these to HTTP statuses;
// anything else bubbling up from the storage layer is treated as the store
// being unavailable.
var (
	ErrValidation          = errors.New("validation failure")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrAuthFailure         = errors.New("invalid credentials")
	ErrNotFound            = errors.New("not found")
	ErrAlreadySubmitted    = errors.New("survey already submitted")
	ErrRecoveryUnavailable = errors.New("password recovery unavailable for hashed accounts")
)
