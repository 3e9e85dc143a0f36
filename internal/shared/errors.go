package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness violation (duplicate username or email).
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials indicates login failure. Unknown username and wrong
	// password both map here so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserState indicates the account exists but is not ACTIVE.
	ErrUserState = errors.New("user not active")
	// ErrUnauthenticated indicates a missing, malformed, expired or otherwise
	// unverifiable bearer token.
	ErrUnauthenticated = errors.New("could not validate credentials")
	// ErrValidation indicates a request body that failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrStorage indicates the storage collaborator failed.
	ErrStorage = errors.New("storage unavailable")
)
