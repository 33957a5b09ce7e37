package apperrors

import "errors"

// Failure classes shared by all repositories. Repositories never let raw
// driver errors escape: every failure is wrapped in one of these sentinels
// before it leaves the persistence layer.
var (
	// ErrDataConsistency marks a write that referenced related ids which do
	// not exist in the referenced table (SQLSTATE 23503 underneath).
	ErrDataConsistency = errors.New("data consistency violation")

	// ErrStorage marks any other database-layer failure (connectivity,
	// malformed SQL, commit failure). The cause is logged, not exposed.
	ErrStorage = errors.New("storage failure")

	// ErrResourceNotFound is raised at the service boundary when a lookup
	// returns no row. Repositories report absence as a nil result instead.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrBadRequest covers malformed client input rejected before it
	// reaches a repository.
	ErrBadRequest = errors.New("bad request")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

// CustomError carries a sentinel plus a human-readable message so callers
// can match with errors.Is while transports surface the message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the sentinel for errors.Is matching.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError wrapping the given sentinel.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// NewDataConsistencyError marks a write that referenced nonexistent ids.
func NewDataConsistencyError(message string) error {
	return &CustomError{Err: ErrDataConsistency, Message: message}
}

// NewStorageError wraps an operational database failure.
func NewStorageError(message string) error {
	return &CustomError{Err: ErrStorage, Message: message}
}

// NewResourceNotFoundError promotes a negative lookup into an error.
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}
