package weather

import "errors"

// Error kinds. Use errors.Is to classify.
var (
	// ErrFormat marks an unparseable date, number or selection.
	ErrFormat = errors.New("format error")
	// ErrRange marks a value outside its valid domain.
	ErrRange = errors.New("range error")
	// ErrLookup marks an airport code with no ICAO mapping.
	ErrLookup = errors.New("lookup error")
	// ErrMissingFile is returned when a source file does not exist.
	ErrMissingFile = errors.New("missing file")
)

// ValidationError carries a user-facing message and the kind of failure.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// NewValidationError builds a ValidationError of the given kind.
func NewValidationError(kind error, msg string) *ValidationError {
	return &ValidationError{Kind: kind, Message: msg}
}
