package almanac

import "fmt"

// ErrorKind classifies calendar errors.
type ErrorKind string

const (
	// OutOfRange marks an epoch day or field value outside a calendar's
	// supported span.
	OutOfRange ErrorKind = "OUT_OF_RANGE"
	// InvalidDate marks well-formed fields that do not denote a real date,
	// such as day 30 in a 29-day month or a leap month the year lacks.
	InvalidDate ErrorKind = "INVALID_DATE"
	// UnsupportedVariant marks an unknown calendar variant string.
	UnsupportedVariant ErrorKind = "UNSUPPORTED_VARIANT"
	// EraMismatch marks a strict-mode era resolution conflict.
	EraMismatch ErrorKind = "ERA_MISMATCH"
	// ResourceFormat marks a malformed calendar data table. It is raised
	// at construction time, never during conversion.
	ResourceFormat ErrorKind = "RESOURCE_FORMAT"
)

// Error is the error type returned by all calendar packages.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", string(e.Kind), e.Message)
}

// NewError creates an Error with the given kind and message.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf creates an Error with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
