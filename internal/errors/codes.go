package errors

// Code classifies an error
type Code string

const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"

	// CodeInvalidAction is returned when a battle action cannot be applied to
	// the current battle state. Nothing is mutated when it is returned.
	CodeInvalidAction Code = "INVALID_ACTION"

	// CodeInvalidConfiguration marks malformed static game data.
	CodeInvalidConfiguration Code = "INVALID_CONFIGURATION"

	// CodeInvariantViolation marks a creature or battle found outside its
	// documented bounds. It signals a bug, not a bad request.
	CodeInvariantViolation Code = "INVARIANT_VIOLATION"
)

func (c Code) String() string {
	return string(c)
}

// Retryable reports whether the same request may succeed later
func (c Code) Retryable() bool {
	return c == CodeUnavailable || c == CodeDeadlineExceeded
}
