package errors

import (
	"errors"
)

// As is errors.As narrowed to *Error
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is is errors.Is, re-exported so callers need a single errors import
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// CodeOf returns the code carried by err. Foreign errors are Internal.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries code
func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// MessageOf returns the caller-facing message of err
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// MetaString returns a string metadata value, or "" when absent
func MetaString(err error, key string) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	s, _ := e.Meta[key].(string)
	return s
}

// FieldErrors returns the per-field messages of a validation failure
func FieldErrors(err error) map[string][]string {
	var e *Error
	if !errors.As(err, &e) {
		return nil
	}
	fields, _ := e.Meta[metaValidation].(map[string][]string)
	return fields
}

// IsNotFound reports whether err is NotFound
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

// IsInvalidArgument reports whether err is InvalidArgument
func IsInvalidArgument(err error) bool {
	return HasCode(err, CodeInvalidArgument)
}

// IsAlreadyExists reports whether err is AlreadyExists
func IsAlreadyExists(err error) bool {
	return HasCode(err, CodeAlreadyExists)
}

// IsFailedPrecondition reports whether err is FailedPrecondition
func IsFailedPrecondition(err error) bool {
	return HasCode(err, CodeFailedPrecondition)
}

// IsInvalidAction reports a rejected battle action
func IsInvalidAction(err error) bool {
	return HasCode(err, CodeInvalidAction)
}

// IsInvalidConfiguration reports malformed game data
func IsInvalidConfiguration(err error) bool {
	return HasCode(err, CodeInvalidConfiguration)
}

// IsInvariantViolation reports broken creature or battle bounds
func IsInvariantViolation(err error) bool {
	return HasCode(err, CodeInvariantViolation)
}
