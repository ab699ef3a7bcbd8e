package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Error is a coded error. Code survives wrapping so a handler can map a
// failure raised deep in the engine to the right status. Message is safe to
// show to a caller.
type Error struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// Metadata keys shared by the battle and creature services
const (
	MetaBattleID   = "battle_id"
	MetaCreatureID = "creature_id"
	MetaMoveID     = "move_id"
	MetaSide       = "side"

	metaValidation = "validation_errors"
)

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code
func (e *Error) Is(target error) bool {
	var other *Error
	return errors.As(target, &other) && other.Code == e.Code
}

// WithMeta sets a metadata value and returns the error for chaining
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]interface{}, 1)
	}
	e.Meta[key] = value
	return e
}

// WithBattle tags the error with the battle it concerns
func (e *Error) WithBattle(id string) *Error {
	return e.WithMeta(MetaBattleID, id)
}

// WithCreature tags the error with the creature it concerns
func (e *Error) WithCreature(id string) *Error {
	return e.WithMeta(MetaCreatureID, id)
}

// WithMove tags the error with the move it concerns
func (e *Error) WithMove(id string) *Error {
	return e.WithMeta(MetaMoveID, id)
}

// WithSide tags the error with the battle side whose action failed
func (e *Error) WithSide(side string) *Error {
	return e.WithMeta(MetaSide, side)
}

// New creates an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func newf(code Code, format string, args []interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. An *Error keeps its code and a copy of its
// metadata; anything else becomes Internal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var inner *Error
	if !errors.As(err, &inner) {
		return &Error{Code: CodeInternal, Message: message, Cause: err}
	}
	return &Error{
		Code:    inner.Code,
		Message: message,
		Cause:   err,
		Meta:    maps.Clone(inner.Meta),
	}
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode is Wrap with the code replaced
func WrapWithCode(err error, code Code, message string) *Error {
	wrapped := Wrap(err, message)
	if wrapped != nil {
		wrapped.Code = code
	}
	return wrapped
}

// NotFound reports a missing creature, battle or catalog entry
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf is NotFound with a formatted message
func NotFoundf(format string, args ...interface{}) *Error {
	return newf(CodeNotFound, format, args)
}

// InvalidArgument rejects a malformed request
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf is InvalidArgument with a formatted message
func InvalidArgumentf(format string, args ...interface{}) *Error {
	return newf(CodeInvalidArgument, format, args)
}

// AlreadyExists rejects a duplicate id
func AlreadyExists(message string) *Error {
	return New(CodeAlreadyExists, message)
}

// FailedPrecondition rejects a request the current state does not allow
func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

// FailedPreconditionf is FailedPrecondition with a formatted message
func FailedPreconditionf(format string, args ...interface{}) *Error {
	return newf(CodeFailedPrecondition, format, args)
}

// Internalf reports a bug or an unexpected dependency failure
func Internalf(format string, args ...interface{}) *Error {
	return newf(CodeInternal, format, args)
}

// InvalidAction rejects a battle action. The battle is left untouched.
func InvalidAction(message string) *Error {
	return New(CodeInvalidAction, message)
}

// InvalidActionf is InvalidAction with a formatted message
func InvalidActionf(format string, args ...interface{}) *Error {
	return newf(CodeInvalidAction, format, args)
}

// InvalidConfigurationf reports malformed static game data
func InvalidConfigurationf(format string, args ...interface{}) *Error {
	return newf(CodeInvalidConfiguration, format, args)
}

// InvariantViolationf reports a creature or battle outside its bounds
func InvariantViolationf(format string, args ...interface{}) *Error {
	return newf(CodeInvariantViolation, format, args)
}
