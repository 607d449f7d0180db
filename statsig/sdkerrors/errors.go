// Package sdkerrors defines the closed error taxonomy of the SDK. Only these
// error kinds may cross the public API boundary; anything else is captured by
// the error boundary and converted into a degraded return value.
package sdkerrors

import "errors"

// UninitializedError is returned when an evaluation, logging or update
// operation is invoked before Initialize has completed.
type UninitializedError struct {
	Operation string
}

func (e *UninitializedError) Error() string {
	return e.Operation + ": call and wait for Initialize() to finish first"
}

// InvalidArgumentError is returned when a required name argument is missing.
type InvalidArgumentError struct {
	Operation string
	Argument  string
}

func (e *InvalidArgumentError) Error() string {
	return e.Operation + ": " + e.Argument + " must be a non-empty string"
}

// InitializationError is returned by Initialize when the supplied sdk key is
// absent or recognizably not a client key. No request is issued in that case.
type InitializationError struct {
	Message string
}

func (e *InitializationError) Error() string {
	return "Initialize: " + e.Message
}

// NewUninitialized builds an UninitializedError for the given operation.
func NewUninitialized(operation string) error {
	return &UninitializedError{Operation: operation}
}

// NewInvalidArgument builds an InvalidArgumentError for the given operation.
func NewInvalidArgument(operation string, argument string) error {
	return &InvalidArgumentError{Operation: operation, Argument: argument}
}

// NewInitialization builds an InitializationError with the supplied message.
func NewInitialization(message string) error {
	return &InitializationError{Message: message}
}

// IsContractViolation tells whether an error is one of the deliberate kinds
// raised by the API surface. These are caller bugs and must always propagate
// unchanged instead of being recovered by the error boundary.
func IsContractViolation(err error) bool {
	var uninit *UninitializedError
	var invalid *InvalidArgumentError
	var initErr *InitializationError
	return errors.As(err, &uninit) || errors.As(err, &invalid) || errors.As(err, &initErr)
}
