package apperr

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// ErrAborted is returned when the user declines a confirmation. Nothing has
// been written when it is returned.
var ErrAborted = errors.New("aborted by user")

// BuildError reports a failed external build step together with the
// diagnostic output it captured.
type BuildError struct {
	Step     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s failed with exit code %d", e.Step, e.ExitCode)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
