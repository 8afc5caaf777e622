package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the command-line tools.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // operation failed (missing budget, database error)
	ExitCommandError = 2 // bad flags, arguments or configuration
)

// ExitError carries the process exit code for an error returned by a command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// ExitCode maps err to a process exit code. Errors without an ExitError are ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
