package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	ExitSuccess      = 0 // Success
	ExitFailure      = 1 // Machine failure: step limit, strict miss, invalid program
	ExitCommandError = 2 // Bad flags, unreadable program, unknown preset
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return WrapExitError(code, message, nil)
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps an Execute error to an exit code. Errors from cobra
// itself (flags, arguments) are command errors.
func GetExitCode(err error) (code int) {
	var exitErr *ExitError
	switch {
	case err == nil:
		code = ExitSuccess
	case errors.As(err, &exitErr):
		code = exitErr.Code
	default:
		code = ExitCommandError
	}
	return
}

func writeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
