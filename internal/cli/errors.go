package cli

import "fmt"

// Exit codes returned by the CLI.
const (
	ExitSuccess     = 0
	ExitError       = 1 // General error (network, invalid input)
	ExitUnhealthy   = 2 // A configured service is unreachable or unhealthy
	ExitNotFound    = 3 // Not found (input file doesn't exist)
	ExitConfigError = 4 // Configuration error
)

// ExitCodeError is an error that carries an exit code.
type ExitCodeError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitCodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// NewExitCodeError creates a new ExitCodeError with the given code and message.
func NewExitCodeError(code int, message string) *ExitCodeError {
	return &ExitCodeError{Code: code, Message: message}
}

// WrapExitCodeError wraps an existing error with an exit code.
func WrapExitCodeError(code int, message string, err error) *ExitCodeError {
	return &ExitCodeError{Code: code, Message: message, Err: err}
}

// InvalidInputError creates a general input error (exit code 1).
func InvalidInputError(message string) *ExitCodeError {
	return NewExitCodeError(ExitError, message)
}

// UnhealthyError creates a service health error (exit code 2).
func UnhealthyError(message string) *ExitCodeError {
	return NewExitCodeError(ExitUnhealthy, message)
}

// NotFoundError creates a not found error (exit code 3).
func NotFoundError(message string) *ExitCodeError {
	return NewExitCodeError(ExitNotFound, message)
}

// ConfigError creates a configuration error (exit code 4).
func ConfigError(message string) *ExitCodeError {
	return NewExitCodeError(ExitConfigError, message)
}

// GetExitCode returns the exit code from an error.
// If the error is an ExitCodeError, returns its code.
// Otherwise, returns 1 (general error).
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if exitErr, ok := err.(*ExitCodeError); ok {
		return exitErr.Code
	}
	return ExitError
}
