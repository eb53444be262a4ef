package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/slidedeck/internal/deck"
)

// Exit codes for CLI commands.
const (
	ExitFailure      = 1 // Rejected call or failed scenario (unauthorized, not found, etc.)
	ExitCommandError = 2 // Command error (invalid flags, database cannot be opened, etc.)
)

// Error codes reported in CLIError.Code.
const (
	ErrCodeInvalidInput    = "E001" // Bad arguments or unreadable input file
	ErrCodeDatabase        = "E002" // Database could not be opened or queried
	ErrCodeScenarioFailed  = "E101" // Scenario expectations failed
	ErrCodeUnauthorized    = "E201" // Caller is not the owner
	ErrCodeNotFound        = "E202" // Owner or deck does not exist
	ErrCodeInvalidArgument = "E203" // Empty owner key or deck name
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set when the error was already written through an
	// OutputFormatter and must not be printed again.
	Reported bool
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

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool

	// TraceID is the store call id of the command, echoed in JSON responses
	// so they can be matched with log records.
	TraceID string
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status  string      `json:"status"`            // "ok" or "error"
	Data    interface{} `json:"data,omitempty"`    // success payload
	Error   *CLIError   `json:"error,omitempty"`   // error details
	TraceID string      `json:"trace_id,omitempty"` // call_id of the store call
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E002", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status:  "ok",
			Data:    data,
			TraceID: f.TraceID,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
			TraceID: f.TraceID,
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// encode writes v as one JSON line. Slide ids are opaque, so HTML
// characters are not escaped.
func (f *OutputFormatter) encode(v interface{}) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// RegistryError reports a rejected registry call and returns the matching
// ExitError. Errors that are not registry rejections are treated as database
// failures.
func (f *OutputFormatter) RegistryError(err error) error {
	var de *deck.Error
	if !errors.As(err, &de) {
		_ = f.Error(ErrCodeDatabase, err.Error(), nil)
		exitErr := WrapExitError(ExitCommandError, "registry failure", err)
		exitErr.Reported = true
		return exitErr
	}

	details := map[string]string{"op": de.Op, "owner": de.Owner}
	if de.Deck != "" {
		details["deck"] = de.Deck
	}
	_ = f.Error(errorCodeFor(de.Code), de.Message, details)
	exitErr := WrapExitError(ExitFailure, string(de.Code), err)
	exitErr.Reported = true
	return exitErr
}

// errorCodeFor maps a registry error code to a CLI error code.
func errorCodeFor(code deck.ErrorCode) string {
	switch code {
	case deck.CodeUnauthorized:
		return ErrCodeUnauthorized
	case deck.CodeNotFound:
		return ErrCodeNotFound
	case deck.CodeInvalidArgument:
		return ErrCodeInvalidArgument
	default:
		return ErrCodeDatabase
	}
}
