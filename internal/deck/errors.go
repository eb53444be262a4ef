package deck

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes registry errors.
type ErrorCode string

const (
	// CodeUnauthorized indicates the caller is not the owner it tried to mutate.
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// CodeNotFound indicates the owner bucket or the deck does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeInvalidArgument indicates an empty owner key or deck name.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Sentinels for errors.Is. A *Error matches the sentinel with the same code.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error is returned by every Registry operation that rejects a call.
// A rejected call never changes persisted state.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op is the operation that failed, e.g. "append slide".
	Op string

	// Owner is the owner key the call targeted.
	Owner string

	// Deck is the deck name the call targeted, if any.
	Deck string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Deck != "" {
		return fmt.Sprintf("%s: %s: %s (owner=%q, deck=%q)", e.Op, e.Code, e.Message, e.Owner, e.Deck)
	}
	if e.Owner != "" {
		return fmt.Sprintf("%s: %s: %s (owner=%q)", e.Op, e.Code, e.Message, e.Owner)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
}

// Is reports whether target is the sentinel for this error's code.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Code == CodeUnauthorized
	case ErrNotFound:
		return e.Code == CodeNotFound
	case ErrInvalidArgument:
		return e.Code == CodeInvalidArgument
	}
	return false
}

// Unauthorized builds an UNAUTHORIZED error.
func Unauthorized(op, caller, owner string) *Error {
	return &Error{
		Code:    CodeUnauthorized,
		Op:      op,
		Owner:   owner,
		Message: fmt.Sprintf("caller %q is not the owner", caller),
	}
}

// OwnerNotFound builds a NOT_FOUND error for an owner without a bucket.
func OwnerNotFound(op, owner string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Op:      op,
		Owner:   owner,
		Message: "owner has no decks",
	}
}

// DeckNotFound builds a NOT_FOUND error for a missing deck in an existing bucket.
func DeckNotFound(op, owner, name string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Op:      op,
		Owner:   owner,
		Deck:    name,
		Message: "deck does not exist",
	}
}

// InvalidArgument builds an INVALID_ARGUMENT error.
func InvalidArgument(op, message string) *Error {
	return &Error{
		Code:    CodeInvalidArgument,
		Op:      op,
		Message: message,
	}
}

// IsUnauthorized returns true if err is, or wraps, an UNAUTHORIZED error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound returns true if err is, or wraps, a NOT_FOUND error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidArgument returns true if err is, or wraps, an INVALID_ARGUMENT error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// CodeOf extracts the ErrorCode from err, or "" if err is not a registry error.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Authorize enforces self-ownership: caller must equal owner exactly.
func Authorize(op, caller, owner string) error {
	if caller != owner {
		return Unauthorized(op, caller, owner)
	}
	return nil
}

// ValidateOwner rejects an empty owner key.
func ValidateOwner(op, owner string) error {
	if owner == "" {
		return InvalidArgument(op, "owner key must not be empty")
	}
	return nil
}

// ValidateDeck rejects an empty owner key or deck name.
func ValidateDeck(op, owner, name string) error {
	if err := ValidateOwner(op, owner); err != nil {
		return err
	}
	if name == "" {
		return InvalidArgument(op, "deck name must not be empty")
	}
	return nil
}
