// Package errors defines the structured error type returned by cyclic,
// its sentinel values, and the process exit codes they map to.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Exit codes.
const (
	ExitSuccess  = 0
	ExitGeneral  = 1
	ExitInput    = 2
	ExitNotFound = 4
)

const generalCode = "GENERAL_ERROR"

// CyclicError carries a machine-readable code alongside the message, so
// callers can branch on Code and the CLI can pick an exit status.
type CyclicError struct {
	Code       string
	Message    string
	Details    map[string]string
	Suggestion string
	Cause      error
	ExitCode   int
}

// Error renders the message, then each detail in key order, then the cause.
func (e *CyclicError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, k := range slices.Sorted(maps.Keys(e.Details)) {
		fmt.Fprintf(&b, " (%s: %s)", k, e.Details[k])
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *CyclicError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a CyclicError with the same code.
func (e *CyclicError) Is(target error) bool {
	var t *CyclicError
	return errors.As(target, &t) && e.Code == t.Code
}

func sentinel(code string, exit int, message string) *CyclicError {
	return &CyclicError{Code: code, Message: message, ExitCode: exit}
}

// Sentinel errors. Matching is by Code, so values derived through Wrap,
// WithDetails or WithSuggestion still satisfy errors.Is.
var (
	ErrGeneral      = sentinel(generalCode, ExitGeneral, "an error occurred")
	ErrInvalidInput = sentinel("INVALID_INPUT", ExitInput, "invalid input")
	ErrNotFound     = sentinel("NOT_FOUND", ExitNotFound, "resource not found")

	// Polynomial arithmetic.
	ErrDivisionByZero = sentinel("DIVISION_BY_ZERO", ExitGeneral, "polynomial division by the zero polynomial")
	ErrPolyOverflow   = sentinel("POLY_OVERFLOW", ExitInput, "polynomial degree exceeds 63")
	ErrInvalidBits    = sentinel("INVALID_BITS", ExitInput, "bit vector must contain only 0 and 1")

	// Code construction.
	ErrInvalidCodeParams      = sentinel("INVALID_CODE_PARAMS", ExitInput, "code parameters must satisfy 0 < k < n <= 64")
	ErrInvalidGeneratorDegree = sentinel("INVALID_GENERATOR_DEGREE", ExitInput, "generator degree must equal n - k")
	ErrAmbiguousSyndromeTable = sentinel("AMBIGUOUS_SYNDROME_TABLE", ExitInput, "single-bit error syndromes are not unique")

	// Encoding and decoding.
	ErrInvalidMessageLength  = sentinel("INVALID_MESSAGE_LENGTH", ExitInput, "message length must equal k")
	ErrInvalidReceivedLength = sentinel("INVALID_RECEIVED_LENGTH", ExitInput, "received word length must equal n")
	ErrUncorrectable         = sentinel("UNCORRECTABLE", ExitInput, "received word is not within one bit of any codeword")
	ErrTooLargeToEnumerate   = sentinel("TOO_LARGE_TO_ENUMERATE", ExitInput, "message space is too large to enumerate")

	// Profiles.
	ErrProfileNotFound = sentinel("PROFILE_NOT_FOUND", ExitNotFound, "code profile not found")
	ErrProfileExists   = sentinel("PROFILE_EXISTS", ExitInput, "code profile already exists")

	// Configuration.
	ErrConfigNotFound   = sentinel("CONFIG_NOT_FOUND", ExitNotFound, "configuration file not found")
	ErrConfigInvalid    = sentinel("CONFIG_INVALID", ExitInput, "configuration file is invalid")
	ErrUnknownConfigKey = sentinel("UNKNOWN_CONFIG_KEY", ExitInput, "unknown config key")
	ErrInvalidFormat    = sentinel("INVALID_FORMAT", ExitInput, "invalid format")
)

// New returns an error with a caller-chosen code and the general exit status.
func New(code, message string) *CyclicError {
	return sentinel(code, ExitGeneral, message)
}

// derive copies the CyclicError inside err, or converts a foreign error
// into a general one, and lets edit adjust the copy. It never mutates err.
func derive(err error, edit func(e *CyclicError, foreign bool)) error {
	if err == nil {
		return nil
	}
	var ce *CyclicError
	if !errors.As(err, &ce) {
		e := &CyclicError{Code: generalCode, Message: err.Error(), Cause: err, ExitCode: ExitGeneral}
		edit(e, true)
		return e
	}
	dup := *ce
	edit(&dup, false)
	return &dup
}

// Wrap prefixes err with context, keeping its code, details and exit status.
func Wrap(err error, format string, args ...any) error {
	context := fmt.Sprintf(format, args...)
	return derive(err, func(e *CyclicError, foreign bool) {
		if foreign {
			e.Message = context
			return
		}
		e.Message = context + ": " + e.Message
	})
}

// WithDetails returns err with details attached, replacing any it had.
func WithDetails(err error, details map[string]string) error {
	return derive(err, func(e *CyclicError, _ bool) {
		e.Details = details
	})
}

// WithSuggestion returns err with an actionable hint for the user.
func WithSuggestion(err error, suggestion string) error {
	return derive(err, func(e *CyclicError, _ bool) {
		e.Suggestion = suggestion
	})
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ce *CyclicError
	if errors.As(err, &ce) {
		return ce.ExitCode
	}
	return ExitGeneral
}

// Code returns the machine-readable code of err, or GENERAL_ERROR.
func Code(err error) string {
	var ce *CyclicError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return generalCode
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
