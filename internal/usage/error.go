package usage

import (
	"errors"
	"fmt"
)

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrInvalidFlag
	ErrMissingArgument
	ErrUnknownCommand
	ErrExpectedLiteral
	ErrInvalidEscapeCharacter
	ErrUnclosedQuote
	ErrExpectedWhitespace
	ErrInvalidInteger
	ErrInvalidDecimal
	ErrInvalidBoolean
	ErrInvalidUUID
	ErrInvalidDuration
	ErrEnumNotFound
	ErrInvalidListSize
	ErrInvalidStringSize
	ErrNumberNotInRange
	ErrNoPermission
	ErrCommandInvocation
	ErrInvalidConfigKey
)

var kindNames = map[ErrorKind]string{
	ErrUnknown:                "unknown",
	ErrInvalidFlag:            "invalid_flag",
	ErrMissingArgument:        "missing_argument",
	ErrUnknownCommand:         "unknown_command",
	ErrExpectedLiteral:        "expected_literal",
	ErrInvalidEscapeCharacter: "invalid_escape_character",
	ErrUnclosedQuote:          "unclosed_quote",
	ErrExpectedWhitespace:     "expected_whitespace",
	ErrInvalidInteger:         "invalid_integer",
	ErrInvalidDecimal:         "invalid_decimal",
	ErrInvalidBoolean:         "invalid_boolean",
	ErrInvalidUUID:            "invalid_uuid",
	ErrInvalidDuration:        "invalid_duration",
	ErrEnumNotFound:           "enum_not_found",
	ErrInvalidListSize:        "invalid_list_size",
	ErrInvalidStringSize:      "invalid_string_size",
	ErrNumberNotInRange:       "number_not_in_range",
	ErrNoPermission:           "no_permission",
	ErrCommandInvocation:      "command_invocation",
	ErrInvalidConfigKey:       "invalid_config_key",
}

// String returns the snake_case name used in logs and the HTTP API.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Exit codes:
//
//	Exit 1: Environment/system errors
//	  - Unknown errors
//	  - Unknown command
//	  - No permission
//	  - Command invocation fault
//	  - Invalid config key
//
//	Exit 2: User input errors
//	  - Input parse errors (escape, quote, whitespace)
//	  - Invalid flag
//	  - Missing argument
//	  - Expected literal
//	  - Invalid values and ranges
var exitCodes = map[ErrorKind]int{
	ErrUnknown:                1,
	ErrInvalidFlag:            2,
	ErrMissingArgument:        2,
	ErrUnknownCommand:         1,
	ErrExpectedLiteral:        2,
	ErrInvalidEscapeCharacter: 2,
	ErrUnclosedQuote:          2,
	ErrExpectedWhitespace:     2,
	ErrInvalidInteger:         2,
	ErrInvalidDecimal:         2,
	ErrInvalidBoolean:         2,
	ErrInvalidUUID:            2,
	ErrInvalidDuration:        2,
	ErrEnumNotFound:           2,
	ErrInvalidListSize:        2,
	ErrInvalidStringSize:      2,
	ErrNumberNotInRange:       2,
	ErrNoPermission:           1,
	ErrCommandInvocation:      1,
	ErrInvalidConfigKey:       1,
}

// Error represents a user-facing usage error with semantic type information.
// Fields other than Kind and Message are filled in only when they apply to
// the kind, so a caller can render a precise message without parsing text.
type Error struct {
	Kind     ErrorKind
	Message  string
	ExitCode int // kept for backward compatibility, computed from Kind if zero

	// Token is the offending input token, if any.
	Token string
	// Position is the stream offset where the failure was detected.
	Position int
	// Parameter names the parameter being resolved.
	Parameter string
	// Expected lists the literal names acceptable at the failure point.
	Expected []string
	// Min, Max and Actual describe range and size violations.
	Min, Max, Actual float64
	// Permission is the permission the actor lacked.
	Permission string
	// Suggestions holds "did you mean" candidates for unknown commands.
	Suggestions []string
	// Cause is the wrapped error for invocation faults and value parse failures.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped cause so errors.Is and errors.As can walk past
// an invocation fault into the handler's own error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; an invocation fault caused by
// another usage error takes that error's code; otherwise the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	var inner *Error
	if e.Kind == ErrCommandInvocation && errors.As(e.Cause, &inner) {
		return inner.GetExitCode()
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// At returns e with Position set. Parameter types build errors without
// knowing the stream offset; the dispatcher stamps it afterwards.
func (e *Error) At(position int) *Error {
	e.Position = position
	return e
}

// IsInputParse reports whether the error came from tokenizing the input
// rather than from resolving a command or argument.
func (e *Error) IsInputParse() bool {
	switch e.Kind {
	case ErrInvalidEscapeCharacter, ErrUnclosedQuote, ErrExpectedWhitespace:
		return true
	}
	return false
}

// IsInvalidValue reports whether a token failed its parameter type's validation.
func (e *Error) IsInvalidValue() bool {
	switch e.Kind {
	case ErrInvalidInteger, ErrInvalidDecimal, ErrInvalidBoolean, ErrInvalidUUID,
		ErrInvalidDuration, ErrEnumNotFound, ErrInvalidListSize, ErrInvalidStringSize:
		return true
	}
	return false
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
