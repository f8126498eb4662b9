package usage

import (
	"fmt"
	"strings"
)

// MissingArgument is returned when a required argument is not provided.
func MissingArgument(arg string) *Error {
	return &Error{
		Kind:      ErrMissingArgument,
		Message:   fmt.Sprintf("missing required argument '%s'", arg),
		Parameter: arg,
	}
}

// InvalidInteger is returned when a token is not a whole number.
func InvalidInteger(token string) *Error {
	return invalidValue(ErrInvalidInteger, token, "'%s' is not a valid integer")
}

// InvalidDecimal is returned when a token is not a number.
func InvalidDecimal(token string) *Error {
	return invalidValue(ErrInvalidDecimal, token, "'%s' is not a valid number")
}

// InvalidBoolean is returned when a token is not true/false.
func InvalidBoolean(token string) *Error {
	return invalidValue(ErrInvalidBoolean, token, "'%s' is not a valid boolean (true/false)")
}

// InvalidUUID is returned when a token is not a UUID.
func InvalidUUID(token string) *Error {
	return invalidValue(ErrInvalidUUID, token, "'%s' is not a valid UUID")
}

// InvalidDuration is returned when a token is not a duration like 5m or 1h30m.
func InvalidDuration(token string) *Error {
	return invalidValue(ErrInvalidDuration, token, "'%s' is not a valid duration")
}

// EnumNotFound is returned when a token is not one of the allowed choices.
func EnumNotFound(token string, choices []string) *Error {
	e := invalidValue(ErrEnumNotFound, token, "'%s' is not a valid choice")
	if len(choices) > 0 {
		e.Message += fmt.Sprintf(" (expected one of: %s)", strings.Join(choices, ", "))
	}
	e.Expected = choices
	return e
}

// InvalidListSize is returned when a list argument has too few or too many elements.
func InvalidListSize(min, max, actual int) *Error {
	return &Error{
		Kind:    ErrInvalidListSize,
		Message: fmt.Sprintf("expected between %d and %d values, got %d", min, max, actual),
		Min:     float64(min),
		Max:     float64(max),
		Actual:  float64(actual),
	}
}

// InvalidStringSize is returned when a string argument is too short or too long.
func InvalidStringSize(token string, min, max int) *Error {
	return &Error{
		Kind:    ErrInvalidStringSize,
		Message: fmt.Sprintf("'%s' must be between %d and %d characters long", token, min, max),
		Token:   token,
		Min:     float64(min),
		Max:     float64(max),
		Actual:  float64(len([]rune(token))),
	}
}

// NumberNotInRange is returned when a number falls outside an inclusive range.
func NumberNotInRange(min, max, actual float64) *Error {
	return &Error{
		Kind:    ErrNumberNotInRange,
		Message: fmt.Sprintf("%g is not in range [%g, %g]", actual, min, max),
		Token:   fmt.Sprintf("%g", actual),
		Min:     min,
		Max:     max,
		Actual:  actual,
	}
}

func invalidValue(kind ErrorKind, token, format string) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, token),
		Token:   token,
	}
}
