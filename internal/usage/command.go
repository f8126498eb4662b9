package usage

import (
	"fmt"
	"strings"
)

// UnknownCommand is returned when nothing in the tree matches the input.
func UnknownCommand(command string, suggestions ...string) *Error {
	msg := fmt.Sprintf("unknown command '%s'", command)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf("; did you mean '%s'?", strings.Join(suggestions, "', '"))
	}
	return &Error{
		Kind:        ErrUnknownCommand,
		Message:     msg,
		Token:       command,
		Suggestions: suggestions,
	}
}

// ExpectedLiteral is returned when a keyword was required but another token
// (or nothing) was found.
func ExpectedLiteral(found string, expected ...string) *Error {
	var msg string
	if found == "" {
		msg = fmt.Sprintf("expected '%s'", strings.Join(expected, "', '"))
	} else {
		msg = fmt.Sprintf("expected '%s' but found '%s'", strings.Join(expected, "', '"), found)
	}
	return &Error{
		Kind:     ErrExpectedLiteral,
		Message:  msg,
		Token:    found,
		Expected: expected,
	}
}

// InvalidFlag is returned when a flag is not valid for the matched command.
func InvalidFlag(flag string) *Error {
	return &Error{
		Kind:    ErrInvalidFlag,
		Message: fmt.Sprintf("invalid flag '%s'", flag),
		Token:   flag,
	}
}

// NoPermission is returned when the actor fails a node or command permission.
func NoPermission(permission string) *Error {
	return &Error{
		Kind:       ErrNoPermission,
		Message:    fmt.Sprintf("you do not have permission to run this command (requires '%s')", permission),
		Permission: permission,
	}
}

// CommandInvocation wraps a fault raised by a command handler.
func CommandInvocation(command string, cause error) *Error {
	return &Error{
		Kind:    ErrCommandInvocation,
		Message: fmt.Sprintf("command '%s' failed: %v", command, cause),
		Token:   command,
		Cause:   cause,
	}
}

// InvalidConfigKey is returned when a configuration key does not exist.
func InvalidConfigKey(key string) *Error {
	return &Error{
		Kind:    ErrInvalidConfigKey,
		Message: fmt.Sprintf("'%s' is not a valid config key", key),
		Token:   key,
	}
}
