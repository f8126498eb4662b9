package usage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"unknown command", UnknownCommand("x"), 1},
		{"no permission", NoPermission("verb.admin"), 1},
		{"invalid config key", InvalidConfigKey("nope"), 1},
		{"invalid flag", InvalidFlag("--nope"), 2},
		{"missing argument", MissingArgument("player"), 2},
		{"expected literal", ExpectedLiteral("x", "here"), 2},
		{"unclosed quote", UnclosedQuote('"', 0), 2},
		{"invalid integer", InvalidInteger("x"), 2},
		{"range", NumberNotInRange(1, 10, 11), 2},
		{"explicit override", &Error{Kind: ErrUnknownCommand, ExitCode: 7}, 7},
		{"unregistered kind", &Error{Kind: ErrorKind(99)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.GetExitCode())
		})
	}
}

func TestError_InvocationTakesCauseExitCode(t *testing.T) {
	err := CommandInvocation("config get", InvalidConfigKey("nope"))
	require.Equal(t, 1, err.GetExitCode())

	err = CommandInvocation("sum", MissingArgument("n"))
	require.Equal(t, 2, err.GetExitCode())

	err = CommandInvocation("sum", errors.New("boom"))
	require.Equal(t, 1, err.GetExitCode())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("dispatch: %w", CommandInvocation("history", cause))

	require.ErrorIs(t, err, cause)

	var uerr *Error
	require.True(t, errors.As(err, &uerr))
	require.Equal(t, ErrCommandInvocation, uerr.Kind)
	require.Equal(t, "command 'history' failed: disk full", uerr.Error())
}

func TestError_Groups(t *testing.T) {
	require.True(t, InvalidEscapeCharacter(3).IsInputParse())
	require.True(t, ExpectedWhitespace(3).IsInputParse())
	require.False(t, UnknownCommand("x").IsInputParse())

	require.True(t, InvalidUUID("x").IsInvalidValue())
	require.True(t, EnumNotFound("x", nil).IsInvalidValue())
	require.True(t, InvalidListSize(1, 2, 3).IsInvalidValue())
	require.False(t, NumberNotInRange(1, 2, 3).IsInvalidValue())
	require.False(t, MissingArgument("x").IsInvalidValue())
}

func TestError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"unknown with suggestions", UnknownCommand("ecoh", "echo"), "unknown command 'ecoh'; did you mean 'echo'?"},
		{"unknown bare", UnknownCommand("zzz"), "unknown command 'zzz'"},
		{"expected literal at end", ExpectedLiteral("", "get", "set"), "expected 'get', 'set'"},
		{"expected literal found", ExpectedLiteral("x", "here"), "expected 'here' but found 'x'"},
		{"missing", MissingArgument("player"), "missing required argument 'player'"},
		{"enum", EnumNotFound("x", []string{"a", "b"}), "'x' is not a valid choice (expected one of: a, b)"},
		{"range", NumberNotInRange(1, 10, 11), "11 is not in range [1, 10]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_At(t *testing.T) {
	err := MissingArgument("x").At(12)
	require.Equal(t, 12, err.Position)
	require.Equal(t, "x", err.Parameter)
}

func TestErrorKind_String(t *testing.T) {
	require.Equal(t, "no_permission", ErrNoPermission.String())
	require.Equal(t, "kind(99)", ErrorKind(99).String())
}
