package dispatchers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/verb/internal/usage"
)

// register adds a command built from template that returns result.
func register(t *testing.T, e *Engine, template string, h Handler) *Command {
	t.Helper()
	cmd, err := NewCommand(CommandSpec{Template: template, Handler: h})
	require.NoError(t, err)
	_, err = e.Register(cmd)
	require.NoError(t, err)
	return cmd
}

func returns(v any) Handler {
	return func(*Context) (any, error) { return v, nil }
}

func requireKind(t *testing.T, err error, kind usage.ErrorKind) *usage.Error {
	t.Helper()
	require.Error(t, err)
	var uerr *usage.Error
	require.True(t, errors.As(err, &uerr), "expected usage error, got %T: %v", err, err)
	require.Equal(t, kind, uerr.Kind, "message: %s", uerr.Message)
	return uerr
}

// roles grants permissions by actor name.
func roles(grants map[string][]string) PermissionChecker {
	return PermissionFunc(func(actor Actor, permission string) bool {
		if actor == nil {
			return false
		}
		for _, p := range grants[actor.Name()] {
			if p == permission || p == "*" {
				return true
			}
		}
		return false
	})
}

type plainStyler struct{}

func (plainStyler) Enabled() bool              { return false }
func (plainStyler) Success(text string) string { return text }
func (plainStyler) Warning(text string) string { return text }
func (plainStyler) Error(text string) string   { return text }
func (plainStyler) Info(text string) string    { return text }
func (plainStyler) Muted(text string) string   { return text }
func (plainStyler) Header(text string) string  { return text }

var (
	steve = NamedActor("steve")
	admin = NamedActor("admin")
)
