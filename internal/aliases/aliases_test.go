package aliases

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/usage"
)

var steve = dispatchers.NamedActor("steve")

func newEngine(t *testing.T) *dispatchers.Engine {
	t.Helper()
	e := dispatchers.New()
	e.MustRegister(
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "echo <msg...>",
			Handler: func(ctx *dispatchers.Context) (any, error) {
				return ctx.String("msg", ""), nil
			},
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "tp here",
			Handler:  func(ctx *dispatchers.Context) (any, error) { return "tp:" + ctx.ActorName(), nil },
		}),
	)
	return e
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestManager_Load(t *testing.T) {
	e := newEngine(t)
	m := NewManager(e, writeFile(t, `
aliases:
  - name: home
    run: tp here
  - name: say
    run: echo
    description: shout something
`))
	require.NoError(t, m.Load())
	require.Equal(t, []string{"home", "say"}, m.Names())

	out, err := e.Dispatch(steve, "home")
	require.NoError(t, err)
	require.Equal(t, "tp:steve", out)

	out, err = e.Dispatch(steve, "say hello there friend")
	require.NoError(t, err)
	require.Equal(t, "hello there friend", out)
}

func TestManager_LoadMissingFile(t *testing.T) {
	m := NewManager(newEngine(t), filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, m.Load())
	require.Empty(t, m.List())
}

func TestManager_LoadReportsBadEntries(t *testing.T) {
	e := newEngine(t)
	m := NewManager(e, writeFile(t, `
aliases:
  - name: home
    run: tp here
  - name: echo
    run: tp here
  - name: Bad Name
    run: tp here
  - name: loop
    run: home
`))
	err := m.Load()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrExists)
	require.ErrorIs(t, err, ErrInvalidName)
	require.ErrorIs(t, err, ErrChained)
	require.Equal(t, []string{"home"}, m.Names())
}

func TestManager_LoadInvalidYAML(t *testing.T) {
	m := NewManager(newEngine(t), writeFile(t, "aliases: [unterminated"))
	require.Error(t, m.Load())
}

func TestManager_AddRemove(t *testing.T) {
	e := newEngine(t)
	path := filepath.Join(t.TempDir(), "sub", "aliases.yaml")
	m := NewManager(e, path)

	require.NoError(t, m.Add(Alias{Name: "home", Run: "tp here"}))
	require.ErrorIs(t, m.Add(Alias{Name: "home", Run: "echo x"}), ErrExists)
	require.ErrorIs(t, m.Add(Alias{Name: "x", Run: "  "}), ErrEmptyRun)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "name: home"))

	reloaded := NewManager(newEngine(t), path)
	require.NoError(t, reloaded.Load())
	require.Equal(t, []Alias{{Name: "home", Run: "tp here"}}, reloaded.List())

	require.NoError(t, m.Remove("home"))
	require.ErrorIs(t, m.Remove("home"), ErrNotFound)

	_, err = e.Dispatch(steve, "home")
	var uerr *usage.Error
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, usage.ErrUnknownCommand, uerr.Kind)
}

func TestManager_Reload(t *testing.T) {
	e := newEngine(t)
	path := writeFile(t, "aliases:\n  - name: home\n    run: tp here\n")
	m := NewManager(e, path)
	require.NoError(t, m.Load())

	require.NoError(t, os.WriteFile(path, []byte("aliases:\n  - name: shout\n    run: echo HEY\n"), 0600))
	require.NoError(t, m.Reload())

	require.Equal(t, []string{"shout"}, m.Names())
	_, err := e.Dispatch(steve, "home")
	require.Error(t, err)

	out, err := e.Dispatch(steve, "shout")
	require.NoError(t, err)
	require.Equal(t, "HEY", out)
}

func TestManager_ExpansionErrorsKeepExitCode(t *testing.T) {
	e := newEngine(t)
	m := NewManager(e, filepath.Join(t.TempDir(), "a.yaml"))
	require.NoError(t, m.Add(Alias{Name: "broken", Run: "tp there"}))

	_, err := e.Dispatch(steve, "broken")
	var uerr *usage.Error
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, usage.ErrCommandInvocation, uerr.Kind)
	require.Equal(t, 2, uerr.GetExitCode())
}

func TestManager_AliasesAreSuggested(t *testing.T) {
	e := newEngine(t)
	m := NewManager(e, filepath.Join(t.TempDir(), "a.yaml"))
	require.NoError(t, m.Add(Alias{Name: "home", Run: "tp here"}))

	require.Contains(t, e.Suggest(steve, "ho"), "home")
}
