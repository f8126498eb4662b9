package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/verb/internal/app"
	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/paths"
)

func newTestApp(t *testing.T) *app.Application {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Cleanup(func() { paths.SetConfigFile("") })

	a, err := app.New(app.Options{
		ConfigPath: filepath.Join(dir, "verbrc"),
		Overrides: map[string]string{
			"db_path":      ":memory:",
			"aliases_path": filepath.Join(dir, "aliases.yaml"),
		},
		Out: &bytes.Buffer{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, Setup(a))
	return a
}

func TestBuildCommands_HasExpectedTopLevelCommands(t *testing.T) {
	a := newTestApp(t)

	expectedCommands := []string{
		"help",
		"version",
		"echo",
		"sum",
		"whoami",
		"teleport",
		"config",
		"theme",
		"alias",
		"history",
		"admin",
	}

	for _, cmd := range expectedCommands {
		node := a.Engine.Tree().Find([]dispatchers.Segment{dispatchers.Lit(cmd)})
		require.NotNil(t, node, "expected top-level command '%s' not found", cmd)
	}
}

func TestBuildCommands_AllCategorized(t *testing.T) {
	a := newTestApp(t)

	for _, cmd := range BuildCommands(a) {
		require.NotEqual(t, dispatchers.CategoryUncategorized, cmd.Category, cmd.Usage())
		require.NotEmpty(t, cmd.Summary, cmd.Usage())
	}
}

func TestSetup_Dispatch(t *testing.T) {
	a := newTestApp(t)
	console := dispatchers.NamedActor("console")

	tests := []struct {
		name  string
		input string
		want  any
	}{
		{name: "echo", input: `echo hello world`, want: "hello world"},
		{name: "sum", input: "sum 1 2 3", want: 6},
		{name: "whoami", input: "whoami", want: "console"},
		{name: "tp alias", input: "tp here", want: "teleported console to spawn"},
		{name: "config set", input: "config set display_time 12h", want: "set display_time=12h"},
		{name: "config get", input: "config get display_time", want: "12h"},
		{name: "theme set", input: "theme set neon-dark", want: "theme set to neon-dark"},
		{name: "admin reload", input: "admin reload", want: "reloaded 0 aliases"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := a.Runner.Dispatch(console, tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestSetup_AdminCommandsGated(t *testing.T) {
	a := newTestApp(t)
	steve := dispatchers.NamedActor("steve")

	_, err := a.Runner.Dispatch(steve, "admin reload")
	require.Error(t, err)

	_, err = a.Runner.Dispatch(steve, "history prune")
	require.Error(t, err)

	require.NotContains(t, a.Runner.Suggest(steve, ""), "admin")
	require.Contains(t, a.Runner.Suggest(dispatchers.NamedActor("console"), ""), "admin")
}

func TestSetup_AliasRoundTrip(t *testing.T) {
	a := newTestApp(t)
	console := dispatchers.NamedActor("console")

	_, err := a.Runner.Dispatch(console, `alias add -d "say hi" hi echo hi`)
	require.NoError(t, err)

	out, err := a.Runner.Dispatch(console, "hi there")
	require.NoError(t, err)
	require.Equal(t, "hi there", out)

	require.Contains(t, a.Runner.Suggest(console, "alias remove "), "hi")

	_, err = a.Runner.Dispatch(console, "alias remove hi")
	require.NoError(t, err)

	_, err = a.Runner.Dispatch(console, "hi there")
	require.Error(t, err)
}

func TestSetup_TeleportSuggestsRecentActors(t *testing.T) {
	a := newTestApp(t)

	_, err := a.Runner.Dispatch(dispatchers.NamedActor("alex"), "whoami")
	require.NoError(t, err)

	suggestions := a.Runner.Suggest(dispatchers.NamedActor("steve"), "tp a")
	require.Contains(t, suggestions, "alex")
}

func TestSetup_Help(t *testing.T) {
	a := newTestApp(t)

	out, err := a.Runner.Dispatch(dispatchers.NamedActor("steve"), "help")
	require.NoError(t, err)
	require.Contains(t, out, "echo")
	require.NotContains(t, out, "admin reload")

	out, err = a.Runner.Dispatch(dispatchers.NamedActor("steve"), "help config")
	require.NoError(t, err)
	require.Contains(t, out, "config get")
}
