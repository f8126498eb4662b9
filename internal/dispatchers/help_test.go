package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/verb/internal/usage"
)

func helpEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(WithPermissions(roles(map[string][]string{"admin": {"verb.admin"}})))
	e.MustRegister(
		MustCommand(CommandSpec{Template: "echo <msg...>", Summary: "Print a message", Category: CategoryBasics, Handler: returns(nil)}),
		MustCommand(CommandSpec{Template: "config get <key>", Summary: "Read a value", Category: CategoryConfig, Handler: returns(nil)}),
		MustCommand(CommandSpec{Template: "config set <key> <value> [--global|-g]", Summary: "Write a value", Category: CategoryConfig, Handler: returns(nil)}),
		MustCommand(CommandSpec{
			Path:     []Segment{Lit("admin").Require("verb.admin"), Lit("reload")},
			Summary:  "Reload commands",
			Category: CategoryAdmin,
			Handler:  returns(nil),
		}),
	)
	return e
}

func TestHelp_Overview(t *testing.T) {
	e := helpEngine(t)

	out, err := e.Help(steve, nil, plainStyler{})
	require.NoError(t, err)
	require.Contains(t, out, "basics\n   echo <msg...>\n      Print a message\n")
	require.Contains(t, out, "configure verb\n   config get <key>\n")
	require.NotContains(t, out, "admin reload")

	out, err = e.Help(admin, nil, plainStyler{})
	require.NoError(t, err)
	require.Contains(t, out, "administration\n   admin reload\n")
}

func TestHelp_Subtree(t *testing.T) {
	e := helpEngine(t)

	out, err := e.Help(steve, []string{"config"}, plainStyler{})
	require.NoError(t, err)
	require.Contains(t, out, "COMMANDS\n")
	require.Contains(t, out, "config set <key> <value> --global")
	require.Contains(t, out, "FLAGS\n")
	require.Contains(t, out, "-g, --global")
	require.NotContains(t, out, "echo")
}

func TestHelp_Unknown(t *testing.T) {
	e := helpEngine(t)

	_, err := e.Help(steve, []string{"confg"}, plainStyler{})
	uerr := requireKind(t, err, usage.ErrUnknownCommand)
	require.Equal(t, []string{"config"}, uerr.Suggestions)

	_, err = e.Help(steve, []string{"admin"}, plainStyler{})
	requireKind(t, err, usage.ErrUnknownCommand)
}
