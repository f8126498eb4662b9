package actions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/verb/internal/dispatchers"
)

func basicsEngine() *dispatchers.Engine {
	e := dispatchers.New()
	e.MustRegister(
		dispatchers.MustCommand(dispatchers.CommandSpec{Template: "echo <message...>", Handler: Echo}),
		dispatchers.MustCommand(dispatchers.CommandSpec{Template: "sum <values:list:int>", Handler: Sum}),
		dispatchers.MustCommand(dispatchers.CommandSpec{Template: "whoami", Handler: Whoami}),
		dispatchers.MustCommand(dispatchers.CommandSpec{Template: "tp here", Handler: TeleportHere}),
		dispatchers.MustCommand(dispatchers.CommandSpec{Template: "tp <player>", Handler: TeleportTo}),
	)
	return e
}

func TestBasics(t *testing.T) {
	e := basicsEngine()
	steve := dispatchers.NamedActor("steve")

	tests := []struct {
		input string
		want  any
	}{
		{`echo hello "big" world`, `hello "big" world`},
		{"sum 1 2 3 4", 10},
		{"sum 5", 5},
		{"whoami", "steve"},
		{"tp here", "teleported steve to spawn"},
		{"tp alex", "teleported steve to alex"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := e.Dispatch(steve, tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTeleportTo_Self(t *testing.T) {
	_, err := basicsEngine().Dispatch(dispatchers.NamedActor("steve"), "tp steve")
	require.Error(t, err)
	require.Contains(t, err.Error(), "themselves")
}
