package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/verb/internal/params"
)

func suggestEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(WithPermissions(roles(map[string][]string{"admin": {"*"}})))
	register(t, e, "echo <msg...>", returns(nil))
	register(t, e, "teleport|tp here", returns(nil))
	e.MustRegister(MustCommand(CommandSpec{
		Path: []Segment{
			Lit("tp"),
			Arg(params.Spec{Name: "player", Required: true, Suggestions: func(params.Context, string) []string {
				return []string{"herobrine", "steve"}
			}}),
		},
		Handler: returns(nil),
	}))
	register(t, e, "history [--limit|-l:int=10] [--verbose]", returns(nil))
	register(t, e, "gm [--mode:enum:survival,spectator,creative]", returns(nil))
	e.MustRegister(MustCommand(CommandSpec{
		Path: []Segment{
			Lit("a"),
			Lit("b").Require("verb.b"),
			Arg(params.Spec{Name: "x", Kind: params.KindInt, Required: true}),
		},
		Handler: returns(nil),
	}))
	e.MustRegister(MustCommand(CommandSpec{
		Path: []Segment{
			Lit("warp"),
			Arg(params.Spec{Name: "player", Required: true}),
			Arg(params.Spec{Name: "world", Required: true, Suggestions: func(ctx params.Context, _ string) []string {
				player, _ := ctx.Value("player")
				name, _ := player.(string)
				return []string{name + "-home", name + "-nether"}
			}}),
		},
		Handler: returns(nil),
	}))
	return e
}

func TestSuggest(t *testing.T) {
	e := suggestEngine(t)

	tests := []struct {
		name  string
		actor Actor
		input string
		want  []string
	}{
		{"root", admin, "", []string{"echo", "teleport", "tp", "history", "gm", "a", "warp"}},
		{"root prefix", admin, "t", []string{"teleport", "tp"}},
		{"literal and parameter", admin, "tp h", []string{"here", "herobrine"}},
		{"alias path", admin, "teleport ", []string{"here", "herobrine", "steve"}},
		{"permitted branch", admin, "a ", []string{"b"}},
		{"denied branch", steve, "a ", []string{}},
		{"int parameter has no suggestions", admin, "a b ", []string{}},
		{"flag names", admin, "history --l", []string{"--limit"}},
		{"all flags", admin, "history -", []string{"--limit", "--verbose"}},
		{"flag values", admin, "gm --mode s", []string{"survival", "spectator"}},
		{"resolved values feed suggesters", admin, "warp steve ", []string{"steve-home", "steve-nether"}},
		{"unclosed quote", admin, `tp "he`, []string{"here", "herobrine"}},
		{"trailing escape", admin, `tp a\`, []string{}},
		{"no match", admin, "zzz ", []string{}},
		{"complete token without space", admin, "tp here", []string{"here"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, e.Suggest(tt.actor, tt.input))
		})
	}
}

func TestSuggest_HidesDeniedLiterals(t *testing.T) {
	e := New(WithPermissions(roles(map[string][]string{"admin": {"verb.admin"}})))
	register(t, e, "echo <msg...>", returns(nil))
	e.MustRegister(MustCommand(CommandSpec{
		Path:    []Segment{Lit("admin").Require("verb.admin"), Lit("reload")},
		Handler: returns(nil),
	}))

	require.Equal(t, []string{"echo"}, e.Suggest(steve, ""))
	require.Equal(t, []string{"echo", "admin"}, e.Suggest(admin, ""))
	require.Equal(t, []string{}, e.Suggest(steve, "admin "))
	require.Equal(t, []string{"reload"}, e.Suggest(admin, "admin r"))
}

func TestSuggest_HidesCommandsBehindLeafPermission(t *testing.T) {
	e := New(WithPermissions(roles(map[string][]string{"admin": {"mod"}})))
	register(t, e, "echo <msg...>", returns(nil))
	e.MustRegister(MustCommand(CommandSpec{Template: "ban <who:enum:x,y>", Permission: "mod", Handler: returns(nil)}))

	require.Equal(t, []string{}, e.Suggest(steve, "ban "))
	require.Equal(t, []string{"echo"}, e.Suggest(steve, ""))
	require.Equal(t, []string{"x", "y"}, e.Suggest(admin, "ban "))
	require.Equal(t, []string{"echo", "ban"}, e.Suggest(admin, ""))
}

func TestSuggest_OptionalParametersExposeFollowers(t *testing.T) {
	e := New()
	register(t, e, "give [count:int=1] <item:enum:apple,arrow>", returns(nil))

	require.Equal(t, []string{"apple", "arrow"}, e.Suggest(steve, "give a"))
	require.Equal(t, []string{"arrow"}, e.Suggest(steve, "give 5 ar"))
}
