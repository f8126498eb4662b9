package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/verb/internal/params"
)

func cmdFor(t *testing.T, template string) *Command {
	t.Helper()
	cmd, err := NewCommand(CommandSpec{Template: template, Handler: returns(template)})
	require.NoError(t, err)
	return cmd
}

func TestTree_InsertMergesLiterals(t *testing.T) {
	tree := NewTree()
	tree.Insert(cmdFor(t, "config get <key>"))
	tree.Insert(cmdFor(t, "config set <key> <value>"))

	root := tree.Root()
	require.Len(t, root.Children, 1)

	config := root.Children[0]
	require.Equal(t, "config", config.Name)
	require.Equal(t, []string{"config"}, config.Path)
	require.Len(t, config.Children, 2)

	set := config.Children[1]
	require.Equal(t, []string{"config", "set"}, set.Path)
	require.Equal(t, []string{"config", "set", "<key>", "<value>"}, set.Children[0].Children[0].Path)
}

func TestTree_InsertUnionsAliases(t *testing.T) {
	tree := NewTree()
	tree.Insert(cmdFor(t, "teleport|tp here"))
	tree.Insert(cmdFor(t, "tp|goto <player>"))

	root := tree.Root()
	require.Len(t, root.Children, 1)
	require.Equal(t, []string{"teleport", "tp", "goto"}, root.Children[0].Names())
	require.True(t, root.Children[0].MatchesLiteral("GOTO", false))
	require.False(t, root.Children[0].MatchesLiteral("GOTO", true))
}

func TestTree_ParameterNodesReusedOnlyWithSameShape(t *testing.T) {
	tree := NewTree()
	tree.Insert(cmdFor(t, "tp <player>"))
	tree.Insert(cmdFor(t, "tp <player> <world>"))
	tree.Insert(cmdFor(t, "tp <player:int>"))
	tree.Insert(cmdFor(t, "tp here"))

	tp := tree.Root().Children[0]
	require.Len(t, tp.Children, 3)
	require.Equal(t, NodeParameter, tp.Children[0].Kind)
	require.True(t, tp.Children[0].IsLeaf())
	require.Len(t, tp.Children[0].Children, 1)
	require.Equal(t, params.KindInt, tp.Children[1].Param.Kind)
	require.Equal(t, NodeLiteral, tp.Children[2].Kind)
}

func TestTree_CopyOnWrite(t *testing.T) {
	tree := NewTree()
	tree.Insert(cmdFor(t, "a b"))
	before := tree.Root()
	a := before.Children[0]

	tree.Insert(cmdFor(t, "a c"))
	after := tree.Root()

	require.NotSame(t, before, after)
	require.Len(t, a.Children, 1, "published node must not change")
	require.Len(t, after.Children[0].Children, 2)

	tree.Remove(MustParseTemplate("a b"))
	require.Len(t, after.Children[0].Children, 2, "published node must not change")
	require.Len(t, tree.Root().Children[0].Children, 1)
}

func TestTree_RemovePrunes(t *testing.T) {
	tree := NewTree()
	tree.Insert(cmdFor(t, "a b c"))
	tree.Insert(cmdFor(t, "a x"))

	removed := tree.Remove(MustParseTemplate("a b c"))
	require.Len(t, removed, 1)

	a := tree.Root().Children[0]
	require.Len(t, a.Children, 1)
	require.Equal(t, "x", a.Children[0].Name)

	tree.Remove(MustParseTemplate("a x"))
	require.Empty(t, tree.Root().Children)
}

func TestTree_RemoveKeepsSharedAncestorWithLeaf(t *testing.T) {
	tree := NewTree()
	tree.Insert(cmdFor(t, "home"))
	tree.Insert(cmdFor(t, "home set"))

	tree.Remove(MustParseTemplate("home set"))

	home := tree.Root().Children[0]
	require.True(t, home.IsLeaf())
	require.Empty(t, home.Children)
}

func TestTree_RemoveParameterTail(t *testing.T) {
	tree := NewTree()
	tree.Insert(cmdFor(t, "tp here"))
	tree.Insert(cmdFor(t, "tp <player> [world]"))

	removed := tree.Remove(MustParseTemplate("tp"))
	require.Len(t, removed, 1)
	require.Equal(t, "tp <player> [world]", removed[0].Usage())

	tp := tree.Root().Children[0]
	require.Len(t, tp.Children, 1)
	require.Equal(t, "here", tp.Children[0].Name)
}

func TestTree_RemoveMissingPath(t *testing.T) {
	tree := NewTree()
	tree.Insert(cmdFor(t, "a"))
	root := tree.Root()

	require.Nil(t, tree.Remove(MustParseTemplate("b")))
	require.Nil(t, tree.Remove(nil))
	require.Same(t, root, tree.Root())
}

func TestTree_FlagIndex(t *testing.T) {
	tree := NewTree()
	tree.Insert(cmdFor(t, "history [--limit|-l:int] [--verbose]"))

	root := tree.Root()
	takesValue, ok := root.HasFlag("limit", false)
	require.True(t, ok)
	require.True(t, takesValue)

	takesValue, ok = root.HasFlag("l", true)
	require.True(t, ok)
	require.True(t, takesValue)

	takesValue, ok = root.HasFlag("verbose", false)
	require.True(t, ok)
	require.False(t, takesValue)

	require.Equal(t, []string{"limit", "verbose"}, root.FlagNames())

	tree.Remove(MustParseTemplate("history"))
	_, ok = tree.Root().HasFlag("limit", false)
	require.False(t, ok)
}

func TestTree_FindAndCommands(t *testing.T) {
	tree := NewTree()
	tree.Insert(cmdFor(t, "a b"))
	tree.Insert(cmdFor(t, "a <n:int>"))

	n := tree.Find(MustParseTemplate("a <n:int>"))
	require.NotNil(t, n)
	require.True(t, n.IsLeaf())
	require.Nil(t, tree.Find(MustParseTemplate("a z")))

	require.Len(t, tree.Commands(), 2)
	require.Equal(t, []string{"a b", "a"}, CollectAllCommands(tree.Root()))
}
