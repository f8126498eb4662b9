package dispatchers

import (
	"slices"
	"strings"

	"github.com/footprint-tools/verb/internal/params"
)

// NodeKind tags a node as a fixed keyword or a typed placeholder.
type NodeKind int

const (
	NodeLiteral NodeKind = iota
	NodeParameter
)

// Segment describes one step of a command path before it becomes a node.
type Segment struct {
	Kind       NodeKind
	Name       string
	Aliases    []string
	Param      params.Spec
	Permission string
}

// Lit returns a literal path segment.
func Lit(name string, aliases ...string) Segment {
	return Segment{Kind: NodeLiteral, Name: name, Aliases: aliases}
}

// Arg returns a positional parameter path segment.
func Arg(spec params.Spec) Segment {
	return Segment{Kind: NodeParameter, Name: spec.Name, Param: spec}
}

// Require returns a copy of the segment gated by permission.
func (s Segment) Require(permission string) Segment {
	s.Permission = permission
	return s
}

// Label is the text used for the segment in paths and help.
func (s Segment) Label() string {
	if s.Kind == NodeLiteral {
		return s.Name
	}
	return s.Param.String()
}

// Node is one step of the command tree. Published nodes are never mutated;
// the tree replaces them with modified clones instead.
type Node struct {
	Kind       NodeKind
	Name       string
	Aliases    []string
	Param      params.Spec
	Permission string

	// Path holds the labels from the root down to and including this node.
	Path     []string
	Children []*Node
	Leaves   []*Command

	// flags indexes every flag declared by a leaf at or below this node,
	// keyed by long name and by short name. The value reports whether the
	// flag takes a value.
	flags      map[string]bool
	shortFlags map[string]bool

	// access lists, per distinct command at or below this node, the
	// permissions an actor needs to run it, excluding this node's own gate.
	access [][]string
}

func newNode(seg Segment, parentPath []string) *Node {
	n := &Node{
		Kind:       seg.Kind,
		Name:       seg.Name,
		Aliases:    slices.Clone(seg.Aliases),
		Param:      seg.Param,
		Permission: seg.Permission,
	}
	n.Path = append(slices.Clone(parentPath), seg.Label())
	return n
}

// Label returns the node's text in a path.
func (n *Node) Label() string {
	if n.Kind == NodeLiteral {
		return n.Name
	}
	return n.Param.String()
}

// IsRoot reports whether the node is the tree root.
func (n *Node) IsRoot() bool {
	return len(n.Path) == 0
}

// IsLeaf reports whether at least one command terminates at the node.
func (n *Node) IsLeaf() bool {
	return len(n.Leaves) > 0
}

// Names returns the literal name followed by its aliases.
func (n *Node) Names() []string {
	return append([]string{n.Name}, n.Aliases...)
}

// MatchesLiteral reports whether token selects this literal node.
func (n *Node) MatchesLiteral(token string, caseSensitive bool) bool {
	if n.Kind != NodeLiteral {
		return false
	}
	for _, name := range n.Names() {
		if caseSensitive && name == token {
			return true
		}
		if !caseSensitive && strings.EqualFold(name, token) {
			return true
		}
	}
	return false
}

// Child returns the child addressed by seg, or nil.
func (n *Node) Child(seg Segment) *Node {
	if i := n.childIndex(seg); i >= 0 {
		return n.Children[i]
	}
	return nil
}

func (n *Node) childIndex(seg Segment) int {
	for i, c := range n.Children {
		if c.Kind != seg.Kind {
			continue
		}
		switch seg.Kind {
		case NodeLiteral:
			if slices.Contains(c.Names(), seg.Name) {
				return i
			}
		case NodeParameter:
			if c.Param.SameShape(seg.Param) {
				return i
			}
		}
	}
	return -1
}

// HasFlag reports whether a leaf at or below the node declares the flag, and
// whether it takes a value.
func (n *Node) HasFlag(name string, short bool) (takesValue, ok bool) {
	if short {
		takesValue, ok = n.shortFlags[name]
		return takesValue, ok
	}
	takesValue, ok = n.flags[name]
	return takesValue, ok
}

// FlagNames returns the long names indexed at the node, sorted.
func (n *Node) FlagNames() []string {
	names := make([]string, 0, len(n.flags))
	for name := range n.flags {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (n *Node) clone() *Node {
	c := *n
	c.Aliases = slices.Clone(n.Aliases)
	c.Children = slices.Clone(n.Children)
	c.Leaves = slices.Clone(n.Leaves)
	return &c
}

// reindex rebuilds the flag index from the node's leaves and children.
func (n *Node) reindex() {
	n.flags = make(map[string]bool)
	n.shortFlags = make(map[string]bool)
	for _, leaf := range n.Leaves {
		for _, f := range leaf.Flags {
			takesValue := !f.Switch
			n.flags[f.Name] = n.flags[f.Name] || takesValue
			if f.Short != "" {
				n.shortFlags[f.Short] = n.shortFlags[f.Short] || takesValue
			}
		}
	}
	n.reindexAccess()
	for _, c := range n.Children {
		for name, v := range c.flags {
			n.flags[name] = n.flags[name] || v
		}
		for name, v := range c.shortFlags {
			n.shortFlags[name] = n.shortFlags[name] || v
		}
	}
}

// Walk calls fn for the node and every descendant, depth first, in child order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func (n *Node) reindexAccess() {
	n.access = nil
	seen := make(map[string]bool)
	add := func(req []string) {
		key := strings.Join(req, "\x00")
		if !seen[key] {
			seen[key] = true
			n.access = append(n.access, req)
		}
	}
	for _, leaf := range n.Leaves {
		if leaf.Permission == "" {
			add(nil)
		} else {
			add([]string{leaf.Permission})
		}
	}
	for _, c := range n.Children {
		for _, req := range c.access {
			if c.Permission != "" && !slices.Contains(req, c.Permission) {
				req = append(slices.Clone(req), c.Permission)
			}
			add(req)
		}
	}
}
