package dispatchers

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Tree is the command node tree. Readers load the current root without
// locking and always see a fully linked tree; writers build a modified copy
// of the affected path and publish it with a single pointer swap.
type Tree struct {
	mu   sync.Mutex
	root atomic.Pointer[Node]
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	t := &Tree{}
	root := &Node{Kind: NodeLiteral}
	root.reindex()
	t.root.Store(root)
	return t
}

// Root returns the currently published root.
func (t *Tree) Root() *Node {
	return t.root.Load()
}

// Insert adds cmd at its path, creating or reusing nodes per segment.
// Literal segments merge with an existing sibling of the same name or alias;
// parameter segments merge only with a sibling of the same shape.
func (t *Tree) Insert(cmd *Command) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root.Store(insertAt(t.root.Load(), cmd.Path, cmd))
}

func insertAt(n *Node, segs []Segment, cmd *Command) *Node {
	c := n.clone()
	if len(segs) == 0 {
		c.Leaves = append(c.Leaves, cmd)
		c.reindex()
		return c
	}

	seg := segs[0]
	idx := c.childIndex(seg)
	if idx < 0 {
		child := newNode(seg, c.Path)
		c.Children = append(c.Children, insertAt(child, segs[1:], cmd))
	} else {
		child := insertAt(c.Children[idx], segs[1:], cmd)
		mergeSegment(child, seg)
		c.Children[idx] = child
	}
	c.reindex()
	return c
}

// mergeSegment folds aliases and a permission declared by a later
// registration into an existing node. The node must be a fresh clone.
func mergeSegment(n *Node, seg Segment) {
	if seg.Kind == NodeLiteral {
		for _, alias := range append([]string{seg.Name}, seg.Aliases...) {
			if !containsName(n, alias) {
				n.Aliases = append(n.Aliases, alias)
			}
		}
	}
	if n.Permission == "" {
		n.Permission = seg.Permission
	}
}

func containsName(n *Node, name string) bool {
	for _, existing := range n.Names() {
		if existing == name {
			return true
		}
	}
	return false
}

// Remove detaches the commands addressed by path and prunes ancestors left
// without children or leaves. A path addresses the commands terminating at
// its node and those continuing below it with parameters only, so "tp"
// removes "tp <player>" but not "tp here". It returns the removed commands.
func (t *Tree) Remove(path []Segment) []*Command {
	if len(path) == 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	newRoot, removed := removeAt(t.root.Load(), path)
	if len(removed) == 0 {
		return nil
	}
	t.root.Store(newRoot)
	return removed
}

// removeAt returns the replacement for n and the removed leaves. A nil
// replacement means n should be pruned. n is returned as is when nothing
// was removed.
func removeAt(n *Node, segs []Segment) (*Node, []*Command) {
	if len(segs) == 0 {
		return detach(n)
	}

	idx := n.childIndex(segs[0])
	if idx < 0 {
		return n, nil
	}
	child, removed := removeAt(n.Children[idx], segs[1:])
	if len(removed) == 0 {
		return n, nil
	}

	c := n.clone()
	if child == nil {
		c.Children = slices.Delete(c.Children, idx, idx+1)
	} else {
		c.Children[idx] = child
	}
	return c.pruned(), removed
}

// detach drops the leaves of n and of its parameter-only descendants.
func detach(n *Node) (*Node, []*Command) {
	removed := slices.Clone(n.Leaves)
	kept := make([]*Node, 0, len(n.Children))
	for _, ch := range n.Children {
		if ch.Kind != NodeParameter {
			kept = append(kept, ch)
			continue
		}
		nc, r := detach(ch)
		removed = append(removed, r...)
		if nc != nil {
			kept = append(kept, nc)
		}
	}
	if len(removed) == 0 {
		return n, nil
	}

	c := n.clone()
	c.Leaves = nil
	c.Children = kept
	return c.pruned(), removed
}

// pruned returns nil for a non-root node with nothing left under it, and
// the reindexed node otherwise.
func (n *Node) pruned() *Node {
	if len(n.Children) == 0 && len(n.Leaves) == 0 && !n.IsRoot() {
		return nil
	}
	n.reindex()
	return n
}

// Find returns the node addressed by path in the published tree, or nil.
func (t *Tree) Find(path []Segment) *Node {
	n := t.Root()
	for _, seg := range path {
		if n = n.Child(seg); n == nil {
			return nil
		}
	}
	return n
}

// Commands returns every registered command in tree order.
func (t *Tree) Commands() []*Command {
	var out []*Command
	t.Root().Walk(func(n *Node) {
		out = append(out, n.Leaves...)
	})
	return out
}
