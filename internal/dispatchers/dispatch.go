package dispatchers

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/footprint-tools/verb/internal/params"
	"github.com/footprint-tools/verb/internal/stream"
	"github.com/footprint-tools/verb/internal/usage"
)

// flagToken is a flag marker read from the input, bound once a leaf is known.
type flagToken struct {
	name     string
	short    bool
	raw      string
	value    string
	hasValue bool
	position int
}

type walkMark struct {
	stream     stream.Mark
	bindings   int
	pending    int
	endOfFlags bool
}

// walker holds the state of one depth-first match of the input.
type walker struct {
	e       *Engine
	actor   Actor
	s       *stream.Stream
	ctx     *Context
	pending []flagToken

	endOfFlags bool
	best       *usage.Error
	abort      *usage.Error

	// tolerant leaves the last token unread for completion; a flag value
	// found in that position is parked in partialValue.
	tolerant     bool
	partialValue *flagToken
}

type match struct {
	node *Node
	leaf *Command
}

// Resolve matches input against the tree without running anything.
func (e *Engine) Resolve(actor Actor, input string) (Resolution, error) {
	if _, err := stream.Tokenize(input); err != nil {
		return Resolution{}, err
	}

	root := e.tree.Root()
	w := &walker{
		e:     e,
		actor: actor,
		s:     stream.New(input),
		ctx:   newContext(actor, input),
	}

	if !w.s.HasMore() {
		return Resolution{}, usage.UnknownCommand("")
	}

	m := w.walk(root)
	if m == nil {
		if w.abort != nil {
			return Resolution{}, w.abort
		}
		if w.best != nil {
			return Resolution{}, w.best
		}
		return Resolution{}, usage.UnknownCommand(strings.TrimSpace(input))
	}

	w.ctx.command = m.leaf
	return Resolution{Command: m.leaf, Node: m.node, Context: w.ctx}, nil
}

func (w *walker) save() walkMark {
	return walkMark{
		stream:     w.s.Snapshot(),
		bindings:   len(w.ctx.bindings),
		pending:    len(w.pending),
		endOfFlags: w.endOfFlags,
	}
}

func (w *walker) restore(m walkMark) {
	w.s.Restore(m.stream)
	w.ctx.truncate(m.bindings)
	w.pending = w.pending[:m.pending]
	w.endOfFlags = m.endOfFlags
}

// fail records err if it got further into the input than the current best.
// On a tie the earlier error is kept.
func (w *walker) fail(err error) {
	var uerr *usage.Error
	if !errors.As(err, &uerr) {
		uerr = &usage.Error{Kind: usage.ErrUnknown, Message: err.Error(), Cause: err, Position: w.s.TokenStart()}
	}
	if w.best == nil || uerr.Position > w.best.Position {
		w.best = uerr
	}
}

func (w *walker) permitted(permission string) bool {
	return permitted(w.e.perms, w.actor, permission)
}

// denied returns the permission keeping the actor out of child: the
// child's own gate, or a gate on every command below it.
func (w *walker) denied(child *Node) (string, bool) {
	if !w.permitted(child.Permission) {
		return child.Permission, true
	}
	if ok, permission := reachable(w.e.perms, w.actor, child); !ok {
		return permission, true
	}
	return "", false
}

// ordered returns the children of n in match order: literals first, then
// parameters by type priority, keeping declaration order within a class.
func (w *walker) ordered(n *Node) []*Node {
	return orderChildren(n, w.e.types)
}

func orderChildren(n *Node, types *params.Registry) []*Node {
	out := slices.Clone(n.Children)
	slices.SortStableFunc(out, func(a, b *Node) int {
		if a.Kind != b.Kind {
			return cmp.Compare(a.Kind, b.Kind)
		}
		if a.Kind == NodeLiteral {
			return 0
		}
		return cmp.Compare(types.Priority(a.Param), types.Priority(b.Param))
	})
	return out
}

func (w *walker) walk(n *Node) *match {
	w.skipFlags(n)
	if !w.s.HasMore() {
		return w.finish(n)
	}

	start := w.s.TokenStart()
	for _, child := range w.ordered(n) {
		var m *match
		if child.Kind == NodeLiteral {
			m = w.tryLiteral(child)
		} else {
			m = w.tryParameter(child)
		}
		if m != nil || w.abort != nil {
			return m
		}
	}

	w.failUnmatched(n, start)
	return nil
}

func (w *walker) tryLiteral(child *Node) *match {
	mark := w.save()
	start := w.s.TokenStart()
	token, err := w.s.ReadString()
	if err != nil {
		w.fail(err)
		w.restore(mark)
		return nil
	}
	if !child.MatchesLiteral(token, w.e.cfg.CaseSensitive) {
		w.restore(mark)
		return nil
	}
	if permission, denied := w.denied(child); denied {
		w.abort = usage.NoPermission(permission).At(start)
		return nil
	}
	if m := w.walk(child); m != nil || w.abort != nil {
		return m
	}
	w.restore(mark)
	return nil
}

func (w *walker) tryParameter(child *Node) *match {
	start := w.s.TokenStart()
	if permission, denied := w.denied(child); denied {
		w.fail(usage.NoPermission(permission).At(start))
		return nil
	}

	mark := w.save()
	v, err := w.e.types.Parse(w.s, w.ctx, child.Param)
	if err != nil {
		w.fail(err)
		w.restore(mark)
	} else {
		w.ctx.bind(child.Param.Name, v)
		if m := w.walk(child); m != nil || w.abort != nil {
			return m
		}
		w.restore(mark)
	}

	if child.Param.Optional() {
		return w.skipOptional(child)
	}
	return nil
}

// skipOptional binds the default of an omitted optional parameter and
// continues matching the same input below it.
func (w *walker) skipOptional(child *Node) *match {
	mark := w.save()
	v, err := w.e.types.Default(w.ctx, child.Param)
	if err != nil {
		w.fail(err)
		return nil
	}
	w.ctx.bind(child.Param.Name, v)
	if m := w.walk(child); m != nil || w.abort != nil {
		return m
	}
	w.restore(mark)
	return nil
}

// failUnmatched records why no child of n accepted the next token.
func (w *walker) failUnmatched(n *Node, start int) {
	mark := w.save()
	token, _ := w.s.ReadString()
	w.restore(mark)

	var literals []string
	hasParam := false
	for _, c := range n.Children {
		if c.Kind == NodeLiteral {
			if _, denied := w.denied(c); !denied {
				literals = append(literals, c.Name)
			}
		} else {
			hasParam = true
		}
	}

	switch {
	case n.IsRoot():
		similar := FindSimilarCommands(token, w.literalNames(n), w.e.cfg.MaxSimilar)
		w.fail(usage.UnknownCommand(token, similar...).At(start))
	case len(literals) > 0 && !hasParam:
		w.fail(usage.ExpectedLiteral(token, literals...).At(start))
	default:
		consumed := strings.TrimSpace(w.s.Input()[:start])
		w.fail(usage.UnknownCommand(strings.TrimSpace(consumed + " " + token)).At(start))
	}
}

func (w *walker) literalNames(n *Node) []string {
	var names []string
	for _, c := range n.Children {
		if c.Kind != NodeLiteral {
			continue
		}
		if _, denied := w.denied(c); !denied {
			names = append(names, c.Names()...)
		}
	}
	return names
}

// finish is reached with the input exhausted. It picks a leaf at n or
// descends through parameters that may be omitted.
func (w *walker) finish(n *Node) *match {
	end := len(w.s.Input())
	if n.IsRoot() {
		// Only flag markers were given.
		token, position := "", 0
		if len(w.pending) > 0 {
			token, position = w.pending[0].raw, w.pending[0].position
		}
		similar := FindSimilarCommands(token, w.literalNames(n), w.e.cfg.MaxSimilar)
		w.fail(usage.UnknownCommand(token, similar...).At(position))
		return nil
	}
	if n.IsLeaf() {
		if m := w.bindLeaf(n); m != nil {
			return m
		}
		return nil
	}

	children := w.ordered(n)
	for _, child := range children {
		if child.Kind != NodeParameter || !child.Param.Optional() {
			continue
		}
		if _, denied := w.denied(child); denied {
			continue
		}
		if m := w.skipOptional(child); m != nil || w.abort != nil {
			return m
		}
	}

	var literals []string
	denied := ""
	for _, child := range children {
		permission, isDenied := w.denied(child)
		if isDenied && denied == "" {
			denied = permission
		}
		if child.Kind == NodeLiteral {
			if !isDenied {
				literals = append(literals, child.Name)
			}
			continue
		}
		if child.Param.Optional() || isDenied {
			continue
		}
		w.fail(usage.MissingArgument(child.Param.Name).At(end))
		return nil
	}
	if len(literals) > 0 {
		w.fail(usage.ExpectedLiteral("", literals...).At(end))
		return nil
	}
	if denied != "" {
		w.fail(usage.NoPermission(denied).At(end))
	}
	return nil
}

// bindLeaf selects the first command at n the actor may run whose flags
// accept the pending flag tokens.
func (w *walker) bindLeaf(n *Node) *match {
	denied := ""
	for _, leaf := range n.Leaves {
		if !w.permitted(leaf.Permission) {
			denied = leaf.Permission
			continue
		}
		mark := w.save()
		if err := w.bindFlags(leaf); err != nil {
			w.fail(err)
			w.restore(mark)
			continue
		}
		return &match{node: n, leaf: leaf}
	}
	if denied != "" {
		w.fail(usage.NoPermission(denied).At(len(w.s.Input())))
	}
	return nil
}

func (w *walker) bindFlags(leaf *Command) error {
	seen := make(map[string]bool)
	for _, tok := range w.pending {
		var spec params.Spec
		var ok bool
		if tok.short {
			spec, ok = leaf.ShortFlag(tok.name)
		} else {
			spec, ok = leaf.Flag(tok.name)
		}
		if !ok {
			return usage.InvalidFlag(tok.raw).At(tok.position)
		}
		seen[spec.Name] = true

		if spec.Switch && !tok.hasValue {
			w.ctx.bind(spec.Name, true)
			continue
		}
		if !tok.hasValue {
			return usage.MissingArgument(spec.Name).At(tok.position)
		}
		v, err := w.parseFlagValue(spec, tok)
		if err != nil {
			return err
		}
		w.ctx.bind(spec.Name, v)
	}

	for _, spec := range leaf.Flags {
		if seen[spec.Name] {
			continue
		}
		if spec.Required && !spec.HasDefault() {
			return usage.MissingArgument(spec.Name).At(len(w.s.Input()))
		}
		v, err := w.e.types.Default(w.ctx, spec)
		if err != nil {
			return err
		}
		w.ctx.bind(spec.Name, v)
	}
	return nil
}

func (w *walker) parseFlagValue(spec params.Spec, tok flagToken) (any, error) {
	if spec.Switch {
		spec = params.Spec{Name: spec.Name, Kind: params.KindBool}
	}
	v, err := w.e.types.ParseText(w.ctx, spec, tok.value)
	if err != nil {
		var uerr *usage.Error
		if errors.As(err, &uerr) {
			uerr.At(tok.position)
			return nil, uerr
		}
		return nil, usage.InvalidFlag(tok.raw).At(tok.position)
	}
	return v, nil
}

// skipFlags consumes flag markers at the cursor, reading the value of flags
// known to take one. Binding happens when a leaf is reached.
func (w *walker) skipFlags(n *Node) {
	for !w.endOfFlags && w.s.HasMore() {
		start := w.s.TokenStart()
		if r, _ := utf8.DecodeRuneInString(w.s.Input()[start:]); stream.IsQuote(r) {
			return
		}

		mark := w.s.Snapshot()
		raw, err := w.s.ReadUnquotedWord()
		if err != nil || (w.tolerant && !w.s.CanRead()) {
			w.s.Restore(mark)
			return
		}
		if raw == w.e.cfg.FlagPrefix {
			w.endOfFlags = true
			continue
		}

		name, short, ok := w.e.cfg.splitMarker(raw)
		if !ok {
			w.s.Restore(mark)
			return
		}

		tok := flagToken{name: name, short: short, raw: raw, position: start}
		if before, after, found := strings.Cut(name, "="); found {
			tok.name, tok.value, tok.hasValue = before, after, true
		}
		takesValue, known := n.HasFlag(tok.name, short)
		if known && takesValue && !tok.hasValue && w.s.HasMore() {
			v, err := w.s.ReadString()
			if w.tolerant && (err != nil || !w.s.CanRead()) {
				tok.value = v
				w.partialValue = &tok
				return
			}
			if err != nil {
				w.s.Restore(mark)
				return
			}
			tok.value, tok.hasValue = v, true
		}
		w.pending = append(w.pending, tok)
	}
}

// splitMarker reports whether raw is a flag marker and returns its name.
// A marker must be followed by a letter, so negative numbers stay positional.
func (c Config) splitMarker(raw string) (name string, short bool, ok bool) {
	if rest, found := strings.CutPrefix(raw, c.FlagPrefix); found && startsWithLetter(rest) {
		return rest, false, true
	}
	if c.ShortFlagPrefix == "" || strings.HasPrefix(raw, c.FlagPrefix) {
		return "", false, false
	}
	if rest, found := strings.CutPrefix(raw, c.ShortFlagPrefix); found && startsWithLetter(rest) {
		return rest, true, true
	}
	return "", false, false
}

func startsWithLetter(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsLetter(r)
}
