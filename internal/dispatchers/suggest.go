package dispatchers

import (
	"strings"

	"github.com/footprint-tools/verb/internal/params"
	"github.com/footprint-tools/verb/internal/stream"
)

// suggester walks every viable branch for the complete tokens of the input
// and collects candidates for the last, partial one.
type suggester struct {
	*walker
	out  []string
	seen map[string]bool
}

// Suggest returns completion candidates for the last token of input. The
// last token is partial when the input does not end with a separator.
// Malformed input yields an empty list, never an error.
func (e *Engine) Suggest(actor Actor, input string) []string {
	sg := &suggester{
		walker: &walker{
			e:        e,
			actor:    actor,
			s:        stream.New(input),
			ctx:      newContext(actor, input),
			tolerant: true,
		},
		seen: make(map[string]bool),
	}
	sg.walk(e.tree.Root())
	if sg.out == nil {
		return []string{}
	}
	return sg.out
}

func (sg *suggester) add(candidates ...string) {
	for _, c := range candidates {
		if !sg.seen[c] {
			sg.seen[c] = true
			sg.out = append(sg.out, c)
		}
	}
}

func (sg *suggester) walk(n *Node) {
	sg.skipFlags(n)
	if tok := sg.partialValue; tok != nil {
		sg.partialValue = nil
		if spec, ok := findFlag(n, tok.name, tok.short); ok {
			sg.add(sg.e.types.Suggest(sg.ctx, spec, tok.value)...)
		}
		return
	}

	if !sg.s.HasMore() {
		if sg.s.CanRead() || sg.s.Input() == "" {
			sg.offer(n, "")
		}
		return
	}

	mark := sg.save()
	start := sg.s.TokenStart()
	token, err := sg.s.ReadString()
	if err != nil {
		sg.restore(mark)
		if partial, ok := unclosedPartial(sg.s.Input()[start:]); ok {
			sg.offer(n, partial)
		}
		return
	}
	if !sg.s.CanRead() {
		sg.restore(mark)
		sg.offer(n, token)
		return
	}
	sg.restore(mark)

	for _, child := range sg.ordered(n) {
		if _, denied := sg.denied(child); denied {
			continue
		}
		if child.Kind == NodeLiteral {
			sg.descendLiteral(child)
		} else {
			sg.descendParameter(child)
		}
	}
}

func (sg *suggester) descendLiteral(child *Node) {
	mark := sg.save()
	defer sg.restore(mark)

	token, err := sg.s.ReadString()
	if err != nil || !child.MatchesLiteral(token, sg.e.cfg.CaseSensitive) {
		return
	}
	sg.walk(child)
}

func (sg *suggester) descendParameter(child *Node) {
	mark := sg.save()
	if v, err := sg.e.types.Parse(sg.s, sg.ctx, child.Param); err == nil {
		sg.ctx.bind(child.Param.Name, v)
		sg.walk(child)
	}
	sg.restore(mark)

	if child.Param.Optional() {
		if v, err := sg.e.types.Default(sg.ctx, child.Param); err == nil {
			sg.ctx.bind(child.Param.Name, v)
			sg.walk(child)
		}
		sg.restore(mark)
	}
}

// offer adds the candidates available directly below n for prefix.
func (sg *suggester) offer(n *Node, prefix string) {
	if !sg.endOfFlags {
		if _, _, isFlag := sg.e.cfg.splitMarker(prefix); isFlag || prefix == sg.e.cfg.FlagPrefix || (prefix != "" && prefix == sg.e.cfg.ShortFlagPrefix) {
			sg.offerFlags(n, prefix)
			return
		}
	}

	for _, child := range sg.ordered(n) {
		if _, denied := sg.denied(child); denied {
			continue
		}
		if child.Kind == NodeLiteral {
			sg.add(sg.filterLiteral(child, prefix)...)
			continue
		}
		sg.add(sg.e.types.Suggest(sg.ctx, child.Param, prefix)...)

		if child.Param.Optional() && !child.Param.Greedy {
			mark := sg.save()
			if v, err := sg.e.types.Default(sg.ctx, child.Param); err == nil {
				sg.ctx.bind(child.Param.Name, v)
				sg.offer(child, prefix)
			}
			sg.restore(mark)
		}
	}
}

func (sg *suggester) filterLiteral(n *Node, prefix string) []string {
	if !sg.e.cfg.CaseSensitive {
		return params.FilterPrefix(n.Names(), prefix)
	}
	var out []string
	for _, name := range n.Names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// offerFlags adds the flags of every command reachable from n that the
// actor may run.
func (sg *suggester) offerFlags(n *Node, prefix string) {
	n.Walk(func(d *Node) {
		for _, leaf := range d.Leaves {
			if !sg.permitted(leaf.Permission) {
				continue
			}
			for _, f := range leaf.Flags {
				long := sg.e.cfg.FlagPrefix + f.Name
				if strings.HasPrefix(long, prefix) {
					sg.add(long)
				}
			}
		}
	})
}

// findFlag returns the first flag with the given name declared at or below n.
func findFlag(n *Node, name string, short bool) (params.Spec, bool) {
	var found params.Spec
	ok := false
	n.Walk(func(d *Node) {
		for _, leaf := range d.Leaves {
			if ok {
				return
			}
			if short {
				found, ok = leaf.ShortFlag(name)
			} else {
				found, ok = leaf.Flag(name)
			}
		}
	})
	return found, ok
}

// unclosedPartial returns the text of a token whose opening quote was never
// closed, with escapes removed.
func unclosedPartial(rest string) (string, bool) {
	if rest == "" {
		return "", false
	}
	r := rune(rest[0])
	if !stream.IsQuote(r) {
		return "", false
	}
	if strings.HasSuffix(rest, `\`) && !strings.HasSuffix(rest, `\\`) {
		rest = rest[:len(rest)-1]
	}
	var b strings.Builder
	escaped := false
	for _, c := range rest[1:] {
		if c == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(c)
	}
	return b.String(), true
}
