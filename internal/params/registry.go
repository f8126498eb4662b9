package params

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/footprint-tools/verb/internal/stream"
	"github.com/footprint-tools/verb/internal/usage"
)

// ErrUnknownKind is returned when no type is registered for a kind or any of
// its supertypes.
var ErrUnknownKind = errors.New("unknown parameter kind")

// Constraint selects a type for specs carrying extra metadata.
type Constraint func(Spec) bool

type entry struct {
	typ        Type
	constraint Constraint
}

// Registry maps parameter kinds to types. It is an explicit value so that
// independent engines can carry different type sets.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind][]entry
	parents map[Kind]Kind
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Kind][]entry),
		parents: make(map[Kind]Kind),
	}
}

// Register sets the unconstrained type for kind, replacing any previous one.
func (r *Registry) Register(kind Kind, t Type) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := slices.DeleteFunc(r.entries[kind], func(e entry) bool { return e.constraint == nil })
	r.entries[kind] = append(list, entry{typ: t})
}

// RegisterConstrained adds a type used for kind only when c accepts the spec.
// Constrained types are tried in registration order before the unconstrained one.
func (r *Registry) RegisterConstrained(kind Kind, c Constraint, t Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[kind] = append(r.entries[kind], entry{typ: t, constraint: c})
}

// Extend declares parent as the supertype of kind. A kind with no type of its
// own resolves to the nearest registered ancestor.
func (r *Registry) Extend(kind, parent Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parents[kind] = parent
}

// Kinds returns every kind with at least one registered type.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.entries))
	for k, list := range r.entries {
		if len(list) > 0 {
			kinds = append(kinds, k)
		}
	}
	slices.Sort(kinds)
	return kinds
}

// Resolve finds the type for spec: a constrained entry accepting the spec,
// then the unconstrained entry for the kind, then the same lookup for each
// supertype in turn.
func (r *Registry) Resolve(spec Spec) (Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kind := spec.Kind
	if kind == "" {
		kind = KindString
	}
	seen := make(map[Kind]bool)
	for kind != "" && !seen[kind] {
		seen[kind] = true
		if t := r.lookup(kind, spec); t != nil {
			return t, nil
		}
		kind = r.parents[kind]
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, spec.Kind)
}

func (r *Registry) lookup(kind Kind, spec Spec) Type {
	var fallback Type
	for _, e := range r.entries[kind] {
		if e.constraint == nil {
			fallback = e.typ
			continue
		}
		if e.constraint(spec) {
			return e.typ
		}
	}
	return fallback
}

// Priority returns the priority of the type resolved for spec. Unknown kinds
// sort last.
func (r *Registry) Priority(spec Spec) Priority {
	if spec.Switch {
		return PriorityHighest
	}
	t, err := r.Resolve(spec)
	if err != nil {
		return PriorityLowest
	}
	return t.Priority()
}

// Parse reads one value for spec from s and validates it. Value errors are
// stamped with the offset of the token that produced them.
func (r *Registry) Parse(s *stream.Stream, ctx Context, spec Spec) (any, error) {
	t, err := r.Resolve(spec)
	if err != nil {
		return nil, err
	}
	start := s.TokenStart()
	v, err := t.Parse(s, ctx, spec)
	if err == nil {
		err = Validate(spec, v)
	}
	if err != nil {
		var uerr *usage.Error
		if errors.As(err, &uerr) && !uerr.IsInputParse() {
			if uerr.Position < start {
				uerr.At(start)
			}
			if uerr.Parameter == "" {
				uerr.Parameter = spec.Name
			}
		}
		return nil, err
	}
	return v, nil
}

// ParseText parses a standalone text value, such as a declared default.
func (r *Registry) ParseText(ctx Context, spec Spec, text string) (any, error) {
	s := stream.New(text)
	if spec.Kind == KindList || spec.Greedy {
		return r.Parse(s, ctx, spec)
	}
	v, err := r.Parse(s, ctx, spec)
	if err != nil {
		return nil, err
	}
	if s.HasMore() {
		return nil, fmt.Errorf("trailing input after value %q for %s", text, spec.Name)
	}
	return v, nil
}

// Default returns the value an omitted parameter takes: its parsed default,
// or nil when none is declared. Switches default to false.
func (r *Registry) Default(ctx Context, spec Spec) (any, error) {
	if spec.Switch {
		return false, nil
	}
	if !spec.HasDefault() {
		return nil, nil
	}
	return r.ParseText(ctx, spec, spec.Default)
}

// Suggest returns completion candidates for spec filtered by prefix.
func (r *Registry) Suggest(ctx Context, spec Spec, prefix string) []string {
	if spec.Suggestions != nil {
		return FilterPrefix(spec.Suggestions(ctx, prefix), prefix)
	}
	t, err := r.Resolve(spec)
	if err != nil {
		return nil
	}
	sg, ok := t.(Suggester)
	if !ok {
		return nil
	}
	return FilterPrefix(sg.Suggest(ctx, spec, prefix), prefix)
}
