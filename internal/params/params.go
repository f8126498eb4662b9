// Package params holds parameter descriptors and the registry of value
// parsers used to turn command-line tokens into typed values.
package params

import (
	"fmt"
	"slices"
	"strings"

	"github.com/footprint-tools/verb/internal/stream"
)

// Kind names the value type a parameter resolves to.
type Kind string

const (
	KindString   Kind = "string"
	KindWord     Kind = "word"
	KindInt      Kind = "int"
	KindInt64    Kind = "int64"
	KindFloat    Kind = "float"
	KindBool     Kind = "bool"
	KindUUID     Kind = "uuid"
	KindEnum     Kind = "enum"
	KindList     Kind = "list"
	KindDuration Kind = "duration"
)

// Priority orders sibling parameter nodes during matching. Lower values are
// attempted first.
type Priority int

const (
	PriorityHighest Priority = iota
	PriorityNormal
	PriorityLowest
)

func (p Priority) String() string {
	switch p {
	case PriorityHighest:
		return "highest"
	case PriorityNormal:
		return "normal"
	case PriorityLowest:
		return "lowest"
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// Bounds is an inclusive numeric range.
type Bounds struct {
	Min, Max float64
}

// Size is an inclusive length range for strings and lists.
type Size struct {
	Min, Max int
}

// Spec describes one parameter of a command.
type Spec struct {
	Name        string
	Kind        Kind
	Description string

	// Required parameters must be present in the input. Optional ones are
	// filled from Default, or left nil when Default is empty.
	Required bool
	Default  string

	// Flag parameters are matched by marker (--name value) anywhere after the
	// command path instead of positionally. Switch parameters are flags
	// without a value; they resolve to true when present.
	Flag   bool
	Switch bool
	Short  string

	// Greedy string parameters consume the rest of the input verbatim.
	Greedy bool

	Choices []string
	Elem    Kind
	Range   *Bounds
	Length  *Size
	Tags    []string

	// Suggestions overrides the kind's suggester for this parameter only.
	Suggestions func(ctx Context, prefix string) []string
}

// HasDefault reports whether the parameter declares a default value.
func (s Spec) HasDefault() bool {
	return s.Default != ""
}

// Optional reports whether the parameter may be omitted.
func (s Spec) Optional() bool {
	return !s.Required || s.HasDefault()
}

// IsMarker reports whether the parameter is matched by a flag marker rather
// than by position.
func (s Spec) IsMarker() bool {
	return s.Flag || s.Switch
}

// HasTag reports whether tag was attached to the parameter.
func (s Spec) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

// SameShape reports whether two specs describe interchangeable tree nodes.
func (s Spec) SameShape(o Spec) bool {
	return s.Name == o.Name &&
		s.Kind == o.Kind &&
		s.Elem == o.Elem &&
		s.Required == o.Required &&
		s.Greedy == o.Greedy &&
		s.Flag == o.Flag &&
		s.Switch == o.Switch
}

// String renders the parameter the way help output shows it.
func (s Spec) String() string {
	if s.Switch {
		return "--" + s.Name
	}
	label := s.Name
	if s.Kind != "" && s.Kind != KindString {
		label += ":" + string(s.Kind)
	}
	if s.Greedy {
		label += "..."
	}
	if s.Flag {
		label = "--" + s.Name + " <" + label + ">"
		if s.Required {
			return label
		}
		return "[" + label + "]"
	}
	if s.Required {
		return "<" + label + ">"
	}
	return "[" + label + "]"
}

// Context is the read-only view of a dispatch that parameter types may use.
type Context interface {
	ActorName() string
	Value(name string) (any, bool)
}

// Type parses parameter values from a token stream.
type Type interface {
	Parse(s *stream.Stream, ctx Context, spec Spec) (any, error)
	Priority() Priority
}

// Suggester is implemented by types that can offer completion candidates.
type Suggester interface {
	Suggest(ctx Context, spec Spec, prefix string) []string
}

// FilterPrefix returns the candidates starting with prefix, case-insensitively,
// in their original order.
func FilterPrefix(candidates []string, prefix string) []string {
	if prefix == "" {
		return candidates
	}
	lower := strings.ToLower(prefix)
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			out = append(out, c)
		}
	}
	return out
}
