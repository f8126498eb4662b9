package dispatchers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/footprint-tools/verb/internal/params"
)

// Handler runs a matched command with its resolved arguments.
type Handler func(ctx *Context) (any, error)

// Command is an executable leaf bound to one tree path. It is immutable once
// registered.
type Command struct {
	Path        []Segment
	Flags       []params.Spec
	Permission  string
	Summary     string
	Description string
	Category    CommandCategory
	Handler     Handler
}

// CommandSpec declares a command. The path comes either from Template or
// from Path; flags found in the template are appended to Flags.
type CommandSpec struct {
	Template    string
	Path        []Segment
	Flags       []params.Spec
	Permission  string
	Summary     string
	Description string
	Category    CommandCategory
	Handler     Handler
}

// NewCommand builds a command from spec.
func NewCommand(spec CommandSpec) (*Command, error) {
	path := spec.Path
	flags := spec.Flags
	if spec.Template != "" {
		if len(spec.Path) > 0 {
			return nil, errors.New("command declares both a template and a path")
		}
		var templateFlags []params.Spec
		var err error
		path, templateFlags, err = ParseTemplate(spec.Template)
		if err != nil {
			return nil, err
		}
		flags = append(templateFlags, flags...)
	}

	cmd := &Command{
		Path:        path,
		Flags:       flags,
		Permission:  spec.Permission,
		Summary:     spec.Summary,
		Description: spec.Description,
		Category:    spec.Category,
		Handler:     spec.Handler,
	}
	if err := cmd.validate(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// MustCommand is like NewCommand but panics on error. Intended for static
// command tables.
func MustCommand(spec CommandSpec) *Command {
	cmd, err := NewCommand(spec)
	if err != nil {
		panic(err)
	}
	return cmd
}

func (c *Command) validate() error {
	if len(c.Path) == 0 {
		return errors.New("command path is empty")
	}
	if c.Handler == nil {
		return fmt.Errorf("command %q has no handler", c.Name())
	}

	seen := make(map[string]bool)
	for i, seg := range c.Path {
		if seg.Kind == NodeLiteral {
			if seg.Name == "" {
				return fmt.Errorf("command %q has an empty literal", c.Name())
			}
			continue
		}
		p := seg.Param
		if p.Name == "" {
			return fmt.Errorf("command %q has an unnamed parameter", c.Name())
		}
		if p.IsMarker() {
			return fmt.Errorf("command %q: flag %q must be declared in Flags", c.Name(), p.Name)
		}
		if (p.Greedy || p.Kind == params.KindList) && i != len(c.Path)-1 {
			return fmt.Errorf("command %q: %q consumes the rest of the input and must be last", c.Name(), p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("command %q: duplicate parameter %q", c.Name(), p.Name)
		}
		seen[p.Name] = true
	}

	shorts := make(map[string]bool)
	for _, f := range c.Flags {
		if !f.IsMarker() {
			return fmt.Errorf("command %q: %q in Flags is neither a flag nor a switch", c.Name(), f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("command %q: duplicate parameter %q", c.Name(), f.Name)
		}
		seen[f.Name] = true
		if f.Short != "" {
			if shorts[f.Short] {
				return fmt.Errorf("command %q: duplicate short flag %q", c.Name(), f.Short)
			}
			shorts[f.Short] = true
		}
	}
	return nil
}

// Name returns the literal words of the path joined by spaces.
func (c *Command) Name() string {
	var words []string
	for _, seg := range c.Path {
		if seg.Kind == NodeLiteral {
			words = append(words, seg.Name)
		}
	}
	return strings.Join(words, " ")
}

// Usage renders the full path with parameters and flags.
func (c *Command) Usage() string {
	parts := make([]string, 0, len(c.Path)+len(c.Flags))
	for _, seg := range c.Path {
		parts = append(parts, seg.Label())
	}
	for _, f := range c.Flags {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, " ")
}

// Parameters returns positional parameters in path order followed by flags.
func (c *Command) Parameters() []params.Spec {
	var out []params.Spec
	for _, seg := range c.Path {
		if seg.Kind == NodeParameter {
			out = append(out, seg.Param)
		}
	}
	return append(out, c.Flags...)
}

// Flag returns the flag or switch declared under name.
func (c *Command) Flag(name string) (params.Spec, bool) {
	for _, f := range c.Flags {
		if f.Name == name {
			return f, true
		}
	}
	return params.Spec{}, false
}

// ShortFlag returns the flag or switch declared with the given shorthand.
func (c *Command) ShortFlag(short string) (params.Spec, bool) {
	for _, f := range c.Flags {
		if f.Short != "" && f.Short == short {
			return f, true
		}
	}
	return params.Spec{}, false
}
