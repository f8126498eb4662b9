package dispatchers

import (
	"time"

	"github.com/google/uuid"
)

// Actor is the caller issuing a command.
type Actor interface {
	Name() string
}

// NamedActor is an Actor identified only by its name.
type NamedActor string

func (a NamedActor) Name() string { return string(a) }

type binding struct {
	name  string
	value any
}

// Context carries the resolved arguments of one dispatch. A new Context is
// created for every call and is not safe for concurrent use.
type Context struct {
	actor    Actor
	input    string
	command  *Command
	bindings []binding
}

func newContext(actor Actor, input string) *Context {
	return &Context{actor: actor, input: input}
}

// Actor returns the caller.
func (c *Context) Actor() Actor {
	return c.actor
}

// ActorName returns the caller's name, or "" without an actor.
func (c *Context) ActorName() string {
	if c.actor == nil {
		return ""
	}
	return c.actor.Name()
}

// Input returns the raw text being dispatched.
func (c *Context) Input() string {
	return c.input
}

// Command returns the matched command. It is nil until resolution finishes.
func (c *Context) Command() *Command {
	return c.command
}

func (c *Context) bind(name string, value any) {
	c.bindings = append(c.bindings, binding{name: name, value: value})
}

func (c *Context) truncate(n int) {
	clear(c.bindings[n:])
	c.bindings = c.bindings[:n]
}

// Value returns the value bound to name. The latest binding wins.
func (c *Context) Value(name string) (any, bool) {
	for i := len(c.bindings) - 1; i >= 0; i-- {
		if c.bindings[i].name == name {
			return c.bindings[i].value, true
		}
	}
	return nil, false
}

// Get returns the value bound to name, or nil.
func (c *Context) Get(name string) any {
	v, _ := c.Value(name)
	return v
}

// Has returns true if name is bound to a non-nil value.
func (c *Context) Has(name string) bool {
	v, ok := c.Value(name)
	return ok && v != nil
}

// Args returns the values of the matched command's parameters in
// declaration order: positional parameters first, then flags.
func (c *Context) Args() []any {
	if c.command == nil {
		return nil
	}
	specs := c.command.Parameters()
	out := make([]any, len(specs))
	for i, p := range specs {
		out[i] = c.Get(p.Name)
	}
	return out
}

// String returns the string value of name, or defaultVal if absent.
func (c *Context) String(name, defaultVal string) string {
	if s, ok := c.Get(name).(string); ok {
		return s
	}
	return defaultVal
}

// Int returns the int value of name, or defaultVal if absent.
func (c *Context) Int(name string, defaultVal int) int {
	switch n := c.Get(name).(type) {
	case int:
		return n
	case int64:
		return int(n)
	}
	return defaultVal
}

// Int64 returns the int64 value of name, or defaultVal if absent.
func (c *Context) Int64(name string, defaultVal int64) int64 {
	switch n := c.Get(name).(type) {
	case int64:
		return n
	case int:
		return int64(n)
	}
	return defaultVal
}

// Float returns the float64 value of name, or defaultVal if absent.
func (c *Context) Float(name string, defaultVal float64) float64 {
	if f, ok := c.Get(name).(float64); ok {
		return f
	}
	return defaultVal
}

// Bool returns the boolean value of name. Switches are false when absent.
func (c *Context) Bool(name string) bool {
	b, _ := c.Get(name).(bool)
	return b
}

// Duration returns the duration value of name, or defaultVal if absent.
func (c *Context) Duration(name string, defaultVal time.Duration) time.Duration {
	if d, ok := c.Get(name).(time.Duration); ok {
		return d
	}
	return defaultVal
}

// UUID returns the UUID value of name, or uuid.Nil if absent.
func (c *Context) UUID(name string) uuid.UUID {
	id, _ := c.Get(name).(uuid.UUID)
	return id
}

// List returns the list value of name.
func (c *Context) List(name string) []any {
	l, _ := c.Get(name).([]any)
	return l
}
