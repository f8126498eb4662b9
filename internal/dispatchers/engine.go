package dispatchers

import (
	"errors"
	"fmt"

	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/log"
	"github.com/footprint-tools/verb/internal/params"
	"github.com/footprint-tools/verb/internal/usage"
)

// ErrCancelled is returned by Dispatch when an execute hook cancels.
var ErrCancelled = errors.New("command execution cancelled")

// Config holds the engine's matching options.
type Config struct {
	// FlagPrefix and ShortFlagPrefix mark flag tokens.
	FlagPrefix      string
	ShortFlagPrefix string
	// CaseSensitive makes literal matching exact.
	CaseSensitive bool
	// MaxSimilar caps the "did you mean" candidates on unknown commands.
	MaxSimilar int
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		FlagPrefix:      "--",
		ShortFlagPrefix: "-",
		MaxSimilar:      3,
	}
}

// Option configures an Engine.
type Option func(*Engine)

func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

func WithTypes(r *params.Registry) Option {
	return func(e *Engine) { e.types = r }
}

func WithPermissions(p PermissionChecker) Option {
	return func(e *Engine) { e.perms = p }
}

func WithLogger(l domain.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithHooks(h *Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// Engine matches raw input against the registered commands.
// Dispatch, Resolve and Suggest are safe for concurrent use with each other
// and with Register and Unregister.
type Engine struct {
	tree   *Tree
	types  *params.Registry
	perms  PermissionChecker
	hooks  *Hooks
	logger domain.Logger
	cfg    Config
}

// New creates an Engine. Without options it uses the built-in parameter
// kinds, allows every permission and discards logs.
func New(opts ...Option) *Engine {
	e := &Engine{
		tree:   NewTree(),
		perms:  AllowAll,
		hooks:  NewHooks(),
		logger: log.NopLogger{},
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.types == nil {
		e.types = params.DefaultRegistry()
	}
	if e.cfg.FlagPrefix == "" {
		e.cfg.FlagPrefix = "--"
	}
	return e
}

// Tree returns the engine's command tree.
func (e *Engine) Tree() *Tree { return e.tree }

// Types returns the engine's parameter registry.
func (e *Engine) Types() *params.Registry { return e.types }

// Hooks returns the engine's hook set.
func (e *Engine) Hooks() *Hooks { return e.hooks }

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Commands returns every registered command in tree order.
func (e *Engine) Commands() []*Command { return e.tree.Commands() }

// Register inserts cmd into the tree and runs the register hooks. A
// cancelled registration stays in the tree; callers that want it gone
// must Unregister it.
func (e *Engine) Register(cmd *Command) (cancelled bool, err error) {
	if err := cmd.validate(); err != nil {
		return false, err
	}
	for _, p := range cmd.Parameters() {
		if _, err := e.types.Resolve(p); err != nil {
			return false, fmt.Errorf("register %q: %w", cmd.Name(), err)
		}
		if _, err := e.types.Default(nil, p); err != nil {
			return false, fmt.Errorf("register %q: default for %s: %w", cmd.Name(), p.Name, err)
		}
	}

	e.tree.Insert(cmd)
	e.logger.Debug("dispatch: registered %q", cmd.Usage())

	c := e.hooks.fireRegister(cmd)
	if c.Cancelled() {
		e.logger.Warn("dispatch: registration of %q cancelled: %s", cmd.Name(), c.Reason())
	}
	return c.Cancelled(), nil
}

// MustRegister registers every command, panicking on invalid declarations.
func (e *Engine) MustRegister(cmds ...*Command) {
	for _, cmd := range cmds {
		if _, err := e.Register(cmd); err != nil {
			panic(err)
		}
	}
}

// Unregister removes the commands terminating at the path written as a
// template and runs the unregister hooks for each. It returns how many
// commands were removed.
func (e *Engine) Unregister(path string) (removed int, cancelled bool, err error) {
	segs, _, err := ParseTemplate(path)
	if err != nil {
		return 0, false, err
	}
	return e.UnregisterPath(segs)
}

// UnregisterPath is Unregister for an already parsed path.
func (e *Engine) UnregisterPath(segs []Segment) (removed int, cancelled bool, err error) {
	cmds := e.tree.Remove(segs)
	for _, cmd := range cmds {
		e.logger.Debug("dispatch: unregistered %q", cmd.Usage())
		c := e.hooks.fireUnregister(cmd)
		if c.Cancelled() {
			cancelled = true
			e.logger.Warn("dispatch: unregistration of %q cancelled: %s", cmd.Name(), c.Reason())
		}
	}
	return len(cmds), cancelled, nil
}

// Resolution is a matched command with its bound arguments.
type Resolution struct {
	Command *Command
	Node    *Node
	Context *Context
}

// Dispatch resolves input and runs the matched command's handler.
func (e *Engine) Dispatch(actor Actor, input string) (any, error) {
	res, err := e.Resolve(actor, input)
	if err != nil {
		return nil, err
	}
	return e.Execute(res)
}

// Execute runs the execute hooks and then the handler of a resolution.
// Handler errors and panics are returned as command invocation faults.
func (e *Engine) Execute(res Resolution) (result any, err error) {
	c := e.hooks.fireExecute(res.Context)
	if c.Cancelled() {
		e.logger.Info("dispatch: execution of %q cancelled: %s", res.Command.Name(), c.Reason())
		if c.Reason() == "" {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("%w: %s", ErrCancelled, c.Reason())
	}

	name := res.Command.Name()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("dispatch: %q panicked: %v", name, r)
			result = nil
			err = usage.CommandInvocation(name, fmt.Errorf("panic: %v", r))
		}
	}()

	out, herr := res.Command.Handler(res.Context)
	if herr != nil {
		e.logger.Warn("dispatch: %q failed: %v", name, herr)
		return nil, usage.CommandInvocation(name, herr)
	}
	return out, nil
}
