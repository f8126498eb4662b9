package dispatchers

import "sync"

// Cancellation is handed to every hook at an observation point. Any hook
// may cancel; the outcome is read once all hooks have run.
type Cancellation struct {
	cancelled bool
	reason    string
}

// Cancel marks the action as cancelled. The first reason given is kept.
func (c *Cancellation) Cancel(reason string) {
	if !c.cancelled {
		c.reason = reason
	}
	c.cancelled = true
}

// Cancelled reports whether any hook cancelled.
func (c *Cancellation) Cancelled() bool {
	return c.cancelled
}

// Reason returns the reason passed to the first Cancel call.
func (c *Cancellation) Reason() string {
	return c.reason
}

// CommandHook observes registration and unregistration.
type CommandHook func(cmd *Command, c *Cancellation)

// ExecuteHook observes a resolved command right before its handler runs.
type ExecuteHook func(ctx *Context, c *Cancellation)

// Hooks holds lifecycle hooks. Hooks run in the order they were added.
type Hooks struct {
	mu           sync.RWMutex
	onRegister   []CommandHook
	onUnregister []CommandHook
	onExecute    []ExecuteHook
}

// NewHooks returns an empty hook set.
func NewHooks() *Hooks {
	return &Hooks{}
}

func (h *Hooks) OnRegister(fn CommandHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRegister = append(h.onRegister, fn)
}

func (h *Hooks) OnUnregister(fn CommandHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUnregister = append(h.onUnregister, fn)
}

func (h *Hooks) OnExecute(fn ExecuteHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onExecute = append(h.onExecute, fn)
}

func (h *Hooks) fireRegister(cmd *Command) *Cancellation {
	h.mu.RLock()
	hooks := h.onRegister
	h.mu.RUnlock()
	return runCommandHooks(hooks, cmd)
}

func (h *Hooks) fireUnregister(cmd *Command) *Cancellation {
	h.mu.RLock()
	hooks := h.onUnregister
	h.mu.RUnlock()
	return runCommandHooks(hooks, cmd)
}

func (h *Hooks) fireExecute(ctx *Context) *Cancellation {
	h.mu.RLock()
	hooks := h.onExecute
	h.mu.RUnlock()

	c := &Cancellation{}
	for _, fn := range hooks {
		fn(ctx, c)
	}
	return c
}

func runCommandHooks(hooks []CommandHook, cmd *Command) *Cancellation {
	c := &Cancellation{}
	for _, fn := range hooks {
		fn(cmd, c)
	}
	return c
}
