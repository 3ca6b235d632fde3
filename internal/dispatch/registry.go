package dispatch

import (
	"context"
	"fmt"
)

// Mode controls how a backend invocation is executed.
type Mode int

const (
	// Blocking waits for the process to exit and propagates its failure.
	Blocking Mode = iota
	// Detached starts the process and returns without waiting.
	Detached
	// BestEffort waits for the process but treats a non-zero exit as success.
	BestEffort
)

func (m Mode) String() string {
	switch m {
	case Detached:
		return "detached"
	case BestEffort:
		return "best-effort"
	default:
		return "blocking"
	}
}

// Builtin is a shortcut implemented on the host without the compose backend.
type Builtin func(ctx context.Context, d *Dispatcher) error

// Command is one registry entry. Exactly one of Templates, Builtin or Steps is set.
type Command struct {
	Name    string
	Summary string
	Group   string

	// Param names the caller argument substituted for {cmd}. Empty when the entry takes none.
	Param string

	Mode      Mode
	Templates []string

	Builtin Builtin

	// Steps are entry names run in order, stopping at the first failure.
	Steps []string

	// StopWith names the entry that stops a detached process.
	StopWith string
}

// IsHost reports whether the entry runs without the compose backend.
func (c Command) IsHost() bool {
	return c.Builtin != nil
}

// IsComposite reports whether the entry is a sequence of other entries.
func (c Command) IsComposite() bool {
	return len(c.Steps) > 0
}

// Registry maps command names to entries, remembering registration order.
type Registry struct {
	commands map[string]Command
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds c. It panics if the name is empty or already registered.
func (r *Registry) Register(c Command) {
	if c.Name == "" {
		panic("command name must not be empty")
	}
	if _, exists := r.commands[c.Name]; exists {
		panic(fmt.Sprintf("command %s already registered", c.Name))
	}
	r.commands[c.Name] = c
	r.order = append(r.order, c.Name)
}

// Lookup returns the entry and whether it exists.
func (r *Registry) Lookup(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Commands returns all entries in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}
