package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]Command)
	registryMu sync.RWMutex
)

// ErrUnknownCommand is returned when Dispatch cannot find a command by name.
var ErrUnknownCommand = errors.New("unknown command")

// Register adds a command to the registry under its definition name.
// It panics if the name is empty or already registered.
func Register(cmd Command) {
	if cmd == nil {
		panic("commands: Register command cannot be nil")
	}
	name := cmd.Definition().Name
	if name == "" {
		panic("commands: Register called with empty name")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("commands: Register called twice for %q", name))
	}
	registry[name] = cmd
}

// Get retrieves a command by name.
func Get(name string) (Command, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	cmd, found := registry[name]
	return cmd, found
}

// All returns every registered command ordered by name.
func All() []Command {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Command, 0, len(registry))
	for _, cmd := range registry {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Definition().Name < out[j].Definition().Name
	})
	return out
}

// Dispatch executes the command registered as name. If no command matches,
// it returns ErrUnknownCommand.
func Dispatch(ctx context.Context, env Env, name string, args Args) (any, error) {
	cmd, found := Get(name)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if args == nil {
		args = Args{}
	}
	return cmd.Execute(ctx, env, args)
}
