package commandstructure

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// CommandRegistry resolves the step names used under `commands:` in the
// service config. Steps register themselves from init functions.
type CommandRegistry struct {
	mu        sync.RWMutex
	factories map[string]CommandFactory
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{factories: map[string]CommandFactory{}}
}

func (r *CommandRegistry) Register(name string, factory CommandFactory) error {
	switch {
	case name == "":
		return fmt.Errorf("photo step needs a name")
	case factory == nil:
		return fmt.Errorf("photo step %s has no factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.factories[name]; taken {
		return fmt.Errorf("photo step %s registered twice", name)
	}
	r.factories[name] = factory
	return nil
}

// Create builds one step. Unknown names list the known ones in the error.
func (r *CommandRegistry) Create(name string, params map[string]any) (Command, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown photo step %q (known: %s)", name, strings.Join(r.Names(), ", "))
	}

	step, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("photo step %s: %w", name, err)
	}
	return step, nil
}

func (r *CommandRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names lists the registered steps alphabetically
func (r *CommandRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}

// BuildCommands turns the configured list into steps, keeping their order.
// The first bad entry fails the whole pipeline.
func (r *CommandRegistry) BuildCommands(configs []CommandConfig) ([]Command, error) {
	steps := make([]Command, 0, len(configs))
	for i, config := range configs {
		step, err := r.Create(config.Name, config.Params)
		if err != nil {
			return nil, fmt.Errorf("commands[%d]: %w", i, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// DefaultRegistry is filled by the commands package
var DefaultRegistry = NewCommandRegistry()
