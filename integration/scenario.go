package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Runner runs one end-to-end scenario against a freshly started fleet.
type Runner func(ctx context.Context, f *Fleet) error

var (
	mu       sync.RWMutex
	registry = make(map[string]Runner)
)

// Register adds a scenario by name. Panics if the name is already taken.
func Register(name string, r Runner) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("integration.scenario.go: scenario %q already registered", name))
	}
	registry[name] = r
}

// Names returns the registered scenario names in alphabetical order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Run runs the named scenario against f.
func Run(ctx context.Context, name string, f *Fleet) error {
	mu.RLock()
	r, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return &UnknownScenarioError{Name: name}
	}
	return r(ctx, f)
}

// UnknownScenarioError is returned when the requested scenario name is not registered.
type UnknownScenarioError struct {
	Name string
}

func (e *UnknownScenarioError) Error() string {
	return fmt.Sprintf("unknown scenario: %s", e.Name)
}
