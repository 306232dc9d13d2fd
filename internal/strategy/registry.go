package strategy

import (
	"fmt"
	"sync"
)

// Factory is a function that creates a new instance of a strategy.
type Factory func() Strategy

// registry holds registered strategy factories.
var (
	registryMu sync.RWMutex
	strategies = make(map[string]Factory)
)

// Register registers a strategy factory under the given name.
// It panics if the name is already registered or if the factory is nil.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic(fmt.Sprintf("strategy: Register factory is nil for %q", name))
	}
	if _, exists := strategies[name]; exists {
		panic(fmt.Sprintf("strategy: Register called twice for %q", name))
	}
	strategies[name] = factory
}

// Get returns a new instance of the strategy with the given name.
// Returns an error if no strategy is registered with that name.
func Get(name string) (Strategy, error) {
	registryMu.RLock()
	factory, exists := strategies[name]
	registryMu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("strategy: unknown strategy %q", name)
	}
	return factory(), nil
}

// List returns the names of all registered strategies.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	return names
}

// IsRegistered returns true if a strategy with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, exists := strategies[name]
	return exists
}

// Unregister removes a strategy from the registry.
// This is primarily useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	delete(strategies, name)
}

// UnregisterAll removes all strategies from the registry.
// This is primarily useful for testing.
func UnregisterAll() {
	registryMu.Lock()
	defer registryMu.Unlock()

	strategies = make(map[string]Factory)
}
