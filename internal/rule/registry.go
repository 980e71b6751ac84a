package rule

import (
	"fmt"
	"sync"
)

var (
	mu       sync.RWMutex
	registry []Rule
)

// Register adds a rule to the global registry. It panics when a rule
// with the same ID or name is already registered.
func Register(r Rule) {
	mu.Lock()
	defer mu.Unlock()
	for _, existing := range registry {
		if existing.ID() == r.ID() || existing.Name() == r.Name() {
			panic(fmt.Sprintf("rule: duplicate registration of %s (%s)", r.ID(), r.Name()))
		}
	}
	registry = append(registry, r)
}

// All returns a copy of all registered rules.
func All() []Rule {
	mu.RLock()
	defer mu.RUnlock()
	result := make([]Rule, len(registry))
	copy(result, registry)
	return result
}

// ByID returns the registered rule with the given ID, or nil.
func ByID(id string) Rule {
	mu.RLock()
	defer mu.RUnlock()
	for _, r := range registry {
		if r.ID() == id {
			return r
		}
	}
	return nil
}

// ByName returns the registered rule with the given name, or nil.
func ByName(name string) Rule {
	mu.RLock()
	defer mu.RUnlock()
	for _, r := range registry {
		if r.Name() == name {
			return r
		}
	}
	return nil
}

// Reset clears the registry. Used for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = nil
}
