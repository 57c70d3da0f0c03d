package pilot

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknown is returned by Create for names nobody registered.
var ErrUnknown = errors.New("pilot: unknown pilot")

// Info describes a registered pilot.
type Info struct {
	Name        string
	Description string
}

// Factory creates a new pilot instance.
type Factory func(opts Options) Pilot

type entry struct {
	description string
	factory     Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a pilot factory. It panics on a duplicate name.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[name]; exists {
		panic(fmt.Sprintf("pilot: %q already registered", name))
	}
	entries[name] = entry{description: description, factory: f}
}

// List returns all registered pilots sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for name, e := range entries {
		result = append(result, Info{Name: name, Description: e.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Create instantiates the pilot registered under name.
func Create(name string, opts Options) (Pilot, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, name)
	}
	return e.factory(opts), nil
}

// Exists reports whether a pilot is registered under name.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[name]
	return ok
}
