package preset

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages presets by name.
type Registry struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

// NewRegistry creates an empty preset registry.
func NewRegistry() *Registry {
	return &Registry{
		presets: make(map[string]Preset),
	}
}

// Register adds a preset to the registry.
func (r *Registry) Register(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if err := p.Mode.Validate(); err != nil {
		return fmt.Errorf("preset %s: %w", p.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.presets[p.Name]; exists {
		return fmt.Errorf("preset already registered: %s", p.Name)
	}

	r.presets[p.Name] = p
	return nil
}

// Get returns a preset by name.
func (r *Registry) Get(name string) (Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("preset not found: %s", name)
	}
	return p, nil
}

// List returns all registered preset names (sorted).
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a preset is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.presets[name]
	return ok
}

// Count returns the number of registered presets.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.presets)
}

// Unregister removes a preset from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.presets[name]; !ok {
		return fmt.Errorf("preset not found: %s", name)
	}
	delete(r.presets, name)
	return nil
}

// DefaultRegistry holds the built-in presets.
var DefaultRegistry = NewRegistry()

func init() {
	for _, p := range Builtin() {
		if err := DefaultRegistry.Register(p); err != nil {
			panic(err)
		}
	}
}

// Get returns a preset from the default registry.
func Get(name string) (Preset, error) {
	return DefaultRegistry.Get(name)
}

// List returns all preset names from the default registry.
func List() []string {
	return DefaultRegistry.List()
}
