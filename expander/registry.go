package expander

import (
	"fmt"
	"sync"

	"github.com/kegliz/qroute/search"
)

// Factory builds a search.Expander instance.
type Factory func() search.Expander

// Registry is a thread-safe name -> Factory map, the same idiom
// latency.Registry and qplay's RunnerRegistry use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("expander: registry name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("expander: registry factory cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("expander: %q is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

func (r *Registry) Create(name string) (search.Expander, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("expander: unknown strategy %q", name)
	}
	return factory(), nil
}

func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

var defaultRegistry = NewRegistry()

func init() {
	defaultRegistry.MustRegister("default", func() search.Expander { return Default{} })
	defaultRegistry.MustRegister("no-swaps", func() search.Expander { return NoSwaps{} })
	defaultRegistry.MustRegister("naive", func() search.Expander { return Naive{} })
}

// Register registers a strategy with the default registry. Use
// RegisterTopK for GreedyTopK, since it needs a K argument the
// zero-arg Factory signature can't carry.
func Register(name string, factory Factory) error { return defaultRegistry.Register(name, factory) }

// RegisterTopK registers a GreedyTopK(k) factory under name.
func RegisterTopK(name string, k int) error {
	return defaultRegistry.Register(name, func() search.Expander {
		ex, err := NewGreedyTopK(k)
		if err != nil {
			panic(err)
		}
		return ex
	})
}

func Create(name string) (search.Expander, error) { return defaultRegistry.Create(name) }
func List() []string                              { return defaultRegistry.List() }
