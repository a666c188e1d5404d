// Package latency provides search.Latency implementations and a
// registry for naming them, grounded on qplay's
// qc/simulator.RunnerRegistry mutex-guarded map[string]factory idiom.
package latency

import (
	"fmt"
	"sync"

	"github.com/kegliz/qroute/search"
)

// Uniform assigns latency purely by gate arity, matching the original
// engine's Latency_1_2_6 example: a fixed cycle count for SWAP, a
// (possibly different) fixed count for every other 2-qubit gate, and a
// third for 1-qubit gates.
type Uniform struct {
	SwapCycles     int
	TwoQubitCycles int
	OneQubitCycles int
}

// Uniform126 reproduces Latency_1_2_6.hpp's defaults: 6 cycles per
// SWAP, 2 per other 2-qubit gate, 1 otherwise.
func Uniform126() Uniform {
	return Uniform{SwapCycles: 6, TwoQubitCycles: 2, OneQubitCycles: 1}
}

func (u Uniform) GetLatency(gateName string, numQubits, target, control int) int {
	if gateName == "SWAP" || gateName == "swp" || gateName == "SWP" {
		return u.SwapCycles
	}
	if numQubits > 1 {
		return u.TwoQubitCycles
	}
	return u.OneQubitCycles
}

var _ search.Latency = Uniform{}

// entryKey identifies one latency table row. Target/Control of -1
// means "any physical qubit" (a default entry); Name of "" means "any
// gate" (the global default).
type entryKey struct {
	Name      string
	NumQubits int
	Target    int
	Control   int
}

// Table is a latency table keyed by (gate name, arity, physical
// target, physical control), with the same specificity fallback chain
// as the original engine's Table class (Table.hpp): exact physical
// match, then gate-specific default, then global default for that
// arity. A logical query (target == control == -1) returns the
// optimistic minimum latency recorded for that gate name and arity,
// so that cost estimates computed before physical qubits are chosen
// stay admissible.
type Table struct {
	entries     map[entryKey]int
	optimistic  map[string]int // key: fmt.Sprintf("%s/%d", name, numQubits)
}

// NewTable returns an empty Table; populate it with Set before use.
func NewTable() *Table {
	return &Table{
		entries:    make(map[entryKey]int),
		optimistic: make(map[string]int),
	}
}

// Set records one latency table row. name == "" matches any gate;
// target == -1 together with control == -1 matches any physical
// qubit assignment, per spec/Table.hpp's "-" placeholder convention.
// A row with only one of the two set to -1 is matched only by a
// query with exactly that target/control pair.
func (t *Table) Set(name string, numQubits, target, control, cycles int) {
	t.entries[entryKey{Name: name, NumQubits: numQubits, Target: target, Control: control}] = cycles

	if name == "" {
		return
	}
	key := optimisticKey(name, numQubits)
	if best, ok := t.optimistic[key]; !ok || cycles < best {
		t.optimistic[key] = cycles
	}
}

func optimisticKey(name string, numQubits int) string {
	return fmt.Sprintf("%s/%d", name, numQubits)
}

// GetLatency implements search.Latency.
func (t *Table) GetLatency(gateName string, numQubits, target, control int) int {
	if target == -1 && control == -1 {
		if v, ok := t.optimistic[optimisticKey(gateName, numQubits)]; ok {
			return v
		}
	}

	if v, ok := t.entries[entryKey{gateName, numQubits, target, control}]; ok {
		return v
	}
	if v, ok := t.entries[entryKey{gateName, numQubits, -1, -1}]; ok {
		return v
	}
	if v, ok := t.entries[entryKey{"", numQubits, -1, -1}]; ok {
		return v
	}

	// No matching entry anywhere in the chain: the table is
	// incomplete for this query. The original engine treats this as
	// fatal (exit(1)); panicking here preserves "incomplete latency
	// table is a configuration bug, not routing logic" rather than
	// silently returning an arbitrary latency the search would then
	// treat as admissible.
	panic(fmt.Sprintf("latency: no entry for gate %q (numQubits=%d, target=%d, control=%d) and no matching default", gateName, numQubits, target, control))
}

var _ search.Latency = (*Table)(nil)

// Factory builds a search.Latency instance.
type Factory func() search.Latency

// Registry is a thread-safe name -> Factory map, mirroring qplay's
// RunnerRegistry.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name. It errors if name is already
// registered.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("latency: registry name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("latency: registry factory cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("latency: %q is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Create builds a new search.Latency from the factory registered under
// name.
func (r *Registry) Create(name string) (search.Latency, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("latency: unknown strategy %q", name)
	}
	return factory(), nil
}

// List returns the registered strategy names.
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
	defaultRegistry.MustRegister("uniform-1-2-6", func() search.Latency { return Uniform126() })
}

// MustRegister is like Register but panics on failure, for use in
// init() functions.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Register registers a strategy with the default registry.
func Register(name string, factory Factory) error { return defaultRegistry.Register(name, factory) }

// Create builds a strategy from the default registry.
func Create(name string) (search.Latency, error) { return defaultRegistry.Create(name) }

// List returns the default registry's registered names.
func List() []string { return defaultRegistry.List() }
