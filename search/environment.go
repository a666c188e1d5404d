// Package search implements the best-first search engine: Environment
// (shared read-only hardware/config), Node (search state), the
// strategy interfaces (Latency, CostFunc, Filter, NodeModifier, Queue,
// Expander) those strategies implement, and the driver loop that ties
// them together (spec §§3-4, 8).
//
// Environment and Node live in one package because they are mutually
// referential by design (spec §3.1: a Node carries an Environment
// pointer; Environment.RejectNode/RunNodeModifiers operate on a Node) —
// the same co-location qplay uses for qc/dag's DAG+Node and
// qc/simulator's Simulator+Runner+Registry. Concrete strategy
// implementations (latency tables, cost functions, queues, expanders)
// live in sibling packages that import search, mirroring the original
// TOQM source's Latency/ and Expander/ subdirectories implementing
// interfaces declared by their parent headers.
package search

import (
	"fmt"
	"math"

	"github.com/kegliz/qroute/gatedag"
)

// HookType identifies a registration point for NodeModifiers.
type HookType int

const (
	// HookBeforeCost runs just before a CostFunc computes a node's
	// cost (spec §4.1, §4.4).
	HookBeforeCost HookType = iota
)

// Latency maps (gateName, numQubits, physicalTarget, physicalControl)
// to a cycle count (spec §4.3).
type Latency interface {
	// GetLatency returns the latency in cycles. target/control of -1
	// means "logical query": return the minimum over all physical
	// realisations of (name, numQubits), preserving admissibility.
	GetLatency(gateName string, numQubits, target, control int) int
}

// CostFunc is the strategy-specific half of spec §4.4's getCost/
// _getCost split; the BEFORE_COST hook is run by Environment.EvaluateCost,
// not by implementations of this interface.
type CostFunc interface {
	Cost(node *Node) int
}

// Filter is a predicate on a Node; returning true rejects the node.
// Filters compose by OR (spec §4.5).
type Filter interface {
	Reject(node *Node) bool
}

// NodeModifier is a side-effecting hook keyed by HookType. Modifiers
// must not retain references to the node they are passed (spec §4.5).
type NodeModifier interface {
	Hook() HookType
	Apply(node *Node)
}

// coupling is a directed physical-qubit pair.
type coupling struct{ a, b int }

const infiniteDistance = math.MaxInt32

// Environment is the process-wide, read-only (after construction)
// hardware + strategy context shared by every Node in a search (spec
// §3.1).
type Environment struct {
	NumPhysicalQubits int

	// couplingList holds every directed pair passed to NewEnvironment,
	// in the order given (the same order as PossibleSwaps).
	couplingList []coupling
	couplingSet  map[coupling]struct{}

	// couplingDistances[a*NumPhysicalQubits+b] is the shortest-path
	// distance over the symmetric closure of couplings.
	couplingDistances []int

	// PossibleSwaps is one swap-shaped GateNode per coupling, in
	// registration order (spec §3.1, consumed by expanders in
	// iteration order for determinism, spec §5).
	PossibleSwaps []*gatedag.GateNode

	Cost    CostFunc
	Latency Latency

	filters       []Filter
	nodeModifiers map[HookType][]NodeModifier
}

// NewEnvironment builds an Environment from the hardware's directed
// coupling list. couplings need not be symmetric; HasCoupling and the
// distance matrix both use the symmetric closure, per spec §3.1's
// "(or its symmetric closure, depending on configuration)" — this
// module always takes the symmetric-closure reading, which is the
// common case for routing on undirected hardware graphs.
func NewEnvironment(numPhysicalQubits int, couplings [][2]int, cost CostFunc, latency Latency) (*Environment, error) {
	if numPhysicalQubits <= 0 {
		return nil, fmt.Errorf("search: numPhysicalQubits must be positive, got %d", numPhysicalQubits)
	}
	if cost == nil || latency == nil {
		return nil, fmt.Errorf("search: cost and latency strategies are required")
	}

	env := &Environment{
		NumPhysicalQubits: numPhysicalQubits,
		couplingSet:       make(map[coupling]struct{}, len(couplings)*2),
		Cost:              cost,
		Latency:           latency,
		nodeModifiers:     make(map[HookType][]NodeModifier),
	}

	for _, c := range couplings {
		a, b := c[0], c[1]
		if a < 0 || a >= numPhysicalQubits || b < 0 || b >= numPhysicalQubits {
			return nil, fmt.Errorf("search: coupling (%d,%d) out of range [0,%d)", a, b, numPhysicalQubits)
		}
		env.couplingList = append(env.couplingList, coupling{a, b})
		env.couplingSet[coupling{a, b}] = struct{}{}
		env.couplingSet[coupling{b, a}] = struct{}{}
		env.PossibleSwaps = append(env.PossibleSwaps, gatedag.NewSwap(a, b))
	}

	env.couplingDistances = computeDistances(numPhysicalQubits, env.couplingSet)
	return env, nil
}

// HasCoupling reports whether a 2-qubit gate may execute between
// physical qubits a and b, in either direction (spec §4.2, §4.7.4).
func (e *Environment) HasCoupling(a, b int) bool {
	_, ok := e.couplingSet[coupling{a, b}]
	return ok
}

// CouplingDistance returns the shortest-path distance between physical
// qubits a and b over the symmetric closure of the coupling graph, or
// infiniteDistance if unreachable (spec §3.1: "∞ encoded as a sentinel
// but never queried in feasible paths").
func (e *Environment) CouplingDistance(a, b int) int {
	return e.couplingDistances[a*e.NumPhysicalQubits+b]
}

// AddFilter registers a filter in evaluation order.
func (e *Environment) AddFilter(f Filter) { e.filters = append(e.filters, f) }

// AddNodeModifier registers a modifier under the given hook, in
// registration order (spec §4.1).
func (e *Environment) AddNodeModifier(m NodeModifier) {
	h := m.Hook()
	e.nodeModifiers[h] = append(e.nodeModifiers[h], m)
}

// RejectNode runs the registered filters in order and returns true
// (reject) as soon as one of them does (OR composition, spec §4.5).
func (e *Environment) RejectNode(node *Node) bool {
	for _, f := range e.filters {
		if f.Reject(node) {
			return true
		}
	}
	return false
}

// RunNodeModifiers invokes every modifier registered under hook, in
// registration order (spec §4.1).
func (e *Environment) RunNodeModifiers(node *Node, hook HookType) {
	for _, m := range e.nodeModifiers[hook] {
		m.Apply(node)
	}
}

// EvaluateCost is the public getCost wrapper of spec §4.4: it runs the
// BEFORE_COST modifiers, then delegates to the installed CostFunc.
func (e *Environment) EvaluateCost(node *Node) int {
	e.RunNodeModifiers(node, HookBeforeCost)
	return e.Cost.Cost(node)
}

// computeDistances runs BFS from every physical qubit over the
// symmetric closure of the coupling graph (small N — a handful of
// tens of physical qubits on real NISQ hardware — so plain per-source
// BFS is the appropriate tool; no pack library improves on ~20 lines
// of stdlib-only graph traversal here).
func computeDistances(n int, edges map[coupling]struct{}) []int {
	dist := make([]int, n*n)
	for i := range dist {
		dist[i] = infiniteDistance
	}
	adj := make([][]int, n)
	for c := range edges {
		adj[c.a] = append(adj[c.a], c.b)
	}

	for src := 0; src < n; src++ {
		dist[src*n+src] = 0
		queue := []int{src}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			du := dist[src*n+u]
			for _, v := range adj[u] {
				if dist[src*n+v] == infiniteDistance {
					dist[src*n+v] = du + 1
					queue = append(queue, v)
				}
			}
		}
	}
	return dist
}
