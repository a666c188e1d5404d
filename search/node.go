package search

import (
	"sort"

	"github.com/kegliz/qroute/gatedag"
	"github.com/kegliz/qroute/pstack"
	"github.com/kegliz/qroute/schedule"
)

// initialMappingBoundary is the sentinel from spec §3.2: a Node whose
// Cycle is strictly less than this is in the initial-mapping phase
// (free permutation of Qal/Laq, no ScheduledGates produced yet).
const initialMappingBoundary = -1

// Unmapped marks a Qal/Laq slot with no occupant.
const Unmapped = -1

// Node is one state in the best-first search tree (spec §3.2). Most
// of a Node's cost at construction time is the map/slice copies
// PrepChild makes off of its parent; the one exception is Scheduled,
// the persistent history stack, which is shared structurally rather
// than copied — the single most important memory-bounding decision in
// this engine, since Scheduled's length is the number of gates
// (including SWAPs) scheduled so far while Qal/Laq/ReadyGates are
// bounded by physical/DAG width.
type Node struct {
	Parent *Node
	Env    *Environment

	Cycle int
	Cost  int
	Cost2 int

	NumUnscheduledGates int

	// Qal[p] is the logical qubit occupying physical qubit p, or
	// Unmapped.
	Qal []int
	// Laq[l] is the physical qubit holding logical qubit l, or
	// Unmapped.
	Laq []int

	// LastGate[p] is the most recently scheduled gate touching
	// physical qubit p (including swaps), or nil.
	LastGate []*schedule.ScheduledGate
	// LastNonSwapGate[l] is the most recently scheduled non-swap gate
	// touching logical qubit l, or nil.
	LastNonSwapGate []*schedule.ScheduledGate

	// ReadyGates is the frontier: DAG gates with no unscheduled
	// parent, not yet themselves scheduled. Bounded by DAG width, so a
	// full copy per child (in PrepChild) is cheap, mirroring the
	// original engine's per-node readyGates set.
	ReadyGates map[*gatedag.GateNode]struct{}

	// pendingParents tracks, for every not-yet-ready gate with two
	// parents, how many of those parents remain unscheduled; NewRootNode
	// seeds an entry for each such gate in the program and an entry is
	// removed once its gate becomes ready. Gates with 0 or 1 parent
	// never need an entry: 0-parent gates start ready, and a 1-parent
	// gate becomes ready the instant that parent is scheduled.
	pendingParents map[*gatedag.GateNode]int

	Scheduled *pstack.Stack[*schedule.ScheduledGate]

	// LastSwapA/LastSwapB are the physical qubits of the most recently
	// scheduled SWAP on this node, or Unmapped if none yet. Used by
	// the Default expander's acyclic-swap optimisation (spec §4.7.8)
	// to avoid immediately undoing the parent's swap.
	LastSwapA, LastSwapB int

	Expanded bool
	Dead     bool
}

// NewRootNode builds the initial search state for program over env.
// initialMapping[p] is the logical qubit placed at physical qubit p
// (Unmapped if none). initialMappingRounds is the number of free
// permutation rounds the expander is allowed before scheduling begins
// (0 skips the initial-mapping phase entirely).
func NewRootNode(env *Environment, program *gatedag.Program, initialMapping []int, initialMappingRounds int) *Node {
	qal := append([]int(nil), initialMapping...)
	laq := make([]int, program.NumQubits)
	for i := range laq {
		laq[i] = Unmapped
	}
	for p, l := range qal {
		if l != Unmapped {
			laq[l] = p
		}
	}

	ready := make(map[*gatedag.GateNode]struct{})
	pending := make(map[*gatedag.GateNode]int)
	for _, g := range program.Gates() {
		switch len(g.Parents) {
		case 0:
			ready[g] = struct{}{}
		case 2:
			pending[g] = 2
		}
	}

	if initialMappingRounds < 0 {
		initialMappingRounds = 0
	}

	return &Node{
		Env:                 env,
		Cycle:               initialMappingBoundary - initialMappingRounds,
		NumUnscheduledGates: program.Len(),
		Qal:                 qal,
		Laq:                 laq,
		LastGate:            make([]*schedule.ScheduledGate, env.NumPhysicalQubits),
		LastNonSwapGate:     make([]*schedule.ScheduledGate, program.NumQubits),
		ReadyGates:          ready,
		pendingParents:      pending,
		LastSwapA:           Unmapped,
		LastSwapB:           Unmapped,
	}
}

// InInitialMappingPhase reports whether this node may still only
// permute Qal/Laq for free, per spec §3.2.
func (n *Node) InInitialMappingPhase() bool {
	return n.Cycle < initialMappingBoundary
}

// AdvanceMappingPhase moves a node one round closer to the end of the
// initial-mapping phase. Called by expanders while building children
// whose parent is still in that phase (spec open question: the
// original TOQM sources available to this implementation declare the
// cycle<-1 sentinel but not the transition mechanics out of it; this
// engine resolves the gap by having the expander tick the sentinel
// toward -1 one round per generation, so InitialMappingRounds at root
// construction fixes exactly how many free-permutation generations run
// before scheduling starts).
func (n *Node) AdvanceMappingPhase() {
	if n.Cycle < initialMappingBoundary {
		n.Cycle++
	}
}

// PrepChild returns a new Node that is a full copy of n, except for
// Scheduled (shared by pointer, not copied) and Expanded/Dead (reset).
// Spec §4.1/§4.2: this is the starting point for every expansion step.
func (n *Node) PrepChild() *Node {
	c := &Node{
		Parent:              n,
		Env:                 n.Env,
		Cycle:               n.Cycle,
		NumUnscheduledGates: n.NumUnscheduledGates,
		Qal:                 append([]int(nil), n.Qal...),
		Laq:                 append([]int(nil), n.Laq...),
		LastGate:            append([]*schedule.ScheduledGate(nil), n.LastGate...),
		LastNonSwapGate:     append([]*schedule.ScheduledGate(nil), n.LastNonSwapGate...),
		ReadyGates:          copyGateSet(n.ReadyGates),
		pendingParents:      copyPendingParents(n.pendingParents),
		Scheduled:           n.Scheduled,
		LastSwapA:           n.LastSwapA,
		LastSwapB:           n.LastSwapB,
	}
	return c
}

func copyGateSet(m map[*gatedag.GateNode]struct{}) map[*gatedag.GateNode]struct{} {
	out := make(map[*gatedag.GateNode]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func copyPendingParents(m map[*gatedag.GateNode]int) map[*gatedag.GateNode]int {
	out := make(map[*gatedag.GateNode]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ReadyGatesSorted returns the frontier gates ordered by ID ascending.
// Go map iteration order is randomized, but spec §5 relies on
// deterministic ready-gate iteration for reproducible expansion order;
// callers that need to walk ReadyGates deterministically (expanders,
// tests) should use this instead of ranging over the map directly.
func (n *Node) ReadyGatesSorted() []*gatedag.GateNode {
	out := make([]*gatedag.GateNode, 0, len(n.ReadyGates))
	for g := range n.ReadyGates {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BusyCycles returns how many more cycles physical qubit p is occupied
// by its last scheduled gate, relative to n.Cycle (spec §4.2). Zero
// means the qubit is free at or before n.Cycle.
func (n *Node) BusyCycles(p int) int {
	sg := n.LastGate[p]
	if sg == nil {
		return 0
	}
	remaining := sg.Cycle + sg.Latency - n.Cycle
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SwapQubits applies a SWAP between physical qubits pa and pb to Qal/
// Laq, for free (no ScheduledGate produced — this is the primitive
// the initial-mapping phase uses, and the one a scheduled SWAP gate
// uses internally once it clears feasibility checks). Returns false if
// neither physical qubit holds a logical qubit (a no-op swap).
func (n *Node) SwapQubits(pa, pb int) bool {
	la, lb := n.Qal[pa], n.Qal[pb]
	if la == Unmapped && lb == Unmapped {
		return false
	}
	switch {
	case lb == Unmapped:
		n.Laq[la] = pb
	case la == Unmapped:
		n.Laq[lb] = pa
	default:
		n.Laq[la], n.Laq[lb] = pb, pa
	}
	n.Qal[pa], n.Qal[pb] = lb, la
	return true
}

// ScheduleGate places g at the earliest cycle feasible on n, given
// timeOffset (an expander-chosen slack added to n.Cycle, spec §4.2).
// It returns false if g cannot be scheduled on n at all: an ordinary
// gate whose logical qubit(s) are not yet mapped, or a 2-qubit gate
// whose resolved physical pair is not coupled.
//
// A successfully scheduled SWAP also mutates Qal/Laq via SwapQubits;
// an ordinary gate instead retires itself from ReadyGates/
// pendingParents and may promote its children into ReadyGates.
func (n *Node) ScheduleGate(g *gatedag.GateNode, timeOffset int) bool {
	var physTarget, physControl int
	if g.IsSwap {
		physTarget, physControl = g.Target, g.Control
	} else {
		physTarget = n.Laq[g.Target]
		if physTarget == Unmapped {
			return false
		}
		physControl = Unmapped
		if g.Control != Unmapped {
			physControl = n.Laq[g.Control]
			if physControl == Unmapped {
				return false
			}
		}
	}

	if g.NumQubits == 2 && !n.Env.HasCoupling(physTarget, physControl) {
		return false
	}

	start := n.Cycle + timeOffset
	if start < 0 {
		start = 0
	}
	if end := endOrHelper(n.LastGate[physTarget], -1); end > start {
		start = end
	}
	if physControl != Unmapped {
		if end := endOrHelper(n.LastGate[physControl], -1); end > start {
			start = end
		}
	}

	latency := n.Env.Latency.GetLatency(g.Name, g.NumQubits, physTarget, physControl)
	sg := &schedule.ScheduledGate{
		Gate:            g,
		Cycle:           start,
		Latency:         latency,
		PhysicalTarget:  physTarget,
		PhysicalControl: physControl,
	}

	n.Scheduled = n.Scheduled.Push(sg)
	n.LastGate[physTarget] = sg
	if physControl != Unmapped {
		n.LastGate[physControl] = sg
	}

	if g.IsSwap {
		n.SwapQubits(physTarget, physControl)
		n.LastSwapA, n.LastSwapB = physTarget, physControl
	} else {
		n.LastNonSwapGate[g.Target] = sg
		if g.Control != Unmapped {
			n.LastNonSwapGate[g.Control] = sg
		}
		n.NumUnscheduledGates--
		delete(n.ReadyGates, g)
		n.promoteChildren(g)
	}

	if start > n.Cycle {
		n.Cycle = start
	}
	return true
}

// promoteChildren marks g's children ready once every parent of theirs
// has been scheduled on this node (spec §3.1's ReadyGates semantics).
func (n *Node) promoteChildren(g *gatedag.GateNode) {
	for _, c := range g.Children {
		switch len(c.Parents) {
		case 1:
			n.ReadyGates[c] = struct{}{}
		default:
			remaining, ok := n.pendingParents[c]
			if !ok {
				continue
			}
			remaining--
			if remaining <= 0 {
				delete(n.pendingParents, c)
				n.ReadyGates[c] = struct{}{}
			} else {
				n.pendingParents[c] = remaining
			}
		}
	}
}

func endOrHelper(sg *schedule.ScheduledGate, fallback int) int {
	if sg == nil {
		return fallback
	}
	return sg.End()
}
