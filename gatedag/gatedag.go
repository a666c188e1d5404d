// Package gatedag builds the logical gate DAG the search engine
// consumes: immutable GateNode vertices carrying the DAG edges,
// readiness-adjacent pointers, and criticality the expander needs.
//
// Generalized from qplay's qc/dag.DAG (parent/child adjacency, Kahn
// topological sort, per-qubit hazard tracking via "last gate on this
// qubit") with the scheduling-specific fields spec §3.1 requires added
// on top: TargetChild/ControlChild, NextTargetCNOT, and Criticality.
package gatedag

import (
	"fmt"

	"github.com/kegliz/qroute/gate"
)

// NodeID identifies a GateNode within one Program.
type NodeID uint64

// GateNode is an immutable vertex of the input DAG (spec §3.1). Once
// returned from Builder.Build, a GateNode's fields are not mutated
// again; Builder exports no setters, only AddGate.
type GateNode struct {
	ID   NodeID
	Name string

	// NumQubits is 1 or 2. Target/Control are LOGICAL qubit indices for
	// an ordinary gate, or PHYSICAL qubit indices for the distinguished
	// swap form (IsSwap true) — see spec §3.1's "swap gate form".
	NumQubits int
	Target    int
	Control   int // -1 if this gate has no control qubit
	IsSwap    bool

	// Op is the resolved gate descriptor backing Name/NumQubits.
	Op gate.Gate

	Parents  []*GateNode
	Children []*GateNode

	// TargetChild/ControlChild is the next downstream gate that reuses
	// this gate's target/control logical qubit, or nil.
	TargetChild  *GateNode
	ControlChild *GateNode

	// NextTargetCNOT is, for a 1-qubit gate, the next downstream
	// 2-qubit gate touching its qubit (nil if none, or if this gate
	// itself is 2-qubit).
	NextTargetCNOT *GateNode

	// Criticality is the length of the longest path from this gate to
	// any DAG sink.
	Criticality int
}

// NewSwap returns a swap-shaped GateNode whose Target/Control are
// PHYSICAL qubit indices, per spec §3.1. Swap nodes are never part of
// a Program's DAG; they are constructed directly by
// search.NewEnvironment when it builds Environment.PossibleSwaps, one
// per coupling.
func NewSwap(physTarget, physControl int) *GateNode {
	return &GateNode{
		Name:      "SWAP",
		NumQubits: 2,
		Target:    physTarget,
		Control:   physControl,
		IsSwap:    true,
		Op:        gate.Swap(),
	}
}

// Program is the frozen, validated logical gate DAG produced by
// Builder.Build.
type Program struct {
	NumQubits int
	nodes     []*GateNode // topological order
}

// Gates returns the DAG's vertices in topological order.
func (p *Program) Gates() []*GateNode { return p.nodes }

// Len returns the number of gates in the program.
func (p *Program) Len() int { return len(p.nodes) }

// Builder incrementally constructs a Program. It is not safe for
// concurrent use; build on one goroutine, then share the resulting
// *Program freely (it is immutable).
type Builder struct {
	numQubits int
	last      []*GateNode // last gate touching logical qubit q, nil if none
	nodes     []*GateNode
	nextID    NodeID
	err       error
}

// NewBuilder returns a Builder for a program over numQubits logical
// qubits.
func NewBuilder(numQubits int) *Builder {
	return &Builder{
		numQubits: numQubits,
		last:      make([]*GateNode, numQubits),
	}
}

// AddGate appends a 1- or 2-qubit gate application. control is -1 for
// a 1-qubit gate. Gate synthesis/decomposition (e.g. splitting a
// Toffoli into 2-qubit primitives) is out of scope — spec §1
// Non-goals — and must happen before the DAG reaches this builder.
func (b *Builder) AddGate(name string, target, control int) (*GateNode, error) {
	if b.err != nil {
		return nil, b.err
	}
	if target < 0 || target >= b.numQubits {
		return nil, fmt.Errorf("gatedag: target qubit %d out of range [0,%d)", target, b.numQubits)
	}
	numQubits := 1
	if control >= 0 {
		numQubits = 2
		if control >= b.numQubits {
			return nil, fmt.Errorf("gatedag: control qubit %d out of range [0,%d)", control, b.numQubits)
		}
		if control == target {
			return nil, fmt.Errorf("gatedag: gate %s has identical target and control qubit %d", name, target)
		}
	}

	op, err := gate.Factory(name)
	if err != nil {
		return nil, fmt.Errorf("gatedag: %w", err)
	}
	if op.QubitSpan() != numQubits {
		return nil, fmt.Errorf("gatedag: gate %s has qubit span %d, but was applied with %d qubit(s) (gate synthesis/decomposition is out of scope)", op.Name(), op.QubitSpan(), numQubits)
	}

	n := &GateNode{
		ID:        b.nextID,
		Name:      op.Name(),
		NumQubits: numQubits,
		Target:    target,
		Control:   control,
		Op:        op,
	}
	b.nextID++

	if prev := b.last[target]; prev != nil {
		b.link(prev, n, target)
	}
	if control >= 0 {
		if prev := b.last[control]; prev != nil {
			b.link(prev, n, control)
		}
	}

	b.last[target] = n
	if control >= 0 {
		b.last[control] = n
	}
	b.nodes = append(b.nodes, n)
	return n, nil
}

// link records parent->child DAG edge from prev to n, and sets prev's
// TargetChild/ControlChild depending on which of prev's qubits q is.
func (b *Builder) link(prev, n *GateNode, q int) {
	alreadyParent := false
	for _, p := range n.Parents {
		if p == prev {
			alreadyParent = true
			break
		}
	}
	if !alreadyParent {
		n.Parents = append(n.Parents, prev)
		prev.Children = append(prev.Children, n)
	}
	if prev.Target == q {
		prev.TargetChild = n
	} else {
		prev.ControlChild = n
	}
}

// Build freezes the DAG: computes Criticality and NextTargetCNOT for
// every node, and returns the immutable Program. The Builder must not
// be used afterwards.
func (b *Builder) Build() (*Program, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.acyclic(); err != nil {
		return nil, err
	}

	order := b.topoSort()

	// Criticality: process in reverse topological order so every
	// child's criticality is already known (longest path to a sink).
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		best := 0
		for _, c := range n.Children {
			if c.Criticality+1 > best {
				best = c.Criticality + 1
			}
		}
		n.Criticality = best
	}

	// NextTargetCNOT: for each 1-qubit gate, walk its TargetChild chain
	// until a 2-qubit gate is found.
	for _, n := range order {
		if n.NumQubits != 1 {
			continue
		}
		for c := n.TargetChild; c != nil; c = c.TargetChild {
			if c.NumQubits == 2 {
				n.NextTargetCNOT = c
				break
			}
			if c.NumQubits != 1 {
				break
			}
		}
	}

	return &Program{NumQubits: b.numQubits, nodes: order}, nil
}

// topoSort performs Kahn's algorithm, matching qc/dag.DAG's approach.
func (b *Builder) topoSort() []*GateNode {
	inDeg := make(map[*GateNode]int, len(b.nodes))
	for _, n := range b.nodes {
		inDeg[n] = len(n.Parents)
	}
	queue := make([]*GateNode, 0, len(b.nodes))
	for _, n := range b.nodes {
		if inDeg[n] == 0 {
			queue = append(queue, n)
		}
	}
	order := make([]*GateNode, 0, len(b.nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, c := range n.Children {
			inDeg[c]--
			if inDeg[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
	return order
}

// acyclic performs a DFS cycle-check, matching qc/dag.DAG.acyclic.
func (b *Builder) acyclic() error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[*GateNode]int, len(b.nodes))
	var dfs func(*GateNode) error
	dfs = func(n *GateNode) error {
		switch state[n] {
		case visiting:
			return fmt.Errorf("gatedag: cycle detected at gate %s (id %d)", n.Name, n.ID)
		case done:
			return nil
		}
		state[n] = visiting
		for _, c := range n.Children {
			if err := dfs(c); err != nil {
				return err
			}
		}
		state[n] = done
		return nil
	}
	for _, n := range b.nodes {
		if state[n] == unvisited {
			if err := dfs(n); err != nil {
				return err
			}
		}
	}
	return nil
}
