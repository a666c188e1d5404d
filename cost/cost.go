// Package cost provides search.CostFunc implementations (spec §4.4),
// grounded on CostFunc.hpp's getCost/_getCost split and on the gate
// DAG's precomputed Criticality (gatedag.GateNode.Criticality).
package cost

import "github.com/kegliz/qroute/search"

// CriticalPath estimates remaining work as the current cycle plus the
// longest Criticality among the node's ready gates: every gate still
// on the critical path downstream of the frontier must execute, so
// this never overestimates the true remaining depth and keeps the
// search admissible.
type CriticalPath struct{}

func (CriticalPath) Cost(n *search.Node) int {
	remaining := 0
	for g := range n.ReadyGates {
		if g.Criticality > remaining {
			remaining = g.Criticality
		}
	}
	return baseCycle(n) + remaining
}

// CycleCount is a minimal, less-informed cost: the node's current
// cycle alone, ignoring remaining work entirely. Useful as a baseline
// for comparing search quality against CriticalPath, and as a cheap
// strategy when Criticality isn't meaningful (e.g. programs built
// without gatedag, or benchmarking expander overhead in isolation).
type CycleCount struct{}

func (CycleCount) Cost(n *search.Node) int {
	return baseCycle(n)
}

// baseCycle clamps a node's Cycle to zero: during the initial-mapping
// phase Cycle is negative (spec §3.2) and contributes nothing to the
// cost of work still to schedule.
func baseCycle(n *search.Node) int {
	if n.Cycle < 0 {
		return 0
	}
	return n.Cycle
}

var (
	_ search.CostFunc = CriticalPath{}
	_ search.CostFunc = CycleCount{}
)
