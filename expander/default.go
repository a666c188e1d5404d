package expander

import (
	"fmt"

	"github.com/kegliz/qroute/gatedag"
	"github.com/kegliz/qroute/search"
)

// Default is GreedyTopK without the Top-K cap: every surviving child
// is pushed to the main queue. It additionally forbids a singleton
// swap subset that would immediately undo the parent's most recent
// swap ("acyclic swaps", spec §4.7.8) — a cheap way to avoid an
// obviously wasted child without the full dependent-state bookkeeping
// a fuller optimiser would carry.
type Default struct{}

func (Default) Expand(q search.Queue, n *search.Node) bool {
	if best := q.BestFinalNode(); best != nil && n.Cost >= best.Cost {
		return false
	}

	f := analyzeFrontier(n)
	possibleGates := candidateSwaps(n, f)
	if len(possibleGates) >= 64 {
		panic(fmt.Sprintf("expander: %d possible swaps exceeds the 64-bit subset enumeration limit", len(possibleGates)))
	}

	executing := !n.InInitialMappingPhase()
	numSubsets := uint64(1) << uint(len(possibleGates))

	for x := uint64(0); x < numSubsets; x++ {
		if isImmediateUndo(n, possibleGates, x) {
			continue
		}

		child := n.PrepChild()
		good := true
		for y := 0; good && uint(y) < uint(len(possibleGates)); y++ {
			if x&(1<<uint(y)) == 0 {
				continue
			}
			gate := possibleGates[y]
			if executing {
				good = child.ScheduleGate(gate, 0)
			} else {
				good = child.SwapQubits(gate.Target, gate.Control)
			}
		}

		if x == 0 && len(f.guaranteedGates) == 0 && !f.hasBusyQubits {
			continue
		}
		if !good {
			continue
		}
		if !executing {
			child.AdvanceMappingPhase()
		} else if x == 0 && len(f.guaranteedGates) == 0 {
			// Nothing scheduled this generation: the frontier is
			// blocked purely by busy qubits. Advance time instead of
			// emitting an identical stall child.
			advanceStalledCycle(child)
		}

		for _, g := range f.guaranteedGates {
			if !child.ScheduleGate(g, 0) {
				panic(fmt.Sprintf("expander: guaranteed gate %s (id %d) could not be scheduled on its own child", g.Name, g.ID))
			}
		}

		child.Cost = n.Env.EvaluateCost(child)
		q.Push(child)
	}

	return true
}

// isImmediateUndo reports whether subset x is exactly the single swap
// that would reverse n's most recently scheduled swap.
func isImmediateUndo(n *search.Node, possibleGates []*gatedag.GateNode, x uint64) bool {
	if n.LastSwapA == search.Unmapped {
		return false
	}
	var only int = -1
	for y := range possibleGates {
		if x&(1<<uint(y)) != 0 {
			if only != -1 {
				return false // more than one bit set
			}
			only = y
		}
	}
	if only == -1 {
		return false
	}
	g := possibleGates[only]
	a, b := g.Target, g.Control
	return (a == n.LastSwapA && b == n.LastSwapB) || (a == n.LastSwapB && b == n.LastSwapA)
}

var _ search.Expander = Default{}
