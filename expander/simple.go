package expander

import (
	"fmt"

	"github.com/kegliz/qroute/gatedag"
	"github.com/kegliz/qroute/search"
)

// NoSwaps only ever enumerates initial-mapping permutations; once the
// node has left the initial-mapping phase, possibleGates is always
// empty and the only child is the one that schedules the guaranteed
// gates (spec §4.7.8).
type NoSwaps struct{}

func (NoSwaps) Expand(q search.Queue, n *search.Node) bool {
	if best := q.BestFinalNode(); best != nil && n.Cost >= best.Cost {
		return false
	}

	f := analyzeFrontier(n)
	executing := !n.InInitialMappingPhase()

	var possibleGates []*gatedag.GateNode
	if !executing {
		possibleGates = candidateSwaps(n, f)
	}

	numSubsets := uint64(1) << uint(len(possibleGates))
	for x := uint64(0); x < numSubsets; x++ {
		child := n.PrepChild()
		good := true
		for y := 0; good && uint(y) < uint(len(possibleGates)); y++ {
			if x&(1<<uint(y)) == 0 {
				continue
			}
			good = child.SwapQubits(possibleGates[y].Target, possibleGates[y].Control)
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

var _ search.Expander = NoSwaps{}

// Naive schedules only the guaranteed gates and produces a single
// child, with no swap exploration at all (spec §4.7.8's progressively
// relaxed baseline).
type Naive struct{}

func (Naive) Expand(q search.Queue, n *search.Node) bool {
	if best := q.BestFinalNode(); best != nil && n.Cost >= best.Cost {
		return false
	}

	f := analyzeFrontier(n)
	child := n.PrepChild()
	for _, g := range f.guaranteedGates {
		if !child.ScheduleGate(g, 0) {
			panic(fmt.Sprintf("expander: guaranteed gate %s (id %d) could not be scheduled on its own child", g.Name, g.ID))
		}
	}
	if !n.InInitialMappingPhase() {
		// Nothing left to do this round if there were no guaranteed
		// gates and no busy qubits draining: this is a dead end.
		if len(f.guaranteedGates) == 0 && !f.hasBusyQubits {
			return false
		}
		if len(f.guaranteedGates) == 0 {
			// Busy qubits are draining but nothing was scheduled this
			// generation: advance time instead of emitting an
			// identical stall child.
			advanceStalledCycle(child)
		}
	}

	child.Cost = n.Env.EvaluateCost(child)
	q.Push(child)
	return true
}

var _ search.Expander = Naive{}
