package expander

import (
	"container/heap"
	"fmt"

	"github.com/kegliz/qroute/search"
)

// GreedyTopK is the hardest and most illustrative expander (spec
// §4.7): it enumerates every subset of the candidate swaps/gates it
// computes for a node, keeps only the K best resulting children by
// cost, and publishes those to the main queue. Grounded line-for-line
// on GreedyTopK.hpp.
type GreedyTopK struct {
	// K bounds how many children survive each expansion. Must be >=1;
	// the original engine's K=0 default is a "not yet configured"
	// placeholder, not a usable value (it caps the local heap at zero
	// and every generated child gets evicted).
	K int
}

// NewGreedyTopK returns a GreedyTopK expander retaining at most k
// children per expansion.
func NewGreedyTopK(k int) (*GreedyTopK, error) {
	if k < 1 {
		return nil, fmt.Errorf("expander: GreedyTopK requires K >= 1, got %d", k)
	}
	return &GreedyTopK{K: k}, nil
}

func (e *GreedyTopK) Expand(q search.Queue, n *search.Node) bool {
	if best := q.BestFinalNode(); best != nil && n.Cost >= best.Cost {
		return false
	}

	f := analyzeFrontier(n)
	possibleGates := candidateSwaps(n, f)
	if len(possibleGates) >= 64 {
		panic(fmt.Sprintf("expander: %d possible swaps exceeds the 64-bit subset enumeration limit", len(possibleGates)))
	}

	executing := !n.InInitialMappingPhase()

	var local worstFirstHeap
	numSubsets := uint64(1) << uint(len(possibleGates))

	for x := uint64(0); x < numSubsets; x++ {
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
		heap.Push(&local, child)
		if local.Len() > e.K {
			heap.Pop(&local)
		}
	}

	for local.Len() > 0 {
		child := heap.Pop(&local).(*search.Node)
		q.Push(child) // filter rejection is a silent, non-backfilled drop (spec §4.7.7)
	}

	return true
}

var _ search.Expander = (*GreedyTopK)(nil)
