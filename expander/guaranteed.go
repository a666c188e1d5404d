package expander

import (
	"github.com/kegliz/qroute/gatedag"
	"github.com/kegliz/qroute/search"
)

// frontier bundles the per-expansion scratch state spec §4.7.2-4.7.4
// computes once per call to Expand.
type frontier struct {
	occupied        []bool
	onReadyFrontier []bool
	hasBusyQubits   bool
	cxFrontier      []*gatedag.GateNode
	guaranteedGates []*gatedag.GateNode
}

// analyzeFrontier implements spec §4.7.2 and §4.7.4: precompute
// occupied/onReadyFrontier/hasBusyQubits and the guaranteed-gates
// list (ready gates executable this generation with no SWAP needed).
func analyzeFrontier(n *search.Node) *frontier {
	numPhysical := n.Env.NumPhysicalQubits
	f := &frontier{
		occupied:        make([]bool, numPhysical),
		onReadyFrontier: make([]bool, numPhysical),
	}
	for p := 0; p < numPhysical; p++ {
		if n.BusyCycles(p) > 0 {
			f.hasBusyQubits = true
		}
	}

	ready := n.ReadyGatesSorted()
	f.cxFrontier = buildCXFrontier(ready, len(n.Laq))

	inExecutionPhase := !n.InInitialMappingPhase()
	for _, g := range ready {
		target := -1
		if g.Target >= 0 {
			target = n.Laq[g.Target]
		}
		control := -1
		if g.Control >= 0 {
			control = n.Laq[g.Control]
		}

		good := inExecutionPhase
		// A gate whose logical qubit has no physical home cannot run.
		if target < 0 || (g.Control >= 0 && control < 0) {
			good = false
		}

		if control >= 0 {
			f.onReadyFrontier[control] = true
			if busy := n.BusyCycles(control); busy > 1 {
				good = false
			}
		}
		if target >= 0 {
			f.onReadyFrontier[target] = true
			if busy := n.BusyCycles(target); busy > 1 {
				good = false
			}
		}

		if good && control >= 0 && target >= 0 {
			if !n.Env.HasCoupling(target, control) {
				good = false
			}
		}

		if good {
			f.guaranteedGates = append(f.guaranteedGates, g)
			if target >= 0 {
				f.occupied[target] = true
			}
			if control >= 0 {
				f.occupied[control] = true
			}
		}
	}

	return f
}

// advanceStalledCycle moves n forward to the earliest cycle at which
// any currently-busy physical qubit frees up (or one cycle, if somehow
// none are busy). It is called on a child that made no progress this
// generation (no swap applied, no gate scheduled) so that a ready gate
// blocked purely by BusyCycles > 1 — with no helpful swap available —
// eventually becomes schedulable instead of re-expanding an identical,
// frozen stall node forever (DESIGN.md Open Question 6).
func advanceStalledCycle(n *search.Node) {
	next := -1
	for p := 0; p < n.Env.NumPhysicalQubits; p++ {
		if busy := n.BusyCycles(p); busy > 0 {
			if end := n.Cycle + busy; next == -1 || end < next {
				next = end
			}
		}
	}
	if next <= n.Cycle {
		next = n.Cycle + 1
	}
	n.Cycle = next
}
