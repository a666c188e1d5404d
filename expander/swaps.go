package expander

import (
	"github.com/kegliz/qroute/gatedag"
	"github.com/kegliz/qroute/search"
)

// candidateSwaps implements spec §4.7.5: filter env.PossibleSwaps down
// to the ones worth trying this generation, in registration order.
func candidateSwaps(n *search.Node, f *frontier) []*gatedag.GateNode {
	var out []*gatedag.GateNode

	for _, s := range n.Env.PossibleSwaps {
		target, control := s.Target, s.Control // already physical indices
		logicalTarget, logicalControl := -1, -1
		if target >= 0 {
			logicalTarget = n.Qal[target]
		}
		if control >= 0 {
			logicalControl = n.Qal[control]
		}

		helpsCX := false
		if logicalTarget >= 0 && f.cxFrontier[logicalTarget] != nil {
			if swapHelpsCX(n, f.cxFrontier[logicalTarget], target, control) {
				helpsCX = true
			}
		}
		if logicalControl >= 0 && f.cxFrontier[logicalControl] != nil {
			if swapHelpsCX(n, f.cxFrontier[logicalControl], target, control) {
				helpsCX = true
			}
		}

		good := helpsCX
		if good {
			if !n.InInitialMappingPhase() {
				good = !f.occupied[target] && !f.occupied[control]
			}
		}

		usesLogicalQubit := good && (logicalTarget >= 0 || logicalControl >= 0)
		good = good && usesLogicalQubit

		if good && !swapUsesUsefulLogicalQubit(n, logicalTarget, logicalControl) {
			good = false
		}

		if good {
			if busy := n.BusyCycles(target); busy > 1 {
				good = false
			}
		}
		if good && control >= 0 {
			if busy := n.BusyCycles(control); busy > 1 {
				good = false
			}
		}

		if good {
			out = append(out, s)
		}
	}

	return out
}

// swapHelpsCX implements the helpfulness test: does swapping (target,
// control) strictly reduce the coupling distance between cx's two
// physical qubits? Determined by simulating the swap and undoing it;
// both applications must succeed (spec §4.7.5, "undo must be exact").
func swapHelpsCX(n *search.Node, cx *gatedag.GateNode, target, control int) bool {
	before := n.Env.CouplingDistance(n.Laq[cx.Control], n.Laq[cx.Target])
	if !n.SwapQubits(target, control) {
		panic("expander: candidate swap could not be applied during helpfulness simulation")
	}
	after := n.Env.CouplingDistance(n.Laq[cx.Control], n.Laq[cx.Target])
	if !n.SwapQubits(target, control) {
		panic("expander: candidate swap could not be undone during helpfulness simulation")
	}
	return after < before
}

// swapUsesUsefulLogicalQubit implements the usefulness test: at least
// one endpoint logical qubit must plausibly be used again downstream.
func swapUsesUsefulLogicalQubit(n *search.Node, logicalTarget, logicalControl int) bool {
	check := func(l int) bool {
		if l < 0 {
			return false
		}
		last := n.LastNonSwapGate[l]
		if last == nil {
			return true // conservative: reuse may come
		}
		if last.Gate.Target == l {
			return last.Gate.TargetChild != nil
		}
		return last.Gate.ControlChild != nil
	}
	return check(logicalTarget) || check(logicalControl)
}
