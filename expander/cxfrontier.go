// Package expander provides search.Expander implementations, grounded
// line-for-line on the original TOQM engine's Expander/GreedyTopK.hpp
// (the "hardest and most illustrative variant", per its own spec),
// plus the simplified contracts it describes for Default, NoSwaps and
// Naive.
package expander

import "github.com/kegliz/qroute/gatedag"

// buildCXFrontier implements spec §4.7.3: for each logical qubit,
// find the 2-qubit gate that currently stands to use it, if any.
// ready must already be in deterministic (ID-ascending) order.
func buildCXFrontier(ready []*gatedag.GateNode, numLogicalQubits int) []*gatedag.GateNode {
	frontier := make([]*gatedag.GateNode, numLogicalQubits)

	for _, g := range ready {
		if g.Control >= 0 {
			frontier[g.Target] = g
			frontier[g.Control] = g
		}
	}

	for _, g := range ready {
		if g.Control >= 0 {
			continue
		}
		h := g.NextTargetCNOT
		if h == nil {
			continue
		}
		if frontier[h.Control] == nil {
			frontier[h.Target] = h
			frontier[h.Control] = h
		} else if frontier[h.Control].Criticality < h.Criticality {
			frontier[frontier[h.Control].Target] = nil
			frontier[h.Target] = h
			frontier[h.Control] = h
		}
	}

	return frontier
}
