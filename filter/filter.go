// Package filter provides concrete search.Filter and
// search.NodeModifier implementations. The interfaces themselves live
// in package search (spec §4.5) since Filter/NodeModifier operate
// directly on search.Node; this package supplies the strategies an
// Environment installs via AddFilter/AddNodeModifier.
package filter

import "github.com/kegliz/qroute/search"

// MaxCycle rejects any node whose current cycle has run past Limit,
// a simple way to bound runaway search on pathological inputs.
type MaxCycle struct {
	Limit int
}

func (f MaxCycle) Reject(n *search.Node) bool {
	return n.Cycle > f.Limit
}

var _ search.Filter = MaxCycle{}

// ReadyCountTiebreak is a NodeModifier that sets Cost2 to the negated
// number of ready gates, so that among nodes of equal primary cost the
// (ascending) queue prefers the one with more work immediately
// available (spec §4.6's cost2 tiebreaker).
type ReadyCountTiebreak struct{}

func (ReadyCountTiebreak) Hook() search.HookType { return search.HookBeforeCost }

func (ReadyCountTiebreak) Apply(n *search.Node) {
	n.Cost2 = -len(n.ReadyGates)
}

var _ search.NodeModifier = ReadyCountTiebreak{}
