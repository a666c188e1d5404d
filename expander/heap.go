package expander

import "github.com/kegliz/qroute/search"

// worstFirstHeap is a container/heap.Interface over *search.Node whose
// root is the WORST node by (cost, cost2) ascending ordering — i.e.
// the opposite of Queue's pop order. GreedyTopK uses this inverted
// ordering to keep only the K best children generated per expansion,
// evicting the current worst survivor whenever the heap grows past K
// (spec §4.7.6, grounded on GreedyTopK.hpp's CmpNodeCost comment: "I
// reversed the cost function here so I could remove inferior nodes on
// the fly").
type worstFirstHeap []*search.Node

func (h worstFirstHeap) Len() int { return len(h) }

func (h worstFirstHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.Cost != b.Cost {
		return a.Cost > b.Cost
	}
	return a.Cost2 > b.Cost2
}

func (h worstFirstHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *worstFirstHeap) Push(x any) {
	*h = append(*h, x.(*search.Node))
}

func (h *worstFirstHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
