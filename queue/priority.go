// Package queue provides a search.Queue implementation ordered by
// (cost, cost2) ascending, grounded on Queue.hpp's push/pop contract.
// stdlib container/heap is the right tool here: the queue's job is
// exactly a binary heap behind an abstract push/pop, which is what
// container/heap already is — no pack dependency adds anything a
// 5-method Interface doesn't already give for free.
package queue

import (
	"container/heap"

	"github.com/kegliz/qroute/search"
)

// innerHeap orders *search.Node by (Cost, Cost2) ascending — the
// opposite direction of expander.worstFirstHeap, which this package
// has no dependency on.
type innerHeap []*search.Node

func (h innerHeap) Len() int { return len(h) }
func (h innerHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	return a.Cost2 < b.Cost2
}
func (h innerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *innerHeap) Push(x any)   { *h = append(*h, x.(*search.Node)) }
func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// PriorityQueue is the default search.Queue: a binary heap ordered by
// (cost, cost2) ascending, push-time filtered through its Environment
// (spec §4.6).
type PriorityQueue struct {
	env  *search.Environment
	heap innerHeap

	bestFinalNode *search.Node
	numPushed     int
	numFiltered   int
	numPopped     int
}

// New returns an empty PriorityQueue that filters pushes through env.
func New(env *search.Environment) *PriorityQueue {
	return &PriorityQueue{env: env}
}

func (q *PriorityQueue) Push(node *search.Node) bool {
	q.numPushed++
	if q.env.RejectNode(node) {
		q.numFiltered++
		return false
	}
	heap.Push(&q.heap, node)
	return true
}

func (q *PriorityQueue) Pop() *search.Node {
	if q.heap.Len() == 0 {
		return nil
	}
	q.numPopped++
	return heap.Pop(&q.heap).(*search.Node)
}

func (q *PriorityQueue) Size() int { return q.heap.Len() }

func (q *PriorityQueue) NumPushed() int   { return q.numPushed }
func (q *PriorityQueue) NumFiltered() int { return q.numFiltered }
func (q *PriorityQueue) NumPopped() int   { return q.numPopped }

func (q *PriorityQueue) BestFinalNode() *search.Node         { return q.bestFinalNode }
func (q *PriorityQueue) SetBestFinalNode(node *search.Node) { q.bestFinalNode = node }

var _ search.Queue = (*PriorityQueue)(nil)
