package search

// Queue orders pending Nodes for expansion and tracks the best
// complete schedule found so far (spec §4.6).
//
// Push must consult Environment.RejectNode itself (not the caller):
// a rejected node is never Pop()-able but is still counted against
// NumFiltered, mirroring the original engine's push-time filtering.
type Queue interface {
	Push(node *Node) bool
	Pop() *Node
	Size() int

	NumPushed() int
	NumFiltered() int
	NumPopped() int

	BestFinalNode() *Node
	SetBestFinalNode(node *Node)
}
