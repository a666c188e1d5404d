package expander

import (
	"testing"

	"github.com/kegliz/qroute/gatedag"
	"github.com/kegliz/qroute/latency"
	"github.com/kegliz/qroute/search"
	"github.com/stretchr/testify/require"
)

type fifoQueue struct {
	nodes []*search.Node
	best  *search.Node
	push  int
}

func (q *fifoQueue) Push(n *search.Node) bool {
	q.push++
	q.nodes = append(q.nodes, n)
	return true
}
func (q *fifoQueue) Pop() *search.Node {
	if len(q.nodes) == 0 {
		return nil
	}
	n := q.nodes[0]
	q.nodes = q.nodes[1:]
	return n
}
func (q *fifoQueue) Size() int              { return len(q.nodes) }
func (q *fifoQueue) NumPushed() int         { return q.push }
func (q *fifoQueue) NumFiltered() int       { return 0 }
func (q *fifoQueue) NumPopped() int         { return 0 }
func (q *fifoQueue) BestFinalNode() *search.Node { return q.best }
func (q *fifoQueue) SetBestFinalNode(n *search.Node) { q.best = n }

type cycleCost struct{}

func (cycleCost) Cost(n *search.Node) int {
	if n.Cycle < 0 {
		return 0
	}
	return n.Cycle
}

func twoQubitLineEnv(t *testing.T) *search.Environment {
	t.Helper()
	env, err := search.NewEnvironment(2, [][2]int{{0, 1}, {1, 0}}, cycleCost{}, latency.Uniform126())
	require.NoError(t, err)
	return env
}

func TestGreedyTopKScheduleTrivialProgram(t *testing.T) {
	env := twoQubitLineEnv(t)
	b := gatedag.NewBuilder(2)
	h0, err := b.AddGate("H", 0, -1)
	require.NoError(t, err)
	prog, err := b.Build()
	require.NoError(t, err)

	root := search.NewRootNode(env, prog, []int{0, 1}, 0)
	root.Cost = env.EvaluateCost(root)

	ex, err := NewGreedyTopK(4)
	require.NoError(t, err)

	q := &fifoQueue{}
	ok := ex.Expand(q, root)
	require.True(t, ok)
	require.NotZero(t, q.Size())

	foundScheduledH := false
	for _, child := range q.nodes {
		if child.NumUnscheduledGates == 0 {
			foundScheduledH = true
		}
	}
	require.True(t, foundScheduledH, "at least one child should have scheduled the only gate %v", h0.Name)
}

func TestGreedyTopKRespectsKCap(t *testing.T) {
	env := twoQubitLineEnv(t)
	b := gatedag.NewBuilder(2)
	_, err := b.AddGate("H", 0, -1)
	require.NoError(t, err)
	prog, err := b.Build()
	require.NoError(t, err)

	root := search.NewRootNode(env, prog, []int{0, 1}, 0)
	root.Cost = env.EvaluateCost(root)

	ex, err := NewGreedyTopK(1)
	require.NoError(t, err)

	q := &fifoQueue{}
	ex.Expand(q, root)
	require.LessOrEqual(t, q.Size(), 1)
}

func TestGreedyTopKPrunesWhenNotBetterThanBest(t *testing.T) {
	env := twoQubitLineEnv(t)
	b := gatedag.NewBuilder(2)
	_, err := b.AddGate("H", 0, -1)
	require.NoError(t, err)
	prog, err := b.Build()
	require.NoError(t, err)

	root := search.NewRootNode(env, prog, []int{0, 1}, 0)
	root.Cost = 5

	best := search.NewRootNode(env, prog, []int{0, 1}, 0)
	best.Cost = 2

	ex, err := NewGreedyTopK(4)
	require.NoError(t, err)

	q := &fifoQueue{best: best}
	ok := ex.Expand(q, root)
	require.False(t, ok)
	require.Zero(t, q.Size())
}

func TestNewGreedyTopKRejectsNonPositiveK(t *testing.T) {
	_, err := NewGreedyTopK(0)
	require.Error(t, err)
}
