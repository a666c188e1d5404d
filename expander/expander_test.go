package expander

import (
	"testing"

	"github.com/kegliz/qroute/gatedag"
	"github.com/kegliz/qroute/latency"
	"github.com/kegliz/qroute/search"
	"github.com/stretchr/testify/require"
)

type recordingQueue struct {
	nodes []*search.Node
	best  *search.Node
}

func (q *recordingQueue) Push(n *search.Node) bool {
	q.nodes = append(q.nodes, n)
	return true
}
func (q *recordingQueue) Pop() *search.Node {
	if len(q.nodes) == 0 {
		return nil
	}
	n := q.nodes[0]
	q.nodes = q.nodes[1:]
	return n
}
func (q *recordingQueue) Size() int                       { return len(q.nodes) }
func (q *recordingQueue) NumPushed() int                  { return 0 }
func (q *recordingQueue) NumFiltered() int                { return 0 }
func (q *recordingQueue) NumPopped() int                  { return 0 }
func (q *recordingQueue) BestFinalNode() *search.Node      { return q.best }
func (q *recordingQueue) SetBestFinalNode(n *search.Node)  { q.best = n }

type zeroCost struct{}

func (zeroCost) Cost(n *search.Node) int { return 0 }

func TestNaiveExpanderSchedulesGuaranteedGateOnly(t *testing.T) {
	env, err := search.NewEnvironment(2, [][2]int{{0, 1}, {1, 0}}, zeroCost{}, latency.Uniform126())
	require.NoError(t, err)

	b := gatedag.NewBuilder(2)
	_, err = b.AddGate("H", 0, -1)
	require.NoError(t, err)
	prog, err := b.Build()
	require.NoError(t, err)

	root := search.NewRootNode(env, prog, []int{0, 1}, 0)
	q := &recordingQueue{}
	ok := Naive{}.Expand(q, root)
	require.True(t, ok)
	require.Len(t, q.nodes, 1)
	require.Equal(t, 0, q.nodes[0].NumUnscheduledGates)
}

func TestNaiveExpanderDeadEndWhenNothingToDo(t *testing.T) {
	env, err := search.NewEnvironment(2, nil, zeroCost{}, latency.Uniform126())
	require.NoError(t, err)
	b := gatedag.NewBuilder(2)
	_, err = b.AddGate("H", 0, -1)
	require.NoError(t, err)
	prog, err := b.Build()
	require.NoError(t, err)

	// Qubit 0 unmapped, so the only ready gate can't become guaranteed.
	root := search.NewRootNode(env, prog, []int{search.Unmapped, 1}, 0)
	q := &recordingQueue{}
	ok := Naive{}.Expand(q, root)
	require.False(t, ok)
	require.Empty(t, q.nodes)
}

func TestIsImmediateUndoDetectsSingletonReversal(t *testing.T) {
	swapAB := gatedag.NewSwap(0, 1)
	swapBC := gatedag.NewSwap(1, 2)
	possible := []*gatedag.GateNode{swapAB, swapBC}

	n := &search.Node{LastSwapA: 0, LastSwapB: 1}
	require.True(t, isImmediateUndo(n, possible, 1<<0)) // only swapAB selected
	require.False(t, isImmediateUndo(n, possible, 1<<1))
	require.False(t, isImmediateUndo(n, possible, (1<<0)|(1<<1)))

	fresh := &search.Node{LastSwapA: search.Unmapped, LastSwapB: search.Unmapped}
	require.False(t, isImmediateUndo(fresh, possible, 1<<0))
}

func TestExpanderRegistryHasBuiltins(t *testing.T) {
	names := List()
	require.Contains(t, names, "default")
	require.Contains(t, names, "no-swaps")
	require.Contains(t, names, "naive")

	ex, err := Create("naive")
	require.NoError(t, err)
	require.IsType(t, Naive{}, ex)
}

func TestRegisterTopK(t *testing.T) {
	require.NoError(t, RegisterTopK("top-3", 3))
	ex, err := Create("top-3")
	require.NoError(t, err)
	gtk, ok := ex.(*GreedyTopK)
	require.True(t, ok)
	require.Equal(t, 3, gtk.K)
}
