package queue

import (
	"testing"

	"github.com/kegliz/qroute/latency"
	"github.com/kegliz/qroute/search"
	"github.com/stretchr/testify/require"
)

type zeroCost struct{}

func (zeroCost) Cost(n *search.Node) int { return 0 }

func testEnv(t *testing.T) *search.Environment {
	t.Helper()
	env, err := search.NewEnvironment(2, nil, zeroCost{}, latency.Uniform126())
	require.NoError(t, err)
	return env
}

func TestPriorityQueuePopOrdersByCostThenCost2(t *testing.T) {
	env := testEnv(t)
	q := New(env)

	require.True(t, q.Push(&search.Node{Cost: 3, Cost2: 0}))
	require.True(t, q.Push(&search.Node{Cost: 1, Cost2: 5}))
	require.True(t, q.Push(&search.Node{Cost: 1, Cost2: 2}))

	first := q.Pop()
	require.Equal(t, 1, first.Cost)
	require.Equal(t, 2, first.Cost2)

	second := q.Pop()
	require.Equal(t, 1, second.Cost)
	require.Equal(t, 5, second.Cost2)

	third := q.Pop()
	require.Equal(t, 3, third.Cost)

	require.Nil(t, q.Pop())
}

type rejectAll struct{}

func (rejectAll) Reject(n *search.Node) bool { return true }

func TestPriorityQueuePushConsultsFilter(t *testing.T) {
	env := testEnv(t)
	env.AddFilter(rejectAll{})
	q := New(env)

	ok := q.Push(&search.Node{Cost: 1})
	require.False(t, ok)
	require.Equal(t, 0, q.Size())
	require.Equal(t, 1, q.NumPushed())
	require.Equal(t, 1, q.NumFiltered())
}

func TestPriorityQueueTracksBestFinalNode(t *testing.T) {
	env := testEnv(t)
	q := New(env)
	require.Nil(t, q.BestFinalNode())

	n := &search.Node{Cost: 7}
	q.SetBestFinalNode(n)
	require.Same(t, n, q.BestFinalNode())
}
