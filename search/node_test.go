package search

import (
	"testing"

	"github.com/kegliz/qroute/gatedag"
	"github.com/stretchr/testify/require"
)

func buildBellProgram(t *testing.T) *gatedag.Program {
	t.Helper()
	b := gatedag.NewBuilder(2)
	_, err := b.AddGate("H", 0, -1)
	require.NoError(t, err)
	_, err = b.AddGate("CNOT", 1, 0)
	require.NoError(t, err)
	prog, err := b.Build()
	require.NoError(t, err)
	return prog
}

func TestNewRootNodeInitialState(t *testing.T) {
	env := lineEnv(t, 2)
	prog := buildBellProgram(t)
	root := NewRootNode(env, prog, []int{0, 1}, 0)

	require.Equal(t, []int{0, 1}, root.Qal)
	require.Equal(t, []int{0, 1}, root.Laq)
	require.Equal(t, 2, root.NumUnscheduledGates)
	require.False(t, root.InInitialMappingPhase())
	require.Len(t, root.ReadyGates, 1) // only H(0) has no parents
}

func TestNewRootNodeInitialMappingPhase(t *testing.T) {
	env := lineEnv(t, 2)
	prog := buildBellProgram(t)
	root := NewRootNode(env, prog, []int{0, 1}, 2)
	require.True(t, root.InInitialMappingPhase())
	root.AdvanceMappingPhase()
	require.True(t, root.InInitialMappingPhase())
	root.AdvanceMappingPhase()
	require.False(t, root.InInitialMappingPhase())
}

func TestPrepChildSharesScheduledButCopiesSlices(t *testing.T) {
	env := lineEnv(t, 2)
	prog := buildBellProgram(t)
	root := NewRootNode(env, prog, []int{0, 1}, 0)

	child := root.PrepChild()
	require.Same(t, root.Scheduled, child.Scheduled)

	child.Qal[0] = 99
	require.Equal(t, 0, root.Qal[0])

	child.ReadyGates[nil] = struct{}{}
	require.NotContains(t, root.ReadyGates, nil)
}

func TestScheduleGateOnMappedQubit(t *testing.T) {
	env := lineEnv(t, 2)
	prog := buildBellProgram(t)
	root := NewRootNode(env, prog, []int{0, 1}, 0)

	h := prog.Gates()[0]
	ok := root.ScheduleGate(h, 0)
	require.True(t, ok)
	require.Equal(t, 1, root.NumUnscheduledGates)
	require.NotContains(t, root.ReadyGates, h)

	cx := prog.Gates()[1]
	require.Contains(t, root.ReadyGates, cx)

	sg, ok := root.Scheduled.Top()
	require.True(t, ok)
	require.Equal(t, h, sg.Gate)
	require.Equal(t, 0, sg.Cycle)
	require.Equal(t, 1, sg.Latency)
}

func TestScheduleGateRejectsUncoupledTwoQubitGate(t *testing.T) {
	env, err := NewEnvironment(3, nil, zeroCost{}, constLatency{cycles: 1})
	require.NoError(t, err)
	prog := buildBellProgram(t)
	root := NewRootNode(env, prog, []int{0, 1, Unmapped}, 0)

	root.ScheduleGate(prog.Gates()[0], 0)
	ok := root.ScheduleGate(prog.Gates()[1], 0)
	require.False(t, ok, "no coupling registered between physical qubits 0 and 1")
}

func TestScheduleGateRejectsUnmappedLogicalQubit(t *testing.T) {
	env := lineEnv(t, 2)
	prog := buildBellProgram(t)
	root := NewRootNode(env, prog, []int{Unmapped, Unmapped}, 0)

	ok := root.ScheduleGate(prog.Gates()[0], 0)
	require.False(t, ok)
}

func TestSwapQubitsMovesOccupants(t *testing.T) {
	env := lineEnv(t, 2)
	prog := buildBellProgram(t)
	root := NewRootNode(env, prog, []int{0, 1}, 0)

	require.True(t, root.SwapQubits(0, 1))
	require.Equal(t, []int{1, 0}, root.Qal)
	require.Equal(t, []int{1, 0}, root.Laq)
}

func TestSwapQubitsNoOpWhenBothEmpty(t *testing.T) {
	env := lineEnv(t, 2)
	prog := buildBellProgram(t)
	root := NewRootNode(env, prog, []int{Unmapped, Unmapped}, 0)
	require.False(t, root.SwapQubits(0, 1))
}

func TestPromoteChildrenWithTwoParents(t *testing.T) {
	env := lineEnv(t, 2)
	b := gatedag.NewBuilder(2)
	h0, _ := b.AddGate("H", 0, -1)
	h1, _ := b.AddGate("H", 1, -1)
	cx, _ := b.AddGate("CNOT", 1, 0)
	prog, err := b.Build()
	require.NoError(t, err)

	root := NewRootNode(env, prog, []int{0, 1}, 0)
	require.Len(t, root.ReadyGates, 2) // h0, h1
	require.NotContains(t, root.ReadyGates, cx)

	ok := root.ScheduleGate(h0, 0)
	require.True(t, ok)
	require.NotContains(t, root.ReadyGates, cx, "cx still waiting on h1")

	ok = root.ScheduleGate(h1, 0)
	require.True(t, ok)
	require.Contains(t, root.ReadyGates, cx)
}
