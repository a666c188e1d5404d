package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ctrl(q int) *int { return &q }

func TestRunSchedulesBellPairTriviaPassThrough(t *testing.T) {
	req := Request{
		Program: ProgramSpec{
			NumQubits: 2,
			Gates: []GateSpec{
				{Name: "H", Target: 0},
				{Name: "CNOT", Target: 1, Control: ctrl(0)},
			},
		},
		Hardware: HardwareSpec{
			NumQubits: 2,
			Couplings: [][2]int{{0, 1}, {1, 0}},
		},
	}

	result, err := Run(req)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.ScheduledGates, 2)
	require.Equal(t, "H", result.ScheduledGates[0].Gate)
	require.Equal(t, "CNOT", result.ScheduledGates[1].Gate)
	require.Greater(t, result.TotalCycles, 0)
	require.Greater(t, result.Stats.NumPopped, 0)
}

func TestRunNeedsNoSwapWhenCouplingAlreadyMatchesProgram(t *testing.T) {
	req := Request{
		Program: ProgramSpec{
			NumQubits: 3,
			Gates: []GateSpec{
				{Name: "H", Target: 0},
				{Name: "CNOT", Target: 1, Control: ctrl(0)},
				{Name: "CNOT", Target: 2, Control: ctrl(1)},
			},
		},
		Hardware: HardwareSpec{
			NumQubits: 3,
			Couplings: [][2]int{{0, 1}, {1, 0}, {1, 2}, {2, 1}},
		},
	}

	result, err := Run(req)
	require.NoError(t, err)
	require.NotNil(t, result)

	swaps := 0
	for _, sg := range result.ScheduledGates {
		if sg.Gate == "SWAP" {
			swaps++
		}
	}
	require.Zero(t, swaps, "this program's coupling graph already connects every gate pair; no swap should be needed")
}

func TestRunInsertsSwapWhenDirectCNOTIsNotCoupled(t *testing.T) {
	req := Request{
		Program: ProgramSpec{
			NumQubits: 3,
			Gates: []GateSpec{
				{Name: "H", Target: 0},
				{Name: "CNOT", Target: 2, Control: ctrl(0)},
			},
		},
		Hardware: HardwareSpec{
			// A line: 0-1-2. Logical 0 and 2 start on physical 0 and 2,
			// which are not directly coupled, so a SWAP is unavoidable.
			NumQubits: 3,
			Couplings: [][2]int{{0, 1}, {1, 0}, {1, 2}, {2, 1}},
		},
	}

	result, err := Run(req)
	require.NoError(t, err)
	require.NotNil(t, result)

	swaps := 0
	for _, sg := range result.ScheduledGates {
		if sg.Gate == "SWAP" {
			swaps++
		}
	}
	require.Positive(t, swaps, "logical qubits 0 and 2 start on uncoupled physical qubits; a SWAP must be scheduled before the CNOT")
}

func TestRunWithTopKExpanderSchedulesEveryGate(t *testing.T) {
	req := Request{
		Program: ProgramSpec{
			NumQubits: 3,
			Gates: []GateSpec{
				{Name: "H", Target: 0},
				{Name: "CNOT", Target: 1, Control: ctrl(0)},
				{Name: "CNOT", Target: 2, Control: ctrl(0)},
			},
		},
		Hardware: HardwareSpec{
			NumQubits: 3,
			Couplings: [][2]int{{0, 1}, {1, 0}, {0, 2}, {2, 0}},
		},
		Strategy: StrategySpec{Expander: "top-k", K: 2},
	}

	result, err := Run(req)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.ScheduledGates, 3)
}

func TestRunRejectsGateArityMismatch(t *testing.T) {
	req := Request{
		Program: ProgramSpec{
			NumQubits: 2,
			Gates:     []GateSpec{{Name: "CNOT", Target: 0}}, // no control: wrong arity
		},
		Hardware: HardwareSpec{NumQubits: 2, Couplings: [][2]int{{0, 1}, {1, 0}}},
	}

	result, err := Run(req)
	require.Error(t, err)
	require.Nil(t, result)
}

func TestRunRejectsUnknownExpander(t *testing.T) {
	req := Request{
		Program: ProgramSpec{
			NumQubits: 1,
			Gates:     []GateSpec{{Name: "H", Target: 0}},
		},
		Hardware: HardwareSpec{NumQubits: 1},
		Strategy: StrategySpec{Expander: "bogus"},
	}

	result, err := Run(req)
	require.Error(t, err)
	require.Nil(t, result)
}

func TestRunUsesIdentityMappingByDefault(t *testing.T) {
	req := Request{
		Program: ProgramSpec{
			NumQubits: 1,
			Gates:     []GateSpec{{Name: "H", Target: 0}},
		},
		Hardware: HardwareSpec{NumQubits: 3},
	}

	result, err := Run(req)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, 0, result.ScheduledGates[0].PhysicalTarget)
}
