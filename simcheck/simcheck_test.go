package simcheck

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kegliz/qroute/internal/scheduler"
)

func ctrl(q int) *int { return &q }

func TestVerifyAcceptsBellPairScheduleWithNoSwaps(t *testing.T) {
	req := scheduler.Request{
		Program: scheduler.ProgramSpec{
			NumQubits: 2,
			Gates: []scheduler.GateSpec{
				{Name: "H", Target: 0},
				{Name: "CNOT", Target: 1, Control: ctrl(0)},
			},
		},
		Hardware: scheduler.HardwareSpec{
			NumQubits: 2,
			Couplings: [][2]int{{0, 1}, {1, 0}},
		},
	}

	result, err := scheduler.Run(req)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.NoError(t, Verify(req, result, 256))
}

func TestVerifyAcceptsScheduleThatNeededASwap(t *testing.T) {
	req := scheduler.Request{
		Program: scheduler.ProgramSpec{
			NumQubits: 3,
			Gates: []scheduler.GateSpec{
				{Name: "H", Target: 0},
				{Name: "CNOT", Target: 2, Control: ctrl(0)},
			},
		},
		Hardware: scheduler.HardwareSpec{
			NumQubits: 3,
			Couplings: [][2]int{{0, 1}, {1, 0}, {1, 2}, {2, 1}},
		},
	}

	result, err := scheduler.Run(req)
	require.NoError(t, err)
	require.NotNil(t, result)

	hasSwap := false
	for _, sg := range result.ScheduledGates {
		if sg.Gate == "SWAP" {
			hasSwap = true
		}
	}
	require.True(t, hasSwap, "test setup expects this program to force a SWAP")

	require.NoError(t, Verify(req, result, 256))
}

func TestVerifyRejectsAMismatchedSchedule(t *testing.T) {
	req := scheduler.Request{
		Program: scheduler.ProgramSpec{
			NumQubits: 2,
			Gates: []scheduler.GateSpec{
				{Name: "H", Target: 0},
				{Name: "CNOT", Target: 1, Control: ctrl(0)},
			},
		},
		Hardware: scheduler.HardwareSpec{
			NumQubits: 2,
			Couplings: [][2]int{{0, 1}, {1, 0}},
		},
	}

	result, err := scheduler.Run(req)
	require.NoError(t, err)
	require.NotNil(t, result)

	// Drop the CNOT from the scheduled gates so the physical run no
	// longer entangles the two qubits; the resulting histogram should
	// no longer match the program's.
	broken := *result
	broken.ScheduledGates = result.ScheduledGates[:1]

	require.Error(t, Verify(req, &broken, 256))
}
