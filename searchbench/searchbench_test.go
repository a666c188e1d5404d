package searchbench

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardCircuitsBuild(t *testing.T) {
	for circuitType, build := range StandardCircuits {
		_, err := build(4)
		require.NoError(t, err, string(circuitType))
	}
}

func TestRunCompletesLinearChainWithDefaultExpander(t *testing.T) {
	var last Result
	testing.Benchmark(func(b *testing.B) {
		last = Run(b, Config{Circuit: LinearChain, NumQubits: 3, ExpanderName: "default"})
	})
	require.True(t, last.Success, last.Error)
	require.Greater(t, last.TotalCycles, 0)
	require.Greater(t, last.NumPopped, 0)
}

func TestRunCompletesGHZChainWithTopK(t *testing.T) {
	var last Result
	testing.Benchmark(func(b *testing.B) {
		last = Run(b, Config{Circuit: GHZChain, NumQubits: 4, ExpanderName: "top-k", K: 4})
	})
	require.True(t, last.Success, last.Error)
}

func TestRunRejectsUnknownCircuit(t *testing.T) {
	last := Run(&testing.B{N: 1}, Config{Circuit: "nope", NumQubits: 2})
	require.False(t, last.Success)
	require.Contains(t, last.Error, "unknown circuit type")
}
