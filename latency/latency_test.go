package latency

import (
	"testing"

	"github.com/kegliz/qroute/search"
	"github.com/stretchr/testify/require"
)

func TestUniform126Defaults(t *testing.T) {
	u := Uniform126()
	require.Equal(t, 6, u.GetLatency("SWAP", 2, 0, 1))
	require.Equal(t, 2, u.GetLatency("CNOT", 2, 0, 1))
	require.Equal(t, 1, u.GetLatency("H", 1, 0, -1))
}

func TestTableExactMatchBeatsDefault(t *testing.T) {
	tbl := NewTable()
	tbl.Set("CNOT", 2, -1, -1, 2)
	tbl.Set("CNOT", 2, 1, 0, 3)
	tbl.Set("", 2, -1, -1, 2)
	tbl.Set("", 1, -1, -1, 1)

	require.Equal(t, 3, tbl.GetLatency("CNOT", 2, 1, 0))
	require.Equal(t, 2, tbl.GetLatency("CNOT", 2, 0, 1), "falls back to gate default")
	require.Equal(t, 2, tbl.GetLatency("CZ", 2, 0, 1), "falls back to global default for arity")
	require.Equal(t, 1, tbl.GetLatency("H", 1, 0, -1))
}

func TestTableOptimisticLogicalQuery(t *testing.T) {
	tbl := NewTable()
	tbl.Set("CNOT", 2, 1, 0, 3)
	tbl.Set("CNOT", 2, 0, 2, 5)

	require.Equal(t, 3, tbl.GetLatency("CNOT", 2, -1, -1), "logical query returns the minimum over physical realisations")
}

func TestTableMissingEntryPanics(t *testing.T) {
	tbl := NewTable()
	require.Panics(t, func() {
		tbl.GetLatency("CNOT", 2, 0, 1)
	})
}

func TestDefaultRegistryHasUniform126(t *testing.T) {
	names := List()
	require.Contains(t, names, "uniform-1-2-6")

	strat, err := Create("uniform-1-2-6")
	require.NoError(t, err)
	require.Equal(t, 6, strat.GetLatency("SWAP", 2, 0, 1))
}

func TestRegistryRejectsDuplicateName(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("a", func() search.Latency { return Uniform126() }))
	require.Error(t, r.Register("a", func() search.Latency { return Uniform126() }))
}
