// Package searchbench benchmarks combinations of Expander/CostFunc
// strategies against synthetic circuits and hardware graphs (the queue
// is always queue.PriorityQueue), retargeted from qc/benchmark's
// PluginBenchmarkSuite (which benchmarks simulator runner backends) to
// benchmark scheduler strategy combinations instead. Reports node
// counts (numPushed/numFiltered/numPopped), wall time, and memory, in
// the same ResourceUsage/Result shape the teacher's suite reports.
package searchbench

import (
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/kegliz/qroute/cost"
	"github.com/kegliz/qroute/expander"
	"github.com/kegliz/qroute/gatedag"
	"github.com/kegliz/qroute/latency"
	"github.com/kegliz/qroute/queue"
	"github.com/kegliz/qroute/search"
)

// CircuitType names a synthetic program generator, mirroring
// qc/benchmark's CircuitType enum.
type CircuitType string

const (
	LinearChain   CircuitType = "linear-chain"
	GHZChain      CircuitType = "ghz-chain"
	AllToAllCNOTs CircuitType = "all-to-all-cnots"
)

// StandardCircuits builds a gatedag.Program with numQubits logical
// qubits for each CircuitType, mirroring qc/benchmark's
// StandardCircuits table of circuit builders.
var StandardCircuits = map[CircuitType]func(numQubits int) (*gatedag.Program, error){
	LinearChain:   buildLinearChain,
	GHZChain:      buildGHZChain,
	AllToAllCNOTs: buildAllToAllCNOTs,
}

func buildLinearChain(numQubits int) (*gatedag.Program, error) {
	b := gatedag.NewBuilder(numQubits)
	for i := 0; i < numQubits; i++ {
		if _, err := b.AddGate("H", i, -1); err != nil {
			return nil, err
		}
	}
	for i := 0; i < numQubits-1; i++ {
		if _, err := b.AddGate("CNOT", i+1, i); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func buildGHZChain(numQubits int) (*gatedag.Program, error) {
	b := gatedag.NewBuilder(numQubits)
	if _, err := b.AddGate("H", 0, -1); err != nil {
		return nil, err
	}
	for i := 0; i < numQubits-1; i++ {
		if _, err := b.AddGate("CNOT", i+1, i); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func buildAllToAllCNOTs(numQubits int) (*gatedag.Program, error) {
	b := gatedag.NewBuilder(numQubits)
	for i := 0; i < numQubits; i++ {
		if _, err := b.AddGate("H", i, -1); err != nil {
			return nil, err
		}
	}
	for i := 0; i < numQubits; i++ {
		for j := i + 1; j < numQubits; j++ {
			if _, err := b.AddGate("CNOT", j, i); err != nil {
				return nil, err
			}
		}
	}
	return b.Build()
}

// lineCoupling returns a bidirectional nearest-neighbor coupling list
// over numQubits physical qubits.
func lineCoupling(numQubits int) [][2]int {
	var c [][2]int
	for i := 0; i < numQubits-1; i++ {
		c = append(c, [2]int{i, i + 1}, [2]int{i + 1, i})
	}
	return c
}

// Config selects one strategy combination and synthetic workload to
// benchmark, mirroring qc/benchmark's BenchmarkConfig.
type Config struct {
	Circuit       CircuitType
	NumQubits     int
	ExpanderName  string // "default", "no-swaps", "naive", or "top-k"
	K             int    // only consulted when ExpanderName == "top-k"
	Cost          search.CostFunc
	InitialRounds int
}

// ResourceUsage tracks resource consumption during one benchmark run.
type ResourceUsage struct {
	StartMemory uint64
	EndMemory   uint64
	MemoryDelta int64
	GCCount     uint32
	Duration    time.Duration
}

// Result contains a completed benchmark's outcome and metadata.
type Result struct {
	Config        Config
	Success       bool
	Error         string
	TotalCycles   int
	NumPushed     int
	NumFiltered   int
	NumPopped     int
	ResourceUsage ResourceUsage
}

// Run executes config.Circuit/config.NumQubits once through the search
// engine under b's timer, reporting allocations the way
// RunSingleBenchmark does for simulator runners.
func Run(b *testing.B, config Config) Result {
	result := Result{Config: config}

	startMem, startGC := memStats()
	result.ResourceUsage.StartMemory = startMem

	build, ok := StandardCircuits[config.Circuit]
	if !ok {
		result.Error = fmt.Sprintf("unknown circuit type %q", config.Circuit)
		return result
	}
	prog, err := build(config.NumQubits)
	if err != nil {
		result.Error = fmt.Sprintf("failed to build circuit: %v", err)
		return result
	}

	costFn := config.Cost
	if costFn == nil {
		costFn = cost.CriticalPath{}
	}

	b.ReportAllocs()
	b.ResetTimer()
	start := time.Now()

	var final *search.Node
	for i := 0; i < b.N; i++ {
		env, err := search.NewEnvironment(config.NumQubits, lineCoupling(config.NumQubits), costFn, latency.Uniform126())
		if err != nil {
			result.Error = fmt.Sprintf("failed to build environment: %v", err)
			return result
		}

		ex, err := buildExpander(config.ExpanderName, config.K)
		if err != nil {
			result.Error = err.Error()
			return result
		}

		root := search.NewRootNode(env, prog, identity(config.NumQubits), config.InitialRounds)
		q := queue.New(env)
		final = search.Run(root, q, ex)
		result.NumPushed, result.NumFiltered, result.NumPopped = q.NumPushed(), q.NumFiltered(), q.NumPopped()
	}

	result.ResourceUsage.Duration = time.Since(start)
	endMem, endGC := memStats()
	result.ResourceUsage.EndMemory = endMem
	result.ResourceUsage.GCCount = endGC - startGC
	result.ResourceUsage.MemoryDelta = int64(endMem) - int64(startMem)

	if final == nil {
		result.Error = "search exhausted without completing the program"
		return result
	}
	result.Success = true
	result.TotalCycles = final.Cycle
	return result
}

func buildExpander(name string, k int) (search.Expander, error) {
	if name == "" {
		name = "default"
	}
	if name == "top-k" {
		if k < 1 {
			k = 1
		}
		return expander.NewGreedyTopK(k)
	}
	return expander.Create(name)
}

func identity(numQubits int) []int {
	m := make([]int, numQubits)
	for i := range m {
		m[i] = i
	}
	return m
}

func memStats() (uint64, uint32) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc, m.NumGC
}
