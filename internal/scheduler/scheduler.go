// Package scheduler is the service-layer adapter between the
// HTTP/CLI request shape and the qroute search engine: it resolves
// named strategies, builds the gate DAG and hardware Environment, runs
// the search to completion, and flattens the winning node's schedule
// into a response-friendly Result. Grounded on qplay's qservice layer
// sitting between internal/app and the qc/* domain packages.
package scheduler

import (
	"fmt"

	"github.com/kegliz/qroute/cost"
	"github.com/kegliz/qroute/expander"
	"github.com/kegliz/qroute/filter"
	"github.com/kegliz/qroute/gatedag"
	"github.com/kegliz/qroute/latency"
	"github.com/kegliz/qroute/queue"
	"github.com/kegliz/qroute/search"
)

// GateSpec is one gate application in a request program. Control is
// nil for a 1-qubit gate; a pointer rather than a bare int so that
// logical qubit 0 can be a valid control.
type GateSpec struct {
	Name    string `json:"name"`
	Target  int    `json:"target"`
	Control *int   `json:"control,omitempty"`
}

func (g GateSpec) control() int {
	if g.Control == nil {
		return -1
	}
	return *g.Control
}

// ProgramSpec is the logical circuit to schedule.
type ProgramSpec struct {
	NumQubits int        `json:"qubits"`
	Gates     []GateSpec `json:"gates"`
}

// HardwareSpec describes the target device: its coupling graph and the
// latency table to cost gates against.
type HardwareSpec struct {
	NumQubits int      `json:"numQubits"`
	Couplings [][2]int `json:"couplings"`
	// Latency names an entry in the latency registry. Empty defaults to
	// "uniform-1-2-6".
	Latency string `json:"latency,omitempty"`
}

// StrategySpec selects and parametrizes the search strategies.
type StrategySpec struct {
	// Expander is one of the expander registry's names ("default",
	// "no-swaps", "naive") or "top-k", which additionally consults K.
	Expander string `json:"expander,omitempty"`
	K        int    `json:"k,omitempty"`
	// Cost is "critical-path" (default) or "cycle-count".
	Cost string `json:"cost,omitempty"`
	// InitialMapping[p] is the logical qubit placed at physical qubit p,
	// or -1 if none. Defaults to the identity mapping when omitted.
	InitialMapping       []int `json:"initialMapping,omitempty"`
	InitialMappingRounds int   `json:"initialMappingRounds,omitempty"`
}

// Request is a complete scheduling job.
type Request struct {
	Program  ProgramSpec  `json:"program"`
	Hardware HardwareSpec `json:"hardware"`
	Strategy StrategySpec `json:"strategy"`
}

// ScheduledGate is one entry of a finished schedule.
type ScheduledGate struct {
	Gate            string `json:"gate"`
	Cycle           int    `json:"cycle"`
	Latency         int    `json:"latency"`
	PhysicalTarget  int    `json:"physicalTarget"`
	PhysicalControl int    `json:"physicalControl"`
}

// Stats reports the search's node-exploration counters.
type Stats struct {
	NumPushed   int `json:"numPushed"`
	NumFiltered int `json:"numFiltered"`
	NumPopped   int `json:"numPopped"`
}

// Result is a finished schedule in chronological order.
type Result struct {
	ScheduledGates []ScheduledGate `json:"scheduledGates"`
	TotalCycles    int             `json:"totalCycles"`
	Stats          Stats           `json:"stats"`
}

// Run builds the search inputs from req, runs the search to
// completion, and returns the flattened winning schedule. A nil
// Result with a nil error means the search space was exhausted
// without ever completing the program (spec's "no optimality
// guarantee" non-goal: this is a possible, not exceptional, outcome).
func Run(req Request) (*Result, error) {
	costFn, err := buildCost(req.Strategy.Cost)
	if err != nil {
		return nil, err
	}

	latencyName := req.Hardware.Latency
	if latencyName == "" {
		latencyName = "uniform-1-2-6"
	}
	lat, err := latency.Create(latencyName)
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	env, err := search.NewEnvironment(req.Hardware.NumQubits, req.Hardware.Couplings, costFn, lat)
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	env.AddFilter(filter.MaxCycle{Limit: maxCycleBudget(req)})
	env.AddNodeModifier(filter.ReadyCountTiebreak{})

	b := gatedag.NewBuilder(req.Program.NumQubits)
	for _, g := range req.Program.Gates {
		if _, err := b.AddGate(g.Name, g.Target, g.control()); err != nil {
			return nil, fmt.Errorf("scheduler: %w", err)
		}
	}
	prog, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	initialMapping := req.Strategy.InitialMapping
	if initialMapping == nil {
		initialMapping = identityMapping(env.NumPhysicalQubits, prog.NumQubits)
	}

	ex, err := buildExpander(req.Strategy)
	if err != nil {
		return nil, err
	}

	root := search.NewRootNode(env, prog, initialMapping, req.Strategy.InitialMappingRounds)
	q := queue.New(env)

	final := search.Run(root, q, ex)
	if final == nil {
		return nil, nil
	}

	history := final.Scheduled.Slice()
	out := make([]ScheduledGate, len(history))
	total := 0
	for i, sg := range history {
		out[i] = ScheduledGate{
			Gate:            sg.Gate.Name,
			Cycle:           sg.Cycle,
			Latency:         sg.Latency,
			PhysicalTarget:  sg.PhysicalTarget,
			PhysicalControl: sg.PhysicalControl,
		}
		if end := sg.End(); end > total {
			total = end
		}
	}

	return &Result{
		ScheduledGates: out,
		TotalCycles:    total,
		Stats: Stats{
			NumPushed:   q.NumPushed(),
			NumFiltered: q.NumFiltered(),
			NumPopped:   q.NumPopped(),
		},
	}, nil
}

func buildCost(name string) (search.CostFunc, error) {
	switch name {
	case "", "critical-path":
		return cost.CriticalPath{}, nil
	case "cycle-count":
		return cost.CycleCount{}, nil
	default:
		return nil, fmt.Errorf("scheduler: unknown cost strategy %q", name)
	}
}

func buildExpander(s StrategySpec) (search.Expander, error) {
	name := s.Expander
	if name == "" {
		name = "default"
	}
	if name == "top-k" {
		k := s.K
		if k < 1 {
			k = 1
		}
		return expander.NewGreedyTopK(k)
	}
	ex, err := expander.Create(name)
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	return ex, nil
}

// identityMapping places logical qubit p at physical qubit p for every
// logical qubit the program has, leaving any extra physical qubits
// (numPhysicalQubits > numLogicalQubits) unmapped.
func identityMapping(numPhysicalQubits, numLogicalQubits int) []int {
	m := make([]int, numPhysicalQubits)
	for i := range m {
		if i < numLogicalQubits {
			m[i] = i
		} else {
			m[i] = search.Unmapped
		}
	}
	return m
}

// maxCycleBudget bounds the MaxCycle filter generously above the
// program's gate count, so it only ever catches a genuinely runaway
// search rather than a legitimately deep schedule.
func maxCycleBudget(req Request) int {
	return 64 + 64*len(req.Program.Gates)
}
