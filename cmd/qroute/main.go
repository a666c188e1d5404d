// Command qroute schedules a handful of demo programs against a small
// line-coupled device and prints the resulting schedules, grounded on
// cmd/cli/main.go's direct-construction style (no flag-parsing
// library; a small fixed set of demo runs wired straight into main).
package main

import (
	"fmt"

	"github.com/kegliz/qroute/internal/scheduler"
)

func main() {
	fmt.Println("--- Bell pair on a 2-qubit line ---")
	runDemo(bellPairRequest())

	fmt.Println("\n--- 3-qubit GHZ chain, forced through a SWAP ---")
	runDemo(ghzOnDisjointCouplingRequest())

	fmt.Println("\n--- Top-K(3) expander on the GHZ chain ---")
	runDemo(topKRequest())
}

func runDemo(req scheduler.Request) {
	result, err := scheduler.Run(req)
	if err != nil {
		fmt.Printf("scheduling failed: %v\n", err)
		return
	}
	if result == nil {
		fmt.Println("search exhausted without completing the program")
		return
	}

	for _, sg := range result.ScheduledGates {
		if sg.PhysicalControl < 0 {
			fmt.Printf("cycle %3d: %-5s q%d (latency %d)\n", sg.Cycle, sg.Gate, sg.PhysicalTarget, sg.Latency)
		} else {
			fmt.Printf("cycle %3d: %-5s q%d,q%d (latency %d)\n", sg.Cycle, sg.Gate, sg.PhysicalControl, sg.PhysicalTarget, sg.Latency)
		}
	}
	fmt.Printf("total cycles: %d, nodes pushed/filtered/popped: %d/%d/%d\n",
		result.TotalCycles, result.Stats.NumPushed, result.Stats.NumFiltered, result.Stats.NumPopped)
}

func bellPairRequest() scheduler.Request {
	ctrl := 0
	return scheduler.Request{
		Program: scheduler.ProgramSpec{
			NumQubits: 2,
			Gates: []scheduler.GateSpec{
				{Name: "H", Target: 0},
				{Name: "CNOT", Target: 1, Control: &ctrl},
			},
		},
		Hardware: scheduler.HardwareSpec{
			NumQubits: 2,
			Couplings: [][2]int{{0, 1}, {1, 0}},
		},
	}
}

// ghzOnDisjointCouplingRequest places logical qubits 0 and 2 on
// physical qubits 0 and 2, with no direct coupling between them, so
// the engine is forced to insert at least one SWAP before it can
// execute the CNOT(0, 2).
func ghzOnDisjointCouplingRequest() scheduler.Request {
	c0 := 0
	return scheduler.Request{
		Program: scheduler.ProgramSpec{
			NumQubits: 3,
			Gates: []scheduler.GateSpec{
				{Name: "H", Target: 0},
				{Name: "CNOT", Target: 1, Control: &c0},
				{Name: "CNOT", Target: 2, Control: &c0},
			},
		},
		Hardware: scheduler.HardwareSpec{
			NumQubits: 3,
			Couplings: [][2]int{{0, 1}, {1, 0}, {1, 2}, {2, 1}},
		},
	}
}

func topKRequest() scheduler.Request {
	req := ghzOnDisjointCouplingRequest()
	req.Strategy = scheduler.StrategySpec{Expander: "top-k", K: 3}
	return req
}
