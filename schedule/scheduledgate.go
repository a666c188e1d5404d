// Package schedule defines the output unit of the search: a gate
// placed at a specific cycle on specific physical qubits.
package schedule

import "github.com/kegliz/qroute/gatedag"

// ScheduledGate is a GateNode placed at a specific start cycle on
// specific physical qubits with a latency, per spec §3.1.
type ScheduledGate struct {
	Gate            *gatedag.GateNode
	Cycle           int
	Latency         int
	PhysicalTarget  int
	PhysicalControl int // -1 if the gate has no control
}

// End returns the first cycle at which the physical qubits touched by
// this gate are free again.
func (sg *ScheduledGate) End() int {
	return sg.Cycle + sg.Latency
}

// Overlaps reports whether this gate's occupied interval
// [Cycle, Cycle+Latency) intersects [otherCycle, otherCycle+otherLatency).
func (sg *ScheduledGate) Overlaps(otherCycle, otherLatency int) bool {
	return sg.Cycle < otherCycle+otherLatency && otherCycle < sg.End()
}
