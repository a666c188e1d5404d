// Package simcheck replays a finished schedule against the program it
// came from on an itsubaki/q statevector simulator, and checks that the
// two agree: the scheduled physical circuit (with its inserted SWAPs)
// must reproduce the same measurement statistics as the original
// logical program, once the final logical-qubit-to-physical-qubit
// permutation is undone. It exists for test fixtures only, grounded on
// qc/simulator/itsu/itsu.go's runOnce and qc/simulator/itsu/itsu_serial.go's
// shot-histogram loop.
package simcheck

import (
	"fmt"
	"math"

	"github.com/itsubaki/q"

	"github.com/kegliz/qroute/internal/scheduler"
)

// DefaultShots is used when Verify is called with shots <= 0.
const DefaultShots = 512

// Tolerance bounds how far apart two histograms' per-outcome shot
// frequencies may drift before Verify reports disagreement. Loose
// enough to absorb binomial shot noise at DefaultShots, tight enough to
// catch a genuinely wrong permutation or dropped gate.
const Tolerance = 0.12

// Verify runs req.Program on req.Program.NumQubits logical qubits and
// result's scheduled gates on req.Hardware.NumQubits physical qubits,
// each for shots repetitions, and reports whether the physical run's
// measurement histogram matches the logical run's once remapped
// through the permutation result's SWAPs induce. A nil error means the
// schedule is a faithful realization of the program.
func Verify(req scheduler.Request, result *scheduler.Result, shots int) error {
	if shots <= 0 {
		shots = DefaultShots
	}
	if result == nil {
		return fmt.Errorf("simcheck: result is nil")
	}

	logicalHist, err := runLogical(req.Program, shots)
	if err != nil {
		return fmt.Errorf("simcheck: logical run failed: %w", err)
	}

	physicalHist, finalMapping, err := runPhysical(req, result, shots)
	if err != nil {
		return fmt.Errorf("simcheck: physical run failed: %w", err)
	}

	remapped := remapHistogram(physicalHist, finalMapping, req.Program.NumQubits)

	if err := compareHistograms(logicalHist, remapped, shots); err != nil {
		return fmt.Errorf("simcheck: schedule does not reproduce the program's statistics: %w", err)
	}
	return nil
}

// runLogical plays req.Program directly on its own logical qubits, one
// shot per iteration, measuring every qubit at the end of each shot.
func runLogical(prog scheduler.ProgramSpec, shots int) (map[string]int, error) {
	hist := make(map[string]int)
	for s := 0; s < shots; s++ {
		sim := q.New()
		qs := sim.ZeroWith(prog.NumQubits)
		for _, g := range prog.Gates {
			control := -1
			if g.Control != nil {
				control = *g.Control
			}
			if err := applyGate(sim, qs, g.Name, g.Target, control); err != nil {
				return nil, fmt.Errorf("shot %d: %w", s, err)
			}
		}
		hist[measureAll(sim, qs)]++
	}
	return hist, nil
}

// runPhysical replays result.ScheduledGates in cycle order on
// req.Hardware.NumQubits physical qubits, one shot per iteration,
// tracking which logical qubit each physical qubit ends up holding (the
// same initial mapping scheduler.Run started from, permuted by every
// SWAP it scheduled).
func runPhysical(req scheduler.Request, result *scheduler.Result, shots int) (map[string]int, []int, error) {
	mapping := initialMapping(req)

	hist := make(map[string]int)
	for s := 0; s < shots; s++ {
		sim := q.New()
		qs := sim.ZeroWith(req.Hardware.NumQubits)
		for _, sg := range result.ScheduledGates {
			if sg.Gate == "SWAP" {
				sim.Swap(qs[sg.PhysicalTarget], qs[sg.PhysicalControl])
				continue
			}
			control := -1
			if sg.PhysicalControl >= 0 {
				control = sg.PhysicalControl
			}
			if err := applyGate(sim, qs, sg.Gate, sg.PhysicalTarget, control); err != nil {
				return nil, nil, fmt.Errorf("shot %d: %w", s, err)
			}
		}
		hist[measureAll(sim, qs)]++
	}

	// Replay the SWAPs once more, outside the shot loop, purely to
	// compute where each logical qubit physically ends up; the
	// histogram loop above repeats this per-shot because itsubaki/q's
	// qubit handles are bound to one q.New() instance.
	final := make([]int, len(mapping))
	copy(final, mapping)
	for _, sg := range result.ScheduledGates {
		if sg.Gate == "SWAP" {
			final[sg.PhysicalTarget], final[sg.PhysicalControl] = final[sg.PhysicalControl], final[sg.PhysicalTarget]
		}
	}
	return hist, final, nil
}

// initialMapping mirrors internal/scheduler.identityMapping: physical
// qubit p starts holding logical qubit p for p < NumQubits, unmapped
// (-1) otherwise, unless the request pinned an explicit mapping.
func initialMapping(req scheduler.Request) []int {
	if req.Strategy.InitialMapping != nil {
		m := make([]int, len(req.Strategy.InitialMapping))
		copy(m, req.Strategy.InitialMapping)
		return m
	}
	m := make([]int, req.Hardware.NumQubits)
	for p := range m {
		if p < req.Program.NumQubits {
			m[p] = p
		} else {
			m[p] = -1
		}
	}
	return m
}

// applyGate dispatches a named gate onto qs[target] (and qs[control]
// for two-qubit gates), mirroring itsu.go's runOnce switch.
func applyGate(sim *q.Q, qs []q.Qubit, name string, target, control int) error {
	switch name {
	case "H":
		sim.H(qs[target])
	case "X":
		sim.X(qs[target])
	case "Y":
		sim.Y(qs[target])
	case "Z":
		sim.Z(qs[target])
	case "S":
		sim.S(qs[target])
	case "CNOT":
		sim.CNOT(qs[control], qs[target])
	case "CZ":
		sim.CZ(qs[control], qs[target])
	default:
		return fmt.Errorf("unsupported gate %q", name)
	}
	return nil
}

// measureAll collapses every qubit and returns the resulting
// little-endian classical bit-string.
func measureAll(sim *q.Q, qs []q.Qubit) string {
	bits := make([]byte, len(qs))
	for i, qb := range qs {
		if sim.Measure(qb).IsOne() {
			bits[i] = '1'
		} else {
			bits[i] = '0'
		}
	}
	return string(bits)
}

// remapHistogram rewrites a physical-qubit histogram's keys into
// logical-qubit order: logical bit l takes the value physical bit p
// held, where finalMapping[p] == l.
func remapHistogram(hist map[string]int, finalMapping []int, numLogicalQubits int) map[string]int {
	out := make(map[string]int)
	for key, count := range hist {
		logical := make([]byte, numLogicalQubits)
		for p, l := range finalMapping {
			if l < 0 || l >= numLogicalQubits {
				continue
			}
			logical[l] = key[p]
		}
		out[string(logical)] += count
	}
	return out
}

// compareHistograms reports an error if any outcome's shot frequency
// differs between the two histograms by more than Tolerance.
func compareHistograms(a, b map[string]int, shots int) error {
	outcomes := make(map[string]struct{})
	for k := range a {
		outcomes[k] = struct{}{}
	}
	for k := range b {
		outcomes[k] = struct{}{}
	}
	for outcome := range outcomes {
		fa := float64(a[outcome]) / float64(shots)
		fb := float64(b[outcome]) / float64(shots)
		if math.Abs(fa-fb) > Tolerance {
			return fmt.Errorf("outcome %q: logical frequency %.3f vs physical (remapped) frequency %.3f", outcome, fa, fb)
		}
	}
	return nil
}
