// Package timeline renders a finished schedule as a PNG: physical
// qubit rows against cycle columns, adapted from qplay's
// qc/renderer/ggpng.go (gg-based circuit-diagram renderer) retargeted
// from logical-qubit/TimeStep layout to physical-qubit/cycle layout.
package timeline

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/kegliz/qroute/internal/scheduler"
)

// Renderer draws a scheduler.Result to a PNG image, one cell per
// cycle x physical qubit.
type Renderer struct {
	Cell float64
}

// New returns a Renderer using cellPx pixels per grid cell.
func New(cellPx int) Renderer {
	return Renderer{Cell: float64(cellPx)}
}

// Render draws result against a device with numPhysicalQubits wires.
func (r Renderer) Render(result *scheduler.Result, numPhysicalQubits int) (image.Image, error) {
	if numPhysicalQubits <= 0 {
		return nil, fmt.Errorf("timeline: numPhysicalQubits must be positive, got %d", numPhysicalQubits)
	}

	cycles := result.TotalCycles
	if cycles < 1 {
		cycles = 1
	}
	w := int(float64(cycles)*r.Cell) + int(r.Cell)
	h := int(float64(numPhysicalQubits) * r.Cell)

	dc := gg.NewContext(w, h)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	for p := 0; p < numPhysicalQubits; p++ {
		y := r.y(p)
		dc.DrawLine(0, y, float64(w), y)
		dc.Stroke()
	}

	for _, sg := range result.ScheduledGates {
		if sg.Gate == "SWAP" {
			r.drawSwap(dc, sg)
			continue
		}
		if sg.PhysicalControl < 0 {
			r.drawBoxGate(dc, sg)
			continue
		}
		r.drawTwoQubitGate(dc, sg)
	}

	return dc.Image(), nil
}

func (r Renderer) x(cycle int) float64 { return float64(cycle)*r.Cell + r.Cell/2 }
func (r Renderer) y(row int) float64   { return float64(row)*r.Cell + r.Cell/2 }

func (r Renderer) drawBoxGate(dc *gg.Context, sg scheduler.ScheduledGate) {
	x, y := r.x(sg.Cycle), r.y(sg.PhysicalTarget)
	size := r.Cell * 0.7
	dc.DrawRectangle(x-size/2, y-size/2, size, size)
	dc.SetRGB(1, 1, 1)
	dc.FillPreserve()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.Stroke()
	dc.DrawStringAnchored(sg.Gate, x, y, 0.5, 0.5)
}

func (r Renderer) drawTwoQubitGate(dc *gg.Context, sg scheduler.ScheduledGate) {
	x := r.x(sg.Cycle)
	yCtrl := r.y(sg.PhysicalControl)
	yTgt := r.y(sg.PhysicalTarget)

	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(x, yCtrl, r.Cell*0.12)
	dc.Fill()

	dc.DrawLine(x, yCtrl, x, yTgt)
	dc.Stroke()

	dc.DrawCircle(x, yTgt, r.Cell*0.18)
	dc.Stroke()
	dc.DrawLine(x-r.Cell*0.18, yTgt, x+r.Cell*0.18, yTgt)
	dc.Stroke()
	dc.DrawLine(x, yTgt-r.Cell*0.18, x, yTgt+r.Cell*0.18)
	dc.Stroke()
}

func (r Renderer) drawSwap(dc *gg.Context, sg scheduler.ScheduledGate) {
	x := r.x(sg.Cycle)
	y1 := r.y(sg.PhysicalTarget)
	y2 := r.y(sg.PhysicalControl)

	dc.SetRGB(0, 0, 0)
	r.drawCross(dc, x, y1)
	r.drawCross(dc, x, y2)
	dc.DrawLine(x, y1, x, y2)
	dc.Stroke()
}

func (r Renderer) drawCross(dc *gg.Context, x, y float64) {
	d := r.Cell * 0.18
	dc.DrawLine(x-d, y-d, x+d, y+d)
	dc.Stroke()
	dc.DrawLine(x-d, y+d, x+d, y-d)
	dc.Stroke()
}
