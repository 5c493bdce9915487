// Package plotting renders a result grid as a 2D efficiency map. Rendering is
// a consumer of the result grid, not part of the solver contract.
package plotting

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"motorbench/pkg/analysis"
)

// efficiencyGrid adapts a Result to plotter.GridXYZ. Infeasible cells, those
// whose required voltage exceeds the bus voltage, map to NaN and stay blank.
type efficiencyGrid struct {
	r          *analysis.Result
	busVoltage float64
}

func (g efficiencyGrid) Dims() (c, r int) { return g.r.Efficiency.Cols, g.r.Efficiency.Rows }
func (g efficiencyGrid) X(c int) float64  { return g.r.Current.At(0, c) }
func (g efficiencyGrid) Y(r int) float64  { return g.r.RPM.At(r, 0) }

func (g efficiencyGrid) Z(c, r int) float64 {
	if g.r.Voltage.At(r, c) > g.busVoltage {
		return math.NaN()
	}
	return g.r.Efficiency.At(r, c)
}

// SaveEfficiencyMap writes a heat map of efficiency over the (current, RPM)
// grid. width and height are in inches; the file format follows the path
// extension (png, pdf, svg).
func SaveEfficiencyMap(path string, r *analysis.Result, busVoltage, width, height float64) error {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(1)

	heat := plotter.NewHeatMap(efficiencyGrid{r: r, busVoltage: busVoltage}, cm.Palette(255))
	heat.Min, heat.Max = 0, 1

	p := plot.New()
	p.Title.Text = "Efficiency map"
	p.X.Label.Text = "Current (A)"
	p.Y.Label.Text = "Shaft speed (RPM)"
	p.Add(heat)

	if err := p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot %s: %w", path, err)
	}
	return nil
}
