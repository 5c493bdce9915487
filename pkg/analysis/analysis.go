// Package analysis runs the thermally-coupled performance solver over a 2D
// (current, shaft RPM) operating grid and reduces the result to headline
// operating points.
package analysis

import (
	"motorbench/internal/consts"
	"motorbench/pkg/grid"
	"motorbench/pkg/motor"
)

// Settings controls the thermal fixed-point iteration.
type Settings struct {
	MaxIterations int
	Relaxation    float64 // under-relaxation factor, 0 < relax <= 1
	Threshold     float64 // convergence threshold on temperature change (degC)
}

func DefaultSettings() Settings {
	return Settings{
		MaxIterations: consts.MaxIterations,
		Relaxation:    consts.RelaxationFactor,
		Threshold:     consts.ConvergenceThreshold,
	}
}

// Result holds the per-grid-point outputs of one analysis run. All grids
// share the operating grid's shape. Immutable once produced.
type Result struct {
	OutputPower *grid.Grid `json:"output_power"`
	TotalLoss   *grid.Grid `json:"total_loss"`
	Efficiency  *grid.Grid `json:"efficiency"`
	Torque      *grid.Grid `json:"torque"` // shaft-referred (Nm)
	Voltage     *grid.Grid `json:"voltage"`
	Current     *grid.Grid `json:"current"`
	RPM         *grid.Grid `json:"rpm"`
	FluxDensity *grid.Grid `json:"flux_density"`
	MotorTemp   *grid.Grid `json:"motor_temp"`
}

func newResult(rows, cols int) *Result {
	return &Result{
		OutputPower: grid.New(rows, cols),
		TotalLoss:   grid.New(rows, cols),
		Efficiency:  grid.New(rows, cols),
		Torque:      grid.New(rows, cols),
		Voltage:     grid.New(rows, cols),
		Current:     grid.New(rows, cols),
		RPM:         grid.New(rows, cols),
		FluxDensity: grid.New(rows, cols),
		MotorTemp:   grid.New(rows, cols),
	}
}

// FieldNames lists the result fields in a stable order.
var FieldNames = []string{
	"output_power", "total_loss", "efficiency", "torque", "voltage",
	"current", "rpm", "flux_density", "motor_temp",
}

// Fields exposes the result grids by name, for export stages.
func (r *Result) Fields() map[string]*grid.Grid {
	return map[string]*grid.Grid{
		"output_power": r.OutputPower,
		"total_loss":   r.TotalLoss,
		"efficiency":   r.Efficiency,
		"torque":       r.Torque,
		"voltage":      r.Voltage,
		"current":      r.Current,
		"rpm":          r.RPM,
		"flux_density": r.FluxDensity,
		"motor_temp":   r.MotorTemp,
	}
}

// OperatingGrid builds the Cartesian (current, shaft RPM) grid for m: the
// current sweep spans [0.1 A, peak current] along columns and the RPM sweep
// spans [0.1, theoretical max RPM x safety margin] along rows.
func OperatingGrid(m *motor.Motor, points int, safetyMargin float64) (current, shaftRPM *grid.Grid) {
	currents := grid.Linspace(0.1, m.P.PeakCurrent, points)
	rpms := grid.Linspace(0.1, m.TheoreticalMaxRPM()*safetyMargin, points)
	return grid.Meshgrid(currents, rpms)
}
