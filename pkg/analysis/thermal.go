package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"motorbench/internal/consts"
	"motorbench/pkg/grid"
	"motorbench/pkg/loss"
	"motorbench/pkg/motor"
)

// Thermal is the coupled thermal-electrical solver. For every grid point it
// iterates losses -> temperature -> winding resistance to a fixed point, then
// recomputes the final outputs once from the converged state.
type Thermal struct {
	motor    *motor.Motor
	settings Settings
}

func NewThermal(m *motor.Motor, s Settings) *Thermal {
	return &Thermal{motor: m, settings: s}
}

// solverState is the transient per-cell state of one Run call.
type solverState struct {
	motorRPM   []float64
	motorOmega []float64
	shaftOmega []float64
	phaseR     []float64
	temp       []float64
	prevTemp   []float64
	diff       []float64
}

// safeDiv substitutes zero wherever the denominator is not strictly
// positive. Stalled-rotor cells (omega = 0) and reverse power flow must never
// produce NaN or Inf.
func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// Run analyzes the whole operating grid in one call. current and shaftRPM
// must have the same shape; the returned grids share it. Non-convergence
// after the iteration budget is not an error: the best-effort state is
// returned.
func (t *Thermal) Run(current, shaftRPM *grid.Grid) (*Result, error) {
	if !current.SameShape(shaftRPM) {
		return nil, fmt.Errorf("operating grid shape mismatch: %dx%d vs %dx%d",
			current.Rows, current.Cols, shaftRPM.Rows, shaftRPM.Cols)
	}

	m := t.motor
	p := m.P
	n := len(current.Data)

	st := solverState{
		motorRPM:   make([]float64, n),
		motorOmega: make([]float64, n),
		shaftOmega: make([]float64, n),
		phaseR:     make([]float64, n),
		temp:       make([]float64, n),
		prevTemp:   make([]float64, n),
		diff:       make([]float64, n),
	}
	for i, rpm := range shaftRPM.Data {
		st.motorRPM[i] = m.MotorRPM(rpm)
		st.motorOmega[i] = motor.OmegaFromRPM(st.motorRPM[i])
		st.shaftOmega[i] = motor.OmegaFromRPM(rpm)
		st.phaseR[i] = p.PhaseResistance
		st.temp[i] = p.AmbientTemperature
	}

	for iter := 0; iter < t.settings.MaxIterations; iter++ {
		copy(st.prevTemp, st.temp)

		for i := 0; i < n; i++ {
			totalLoss, _, _ := t.cellLosses(&st, current.Data[i], i)

			newTemp := p.AmbientTemperature + totalLoss*p.ThermalResistance
			st.temp[i] = st.prevTemp[i] + t.settings.Relaxation*(newTemp-st.prevTemp[i])
			st.phaseR[i] = p.PhaseResistance *
				(1 + consts.CopperTempCoeff*(st.temp[i]-consts.ReferenceTemp))
			st.diff[i] = math.Abs(st.temp[i] - st.prevTemp[i])
		}

		if floats.Max(st.diff) < t.settings.Threshold {
			break
		}
	}

	// Settle pass: outputs come from the converged state, not from the last
	// iteration's pre-update losses.
	out := newResult(current.Rows, current.Cols)
	for i := 0; i < n; i++ {
		totalLoss, outputPower, flux := t.cellLosses(&st, current.Data[i], i)

		out.OutputPower.Data[i] = outputPower
		out.TotalLoss.Data[i] = totalLoss
		out.Torque.Data[i] = safeDiv(outputPower, st.shaftOmega[i])
		out.Voltage.Data[i] = m.LineVoltage(st.motorOmega[i], current.Data[i], st.phaseR[i])
		out.Efficiency.Data[i] = safeDiv(outputPower, outputPower+totalLoss)
		out.Current.Data[i] = current.Data[i]
		out.RPM.Data[i] = shaftRPM.Data[i]
		out.FluxDensity.Data[i] = flux
		out.MotorTemp.Data[i] = st.temp[i]
	}
	return out, nil
}

// cellLosses evaluates the loss chain of one grid cell at the present solver
// state: flux estimate, copper/iron/driver losses, iron-loss torque drag
// (clamped so it cannot reverse torque), then the gear stage.
func (t *Thermal) cellLosses(st *solverState, current float64, i int) (totalLoss, outputPower, flux float64) {
	m := t.motor

	flux = m.FluxDensity(st.motorRPM[i], m.P.BusVoltage, st.temp[i])
	ls := loss.State{
		Current:         current,
		PhaseResistance: st.phaseR[i],
		MotorRPM:        st.motorRPM[i],
		FluxDensity:     flux,
	}

	copper := m.Copper.Loss(ls)
	iron := m.Iron.Loss(ls)
	driver := m.Driver.Loss(ls)

	grossTorque := m.Kt * current
	motorTorque := math.Max(0, grossTorque-safeDiv(iron, st.motorOmega[i]))
	motorPower := motorTorque * st.motorOmega[i]

	gearLoss, outputPower := m.Gear.Apply(motorPower)
	totalLoss = copper + iron + driver + gearLoss
	return totalLoss, outputPower, flux
}
