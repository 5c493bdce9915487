// Package motor models a single BLDC motor plus its driver and gear stage.
// It owns the torque/back-EMF constants and the loss models; the thermal
// iteration lives in pkg/analysis.
package motor

import (
	"motorbench/internal/consts"
	"motorbench/pkg/loss"
	"motorbench/pkg/params"
)

type Motor struct {
	P  params.Parameters // normalized copy, inductance in henries
	Kt float64
	Ke float64

	Copper *loss.Copper
	Iron   *loss.Iron
	Driver *loss.Driver
	Gear   *loss.Gear

	// Maximum electrical frequency of the operating envelope, used as the
	// flux estimator's reference point. Derived from parameters, not from
	// the grid, so that row-chunked runs stay bitwise identical.
	maxElectricalFreq float64
}

// New validates p and builds the motor model. The stored parameter copy is
// normalized to base SI units.
func New(p params.Parameters) (*Motor, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := p.Normalized()
	kt := n.Kt()

	m := &Motor{
		P:      n,
		Kt:     kt,
		Ke:     kt,
		Copper: loss.NewCopper(n.WiringType),
		Iron:   loss.NewIron(n.HysteresisCoeff, n.EddyCurrentCoeff, n.SteinmetzAlpha, n.SteinmetzBeta, n.SteinmetzKg, n.PolePairs),
		Driver: loss.NewDriver(n.DriverOnResistance, n.DriverFixedLoss),
		Gear:   loss.NewGear(n.GearRatio, n.GearEfficiency),
	}

	maxMotorRPM := m.TheoreticalMaxRPM() * n.GearRatio
	m.maxElectricalFreq = maxMotorRPM * float64(n.PolePairs) / 60.0
	return m, nil
}

// KeLine is the line-to-line back-EMF constant for the configured wiring.
func (m *Motor) KeLine() float64 {
	if m.P.WiringType == params.WiringStar {
		return sqrt3 * m.Ke
	}
	return m.Ke
}

// TheoreticalMaxRPM is the unloaded shaft speed where line back-EMF meets the
// bus voltage. Falls back to a fixed ceiling if the constants degenerate.
func (m *Motor) TheoreticalMaxRPM() float64 {
	keLine := m.KeLine()
	if keLine <= 0 {
		return consts.FallbackMaxRPM
	}
	motorRPM := m.P.BusVoltage / keLine * consts.RadPerSecToRPM
	return motorRPM / m.P.GearRatio
}

// MotorRPM converts shaft speed through the gear stage.
func (m *Motor) MotorRPM(shaftRPM float64) float64 {
	return shaftRPM * m.P.GearRatio
}

func OmegaFromRPM(rpm float64) float64 {
	return rpm * consts.RPMToRadPerSec
}
