package motor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorbench/internal/consts"
	"motorbench/pkg/params"
)

func testParams() params.Parameters {
	p := params.Default()
	p.Kv = 100
	p.PhaseResistance = 0.1
	p.PhaseInductance = 0.1 // mH
	p.PolePairs = 7
	p.WiringType = params.WiringStar
	p.ContinuousCurrent = 15
	p.PeakCurrent = 30
	p.ThermalResistance = 2
	p.AmbientTemperature = 25
	p.BusVoltage = 48
	p.GearRatio = 9
	return p
}

func TestNewRejectsInvalid(t *testing.T) {
	p := testParams()
	p.GearEfficiency = 2.0
	_, err := New(p)
	assert.Error(t, err)
}

func TestConstants(t *testing.T) {
	m, err := New(testParams())
	require.NoError(t, err)
	assert.InDelta(t, 0.09549, m.Kt, 1e-12)
	assert.Equal(t, m.Kt, m.Ke)
	assert.InDelta(t, math.Sqrt(3)*m.Ke, m.KeLine(), 1e-12)
}

func TestTheoreticalMaxRPM(t *testing.T) {
	m, err := New(testParams())
	require.NoError(t, err)

	// Unloaded speed where line back-EMF meets the bus, gear-referred.
	keLine := math.Sqrt(3) * 9.549 / 100
	want := 48.0 / keLine * consts.RadPerSecToRPM / 9.0
	assert.InDelta(t, want, m.TheoreticalMaxRPM(), 1e-9)
}

func TestLineVoltageStar(t *testing.T) {
	m, err := New(testParams())
	require.NoError(t, err)

	omega := OmegaFromRPM(3000)
	current, phaseR := 10.0, 0.1

	backEMF := math.Sqrt(3) * m.Ke * omega
	rDrop := current * phaseR * 2
	lDrop := current * omega * 7 * 100e-6 * 2
	want := math.Sqrt((backEMF+rDrop)*(backEMF+rDrop) + lDrop*lDrop)

	assert.InDelta(t, want, m.LineVoltage(omega, current, phaseR), 1e-12)
}

func TestLineVoltageDelta(t *testing.T) {
	p := testParams()
	p.WiringType = params.WiringDelta
	m, err := New(p)
	require.NoError(t, err)

	omega := OmegaFromRPM(3000)
	current, phaseR := 10.0, 0.1

	backEMF := m.Ke * omega
	rDrop := current * phaseR * 2 / 3
	lDrop := current * omega * 7 * 100e-6 * 2 / 3
	want := math.Sqrt((backEMF+rDrop)*(backEMF+rDrop) + lDrop*lDrop)

	assert.InDelta(t, want, m.LineVoltage(omega, current, phaseR), 1e-12)
}

func TestLineVoltageZeroOmega(t *testing.T) {
	m, err := New(testParams())
	require.NoError(t, err)
	// Stalled rotor: pure resistive drop.
	assert.InDelta(t, 10*0.1*2, m.LineVoltage(0, 10, 0.1), 1e-12)
}

func TestFluxDensityDecreasesWithSpeed(t *testing.T) {
	m, err := New(testParams())
	require.NoError(t, err)

	slow := m.FluxDensity(500, 48, 25)
	fast := m.FluxDensity(5000, 48, 25)
	assert.Greater(t, slow, fast)
	assert.Greater(t, fast, 0.0)
}

func TestFluxDensityVoltageLimit(t *testing.T) {
	m, err := New(testParams())
	require.NoError(t, err)

	// Same speed, smaller bus: the voltage scale must shrink the estimate.
	rpm := m.TheoreticalMaxRPM() * 9 // motor-side rpm near the envelope edge
	full := m.FluxDensity(rpm, 48, 25)
	starved := m.FluxDensity(rpm, 12, 25)
	assert.Less(t, starved, full)
	assert.InDelta(t, full/4, starved, full*1e-9, "scale is linear in available voltage below the limit")
}

func TestFluxDensityTemperatureDerateFloor(t *testing.T) {
	m, err := New(testParams())
	require.NoError(t, err)

	cold := m.FluxDensity(1000, 48, 25)
	hot := m.FluxDensity(1000, 48, 5000) // far beyond the linear range
	assert.InDelta(t, cold*0.5, hot, 1e-12, "derate floors at 0.5")
}
