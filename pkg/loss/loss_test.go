package loss

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"motorbench/pkg/params"
)

func TestCopperStar(t *testing.T) {
	m := NewCopper(params.WiringStar)
	got := m.Loss(State{Current: 10, PhaseResistance: 0.1})
	assert.Equal(t, 30.0, got, "star wiring: 3*I^2*R exactly")
}

func TestCopperDelta(t *testing.T) {
	m := NewCopper(params.WiringDelta)
	got := m.Loss(State{Current: 10, PhaseResistance: 0.1})
	assert.Equal(t, 10.0, got)
}

func TestIronPositiveAtFieldAndSpeed(t *testing.T) {
	m := NewIron(0.001, 1e-7, 2.0, 1.5, 0, 7)
	got := m.Loss(State{MotorRPM: 1000, FluxDensity: 0.3})
	assert.Greater(t, got, 0.0)
}

func TestIronZeroAtZeroFlux(t *testing.T) {
	m := NewIron(0.001, 1e-7, 2.0, 1.5, 0, 7)
	for _, rpm := range []float64{0, 100, 1e5} {
		assert.Zero(t, m.Loss(State{MotorRPM: rpm, FluxDensity: 0}),
			"iron loss must be exactly zero at B=0, rpm=%g", rpm)
	}

	generalized := NewIron(0.001, 1e-7, 2.0, 1.5, 0.01, 7)
	assert.Zero(t, generalized.Loss(State{MotorRPM: 1000, FluxDensity: 0}))
}

func TestIronGeneralizedForm(t *testing.T) {
	// kg set: single-term kg*f^beta*B^alpha, hysteresis/eddy coefficients
	// ignored.
	m := NewIron(123, 456, 2.0, 1.0, 0.01, 1)
	got := m.Loss(State{MotorRPM: 600, FluxDensity: 0.5}) // f = 10 Hz
	assert.InDelta(t, 0.01*10*0.25, got, 1e-12)
}

func TestIronHysteresisEddySplit(t *testing.T) {
	m := NewIron(0.002, 1e-6, 2.0, 1.5, 0, 1)
	got := m.Loss(State{MotorRPM: 600, FluxDensity: 0.5}) // f = 10 Hz
	want := 0.002*10*0.25 + 1e-6*100*0.25
	assert.InDelta(t, want, got, 1e-15)
}

func TestDriver(t *testing.T) {
	m := NewDriver(0.005, 2.0)
	assert.InDelta(t, 100*0.005+2.0, m.Loss(State{Current: 10}), 1e-12)
	assert.Equal(t, 2.0, m.Loss(State{Current: 0}), "fixed loss independent of current")
}

func TestGearApply(t *testing.T) {
	g := NewGear(9, 0.95)
	lossW, out := g.Apply(100)
	assert.InDelta(t, 5.0, lossW, 1e-12)
	assert.InDelta(t, 95.0, out, 1e-12)
}

func TestGearZeroLossGuards(t *testing.T) {
	// Ideal (or misconfigured) efficiency: loss forced to zero, power passes
	// through.
	ideal := NewGear(9, 1.0)
	lossW, out := ideal.Apply(100)
	assert.Zero(t, lossW)
	assert.Equal(t, 100.0, out)

	// No forward power flow.
	g := NewGear(9, 0.95)
	for _, p := range []float64{0, -10} {
		lossW, out := g.Apply(p)
		assert.Zero(t, lossW, "P=%g", p)
		assert.Equal(t, p, out, "P=%g passes through", p)
	}
}
