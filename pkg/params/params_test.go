package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	assert.NoError(t, p.Validate())
}

func TestValidateCollectsAllViolations(t *testing.T) {
	p := Default()
	p.Kv = 0                 // gt=0
	p.GearEfficiency = 1.5   // lte=1
	p.PeakCurrent = 5        // < continuous (15)
	p.PhaseResistance = -0.1 // gte=0

	err := p.Validate()
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok, "want *ValidationError, got %T", err)
	assert.Len(t, verr.Violations, 4, "every violated constraint is reported: %v", verr.Violations)
}

func TestValidateGearEfficiencyRange(t *testing.T) {
	p := Default()
	p.GearEfficiency = 0
	assert.Error(t, p.Validate(), "gear efficiency must be strictly positive")

	p.GearEfficiency = 1.0
	assert.NoError(t, p.Validate(), "unity efficiency is allowed")
}

func TestNormalized(t *testing.T) {
	p := Default()
	p.PhaseInductance = 0.1 // mH

	n := p.Normalized()
	assert.InDelta(t, 100e-6, n.PhaseInductance, 1e-15, "0.1 mH is 100 uH")
	assert.Equal(t, DefaultSteinmetzAlpha, n.SteinmetzAlpha)
	assert.Equal(t, DefaultFluxCoeff, n.FluxCoeff)

	// Explicit values survive normalization.
	p.SteinmetzAlpha = 1.6
	assert.Equal(t, 1.6, p.Normalized().SteinmetzAlpha)
}

func TestKt(t *testing.T) {
	p := Default()
	p.Kv = 100
	assert.InDelta(t, 0.09549, p.Kt(), 1e-12)
}

func TestParseFlatPreset(t *testing.T) {
	doc := `{
		"kv": 120,
		"phase_resistance": 0.2,
		"phase_inductance": 0.05,
		"pole_pairs": 14,
		"wiring_type": "delta",
		"continuous_current": 10,
		"peak_current": 25,
		"bus_voltage": 24
	}`
	p, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 120.0, p.Kv)
	assert.Equal(t, 14, p.PolePairs)
	assert.Equal(t, WiringDelta, p.WiringType)
	assert.Equal(t, 24.0, p.BusVoltage)
	assert.Equal(t, 9.0, p.GearRatio, "missing fields keep defaults")
}

func TestParseGroupedPreset(t *testing.T) {
	doc := `{
		"electrical": {"kv": 80, "pole_pairs": 21},
		"winding": {"phase_resistance": 0.05, "wiring_type": "star", "continuous_current": 20, "peak_current": 60},
		"thermal": {"ambient_temperature": 40, "thermal_resistance": 1.5},
		"driver": {"on_resistance": 0.002, "fixed_loss": 1.0},
		"gear": {"gear_ratio": 6, "gear_efficiency": 0.9},
		"simulation": {"bus_voltage": 36}
	}`
	p, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 80.0, p.Kv)
	assert.Equal(t, 21, p.PolePairs)
	assert.Equal(t, 40.0, p.AmbientTemperature)
	assert.Equal(t, 0.002, p.DriverOnResistance)
	assert.Equal(t, 6.0, p.GearRatio)
	assert.Equal(t, 36.0, p.BusVoltage)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte(`{"kv": -5}`))
	require.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	assert.Error(t, err)
}
