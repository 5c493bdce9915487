package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorbench/pkg/motor"
)

func analyzeDefault(t *testing.T) (*Result, float64, float64) {
	t.Helper()
	p := testParams()
	m, err := motor.New(p)
	require.NoError(t, err)
	current, rpm := OperatingGrid(m, 20, 1.1)
	res, err := NewThermal(m, DefaultSettings()).Run(current, rpm)
	require.NoError(t, err)
	return res, p.BusVoltage, p.ContinuousCurrent
}

func TestSummarizeFindsFeasiblePoints(t *testing.T) {
	res, bus, cont := analyzeDefault(t)
	s := Summarize(res, bus, cont)

	require.Greater(t, s.FeasibleCount, 0)
	require.NotNil(t, s.PeakEfficiency)
	require.NotNil(t, s.MaxPower)
	require.NotNil(t, s.MaxTorque)
	require.NotNil(t, s.MaxRPM)
	require.NotNil(t, s.MaxCurrent)

	assert.LessOrEqual(t, res.Voltage.At(s.PeakEfficiency.Row, s.PeakEfficiency.Col), bus,
		"picked point must be feasible")
	for i, eff := range res.Efficiency.Data {
		if res.Voltage.Data[i] <= bus {
			assert.GreaterOrEqual(t, s.PeakEfficiency.Efficiency, eff)
		}
	}
}

func TestSummarizeExcludesInfeasible(t *testing.T) {
	res, bus, cont := analyzeDefault(t)

	// The RPM sweep deliberately overshoots the voltage limit (safety
	// margin), so the top rows at high current must be masked out.
	infeasible := 0
	for _, v := range res.Voltage.Data {
		if v > bus {
			infeasible++
		}
	}
	require.Greater(t, infeasible, 0, "grid must contain an infeasible region")

	s := Summarize(res, bus, cont)
	assert.Equal(t, len(res.Voltage.Data)-infeasible, s.FeasibleCount)
	assert.Less(t, *s.MaxRPM, res.RPM.At(res.RPM.Rows-1, 0),
		"envelope max RPM sits below the grid's top row at full voltage margin")
}

func TestSummarizeRatedColumn(t *testing.T) {
	res, bus, cont := analyzeDefault(t)
	s := Summarize(res, bus, cont)

	require.NotNil(t, s.Rated)
	assert.InDelta(t, cont, s.Rated.Current, res.Current.At(0, 1)-res.Current.At(0, 0),
		"rated point sits in the column nearest the continuous rating")
}

func TestSummarizeNothingFeasible(t *testing.T) {
	res, _, cont := analyzeDefault(t)

	s := Summarize(res, 1e-9, cont) // bus far below any required voltage
	assert.Zero(t, s.FeasibleCount)
	assert.Nil(t, s.PeakEfficiency)
	assert.Nil(t, s.MaxPower)
	assert.Nil(t, s.MaxTorque)
	assert.Nil(t, s.Rated)
	assert.Nil(t, s.MaxRPM)
	assert.Nil(t, s.MaxCurrent)
}
