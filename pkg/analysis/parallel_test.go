package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorbench/pkg/grid"
	"motorbench/pkg/motor"
)

func TestParallelMatchesSerialExactly(t *testing.T) {
	p := testParams()
	m, err := motor.New(p)
	require.NoError(t, err)

	current, rpm := OperatingGrid(m, 17, 1.1) // odd size: uneven row blocks
	settings := DefaultSettings()

	serial, err := NewThermal(m, settings).Run(current, rpm)
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 3, 5, 16} {
		parallel, err := RunParallel(p, current, rpm, settings, workers)
		require.NoError(t, err)

		serialFields := serial.Fields()
		for name, g := range parallel.Fields() {
			assert.Equal(t, serialFields[name].Data, g.Data,
				"workers=%d field %s must be bitwise identical to serial", workers, name)
		}
	}
}

func TestParallelRejectsInvalidParams(t *testing.T) {
	p := testParams()
	p.GearEfficiency = 0

	current := grid.Full(4, 4, 1)
	rpm := grid.Full(4, 4, 100)
	_, err := RunParallel(p, current, rpm, DefaultSettings(), 2)
	assert.Error(t, err)
}
