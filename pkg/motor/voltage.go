package motor

import (
	"math"

	"motorbench/internal/consts"
	"motorbench/pkg/params"
)

var sqrt3 = math.Sqrt(3)

const referenceTemp = consts.ReferenceTemp

// LineVoltage is the required terminal line-to-line voltage: vector sum of
// back-EMF plus resistive drop against the inductive drop,
// V = sqrt((V_bemf + V_R)^2 + V_L^2). The near-orthogonality of the resistive
// and inductive drops is a deliberate simplification, kept as-is.
//
// Star wiring sees two phases in series per line (2R, 2L) and sqrt(3) on the
// back-EMF; delta uses the 2/3 parallel-path correction.
func (m *Motor) LineVoltage(motorOmega, current, phaseResistance float64) float64 {
	electricalOmega := motorOmega * float64(m.P.PolePairs)

	var backEMF, rDrop, lDrop float64
	if m.P.WiringType == params.WiringStar {
		backEMF = sqrt3 * m.Ke * motorOmega
		rDrop = current * phaseResistance * 2
		lDrop = current * electricalOmega * m.P.PhaseInductance * 2
	} else {
		backEMF = m.Ke * motorOmega
		rDrop = current * phaseResistance * 2 / 3
		lDrop = current * electricalOmega * m.P.PhaseInductance * 2 / 3
	}

	return math.Sqrt((backEMF+rDrop)*(backEMF+rDrop) + lDrop*lDrop)
}
