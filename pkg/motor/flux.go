package motor

import "math"

// FluxDensity estimates the peak flux density at a given rotor speed and
// winding temperature. Heuristic, not field-solver physics: the base term
// kB/sqrt(f/f_max) falls with electrical frequency (impedance-limited field),
// scaled down when back-EMF would exceed the available bus voltage and by a
// linear magnet derate with temperature, floored at 0.5. It exists only to
// feed the iron-loss model.
func (m *Motor) FluxDensity(motorRPM, busVoltage, temp float64) float64 {
	f := math.Max(motorRPM*float64(m.P.PolePairs)/60.0, 1e-3)
	base := m.P.FluxCoeff / math.Sqrt(f/m.maxElectricalFreq)

	emf := m.KeLine() * OmegaFromRPM(motorRPM)
	scale := math.Min(1.0, busVoltage/math.Max(emf, 1e-6))

	derate := math.Max(0.5, 1.0-m.P.FluxTempCoeff*(temp-referenceTemp))

	return base * scale * derate
}
