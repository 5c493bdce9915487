package loss

import "math"

// Iron is the Steinmetz-type core loss. With Kg set it uses the generalized
// single-term form kg·f^β·|B|^α; otherwise separate hysteresis and eddy terms
// kh·f·|B|^α + ke·f²·B². Loss is exactly zero at zero flux density.
type Iron struct {
	Kh        float64
	Ke        float64
	Alpha     float64
	Beta      float64
	Kg        float64 // 0 disables the generalized form
	PolePairs int
}

func NewIron(kh, ke, alpha, beta, kg float64, polePairs int) *Iron {
	return &Iron{Kh: kh, Ke: ke, Alpha: alpha, Beta: beta, Kg: kg, PolePairs: polePairs}
}

func (m *Iron) Name() string { return "iron" }

func (m *Iron) Loss(s State) float64 {
	b := math.Abs(s.FluxDensity)
	if b == 0 {
		return 0
	}
	f := math.Max(s.MotorRPM*float64(m.PolePairs)/60.0, 1e-6)
	if m.Kg > 0 {
		return m.Kg * math.Pow(f, m.Beta) * math.Pow(b, m.Alpha)
	}
	hysteresis := m.Kh * f * math.Pow(b, m.Alpha)
	eddy := m.Ke * f * f * b * b
	return hysteresis + eddy
}
