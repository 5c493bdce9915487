package loss

import "motorbench/pkg/params"

// Copper is the resistive winding loss. Star wiring conducts through two
// phases in series per line pair, giving 3·I²·R total; delta reduces to I²·R.
type Copper struct {
	factor float64
}

func NewCopper(wiringType string) *Copper {
	factor := 1.0
	if wiringType == params.WiringStar {
		factor = 3.0
	}
	return &Copper{factor: factor}
}

func (c *Copper) Name() string { return "copper" }

func (c *Copper) Loss(s State) float64 {
	return c.factor * s.Current * s.Current * s.PhaseResistance
}
