package loss

// Gear is the transmission loss of the reduction stage. Apply returns both
// the loss and the power left after the gear. When the configured efficiency
// is >= 1 or there is no forward power flow, loss is forced to zero and the
// input power passes through unchanged.
type Gear struct {
	Ratio      float64
	Efficiency float64
}

func NewGear(ratio, efficiency float64) *Gear {
	return &Gear{Ratio: ratio, Efficiency: efficiency}
}

func (g *Gear) Name() string { return "gear" }

func (g *Gear) Apply(motorPower float64) (lossW, outputPower float64) {
	if g.Efficiency >= 1.0 || motorPower <= 0 {
		return 0, motorPower
	}
	outputPower = motorPower * g.Efficiency
	return motorPower - outputPower, outputPower
}

func (g *Gear) Loss(s State) float64 {
	lossW, _ := g.Apply(s.MotorPower)
	return lossW
}
