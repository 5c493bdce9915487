package loss

// Driver is the inverter loss: switch conduction I²·Ron plus a fixed
// switching/quiescent term independent of current.
type Driver struct {
	OnResistance float64
	FixedLoss    float64
}

func NewDriver(onResistance, fixedLoss float64) *Driver {
	return &Driver{OnResistance: onResistance, FixedLoss: fixedLoss}
}

func (d *Driver) Name() string { return "driver" }

func (d *Driver) Loss(s State) float64 {
	return s.Current*s.Current*d.OnResistance + d.FixedLoss
}
