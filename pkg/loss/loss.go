package loss

// State carries the per-grid-cell electrical/mechanical quantities a loss
// model may read. The solver fills it cell by cell while sweeping the
// operating grid.
type State struct {
	Current         float64 // phase current (A)
	PhaseResistance float64 // winding resistance at present temperature (Ohm)
	MotorRPM        float64 // rotor speed before the gear stage
	FluxDensity     float64 // estimated peak flux density (T)
	MotorPower      float64 // motor shaft output power (W)
}

// Model is the shared contract of the four loss mechanisms. Implementations
// are pure and stateless: the same State always yields the same loss in
// Watts.
type Model interface {
	Name() string
	Loss(s State) float64
}
