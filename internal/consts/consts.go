package consts

import "math"

// Physical constants.
const (
	CopperTempCoeff = 0.00393 // Copper resistance temperature coefficient (1/degC)
	ReferenceTemp   = 25.0    // Winding resistance reference temperature (degC)
	KtFactor        = 9.549   // Kt = Ke = 9.549/kv (Nm/A from RPM/V rating)

	RPMToRadPerSec = 2 * math.Pi / 60
	RadPerSecToRPM = 60 / (2 * math.Pi)
)

// Solver defaults.
const (
	MaxIterations        = 50
	RelaxationFactor     = 0.4
	ConvergenceThreshold = 0.05 // degC
	FallbackMaxRPM       = 5000.0
)
