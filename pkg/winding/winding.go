// Package winding estimates winding properties for a new motor design by
// scaling a known reference winding to a target kv and peak current at a
// fixed current-density budget.
package winding

import (
	"fmt"
	"math"
)

const copperResistivity = 1.68e-8 // Ohm*m

// Profile is a reference motor winding.
type Profile struct {
	Description     string  `json:"description"`
	Kv              float64 `json:"kv"`
	PeakCurrent     float64 `json:"peak_current"`
	PhaseResistance float64 `json:"phase_resistance"` // Ohm at 25 degC
	PhaseInductance float64 `json:"phase_inductance"` // mH
}

// Profiles are the built-in reference windings, spanning small hobby motors
// to large direct-drive machines.
var Profiles = map[string]Profile{
	"min": {
		Description:     "Small drone/hobby motor",
		Kv:              3000.0,
		PeakCurrent:     10.0,
		PhaseResistance: 0.2,
		PhaseInductance: 0.04,
	},
	"small": {
		Description:     "Mid-size drone/robot joint motor",
		Kv:              800.0,
		PeakCurrent:     20.0,
		PhaseResistance: 0.15,
		PhaseInductance: 0.07,
	},
	"medium": {
		Description:     "Default QDD-style robot actuator",
		Kv:              100.0,
		PeakCurrent:     30.0,
		PhaseResistance: 0.1,
		PhaseInductance: 0.1,
	},
	"large": {
		Description:     "Large robot actuator / e-bike hub motor",
		Kv:              50.0,
		PeakCurrent:     60.0,
		PhaseResistance: 0.05,
		PhaseInductance: 0.2,
	},
	"max": {
		Description:     "Very large direct drive motor",
		Kv:              20.0,
		PeakCurrent:     150.0,
		PhaseResistance: 0.02,
		PhaseInductance: 0.3,
	},
}

// Estimate is the scaled winding.
type Estimate struct {
	DiameterMM float64 `json:"diameter_mm"` // wire diameter
	Length     float64 `json:"length"`      // total conductor length (m)
	Resistance float64 `json:"resistance"`  // Ohm at 25 degC
	Inductance float64 `json:"inductance"`  // mH
}

// EstimateWinding scales reference to the target's kv and peak current.
// density is the current-density budget in A/mm^2. Wire cross-section follows
// the peak current at fixed density; conductor length and turn count follow
// the kv ratio; inductance scales with turns squared.
func EstimateWinding(target, reference Profile, density float64) (Estimate, error) {
	if density <= 0 {
		return Estimate{}, fmt.Errorf("current density must be positive, got %g", density)
	}
	if target.Kv <= 0 || reference.Kv <= 0 {
		return Estimate{}, fmt.Errorf("kv must be positive (target %g, reference %g)", target.Kv, reference.Kv)
	}
	if target.PeakCurrent <= 0 || reference.PeakCurrent <= 0 {
		return Estimate{}, fmt.Errorf("peak current must be positive (target %g, reference %g)",
			target.PeakCurrent, reference.PeakCurrent)
	}

	areaTarget := target.PeakCurrent / (density * 1e6)    // m^2
	areaReference := reference.PeakCurrent / (density * 1e6)
	lengthReference := reference.PhaseResistance * areaReference / copperResistivity

	turnRatio := reference.Kv / target.Kv
	length := lengthReference * turnRatio

	return Estimate{
		DiameterMM: 2 * math.Sqrt(areaTarget/math.Pi) * 1000,
		Length:     length,
		Resistance: copperResistivity * length / areaTarget,
		Inductance: reference.PhaseInductance * turnRatio * turnRatio,
	}, nil
}
