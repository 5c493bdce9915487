package params

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"motorbench/internal/consts"
)

var validate = validator.New()

// Parameters describes one motor/winding/drivetrain combination. A value is
// validated once via Validate and never mutated during an analysis run.
//
// PhaseResistance is referenced at 25 degC. PhaseInductance is configured in
// millihenries; Normalized converts it to henries for the solver.
type Parameters struct {
	// Electrical
	Kv               float64 `json:"kv" validate:"gt=0"`
	PolePairs        int     `json:"pole_pairs" validate:"gte=1"`
	HysteresisCoeff  float64 `json:"hysteresis_coeff" validate:"gte=0"`
	EddyCurrentCoeff float64 `json:"eddy_current_coeff" validate:"gte=0"`

	// Optional Steinmetz overrides. Zero means "use default" (alpha, beta)
	// or "disabled" (kg, which switches the iron model to the generalized
	// single-term form when set).
	SteinmetzAlpha float64 `json:"steinmetz_alpha,omitempty" validate:"gte=0"`
	SteinmetzBeta  float64 `json:"steinmetz_beta,omitempty" validate:"gte=0"`
	SteinmetzKg    float64 `json:"steinmetz_kg,omitempty" validate:"gte=0"`

	// Optional flux-estimator coefficients. Zero means "use default".
	FluxCoeff     float64 `json:"bmax_coeff,omitempty" validate:"gte=0"`
	FluxTempCoeff float64 `json:"flux_temp_coeff,omitempty" validate:"gte=0"`

	// Winding
	PhaseResistance   float64 `json:"phase_resistance" validate:"gte=0"`
	PhaseInductance   float64 `json:"phase_inductance" validate:"gte=0"`
	WiringType        string  `json:"wiring_type" validate:"oneof=star delta"`
	ContinuousCurrent float64 `json:"continuous_current" validate:"gte=0"`
	PeakCurrent       float64 `json:"peak_current" validate:"gte=0"`

	// Thermal
	AmbientTemperature float64 `json:"ambient_temperature"`
	ThermalResistance  float64 `json:"thermal_resistance" validate:"gte=0"`

	// Driver
	DriverOnResistance float64 `json:"driver_on_resistance" validate:"gte=0"`
	DriverFixedLoss    float64 `json:"driver_fixed_loss" validate:"gte=0"`

	// Gear
	GearRatio      float64 `json:"gear_ratio" validate:"gt=0"`
	GearEfficiency float64 `json:"gear_efficiency" validate:"gt=0,lte=1"`

	// Simulation
	BusVoltage float64 `json:"bus_voltage" validate:"gt=0"`
}

// Default returns the baseline QDD actuator parameter set.
func Default() Parameters {
	return Parameters{
		Kv:                 100.0,
		PolePairs:          7,
		HysteresisCoeff:    0.001,
		EddyCurrentCoeff:   1e-7,
		PhaseResistance:    0.1,
		PhaseInductance:    0.1,
		WiringType:         WiringStar,
		ContinuousCurrent:  15.0,
		PeakCurrent:        30.0,
		AmbientTemperature: 25.0,
		ThermalResistance:  2.0,
		DriverOnResistance: 0.005,
		DriverFixedLoss:    2.0,
		GearRatio:          9.0,
		GearEfficiency:     0.95,
		BusVoltage:         48.0,
	}
}

const (
	WiringStar  = "star"
	WiringDelta = "delta"
)

// Defaults applied by Normalized when the optional coefficients are unset.
const (
	DefaultSteinmetzAlpha = 2.0
	DefaultSteinmetzBeta  = 1.5
	DefaultFluxCoeff      = 0.3
	DefaultFluxTempCoeff  = 0.0012 // magnet derate per degC above reference
)

// ValidationError lists every constraint a parameter set violates.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameters: %s", strings.Join(e.Violations, "; "))
}

// Validate checks the full parameter set and reports all violations at once,
// never just the first.
func (p *Parameters) Validate() error {
	var violations []string

	if err := validate.Struct(p); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range verrs {
			violations = append(violations,
				fmt.Sprintf("%s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
		}
	}
	if p.PeakCurrent < p.ContinuousCurrent {
		violations = append(violations,
			fmt.Sprintf("PeakCurrent %.3g must be >= ContinuousCurrent %.3g",
				p.PeakCurrent, p.ContinuousCurrent))
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// Normalized returns the solver's private copy: inductance in henries and
// every optional coefficient resolved to its default.
func (p Parameters) Normalized() Parameters {
	out := p
	out.PhaseInductance = p.PhaseInductance * 1e-3
	if out.SteinmetzAlpha == 0 {
		out.SteinmetzAlpha = DefaultSteinmetzAlpha
	}
	if out.SteinmetzBeta == 0 {
		out.SteinmetzBeta = DefaultSteinmetzBeta
	}
	if out.FluxCoeff == 0 {
		out.FluxCoeff = DefaultFluxCoeff
	}
	if out.FluxTempCoeff == 0 {
		out.FluxTempCoeff = DefaultFluxTempCoeff
	}
	return out
}

// Kt returns the torque constant in Nm/A; numerically equal to the back-EMF
// constant in V·s/rad.
func (p Parameters) Kt() float64 { return consts.KtFactor / p.Kv }
