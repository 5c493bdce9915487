package params

import (
	"encoding/json"
	"fmt"
	"os"
)

// groupedDocument is the nested-by-group preset schema. Older presets use the
// flat schema (Parameters' own JSON tags); Parse accepts both.
type groupedDocument struct {
	Electrical struct {
		Kv               *float64 `json:"kv"`
		PolePairs        *int     `json:"pole_pairs"`
		HysteresisCoeff  *float64 `json:"hysteresis_coeff"`
		EddyCurrentCoeff *float64 `json:"eddy_current_coeff"`
		SteinmetzAlpha   *float64 `json:"steinmetz_alpha"`
		SteinmetzBeta    *float64 `json:"steinmetz_beta"`
		SteinmetzKg      *float64 `json:"steinmetz_kg"`
		FluxCoeff        *float64 `json:"bmax_coeff"`
		FluxTempCoeff    *float64 `json:"flux_temp_coeff"`
	} `json:"electrical"`
	Winding struct {
		PhaseResistance   *float64 `json:"phase_resistance"`
		PhaseInductance   *float64 `json:"phase_inductance"`
		WiringType        *string  `json:"wiring_type"`
		ContinuousCurrent *float64 `json:"continuous_current"`
		PeakCurrent       *float64 `json:"peak_current"`
	} `json:"winding"`
	Thermal struct {
		AmbientTemperature *float64 `json:"ambient_temperature"`
		ThermalResistance  *float64 `json:"thermal_resistance"`
	} `json:"thermal"`
	Driver struct {
		OnResistance *float64 `json:"on_resistance"`
		FixedLoss    *float64 `json:"fixed_loss"`
	} `json:"driver"`
	Gear struct {
		Ratio      *float64 `json:"gear_ratio"`
		Efficiency *float64 `json:"gear_efficiency"`
	} `json:"gear"`
	Simulation struct {
		BusVoltage *float64 `json:"bus_voltage"`
	} `json:"simulation"`
}

func setF(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// Parse decodes a preset document into a validated parameter set. Missing
// fields keep the Default values; both the flat and the grouped schema are
// recognized.
func Parse(data []byte) (Parameters, error) {
	p := Default()

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return p, fmt.Errorf("parsing preset: %w", err)
	}

	if _, grouped := probe["electrical"]; grouped {
		var doc groupedDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return p, fmt.Errorf("parsing grouped preset: %w", err)
		}
		setF(&p.Kv, doc.Electrical.Kv)
		if doc.Electrical.PolePairs != nil {
			p.PolePairs = *doc.Electrical.PolePairs
		}
		setF(&p.HysteresisCoeff, doc.Electrical.HysteresisCoeff)
		setF(&p.EddyCurrentCoeff, doc.Electrical.EddyCurrentCoeff)
		setF(&p.SteinmetzAlpha, doc.Electrical.SteinmetzAlpha)
		setF(&p.SteinmetzBeta, doc.Electrical.SteinmetzBeta)
		setF(&p.SteinmetzKg, doc.Electrical.SteinmetzKg)
		setF(&p.FluxCoeff, doc.Electrical.FluxCoeff)
		setF(&p.FluxTempCoeff, doc.Electrical.FluxTempCoeff)
		setF(&p.PhaseResistance, doc.Winding.PhaseResistance)
		setF(&p.PhaseInductance, doc.Winding.PhaseInductance)
		if doc.Winding.WiringType != nil {
			p.WiringType = *doc.Winding.WiringType
		}
		setF(&p.ContinuousCurrent, doc.Winding.ContinuousCurrent)
		setF(&p.PeakCurrent, doc.Winding.PeakCurrent)
		setF(&p.AmbientTemperature, doc.Thermal.AmbientTemperature)
		setF(&p.ThermalResistance, doc.Thermal.ThermalResistance)
		setF(&p.DriverOnResistance, doc.Driver.OnResistance)
		setF(&p.DriverFixedLoss, doc.Driver.FixedLoss)
		setF(&p.GearRatio, doc.Gear.Ratio)
		setF(&p.GearEfficiency, doc.Gear.Efficiency)
		setF(&p.BusVoltage, doc.Simulation.BusVoltage)
	} else {
		if err := json.Unmarshal(data, &p); err != nil {
			return p, fmt.Errorf("parsing flat preset: %w", err)
		}
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Load reads and parses a preset file.
func Load(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("reading preset %s: %w", path, err)
	}
	return Parse(data)
}
