package util

import (
	"fmt"
	"math"
)

// FormatValueFactor renders value with an SI prefix for the given unit.
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case absValue >= 1e6:
		return fmt.Sprintf("%.3f M%s", value*1e-6, unit)
	case absValue >= 1e3:
		return fmt.Sprintf("%.3f k%s", value*1e-3, unit)
	case absValue >= 1 || value == 0:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}

// FormatPercent renders a [0,1] fraction as a percentage.
func FormatPercent(frac float64) string {
	return fmt.Sprintf("%.1f %%", frac*100)
}

func FormatRPM(rpm float64) string {
	return fmt.Sprintf("%.0f RPM", rpm)
}

func FormatTemperature(degC float64) string {
	return fmt.Sprintf("%.1f degC", degC)
}
