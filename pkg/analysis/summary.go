package analysis

import (
	"math"
)

// Point is one operating point picked out of the result grid.
type Point struct {
	Row, Col   int     `json:"-"`
	RPM        float64 `json:"rpm"`
	Current    float64 `json:"current"`
	Torque     float64 `json:"torque"`
	Power      float64 `json:"power"`
	Efficiency float64 `json:"efficiency"`
}

// Summary reduces a result grid to its headline operating points. Searches
// only consider feasible cells, those whose required voltage stays within the
// bus voltage. A nil field means no feasible cell satisfied that query; it is
// reported absent, never as zero.
type Summary struct {
	PeakEfficiency *Point `json:"peak_efficiency,omitempty"`
	MaxPower       *Point `json:"max_power,omitempty"`
	MaxTorque      *Point `json:"max_torque,omitempty"`
	// Rated is the best-efficiency feasible point in the column nearest the
	// continuous current rating.
	Rated *Point `json:"rated,omitempty"`

	// Feasible envelope.
	MaxRPM     *float64 `json:"max_rpm,omitempty"`
	MaxCurrent *float64 `json:"max_current,omitempty"`

	FeasibleCount int `json:"feasible_count"`
}

// Summarize scans r under the voltage feasibility mask. continuousCurrent
// selects the rated column.
func Summarize(r *Result, busVoltage, continuousCurrent float64) *Summary {
	s := &Summary{}
	rows, cols := r.Voltage.Rows, r.Voltage.Cols

	feasible := func(row, col int) bool {
		return r.Voltage.At(row, col) <= busVoltage
	}
	pointAt := func(row, col int) *Point {
		return &Point{
			Row:        row,
			Col:        col,
			RPM:        r.RPM.At(row, col),
			Current:    r.Current.At(row, col),
			Torque:     r.Torque.At(row, col),
			Power:      r.OutputPower.At(row, col),
			Efficiency: r.Efficiency.At(row, col),
		}
	}

	// argmax of one field over the feasible region
	best := func(value func(row, col int) float64) *Point {
		bestVal := math.Inf(-1)
		var found *Point
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				if !feasible(row, col) {
					continue
				}
				if v := value(row, col); v > bestVal {
					bestVal = v
					found = pointAt(row, col)
				}
			}
		}
		return found
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if feasible(row, col) {
				s.FeasibleCount++
				rpm, cur := r.RPM.At(row, col), r.Current.At(row, col)
				if s.MaxRPM == nil || rpm > *s.MaxRPM {
					v := rpm
					s.MaxRPM = &v
				}
				if s.MaxCurrent == nil || cur > *s.MaxCurrent {
					v := cur
					s.MaxCurrent = &v
				}
			}
		}
	}
	if s.FeasibleCount == 0 {
		return s
	}

	s.PeakEfficiency = best(func(row, col int) float64 { return r.Efficiency.At(row, col) })
	s.MaxPower = best(func(row, col int) float64 { return r.OutputPower.At(row, col) })
	s.MaxTorque = best(func(row, col int) float64 { return r.Torque.At(row, col) })

	// Rated column: nearest to the continuous current rating.
	ratedCol, bestDist := 0, math.Inf(1)
	for col := 0; col < cols; col++ {
		if d := math.Abs(r.Current.At(0, col) - continuousCurrent); d < bestDist {
			bestDist = d
			ratedCol = col
		}
	}
	bestEff := math.Inf(-1)
	for row := 0; row < rows; row++ {
		if !feasible(row, ratedCol) {
			continue
		}
		if eff := r.Efficiency.At(row, ratedCol); eff > bestEff {
			bestEff = eff
			s.Rated = pointAt(row, ratedCol)
		}
	}

	return s
}
