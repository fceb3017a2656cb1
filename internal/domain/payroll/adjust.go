package payroll

import "math"

// ApplyAdjustments compounds successive percentage increases over base.
// Each entry is a percentage (10 means 10%); NaN, infinite and zero entries
// are skipped and negative entries reduce the running amount.
func ApplyAdjustments(base float64, percents []float64) float64 {
	adjusted := base
	for _, pct := range percents {
		rate := pct / 100
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate == 0 {
			continue
		}
		adjusted += adjusted * rate
	}
	return adjusted
}

// ParseAdjustments turns the raw adjustment fields into percentages. Fields
// that do not parse or overflow come back as NaN, which ApplyAdjustments
// ignores.
func ParseAdjustments(raw []FormValue) []float64 {
	out := make([]float64, 0, len(raw))
	for _, value := range raw {
		pct := ParsePercent(string(value))
		if math.IsInf(pct, 0) {
			pct = math.NaN()
		}
		out = append(out, pct)
	}
	return out
}
