package payroll

import "math"

// TaxBracket is one row of the progressive income-tax table. A nil
// UpperLimit marks the open-ended top bracket.
type TaxBracket struct {
	UpperLimit *float64 `json:"upperLimit"`
	Rate       float64  `json:"rate"`
	Deduction  float64  `json:"deduction"`
}

type TaxTable struct {
	Brackets           []TaxBracket `json:"brackets"`
	DependentDeduction float64      `json:"dependentDeduction"`
}

// ComputeIncomeTax evaluates brackets in listed order. The first bounded
// bracket whose limit covers base wins. Open-ended brackets are remembered as
// the scan goes on, so the last one seen applies when no bounded bracket
// matched. The tax never goes below zero.
func ComputeIncomeTax(base float64, brackets []TaxBracket) (tax, rate float64) {
	var deduction float64
	for _, bracket := range brackets {
		if bracket.UpperLimit != nil {
			if base <= *bracket.UpperLimit {
				rate = bracket.Rate
				deduction = bracket.Deduction
				break
			}
			continue
		}
		rate = bracket.Rate
		deduction = bracket.Deduction
	}

	tax = base*rate - deduction
	if math.IsNaN(tax) || tax < 0 {
		tax = 0
	}
	return tax, rate
}

// Compute is ComputeIncomeTax over the table's brackets.
func (t TaxTable) Compute(base float64) (tax, rate float64) {
	return ComputeIncomeTax(base, t.Brackets)
}

// DependentsDeduction is the flat deduction for the given dependent count.
func (t TaxTable) DependentsDeduction(dependents int) float64 {
	return t.DependentDeduction * float64(dependents)
}
