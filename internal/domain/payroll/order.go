package payroll

import "sort"

var canonicalIndex = func() map[string]int {
	index := make(map[string]int, len(CanonicalOrder))
	for i, code := range CanonicalOrder {
		index[code] = i
	}
	return index
}()

func orderOf(code string) int {
	if i, ok := canonicalIndex[code]; ok {
		return i
	}
	return len(CanonicalOrder)
}

// SortLineItems puts items in canonical display order. Codes outside the
// canonical list go last, keeping their insertion order.
func SortLineItems(items []LineItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return orderOf(items[i].Code) < orderOf(items[j].Code)
	})
}

// TotalDeductions sums every emitted deduction rubric.
func TotalDeductions(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		if item.IsDeduction() {
			total += item.Amount
		}
	}
	return total
}
