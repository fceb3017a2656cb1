package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func codes(items []LineItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Code)
	}
	return out
}

func TestSortLineItemsCanonicalWithUnknownLast(t *testing.T) {
	items := []LineItem{
		{Code: CodeGross},
		{Code: "X900"},
		{Code: CodeIncomeTax},
		{Code: "X100"},
		{Code: CodeBaseSalary},
		{Code: CodePension},
	}
	SortLineItems(items)
	assert.Equal(t, []string{CodeBaseSalary, CodePension, CodeIncomeTax, CodeGross, "X900", "X100"}, codes(items))
}

func TestTotalDeductionsOnlyCountsDeductions(t *testing.T) {
	items := []LineItem{
		{Code: CodeIncomeTax, Amount: 100},
		{Code: CodeDentalPlan, Amount: 33.06},
		{Code: CodeGross, Amount: 5000},
		{Code: CodeVacationBonus, Amount: 1000},
	}
	assert.InDelta(t, 133.06, TotalDeductions(items), 1e-9)
}
