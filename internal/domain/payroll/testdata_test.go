package payroll

func floatPtr(v float64) *float64 { return &v }

func testTaxTable() TaxTable {
	return TaxTable{
		Brackets: []TaxBracket{
			{UpperLimit: floatPtr(2259.20), Rate: 0, Deduction: 0},
			{UpperLimit: floatPtr(2826.65), Rate: 0.075, Deduction: 169.44},
			{UpperLimit: floatPtr(3751.05), Rate: 0.15, Deduction: 381.44},
			{UpperLimit: floatPtr(4664.68), Rate: 0.225, Deduction: 662.77},
			{Rate: 0.275, Deduction: 896.00},
		},
		DependentDeduction: 189.59,
	}
}

func testSalaryTable() SalaryTable {
	return SalaryTable{
		RoleSeniorAssessor: {
			"A": {"1": 5000, "2": 5200},
			"B": {"1": 6000},
		},
		RoleAuxAnalyst: {
			"A": {"1": 3000},
		},
		"Motorista": {
			"A": {"1": 5000, "10": 5900, "2": 5100},
		},
	}
}

func newTestCalculator() *Calculator {
	return NewCalculator(testSalaryTable(), testTaxTable())
}
