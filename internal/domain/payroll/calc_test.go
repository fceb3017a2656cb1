package payroll

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInput() Input {
	return Input{Role: "Motorista", Class: "A", Step: "1"}
}

func amountOf(t *testing.T, res Result, code string) float64 {
	t.Helper()
	item, ok := res.Item(code)
	require.True(t, ok, "missing item %s", code)
	return item.Amount
}

func TestComputePlainSalary(t *testing.T) {
	res := newTestCalculator().Compute(&Session{}, baseInput())

	assert.InDelta(t, 5000, res.BaseSalary, 1e-9)
	assert.Zero(t, res.Gratification)
	assert.InDelta(t, 5000, res.PensionBase, 1e-9)
	assert.InDelta(t, 700, res.PensionContribution, 1e-9)
	assert.InDelta(t, 4300, res.IncomeTaxBase, 1e-9)
	assert.InDelta(t, 304.73, res.IncomeTax, 1e-6)
	assert.Equal(t, 0.225, res.IncomeTaxRate)
	assert.InDelta(t, 5000, res.Gross, 1e-9)
	assert.InDelta(t, 1004.73, res.TotalDeductions, 1e-6)
	assert.InDelta(t, 3995.27, res.Net, 1e-6)

	assert.Equal(t, []string{CodePension, CodeIncomeTax, CodeIncomeTaxBase, CodePensionBase, CodeGross}, codes(res.Items))
	item, _ := res.Item(CodeIncomeTax)
	assert.Equal(t, "IMPOSTO DE RENDA (22,5%)", item.Label)
}

func TestComputeUnknownCellIsZero(t *testing.T) {
	in := baseInput()
	in.Step = "99"
	res := newTestCalculator().Compute(&Session{}, in)
	assert.Zero(t, res.BaseSalary)
	assert.Zero(t, res.IncomeTax)
	assert.Zero(t, res.Net)
}

func TestComputeGratificationRoles(t *testing.T) {
	in := Input{Role: RoleSeniorAssessor, Class: "A", Step: "1"}
	res := newTestCalculator().Compute(nil, in)
	assert.InDelta(t, 4000, res.Gratification, 1e-9)
	assert.InDelta(t, 9000, res.PensionBase, 1e-9)

	in = Input{Role: RoleAuxAnalyst, Class: "A", Step: "1"}
	res = newTestCalculator().Compute(nil, in)
	assert.InDelta(t, 2400, res.Gratification, 1e-9)
}

func TestComputeAdjustmentsCompound(t *testing.T) {
	in := baseInput()
	in.Adjustments = []FormValue{"10", "", "10"}
	res := newTestCalculator().Compute(nil, in)
	assert.InDelta(t, 6050, res.BaseSalary, 1e-9)
}

func TestComputeTimeInServiceCapWarnsOnce(t *testing.T) {
	calc := newTestCalculator()
	session := &Session{}
	in := baseInput()

	in.TimeInService = "75"
	res := calc.Compute(session, in)
	assert.True(t, res.CapReached)
	assert.True(t, res.CapWarning)
	assert.Equal(t, 60.0, res.TimeInServicePercent)
	assert.InDelta(t, 3000, res.TimeInService, 1e-9)

	res = calc.Compute(session, in)
	assert.True(t, res.CapReached)
	assert.False(t, res.CapWarning)

	in.TimeInService = "10"
	res = calc.Compute(session, in)
	assert.False(t, res.CapReached)
	assert.InDelta(t, 500, res.TimeInService, 1e-9)

	in.TimeInService = "60"
	res = calc.Compute(session, in)
	assert.True(t, res.CapWarning)
}

func TestComputeTimeInServiceClampsNegativeAndGarbage(t *testing.T) {
	in := baseInput()
	in.TimeInService = "-5"
	res := newTestCalculator().Compute(nil, in)
	assert.Zero(t, res.TimeInService)
	assert.Zero(t, res.TimeInServicePercent)

	in.TimeInService = "abc"
	res = newTestCalculator().Compute(nil, in)
	assert.Zero(t, res.TimeInService)
	assert.False(t, res.CapReached)
}

func TestComputeTimeInServiceExcludesGrantedFromPensionBase(t *testing.T) {
	in := baseInput()
	in.TimeInService = "10"
	in.Function = "gerente"
	res := newTestCalculator().Compute(nil, in)

	granted := 0.9 * 5000
	assert.InDelta(t, granted, res.GrantedFunction, 1e-9)
	assert.InDelta(t, 0.10*(5000+granted), res.TimeInService, 1e-9)
	assert.InDelta(t, 5000+0.10*5000, res.PensionBase, 1e-9)
}

func TestComputeProductivityClamped(t *testing.T) {
	in := baseInput()
	in.ProductivityPercent = "150"
	res := newTestCalculator().Compute(nil, in)
	assert.Equal(t, 100.0, res.ProductivityPercent)
	assert.InDelta(t, 4500, res.Productivity, 1e-9)

	in.ProductivityPercent = "50,5"
	res = newTestCalculator().Compute(nil, in)
	assert.InDelta(t, 2272.5, res.Productivity, 1e-9)

	in.ProductivityPercent = "-20"
	res = newTestCalculator().Compute(nil, in)
	assert.Zero(t, res.Productivity)
}

func TestComputeProductivityBaseRateOption(t *testing.T) {
	calc := NewCalculator(testSalaryTable(), testTaxTable(), WithProductivityBaseRate(0.5))
	in := baseInput()
	in.ProductivityPercent = "100"
	res := calc.Compute(nil, in)
	assert.InDelta(t, 2500, res.Productivity, 1e-9)

	calc = NewCalculator(testSalaryTable(), testTaxTable(), WithProductivityBaseRate(0))
	assert.Equal(t, DefaultProductivityBaseRate, calc.ProductivityBaseRate())
}

func TestComputeGrantedFunctionUsesAdjustedReference(t *testing.T) {
	in := baseInput()
	in.Adjustments = []FormValue{"10"}

	in.Function = "gerente"
	res := newTestCalculator().Compute(nil, in)
	assert.InDelta(t, 0.9*5500, amountOf(t, res, CodeGrantedFunc), 1e-9)

	in.Function = "coordenador"
	res = newTestCalculator().Compute(nil, in)
	assert.InDelta(t, 5500, amountOf(t, res, CodeGrantedFunc), 1e-9)

	in.Function = "nenhuma"
	res = newTestCalculator().Compute(nil, in)
	_, ok := res.Item(CodeGrantedFunc)
	assert.False(t, ok)
}

func TestComputeCourseAndTitle(t *testing.T) {
	in := baseInput()
	in.Course = true
	in.Title = "mestrado"
	res := newTestCalculator().Compute(nil, in)

	assert.InDelta(t, 500, amountOf(t, res, CodeCourseAddition), 1e-9)
	assert.InDelta(t, 1250, amountOf(t, res, CodeTitleAddition), 1e-9)
	// The course addition is taxed but does not feed the pension base.
	assert.InDelta(t, 6250, res.PensionBase, 1e-9)
	assert.InDelta(t, 6750, res.Gross, 1e-9)
}

func TestComputeDependentsReduceTaxBase(t *testing.T) {
	in := baseInput()
	in.Dependents = "2"
	res := newTestCalculator().Compute(nil, in)
	assert.Equal(t, 2, res.Dependents)
	assert.InDelta(t, 4300-379.18, res.IncomeTaxBase, 1e-9)
}

func TestComputeVacationBonus(t *testing.T) {
	in := baseInput()
	in.Vacation = true
	res := newTestCalculator().Compute(nil, in)

	bonus := 5000.0 / 3
	assert.InDelta(t, bonus, amountOf(t, res, CodeVacationBonus), 1e-9)
	assert.InDelta(t, 0, amountOf(t, res, CodeVacationTax), 1e-9)
	assert.InDelta(t, 5000+bonus, res.Gross, 1e-9)

	item, _ := res.Item(CodeVacationTax)
	assert.Equal(t, "IRRF - 1/3 FÉRIAS (30 DIAS) (0,0%)", item.Label)

	in.Role = RoleSeniorAssessor
	res = newTestCalculator().Compute(nil, in)
	vacationBonus := 9000.0 / 3
	assert.InDelta(t, vacationBonus, res.VacationBonus, 1e-9)
	assert.InDelta(t, 0.15*vacationBonus-381.44, res.VacationTax, 1e-6)
}

func TestComputeUnionItemsFollowSession(t *testing.T) {
	in := baseInput()
	in.UnionContribution = true

	res := newTestCalculator().Compute(nil, in)
	_, ok := res.Item(CodeUnionFlat)
	assert.False(t, ok)

	session := &Session{UnionTypes: []UnionType{UnionAudTCE, UnionSindicontas}}
	res = newTestCalculator().Compute(session, in)
	assert.InDelta(t, 40, amountOf(t, res, CodeUnionFlat), 1e-9)
	assert.InDelta(t, 40, amountOf(t, res, CodeUnionAuditors), 1e-9)

	in.UnionContribution = false
	res = newTestCalculator().Compute(session, in)
	_, ok = res.Item(CodeUnionAuditors)
	assert.False(t, ok)
}

func TestComputeFixedFeesAndDentalPlan(t *testing.T) {
	in := baseInput()
	in.HealthCoPay = true
	in.AssociationDue = true
	in.DentalPlan = true
	in.Beneficiaries = "2"
	res := newTestCalculator().Compute(nil, in)

	assert.InDelta(t, 225, amountOf(t, res, CodeHealthCoPay), 1e-9)
	assert.InDelta(t, 77.13, amountOf(t, res, CodeAssociationDue), 1e-9)
	assert.InDelta(t, 66.12, amountOf(t, res, CodeDentalPlan), 1e-9)
	assert.InDelta(t, 700+304.73+225+77.13+66.12, res.TotalDeductions, 1e-6)

	for _, row := range res.Rows() {
		assert.NotEqual(t, CodeDentalPlan, row.Code)
	}
	item, _ := res.Item(CodeDentalPlan)
	assert.Equal(t, "ASTCEMP-UNIODONTO | BENEFICIÁRIOS (2)", item.Label)
}

func TestComputeItemsInCanonicalOrder(t *testing.T) {
	in := baseInput()
	in.Vacation = true
	in.Course = true
	in.Title = "doutorado"
	in.Function = "coordenador"
	in.HealthCoPay = true
	in.UnionContribution = true
	in.AssociationDue = true
	in.DentalPlan = true
	in.Beneficiaries = "1"
	session := &Session{UnionTypes: []UnionType{UnionAudTCE, UnionSindicontas}}
	res := newTestCalculator().Compute(session, in)

	assert.Equal(t, []string{
		CodeGrantedFunc, CodeVacationBonus, CodeCourseAddition, CodeTitleAddition,
		CodePension, CodeAssociationDue, CodeIncomeTax, CodeDentalPlan, CodeVacationTax,
		CodeHealthCoPay, CodeUnionFlat, CodeUnionAuditors,
		CodeIncomeTaxBase, CodePensionBase, CodeGross,
	}, codes(res.Items))
}

func TestPayslipView(t *testing.T) {
	in := baseInput()
	in.TimeInService = "12.5"
	in.ProductivityPercent = "80"
	in.DentalPlan = true
	in.Beneficiaries = "3"
	res := newTestCalculator().Compute(nil, in)
	view := res.Payslip()

	require.Len(t, view.Header, 4)
	assert.Equal(t, []string{CodeBaseSalary, CodeGratification, CodeTimeInService, CodeProductivity}, codes(view.Header))
	assert.Equal(t, "ADIC. TEMPO SERVIÇO (12,5%)", view.Header[2].Label)
	assert.Equal(t, "ABONO PRODUTIVIDADE COLETIVA (80%)", view.Header[3].Label)
	assert.InDelta(t, 99.18, view.DentalPlan.Amount, 1e-9)
	assert.Equal(t, CodeTotalDeductions, view.TotalDeductions.Code)
	assert.InDelta(t, res.Gross-res.TotalDeductions, view.Net.Amount, 1e-9)
	assert.Equal(t, res.Rows(), view.Rows)

	lines := codes(view.Lines())
	want := []string{CodeBaseSalary, CodeGratification, CodeTimeInService, CodeProductivity, CodeDentalPlan}
	want = append(want, codes(res.Rows())...)
	want = append(want, CodeTotalDeductions, CodeNet)
	assert.Equal(t, want, lines)
	assert.Equal(t, CodeDentalPlan, lines[4])
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "27,5", FormatRate(0.275))
	assert.Equal(t, "0,0", FormatRate(0))
	assert.Equal(t, "12,5", FormatPercent(12.5))
	assert.Equal(t, "60", FormatPercent(60))
}

func TestComputeNonFiniteAdjustments(t *testing.T) {
	in := baseInput()
	in.Adjustments = []FormValue{"Infinity", "1e400"}
	res := newTestCalculator().Compute(nil, in)
	assert.InDelta(t, 5000, res.BaseSalary, 1e-9)
	assert.InDelta(t, 3995.27, res.Net, 1e-6)

	in.Adjustments = []FormValue{"1e308", "1e308"}
	in.Function = "gerente"
	in.DentalPlan = true
	in.Beneficiaries = "1"
	res = newTestCalculator().Compute(nil, in)
	assert.Zero(t, res.BaseSalary)
	assert.Zero(t, res.GrantedFunction)
	assert.Zero(t, res.Gross)
	assert.InDelta(t, 33.06, res.TotalDeductions, 1e-9)
	assert.InDelta(t, -33.06, res.Net, 1e-9)
	for _, item := range res.Items {
		assert.False(t, math.IsNaN(item.Amount) || math.IsInf(item.Amount, 0), item.Code)
	}
}
