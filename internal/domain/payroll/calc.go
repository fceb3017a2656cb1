package payroll

import (
	"math"
	"strconv"
	"strings"
)

type Calculator struct {
	salaries             SalaryTable
	taxes                TaxTable
	productivityBaseRate float64
}

type Option func(*Calculator)

// WithProductivityBaseRate overrides the share of the base salary that the
// productivity bonus percentage applies to.
func WithProductivityBaseRate(rate float64) Option {
	return func(c *Calculator) {
		if rate > 0 {
			c.productivityBaseRate = rate
		}
	}
}

func NewCalculator(salaries SalaryTable, taxes TaxTable, opts ...Option) *Calculator {
	c := &Calculator{
		salaries:             salaries,
		taxes:                taxes,
		productivityBaseRate: DefaultProductivityBaseRate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Calculator) Salaries() SalaryTable { return c.salaries }

func (c *Calculator) Taxes() TaxTable { return c.taxes }

func (c *Calculator) ProductivityBaseRate() float64 { return c.productivityBaseRate }

// Compute recomputes the whole payslip from one form snapshot. The session
// supplies the cached union selection and records the cap warning state; a
// nil session behaves like a fresh one with nothing selected.
func (c *Calculator) Compute(session *Session, in Input) Result {
	var res Result
	adjustments := ParseAdjustments(in.Adjustments)

	rawService := parseLeadingFloat(string(in.TimeInService))
	serviceRate := clamp(rawService/100, 0, TimeInServiceCap)
	res.TimeInServicePercent = clamp(rawService, 0, TimeInServiceCap*100)
	res.CapReached = serviceRate == TimeInServiceCap
	if session != nil {
		res.CapWarning = session.observeCap(res.CapReached)
	} else {
		res.CapWarning = res.CapReached
	}

	base := finite(ApplyAdjustments(c.salaries.Lookup(in.Role, in.Class, in.Step), adjustments))

	var course float64
	if in.Course {
		course = CourseRate * base
	}

	title := ParseTitleTier(in.Title)
	titleAddition := titleRates[title] * base

	var gratification float64
	if gratificationRoles[in.Role] {
		gratification = GratificationRate * base
	}

	function := ParseFunctionTier(in.Function)
	granted := c.grantedFunction(function, adjustments)

	serviceTotal := serviceRate * (base + gratification + titleAddition + granted)
	servicePension := serviceRate * (base + gratification + titleAddition)

	productivityPct := clamp(ParsePercent(string(in.ProductivityPercent)), 0, ProductivityMaxPercent)
	productivity := c.productivityBaseRate * base * (productivityPct / 100)

	pensionBase := base + gratification + titleAddition + servicePension
	pension := PensionRate * pensionBase

	dependents := ParseCount(string(in.Dependents))
	dependentsDeduction := c.taxes.DependentsDeduction(dependents)

	taxBase := base + gratification + serviceTotal + titleAddition + course + productivity + granted - pension
	taxBase -= dependentsDeduction
	tax, taxRate := c.taxes.Compute(taxBase)

	var vacationBonus, vacationTax, vacationRate float64
	if in.Vacation {
		vacationBonus = (base + gratification + serviceTotal + course + titleAddition + productivity + granted) / VacationBonusRatio
		vacationTax, vacationRate = c.taxes.Compute(vacationBonus - dependentsDeduction)
	}

	gross := base + gratification + serviceTotal + titleAddition + course + productivity + granted + vacationBonus

	items := []LineItem{
		{Code: CodeIncomeTax, Label: "IMPOSTO DE RENDA (" + FormatRate(taxRate) + "%)", Amount: tax},
		{Code: CodeIncomeTaxBase, Label: "BASE I.R.", Amount: taxBase},
		{Code: CodePensionBase, Label: "BASE PREVIDÊNCIA", Amount: pensionBase},
		{Code: CodePension, Label: "FINANPREV - LEI COMP Nº112 12/16 (14%)", Amount: pension},
		{Code: CodeGross, Label: "REMUNERAÇÃO", Amount: gross},
	}
	if in.Vacation {
		items = append(items,
			LineItem{Code: CodeVacationBonus, Label: "1/3 FÉRIAS (30 DIAS)", Amount: vacationBonus},
			LineItem{Code: CodeVacationTax, Label: "IRRF - 1/3 FÉRIAS (30 DIAS) (" + FormatRate(vacationRate) + "%)", Amount: vacationTax},
		)
	}
	if in.Course {
		items = append(items, LineItem{Code: CodeCourseAddition, Label: "ADICIONAL QUALIFIC./CURSOS", Amount: course})
	}
	if title != TitleNone {
		items = append(items, LineItem{Code: CodeTitleAddition, Label: "ADICIONAL QUALIFIC./TÍTULOS", Amount: titleAddition})
	}
	if function != FunctionNone {
		items = append(items, LineItem{Code: CodeGrantedFunc, Label: "REPRESENTAÇÃO - FUNC. GRAT.", Amount: granted})
	}
	if in.HealthCoPay {
		items = append(items, LineItem{Code: CodeHealthCoPay, Label: "TCE-UNIMED BELÉM", Amount: HealthCoPayRate * pensionBase})
	}
	if in.UnionContribution && session != nil {
		for _, unionType := range session.UnionTypes {
			switch unionType {
			case UnionSindicontas:
				items = append(items, LineItem{Code: CodeUnionFlat, Label: "SINDICONTAS-PA CONTRIBUIÇÃO", Amount: UnionFlatFee})
			case UnionAudTCE:
				items = append(items, LineItem{Code: CodeUnionAuditors, Label: "AUD-TCE/PA", Amount: UnionAuditorsRate * (base + gratification)})
			}
		}
	}
	if in.AssociationDue {
		items = append(items, LineItem{Code: CodeAssociationDue, Label: "ASTCEMP-MENSALIDADE", Amount: AssociationDueFee})
	}

	beneficiaries := ParseCount(string(in.Beneficiaries))
	if in.DentalPlan {
		res.DentalPlan = DentalPlanFee * float64(beneficiaries)
		items = append(items, LineItem{Code: CodeDentalPlan, Label: dentalPlanLabel(beneficiaries), Amount: res.DentalPlan})
	}

	SortLineItems(items)

	res.BaseSalary = base
	res.Gratification = gratification
	res.TimeInService = serviceTotal
	res.Productivity = productivity
	res.CourseAddition = course
	res.TitleAddition = titleAddition
	res.GrantedFunction = granted
	res.PensionBase = pensionBase
	res.PensionContribution = pension
	res.IncomeTaxBase = taxBase
	res.IncomeTax = tax
	res.IncomeTaxRate = taxRate
	res.VacationBonus = vacationBonus
	res.VacationTax = vacationTax
	res.VacationTaxRate = vacationRate
	res.Gross = gross
	res.ProductivityPercent = productivityPct
	res.Dependents = dependents
	res.Beneficiaries = beneficiaries
	for i := range items {
		items[i].Amount = finite(items[i].Amount)
	}
	res.Items = items
	res.TotalDeductions = TotalDeductions(items)
	res.Net = finite(gross) - res.TotalDeductions
	res.zeroNonFinite()
	return res
}

// zeroNonFinite replaces amounts that overflowed to ±Inf or became NaN with
// zero so every result stays printable.
func (r *Result) zeroNonFinite() {
	for _, v := range []*float64{
		&r.BaseSalary, &r.Gratification, &r.TimeInService, &r.Productivity,
		&r.CourseAddition, &r.TitleAddition, &r.GrantedFunction,
		&r.PensionBase, &r.PensionContribution, &r.IncomeTaxBase, &r.IncomeTax,
		&r.IncomeTaxRate, &r.VacationBonus, &r.VacationTax, &r.VacationTaxRate,
		&r.DentalPlan, &r.Gross, &r.TotalDeductions, &r.Net,
		&r.TimeInServicePercent, &r.ProductivityPercent,
	} {
		*v = finite(*v)
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// grantedFunction prices a supervisory function from the fixed reference
// cell, adjusted by the same chain as the employee's own base salary.
func (c *Calculator) grantedFunction(tier FunctionTier, adjustments []float64) float64 {
	var rate float64
	switch tier {
	case FunctionManager:
		rate = ManagerFuncRate
	case FunctionCoordinator:
		rate = CoordinatorFuncRate
	default:
		return 0
	}
	reference := c.salaries.Lookup(GrantedFuncRefRole, GrantedFuncRefClass, GrantedFuncRefStep)
	return finite(rate * ApplyAdjustments(reference, adjustments))
}

// Payslip arranges a result the way the printed slip shows it.
func (r Result) Payslip() PayslipView {
	return PayslipView{
		Header: []LineItem{
			{Code: CodeBaseSalary, Label: "VENCIMENTO", Amount: r.BaseSalary},
			{Code: CodeGratification, Label: "GRAT. NÍVEL SUPERIOR", Amount: r.Gratification},
			{Code: CodeTimeInService, Label: "ADIC. TEMPO SERVIÇO (" + FormatPercent(r.TimeInServicePercent) + "%)", Amount: r.TimeInService},
			{Code: CodeProductivity, Label: "ABONO PRODUTIVIDADE COLETIVA (" + FormatPercent(r.ProductivityPercent) + "%)", Amount: r.Productivity},
		},
		DentalPlan:      LineItem{Code: CodeDentalPlan, Label: dentalPlanLabel(r.Beneficiaries), Amount: r.DentalPlan},
		Rows:            r.Rows(),
		TotalDeductions: LineItem{Code: CodeTotalDeductions, Label: "TOTAL DESCONTOS", Amount: r.TotalDeductions},
		Net:             LineItem{Code: CodeNet, Label: "LÍQUIDO A RECEBER", Amount: r.Net},
	}
}

func dentalPlanLabel(beneficiaries int) string {
	return "ASTCEMP-UNIODONTO | BENEFICIÁRIOS (" + strconv.Itoa(beneficiaries) + ")"
}

// FormatRate renders a fraction as a percentage with one decimal and a comma
// separator, e.g. 0.275 → "27,5".
func FormatRate(rate float64) string {
	return strings.Replace(strconv.FormatFloat(rate*100, 'f', 1, 64), ".", ",", 1)
}

// FormatPercent renders a percentage value as typed, with a comma separator.
func FormatPercent(pct float64) string {
	return strings.Replace(strconv.FormatFloat(pct, 'f', -1, 64), ".", ",", 1)
}
