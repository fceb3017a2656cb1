package payroll

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

type LineItem struct {
	Code   string  `json:"code"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// IsDeduction reports whether the rubric counts towards total deductions.
func (l LineItem) IsDeduction() bool {
	return strings.HasPrefix(l.Code, "D")
}

// FormValue is a raw form field. It accepts JSON strings, numbers and null so
// hosts can post widget values untouched.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	*v = FormValue(trimmed)
	return nil
}

// Input is one snapshot of the simulator form.
type Input struct {
	Role                string      `json:"role"`
	Class               string      `json:"class"`
	Step                string      `json:"step"`
	Adjustments         []FormValue `json:"adjustments"`
	TimeInService       FormValue   `json:"timeInService"`
	Course              bool        `json:"course"`
	Title               string      `json:"title"`
	ProductivityPercent FormValue   `json:"productivityPercent"`
	Function            string      `json:"function"`
	Vacation            bool        `json:"vacation"`
	Dependents          FormValue   `json:"dependents"`
	Beneficiaries       FormValue   `json:"beneficiaries"`
	HealthCoPay         bool        `json:"healthCoPay"`
	UnionContribution   bool        `json:"unionContribution"`
	AssociationDue      bool        `json:"associationDue"`
	DentalPlan          bool        `json:"dentalPlan"`
}

type Result struct {
	BaseSalary    float64 `json:"baseSalary"`
	Gratification float64 `json:"gratification"`
	TimeInService float64 `json:"timeInService"`
	Productivity  float64 `json:"productivity"`

	CourseAddition      float64 `json:"courseAddition"`
	TitleAddition       float64 `json:"titleAddition"`
	GrantedFunction     float64 `json:"grantedFunction"`
	PensionBase         float64 `json:"pensionBase"`
	PensionContribution float64 `json:"pensionContribution"`
	IncomeTaxBase       float64 `json:"incomeTaxBase"`
	IncomeTax           float64 `json:"incomeTax"`
	IncomeTaxRate       float64 `json:"incomeTaxRate"`
	VacationBonus       float64 `json:"vacationBonus"`
	VacationTax         float64 `json:"vacationTax"`
	VacationTaxRate     float64 `json:"vacationTaxRate"`
	DentalPlan          float64 `json:"dentalPlan"`

	Gross           float64 `json:"gross"`
	TotalDeductions float64 `json:"totalDeductions"`
	Net             float64 `json:"net"`

	// Values actually used after coercion, for the host to write back.
	TimeInServicePercent float64 `json:"timeInServicePercent"`
	ProductivityPercent  float64 `json:"productivityPercent"`
	Dependents           int     `json:"dependents"`
	Beneficiaries        int     `json:"beneficiaries"`

	CapReached bool `json:"capReached"`
	CapWarning bool `json:"capWarning"`

	Items []LineItem `json:"items"`
}

// Rows returns the items rendered as generic payslip rows. The dental plan
// rubric has its own dedicated cell and is left out.
func (r Result) Rows() []LineItem {
	rows := make([]LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Code == CodeDentalPlan {
			continue
		}
		rows = append(rows, item)
	}
	return rows
}

// Item looks up an emitted rubric by code.
func (r Result) Item(code string) (LineItem, bool) {
	for _, item := range r.Items {
		if item.Code == code {
			return item, true
		}
	}
	return LineItem{}, false
}

// Session carries the state a recompute cannot derive from the form: the
// union contribution types confirmed in the selection dialog and whether the
// time-in-service cap warning was already shown.
type Session struct {
	ID         string      `json:"id"`
	UnionTypes []UnionType `json:"unionTypes"`
	CapWarned  bool        `json:"capWarned"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

type RoleOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PayslipView is the printable layout: the fixed header rows, the dental
// plan cell, the generic rows in canonical order and the two total rows.
type PayslipView struct {
	Header          []LineItem `json:"header"`
	DentalPlan      LineItem   `json:"dentalPlan"`
	Rows            []LineItem `json:"rows"`
	TotalDeductions LineItem   `json:"totalDeductions"`
	Net             LineItem   `json:"net"`
}

// Lines flattens the view in print order: header, dental plan, generic rows,
// totals.
func (v PayslipView) Lines() []LineItem {
	out := make([]LineItem, 0, len(v.Header)+len(v.Rows)+3)
	out = append(out, v.Header...)
	out = append(out, v.DentalPlan)
	out = append(out, v.Rows...)
	return append(out, v.TotalDeductions, v.Net)
}
