package payroll

import (
	"encoding/json"
	"fmt"
	"os"
)

// feedAmount accepts salary amounts published as numbers or numeric strings.
type feedAmount float64

func (a *feedAmount) UnmarshalJSON(data []byte) error {
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		*a = feedAmount(number)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*a = feedAmount(parseLeadingFloat(text))
	return nil
}

type taxFeed struct {
	Brackets []struct {
		Limit     *float64 `json:"limite"`
		Rate      float64  `json:"aliquota"`
		Deduction float64  `json:"deducao"`
	} `json:"tabela_ir"`
	DependentDeduction float64 `json:"deducao_por_dependente"`
}

// DecodeSalaryTable parses the role/class/step feed.
func DecodeSalaryTable(data []byte) (SalaryTable, error) {
	var raw map[string]map[string]map[string]feedAmount
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSalaryTable, err)
	}
	table := make(SalaryTable, len(raw))
	for role, classes := range raw {
		table[role] = make(map[string]map[string]float64, len(classes))
		for class, steps := range classes {
			table[role][class] = make(map[string]float64, len(steps))
			for step, amount := range steps {
				table[role][class][step] = float64(amount)
			}
		}
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// DecodeTaxTable parses the bracket feed. A zero or missing limit marks the
// open-ended bracket.
func DecodeTaxTable(data []byte) (TaxTable, error) {
	var feed taxFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		return TaxTable{}, fmt.Errorf("%w: %v", ErrInvalidTaxTable, err)
	}
	table := TaxTable{DependentDeduction: feed.DependentDeduction}
	for _, row := range feed.Brackets {
		bracket := TaxBracket{Rate: row.Rate, Deduction: row.Deduction}
		if row.Limit != nil && *row.Limit != 0 {
			limit := *row.Limit
			bracket.UpperLimit = &limit
		}
		table.Brackets = append(table.Brackets, bracket)
	}
	if err := table.Validate(); err != nil {
		return TaxTable{}, err
	}
	return table, nil
}

func LoadSalaryTableFile(path string) (SalaryTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	table, err := DecodeSalaryTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func LoadTaxTableFile(path string) (TaxTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TaxTable{}, err
	}
	table, err := DecodeTaxTable(data)
	if err != nil {
		return TaxTable{}, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}
