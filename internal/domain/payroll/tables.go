package payroll

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// SalaryTable maps role → class → step → base salary.
type SalaryTable map[string]map[string]map[string]float64

// Lookup returns the base salary of a cell, or 0 when any selector is unset
// or the cell does not exist.
func (t SalaryTable) Lookup(role, class, step string) float64 {
	if role == "" || class == "" || step == "" {
		return 0
	}
	amount, ok := t[role][class][step]
	if !ok {
		return 0
	}
	return amount
}

func (t SalaryTable) Has(role, class, step string) bool {
	_, ok := t[role][class][step]
	return ok
}

func (t SalaryTable) Roles() []RoleOption {
	ids := sortedKeys(t)
	out := make([]RoleOption, 0, len(ids))
	for _, id := range ids {
		out = append(out, RoleOption{ID: id, Name: RoleDisplayName(id)})
	}
	return out
}

func (t SalaryTable) Classes(role string) []string {
	return sortedKeys(t[role])
}

func (t SalaryTable) Steps(role, class string) []string {
	return sortedKeys(t[role][class])
}

// Validate checks that every role has a class, every class a step and every
// amount is a finite number.
func (t SalaryTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no roles", ErrInvalidSalaryTable)
	}
	for role, classes := range t {
		if len(classes) == 0 {
			return fmt.Errorf("%w: role %s has no classes", ErrInvalidSalaryTable, role)
		}
		for class, steps := range classes {
			if len(steps) == 0 {
				return fmt.Errorf("%w: role %s class %s has no steps", ErrInvalidSalaryTable, role, class)
			}
			for step, amount := range steps {
				if math.IsNaN(amount) || math.IsInf(amount, 0) {
					return fmt.Errorf("%w: role %s class %s step %s is not a number", ErrInvalidSalaryTable, role, class, step)
				}
			}
		}
	}
	return nil
}

// Validate checks the tax table has at least one bracket with finite values.
func (t TaxTable) Validate() error {
	if len(t.Brackets) == 0 {
		return fmt.Errorf("%w: no brackets", ErrInvalidTaxTable)
	}
	for i, bracket := range t.Brackets {
		if math.IsNaN(bracket.Rate) || bracket.Rate < 0 || bracket.Rate > 1 {
			return fmt.Errorf("%w: bracket %d rate %v outside [0,1]", ErrInvalidTaxTable, i, bracket.Rate)
		}
		if math.IsNaN(bracket.Deduction) {
			return fmt.Errorf("%w: bracket %d deduction is not a number", ErrInvalidTaxTable, i)
		}
	}
	if math.IsNaN(t.DependentDeduction) {
		return fmt.Errorf("%w: dependent deduction is not a number", ErrInvalidTaxTable)
	}
	return nil
}

// RoleDisplayName falls back to the id with underscores turned into spaces.
func RoleDisplayName(role string) string {
	if name, ok := RoleDisplayNames[role]; ok {
		return name
	}
	return strings.ReplaceAll(role, "_", " ")
}

// sortedKeys puts integer-like keys first in numeric order, then the rest
// alphabetically.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aErr := strconv.Atoi(keys[i])
		b, bErr := strconv.Atoi(keys[j])
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
