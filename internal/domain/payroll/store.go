package payroll

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) LoadSalaryTable(ctx context.Context) (SalaryTable, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT role, class, step, amount
    FROM salary_steps
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := SalaryTable{}
	for rows.Next() {
		var role, class, step string
		var amount decimal.Decimal
		if err := rows.Scan(&role, &class, &step, &amount); err != nil {
			return nil, err
		}
		if table[role] == nil {
			table[role] = map[string]map[string]float64{}
		}
		if table[role][class] == nil {
			table[role][class] = map[string]float64{}
		}
		table[role][class][step] = amount.InexactFloat64()
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *Store) LoadTaxTable(ctx context.Context) (TaxTable, error) {
	var table TaxTable
	if err := s.DB.QueryRow(ctx, `
    SELECT dependent_deduction::float8
    FROM tax_settings
    LIMIT 1
  `).Scan(&table.DependentDeduction); err != nil {
		return TaxTable{}, fmt.Errorf("load dependent deduction: %w", err)
	}

	rows, err := s.DB.Query(ctx, `
    SELECT upper_limit::float8, rate::float8, deduction::float8
    FROM tax_brackets
    ORDER BY position
  `)
	if err != nil {
		return TaxTable{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var bracket TaxBracket
		if err := rows.Scan(&bracket.UpperLimit, &bracket.Rate, &bracket.Deduction); err != nil {
			return TaxTable{}, err
		}
		table.Brackets = append(table.Brackets, bracket)
	}
	if err := rows.Err(); err != nil {
		return TaxTable{}, err
	}
	if err := table.Validate(); err != nil {
		return TaxTable{}, err
	}
	return table, nil
}

func (s *Store) ReplaceSalaryTable(ctx context.Context, table SalaryTable) error {
	return pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM salary_steps"); err != nil {
			return err
		}
		batch := &pgx.Batch{}
		for role, classes := range table {
			for class, steps := range classes {
				for step, amount := range steps {
					batch.Queue(`
            INSERT INTO salary_steps (role, class, step, amount)
            VALUES ($1,$2,$3,$4)
          `, role, class, step, storedAmount(amount))
				}
			}
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

// storedAmount keeps the table value exactly as loaded; rounding happens on
// computed items only.
func storedAmount(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount)
}

func (s *Store) ReplaceTaxTable(ctx context.Context, table TaxTable) error {
	return pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM tax_brackets"); err != nil {
			return err
		}
		for i, bracket := range table.Brackets {
			if _, err := tx.Exec(ctx, `
        INSERT INTO tax_brackets (position, upper_limit, rate, deduction)
        VALUES ($1,$2,$3,$4)
      `, i, bracket.UpperLimit, bracket.Rate, bracket.Deduction); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx, `
      INSERT INTO tax_settings (id, dependent_deduction)
      VALUES (TRUE, $1)
      ON CONFLICT (id) DO UPDATE SET dependent_deduction = EXCLUDED.dependent_deduction
    `, table.DependentDeduction)
		return err
	})
}

func (s *Store) HasTables(ctx context.Context) (bool, error) {
	var steps, brackets int
	if err := s.DB.QueryRow(ctx, `
    SELECT (SELECT COUNT(1) FROM salary_steps), (SELECT COUNT(1) FROM tax_brackets)
  `).Scan(&steps, &brackets); err != nil {
		return false, err
	}
	return steps > 0 && brackets > 0, nil
}
