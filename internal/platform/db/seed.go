package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"contracheque/internal/domain/payroll"
	"contracheque/internal/platform/config"
)

// Seed loads the JSON feeds into the database the first time it starts
// against an empty schema. Existing tables are left alone.
func Seed(ctx context.Context, store payroll.TableStoreAPI, cfg config.Config) error {
	has, err := store.HasTables(ctx)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	salaries, err := payroll.LoadSalaryTableFile(cfg.SalaryTablePath)
	if err != nil {
		return fmt.Errorf("seed salary table: %w", err)
	}
	taxes, err := payroll.LoadTaxTableFile(cfg.TaxTablePath)
	if err != nil {
		return fmt.Errorf("seed tax table: %w", err)
	}

	if err := store.ReplaceSalaryTable(ctx, salaries); err != nil {
		return err
	}
	if err := store.ReplaceTaxTable(ctx, taxes); err != nil {
		return err
	}
	log.Info().Int("roles", len(salaries)).Int("brackets", len(taxes.Brackets)).Msg("salary and tax tables seeded")
	return nil
}
