package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contracheque/internal/domain/payroll"
	"contracheque/internal/platform/config"
)

type fakeTables struct {
	has      bool
	salaries payroll.SalaryTable
	taxes    *payroll.TaxTable
}

func (f *fakeTables) LoadSalaryTable(context.Context) (payroll.SalaryTable, error) {
	return f.salaries, nil
}

func (f *fakeTables) LoadTaxTable(context.Context) (payroll.TaxTable, error) {
	if f.taxes == nil {
		return payroll.TaxTable{}, nil
	}
	return *f.taxes, nil
}

func (f *fakeTables) ReplaceSalaryTable(_ context.Context, table payroll.SalaryTable) error {
	f.salaries = table
	return nil
}

func (f *fakeTables) ReplaceTaxTable(_ context.Context, table payroll.TaxTable) error {
	f.taxes = &table
	return nil
}

func (f *fakeTables) HasTables(context.Context) (bool, error) {
	return f.has, nil
}

func writeFeeds(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	salaryPath := filepath.Join(dir, "vencimentos.json")
	taxPath := filepath.Join(dir, "tabela_ir.json")
	require.NoError(t, os.WriteFile(salaryPath, []byte(`{"Motorista":{"A":{"1":1500.5}}}`), 0o600))
	require.NoError(t, os.WriteFile(taxPath, []byte(`{"tabela_ir":[{"limite":2000,"aliquota":0,"deducao":0},{"limite":null,"aliquota":0.275,"deducao":896}],"deducao_por_dependente":189.59}`), 0o600))
	return config.Config{SalaryTablePath: salaryPath, TaxTablePath: taxPath}
}

func TestSeedLoadsFeedsIntoEmptyStore(t *testing.T) {
	cfg := writeFeeds(t)
	store := &fakeTables{}

	require.NoError(t, Seed(context.Background(), store, cfg))
	assert.InDelta(t, 1500.5, store.salaries.Lookup("Motorista", "A", "1"), 1e-9)
	require.NotNil(t, store.taxes)
	assert.Len(t, store.taxes.Brackets, 2)
	assert.InDelta(t, 189.59, store.taxes.DependentDeduction, 1e-9)
}

func TestSeedSkipsPopulatedStore(t *testing.T) {
	cfg := writeFeeds(t)
	store := &fakeTables{has: true}

	require.NoError(t, Seed(context.Background(), store, cfg))
	assert.Nil(t, store.salaries)
	assert.Nil(t, store.taxes)
}
