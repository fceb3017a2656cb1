package payroll

import "context"

// SessionStore keeps calculator sessions between recomputes.
type SessionStore interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, id string) error
}

// TableStoreAPI loads and replaces the salary and tax feeds kept in the database.
type TableStoreAPI interface {
	LoadSalaryTable(ctx context.Context) (SalaryTable, error)
	LoadTaxTable(ctx context.Context) (TaxTable, error)
	ReplaceSalaryTable(ctx context.Context, table SalaryTable) error
	ReplaceTaxTable(ctx context.Context, table TaxTable) error
	HasTables(ctx context.Context) (bool, error)
}
