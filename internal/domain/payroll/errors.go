package payroll

import "errors"

var (
	ErrSessionNotFound    = errors.New("calculator session not found")
	ErrUnknownUnionType   = errors.New("unknown union contribution type")
	ErrInvalidSalaryTable = errors.New("invalid salary table")
	ErrInvalidTaxTable    = errors.New("invalid tax table")
)
