package report

import "errors"

var (
	ErrUnknownReport          = errors.New("unknown report, expected ledger or payroll")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
