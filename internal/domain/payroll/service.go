package payroll

import "context"

// PayrollService computes salary proration and pays commissions, salaries,
// bonuses and advances through the ledger.
type PayrollService interface {
	FinanceSummary(ctx context.Context, employeeID string) (FinanceSummaryResponse, error)
	PayCommission(ctx context.Context, employeeID string, req PayCommissionRequest) (PayCommissionResponse, error)
	PayDirect(ctx context.Context, employeeID string, req DirectPaymentRequest) (DirectPaymentResponse, error)
	PayrollSheet(ctx context.Context, branchScope string) ([]SheetRow, error)
}
