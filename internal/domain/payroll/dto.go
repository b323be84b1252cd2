package payroll

import (
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EligibleOrder struct {
	OrderID             string           `json:"order_id"`
	SystemOrderID       int              `json:"system_order_id"`
	Date                string           `json:"date"`
	CustomerName        string           `json:"customer_name"`
	TotalAmount         decimal.Decimal  `json:"total_amount"`
	StandardCommission  decimal.Decimal  `json:"standard_commission"`
	OverrideAmount      *decimal.Decimal `json:"override_amount,omitempty"`
	EffectiveCommission decimal.Decimal  `json:"effective_commission"`
}

type PaidCommission struct {
	OrderID       string          `json:"order_id"`
	SystemOrderID int             `json:"system_order_id"`
	CustomerName  string          `json:"customer_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaidDate      *time.Time      `json:"paid_date,omitempty"`
}

// FinanceSummaryResponse is everything the employee finance view shows.
type FinanceSummaryResponse struct {
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	LoanBalance    decimal.Decimal `json:"loan_balance"`
	Proration

	EligibleOrders         []EligibleOrder `json:"eligible_orders"`
	TotalPendingCommission decimal.Decimal `json:"total_pending_commission"`

	PaidCommissions     []PaidCommission `json:"paid_commissions"`
	TotalPaidCommission decimal.Decimal  `json:"total_paid_commission"`

	History   []ledger.Transaction `json:"history"`
	TotalPaid decimal.Decimal      `json:"total_paid"`
}

type PayCommissionRequest struct {
	OrderIDs      []string                   `json:"order_ids"`
	Overrides     map[string]decimal.Decimal `json:"overrides,omitempty"`
	PaymentMethod string                     `json:"payment_method"`
	Note          string                     `json:"note,omitempty"`
}

func (r *PayCommissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.OrderIDs) == 0 {
		errs.Add("order_ids", "select at least one order")
	}
	if validator.IsEmpty(r.PaymentMethod) {
		errs.Add("payment_method", "payment_method is required")
	}
	for id, amount := range r.Overrides {
		if amount.IsNegative() {
			errs.Add("overrides", "override for order "+id+" must not be negative")
		}
	}

	return errs.Err()
}

type PayCommissionResponse struct {
	Transaction ledger.Transaction `json:"transaction"`
	OrderIDs    []string           `json:"order_ids"`
	Total       decimal.Decimal    `json:"total"`
}

type DirectPaymentRequest struct {
	Type          PaymentType     `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
	PaymentMethod string          `json:"payment_method"`
}

func (r *DirectPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := r.Type.Category(); !ok {
		errs.Add("type", "type must be Salary, Advance or Bonus")
	}
	if !validator.IsPositive(r.Amount) {
		errs.Add("amount", "amount must be greater than zero")
	}
	if validator.IsEmpty(r.PaymentMethod) {
		errs.Add("payment_method", "payment_method is required")
	}

	return errs.Err()
}

type DirectPaymentResponse struct {
	Transaction ledger.Transaction `json:"transaction"`
	LoanBalance decimal.Decimal    `json:"loan_balance"`
}

// SheetRow is one employee line of the payroll report.
type SheetRow struct {
	EmployeeID        string          `json:"employee_id"`
	EmployeeName      string          `json:"employee_name"`
	BranchID          string          `json:"branch_id"`
	Salary            decimal.Decimal `json:"salary"`
	WorkingDays       int             `json:"working_days"`
	AttendanceDays    int             `json:"attendance_days"`
	EarnedToDate      decimal.Decimal `json:"earned_to_date"`
	PendingCommission decimal.Decimal `json:"pending_commission"`
	LoanBalance       decimal.Decimal `json:"loan_balance"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
}
