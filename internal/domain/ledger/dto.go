package ledger

import (
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ListTransactionRequest struct {
	BranchScope   string
	Type          Type
	Category      string
	PaymentMethod string
	EmployeeID    string
	CustomerID    string
	OrderID       string
	Limit         int
}

type CreateTransactionRequest struct {
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          Type            `json:"type"`
	Category      string          `json:"category"`
	Status        Status          `json:"status"`
	BranchID      string          `json:"branch_id"`
	PaymentMethod string          `json:"payment_method"`
	CustomerID    string          `json:"customer_id,omitempty"`
	EmployeeID    string          `json:"employee_id,omitempty"`
	OrderID       string          `json:"order_id,omitempty"`
}

func (r *CreateTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Description) {
		errs.Add("description", "description is required")
	}
	if !validator.IsPositive(r.Amount) {
		errs.Add("amount", "amount must be greater than zero")
	}
	if !IsValidType(r.Type) {
		errs.Add("type", "type must be Income or Expense")
	}
	if r.Status != "" && !IsValidStatus(r.Status) {
		errs.Add("status", "status must be Pending, Completed or Cancelled")
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be YYYY-MM-DD")
		}
	}

	return errs.Err()
}

// RecordPaymentRequest books money received from a customer.
type RecordPaymentRequest struct {
	CustomerID       string          `json:"-"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethod    string          `json:"payment_method"`
	Note             string          `json:"note"`
	ContractSnapshot string          `json:"contract_snapshot,omitempty"`
	TransferSnapshot string          `json:"transfer_snapshot,omitempty"`
}

func (r *RecordPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsPositive(r.Amount) {
		errs.Add("amount", "amount must be greater than zero")
	}
	if validator.IsEmpty(r.PaymentMethod) {
		errs.Add("payment_method", "payment_method is required")
	}

	return errs.Err()
}

type MethodBalance struct {
	PaymentMethod string          `json:"payment_method"`
	BranchID      string          `json:"branch_id,omitempty"`
	Income        decimal.Decimal `json:"income"`
	Expense       decimal.Decimal `json:"expense"`
	Balance       decimal.Decimal `json:"balance"`
}

type SummaryResponse struct {
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Net      decimal.Decimal `json:"net"`
	Accounts []MethodBalance `json:"accounts"`
}

type CategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (r *CategoryRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if !validator.IsInSlice(r.Type, []string{string(TypeIncome), string(TypeExpense), "Both"}) {
		errs.Add("type", "type must be Income, Expense or Both")
	}
	return errs.Err()
}

type PaymentMethodRequest struct {
	Name     string `json:"name"`
	BranchID string `json:"branch_id,omitempty"`
}

func (r *PaymentMethodRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	return errs.Err()
}
