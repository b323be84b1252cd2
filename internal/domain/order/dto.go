package order

import (
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ListOrderRequest struct {
	BranchScope string
	Status      Status
	CustomerID  string
	SalesRepID  string
}

type CreateOrderRequest struct {
	CustomerID       string `json:"customer_id"`
	Items            []Item `json:"items"`
	SalesRepID       string `json:"sales_rep_id,omitempty"`
	ManualContractID string `json:"manual_contract_id,omitempty"`
	ShowroomDate     string `json:"showroom_date,omitempty"`
	DeliveryDate     string `json:"delivery_date,omitempty"`
	Scope            string `json:"scope,omitempty"`
	BranchID         string `json:"branch_id,omitempty"`
	ContractSnapshot string `json:"contract_snapshot,omitempty"`
}

func (r *CreateOrderRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, item := range r.Items {
		if validator.IsEmpty(item.ProductID) {
			errs.Add("items", "product_id is required for every item")
			break
		}
		if item.Quantity < 1 {
			errs.Add("items", "quantity must be at least 1")
			break
		}
		if item.Price.IsNegative() {
			errs.Add("items", "price must not be negative")
			break
		}
	}
	for field, date := range map[string]string{"showroom_date": r.ShowroomDate, "delivery_date": r.DeliveryDate} {
		if date == "" {
			continue
		}
		if _, ok := validator.IsValidDate(date); !ok {
			errs.Add(field, field+" must be YYYY-MM-DD")
		}
	}

	return errs.Err()
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors
	if !IsValidStatus(r.Status) {
		errs.Add("status", "status must be Completed, Pending, Partial or Refunded")
	}
	return errs.Err()
}

type AddExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"payment_method"`
}

func (r *AddExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsPositive(r.Amount) {
		errs.Add("amount", "amount must be greater than zero")
	}
	if validator.IsEmpty(r.Description) {
		errs.Add("description", "description is required")
	}
	if validator.IsEmpty(r.Category) {
		errs.Add("category", "category is required")
	}
	if validator.IsEmpty(r.PaymentMethod) {
		errs.Add("payment_method", "payment_method is required")
	}

	return errs.Err()
}

// CartAction is one edit applied to a cart preview.
type CartAction struct {
	Op        string          `json:"op"`
	Index     int             `json:"index"`
	Component int             `json:"component"`
	ProductID string          `json:"product_id,omitempty"`
	Delta     int             `json:"delta,omitempty"`
	Quantity  int             `json:"quantity,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Flag      string          `json:"flag,omitempty"`
	Text      string          `json:"text,omitempty"`
}

type CartPreviewRequest struct {
	Items   []Item       `json:"items"`
	Actions []CartAction `json:"actions"`
}

type CartPreviewResponse struct {
	Items []Item          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type OrderDetailResponse struct {
	Order    SalesOrder           `json:"order"`
	Expenses []ledger.Transaction `json:"expenses"`
}
