package customer

import (
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/order"
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ListCustomerRequest struct {
	BranchScope string
	Search      string
	Tag         string
}

type CustomerRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Mobile1  string   `json:"mobile1"`
	Mobile2  string   `json:"mobile2"`
	Country  string   `json:"country"`
	County   string   `json:"county"`
	Tags     []string `json:"tags"`
	Notes    string   `json:"notes"`
	BranchID string   `json:"branch_id"`
}

func (r *CustomerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}
	if validator.IsEmpty(r.Country) {
		errs.Add("country", "country is required")
	}

	return errs.Err()
}

type CustomerResponse struct {
	Customer
	Balance decimal.Decimal `json:"balance"`
}

func ToResponse(c Customer) CustomerResponse {
	return CustomerResponse{Customer: c, Balance: c.Balance()}
}

// DetailResponse is the customer profile with their order and payment history.
type DetailResponse struct {
	Customer CustomerResponse     `json:"customer"`
	Orders   []order.SalesOrder   `json:"orders"`
	Payments []ledger.Transaction `json:"payments"`
}
