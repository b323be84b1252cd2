package purchasing

import (
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
)

type SupplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Website       string `json:"website,omitempty"`
}

func (r *SupplierRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if r.Email != "" && !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}

	return errs.Err()
}

type ListPORequest struct {
	BranchScope string
	Status      Status
	SupplierID  string
}

type CreatePORequest struct {
	SupplierID   string `json:"supplier_id"`
	ExpectedDate string `json:"expected_date,omitempty"`
	Items        []Item `json:"items"`
	BranchID     string `json:"branch_id,omitempty"`
	Notes        string `json:"notes,omitempty"`
	// Draft keeps the PO editable instead of placing it with the supplier.
	Draft bool `json:"draft,omitempty"`
}

func (r *CreatePORequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SupplierID) {
		errs.Add("supplier_id", "supplier_id is required")
	}
	if len(r.Items) == 0 {
		errs.Add("items", "at least one item is required")
	}
	for _, it := range r.Items {
		if validator.IsEmpty(it.ProductID) {
			errs.Add("items", "product_id is required for every item")
			break
		}
		if it.Quantity <= 0 {
			errs.Add("items", "quantity must be greater than zero")
			break
		}
		if !validator.IsNonNegative(it.UnitCost) {
			errs.Add("items", "unit_cost must not be negative")
			break
		}
	}
	if r.ExpectedDate != "" {
		if _, ok := validator.IsValidDate(r.ExpectedDate); !ok {
			errs.Add("expected_date", "expected_date must be YYYY-MM-DD")
		}
	}

	return errs.Err()
}

type ReceivePORequest struct {
	PaymentMethod string `json:"payment_method,omitempty"`
}
