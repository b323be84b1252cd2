package inventory

import (
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ListItemRequest struct {
	BranchScope string
	Category    string
	Search      string
}

type ItemRequest struct {
	Name               string           `json:"name"`
	SKU                string           `json:"sku"`
	Category           string           `json:"category"`
	Price              decimal.Decimal  `json:"price"`
	PriceAfterDiscount *decimal.Decimal `json:"price_after_discount,omitempty"`
	CostPrice          decimal.Decimal  `json:"cost_price"`
	Stock              int              `json:"stock"`
	Description        string           `json:"description"`
	Media              []Media          `json:"media"`
	Material           string           `json:"material"`
	BranchID           string           `json:"branch_id"`
	Components         []Component      `json:"components"`
}

func (r *ItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if validator.IsEmpty(r.SKU) {
		errs.Add("sku", "sku is required")
	}
	if !validator.IsNonNegative(r.Price) {
		errs.Add("price", "price must not be negative")
	}
	if r.PriceAfterDiscount != nil {
		if r.PriceAfterDiscount.IsNegative() {
			errs.Add("price_after_discount", "price_after_discount must not be negative")
		} else if r.PriceAfterDiscount.GreaterThan(r.Price) {
			errs.Add("price_after_discount", "price_after_discount must not exceed price")
		}
	}
	if !validator.IsNonNegative(r.CostPrice) {
		errs.Add("cost_price", "cost_price must not be negative")
	}
	if r.Stock < 0 {
		errs.Add("stock", "stock must not be negative")
	}
	for _, c := range r.Components {
		if validator.IsEmpty(c.Name) {
			errs.Add("components", "component name is required")
			break
		}
		if c.Quantity < 0 {
			errs.Add("components", "component quantity must not be negative")
			break
		}
	}

	return errs.Err()
}

type CategoryRequest struct {
	Name          string   `json:"name"`
	SubCategories []string `json:"sub_categories"`
}

func (r *CategoryRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	return errs.Err()
}
