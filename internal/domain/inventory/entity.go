package inventory

import "github.com/shopspring/decimal"

type Item struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	SKU                string           `json:"sku"`
	Category           string           `json:"category"`
	Price              decimal.Decimal  `json:"price"`
	PriceAfterDiscount *decimal.Decimal `json:"priceAfterDiscount,omitempty"`
	DiscountPercentage float64          `json:"discountPercentage,omitempty"`
	CostPrice          decimal.Decimal  `json:"costPrice"`
	Stock              int              `json:"stock"`
	Description        string           `json:"description"`
	Media              []Media          `json:"media"`
	Material           string           `json:"material"`
	BranchID           string           `json:"branchId"`
	Components         []Component      `json:"components,omitempty"`
}

type Media struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

// Component is a sub-part of a composite product, such as one piece of a
// bedroom set.
type Component struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Category       string         `json:"category,omitempty"`
	Quantity       int            `json:"quantity"`
	Media          []Media        `json:"media,omitempty"`
	Customizations *Customization `json:"customizations,omitempty"`
}

// Customization flags manufacturing work requested for an item or component.
type Customization struct {
	IsTextile  bool   `json:"isTextile"`
	IsMeasures bool   `json:"isMeasures"`
	IsOther    bool   `json:"isOther"`
	Note       string `json:"note,omitempty"`
}

type ProductCategory struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	SubCategories []string `json:"subCategories,omitempty"`
}

// DiscountPercentage derives the displayed discount from the list price and
// the discounted price, rounded to one decimal place.
func DiscountPercentage(price decimal.Decimal, after *decimal.Decimal) float64 {
	if !price.IsPositive() || after == nil || !after.IsPositive() {
		return 0
	}
	pct := price.Sub(*after).Div(price).Mul(decimal.NewFromInt(100)).Round(1)
	f, _ := pct.Float64()
	return f
}

func FindByID(items []Item, id string) (int, bool) {
	for i, it := range items {
		if it.ID == id {
			return i, true
		}
	}
	return -1, false
}
