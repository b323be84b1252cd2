package customer

import "github.com/shopspring/decimal"

type Customer struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Mobile1          string          `json:"mobile1"`
	Mobile2          string          `json:"mobile2"`
	Country          string          `json:"country"`
	County           string          `json:"county"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	LastPurchaseDate string          `json:"lastPurchaseDate"`
	Tags             []string        `json:"tags"`
	Notes            string          `json:"notes"`
	BranchID         string          `json:"branchId"`
}

// Balance is what the customer still owes across all orders.
func (c Customer) Balance() decimal.Decimal {
	return c.TotalSales.Sub(c.TotalPaid)
}

func FindByID(customers []Customer, id string) (int, bool) {
	for i, c := range customers {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}
